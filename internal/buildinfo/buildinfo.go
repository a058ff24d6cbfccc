package buildinfo

// Set at build time:
//
//	go build -ldflags "-X github.com/varsilias/ragqa/internal/buildinfo.Version=v1.2.0 -X github.com/varsilias/ragqa/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
var (
	Version = "dev"
	Commit  = "none"
	BuiltAt = "unknown"
)
