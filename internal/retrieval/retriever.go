package retrieval

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// ContextProvider returns text that grounds an answer to query.
type ContextProvider interface {
	GetContext(ctx context.Context, query string) (string, error)
}

// ProviderFunc adapts a plain function to ContextProvider.
type ProviderFunc func(ctx context.Context, query string) (string, error)

func (f ProviderFunc) GetContext(ctx context.Context, query string) (string, error) {
	return f(ctx, query)
}

// ErrToolNotFound means the retrieval executable is not on PATH (or the
// configured path does not exist).
var ErrToolNotFound = errors.New("RAG retriever tool not found. Please ensure it is installed and in your PATH.")

const genericToolFailure = "An error occurred while retrieving context."

// ToolError is a non-zero exit of the retrieval tool.
type ToolError struct {
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	msg := e.Stderr
	if msg == "" {
		msg = genericToolFailure
	}
	return "Failed to get context: " + msg
}

// UnexpectedError wraps any other invocation failure.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return "An unexpected error occurred: " + e.Err.Error()
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

// CommandProvider runs `<bin> --query <query>` once per call and returns its
// trimmed stdout.
type CommandProvider struct {
	bin string
	log *slog.Logger
}

func NewCommandProvider(bin string, log *slog.Logger) *CommandProvider {
	return &CommandProvider{bin: bin, log: log}
}

func (p *CommandProvider) Bin() string { return p.bin }

func (p *CommandProvider) GetContext(ctx context.Context, query string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.bin, "--query", query)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	dur := time.Since(start)

	if err == nil {
		out := strings.TrimSpace(stdout.String())
		p.log.Debug("retriever finished", "bin", p.bin, "bytes", len(out), "duration_ms", dur.Milliseconds())
		return out, nil
	}

	var exitErr *exec.ExitError
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		p.log.Error("retriever not found", "bin", p.bin, "err", err)
		return "", ErrToolNotFound
	case ctx.Err() != nil:
		p.log.Warn("retriever interrupted", "bin", p.bin, "err", ctx.Err())
		return "", &UnexpectedError{Err: ctx.Err()}
	case errors.As(err, &exitErr):
		te := &ToolError{ExitCode: exitErr.ExitCode(), Stderr: strings.TrimSpace(stderr.String())}
		p.log.Error("retriever failed", "bin", p.bin, "exit_code", te.ExitCode, "stderr", te.Stderr, "duration_ms", dur.Milliseconds())
		return "", te
	default:
		p.log.Error("retriever invocation", "bin", p.bin, "err", err)
		return "", &UnexpectedError{Err: err}
	}
}
