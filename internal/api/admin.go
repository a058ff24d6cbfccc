package api

import (
	"net/http"

	"github.com/varsilias/ragqa/pkg/utils"
)

// Admin exposes the effective, non-secret runtime settings.
type Admin struct {
	Model        string
	RetrieverBin string
	DryRun       bool
}

func NewAdmin(model, retrieverBin string, dryRun bool) *Admin {
	return &Admin{Model: model, RetrieverBin: retrieverBin, DryRun: dryRun}
}

// Settings GET /admin/settings
func (a *Admin) Settings(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]any{
		"model":         a.Model,
		"retriever_bin": a.RetrieverBin,
		"dry_run":       a.DryRun,
	})
}
