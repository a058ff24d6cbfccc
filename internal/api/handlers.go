package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/varsilias/ragqa/internal/buildinfo"
	"github.com/varsilias/ragqa/internal/chat"
	"github.com/varsilias/ragqa/pkg/types"
	"github.com/varsilias/ragqa/pkg/utils"
)

type Handlers struct {
	log   *slog.Logger
	chat  *chat.Controller
	Admin *Admin
}

func NewHandlers(log *slog.Logger, chatCtrl *chat.Controller) *Handlers {
	return &Handlers{
		log:  log,
		chat: chatCtrl,
	}
}

// Health is a basic liveness endpoint.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	res := map[string]any{
		"status":    true,
		"message":   "ragqa",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	utils.JSON(w, http.StatusOK, res)
}

func (h *Handlers) Version(w http.ResponseWriter, r *http.Request) {
	res := map[string]any{
		"version":  buildinfo.Version,
		"commit":   buildinfo.Commit,
		"built_at": buildinfo.BuiltAt,
	}

	utils.JSON(w, http.StatusOK, res)
}

// Ask POST /api/ask { question }
//
// Retrieval and completion failures are part of a 200 response: they are
// answers the user should see, not transport errors.
func (h *Handlers) Ask(w http.ResponseWriter, r *http.Request) {
	var req types.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	res, err := h.chat.Ask(r.Context(), req.Question)
	if errors.Is(err, chat.ErrEmptyQuestion) {
		utils.Error(w, http.StatusBadRequest, "question is required")
		return
	}
	if err != nil {
		h.log.Error("ask", "err", err)
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, toResponse(res))
}

func toResponse(res chat.Result) types.AskResponse {
	out := types.AskResponse{
		Question:  res.Question,
		Context:   res.Context,
		LatencyMS: res.Latency.Milliseconds(),
		Timestamp: time.Now().UTC(),
	}
	if res.RetrievalErr != nil {
		out.Error = res.RetrievalErr.Error()
		return out
	}
	out.Answer = res.Answer.Text
	if res.Answer.Failed() {
		out.AnswerError = res.Answer.Err.Error()
	}
	return out
}
