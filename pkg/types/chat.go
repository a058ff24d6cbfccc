package types

import "time"

type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse mirrors the panels a user sees: Error replaces the context
// panel when retrieval failed; AnswerError flags an answer that is really a
// completion failure message.
type AskResponse struct {
	Question    string    `json:"question"`
	Context     string    `json:"context,omitempty"`
	Error       string    `json:"error,omitempty"`
	Answer      string    `json:"answer,omitempty"`
	AnswerError string    `json:"answer_error,omitempty"`
	LatencyMS   int64     `json:"latency_ms"`
	Timestamp   time.Time `json:"timestamp"`
}
