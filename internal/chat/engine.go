package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/varsilias/ragqa/internal/completion"
)

// Engine turns a question plus retrieved context into an answer. Failures
// are reported inside the Answer, never as a separate error.
type Engine interface {
	Generate(ctx context.Context, question, contextText string) completion.Answer
}

// EchoEngine answers without a model; used for --dry-run and tests.
type EchoEngine struct {
	minLatency time.Duration
}

func NewEchoEngine(minLatency time.Duration) *EchoEngine { return &EchoEngine{minLatency: minLatency} }

func (e *EchoEngine) Generate(ctx context.Context, question, contextText string) completion.Answer {
	start := time.Now()
	if e.minLatency > 0 {
		select {
		case <-time.After(e.minLatency):
		case <-ctx.Done():
			return completion.Failure(ctx.Err(), time.Since(start))
		}
	}
	text := fmt.Sprintf("(dry-run) you asked: %s", question)
	if contextText != "" {
		text += "\n\nusing context: " + contextText
	}
	return completion.Answer{Text: text, Latency: time.Since(start)}
}
