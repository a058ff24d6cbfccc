package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/varsilias/ragqa/internal/completion"
	"github.com/varsilias/ragqa/internal/metrics"
	"github.com/varsilias/ragqa/internal/retrieval"
)

var ErrEmptyQuestion = errors.New("question must not be empty")

// Result is everything one submission produced. When RetrievalErr is set the
// engine was never called and Answer is zero.
type Result struct {
	Question     string
	Context      string
	RetrievalErr error
	Answer       completion.Answer
	Latency      time.Duration
}

func (r Result) Answered() bool { return r.RetrievalErr == nil }

// Outcome is the metrics label for r.
func (r Result) Outcome() string {
	switch {
	case r.RetrievalErr != nil:
		return "retrieval_error"
	case r.Answer.Failed():
		return "completion_error"
	default:
		return "answered"
	}
}

type Controller struct {
	log       *slog.Logger
	retriever retrieval.ContextProvider
	eng       Engine
}

func NewController(log *slog.Logger, retriever retrieval.ContextProvider, eng Engine) *Controller {
	return &Controller{log: log, retriever: retriever, eng: eng}
}

// Ask runs one submission: retrieve context, then ask the engine. A retrieval
// failure ends the request before the engine is reached.
func (c *Controller) Ask(ctx context.Context, question string) (Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Result{}, ErrEmptyQuestion
	}
	start := time.Now()
	res := Result{Question: question}

	c.log.Info("retrieving context", "question_len", len(question))
	rstart := time.Now()
	contextText, err := c.retriever.GetContext(ctx, question)
	metrics.RetrievalDurationSeconds.Observe(time.Since(rstart).Seconds())
	metrics.RetrievalTotal.WithLabelValues(retrievalResult(err)).Inc()
	if err != nil {
		c.log.Warn("retrieval failed; skipping completion", "err", err.Error())
		res.RetrievalErr = err
		res.Latency = time.Since(start)
		metrics.QuestionsTotal.WithLabelValues(res.Outcome()).Inc()
		return res, nil
	}
	res.Context = contextText

	c.log.Info("generating answer", "context_bytes", len(contextText))
	res.Answer = c.eng.Generate(ctx, question, contextText)
	metrics.CompletionDurationSeconds.Observe(res.Answer.Latency.Seconds())
	if res.Answer.Failed() {
		metrics.CompletionTotal.WithLabelValues("error").Inc()
		c.log.Error("engine call", "err", res.Answer.Err.Error())
	} else {
		metrics.CompletionTotal.WithLabelValues("ok").Inc()
	}

	res.Latency = time.Since(start)
	metrics.QuestionsTotal.WithLabelValues(res.Outcome()).Inc()
	return res, nil
}

func retrievalResult(err error) string {
	var te *retrieval.ToolError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, retrieval.ErrToolNotFound):
		return "not_found"
	case errors.As(err, &te):
		return "tool_error"
	default:
		return "unexpected"
	}
}
