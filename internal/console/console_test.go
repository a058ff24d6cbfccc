package console

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/varsilias/ragqa/internal/chat"
	"github.com/varsilias/ragqa/internal/completion"
)

func TestResult_Answered(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, true)

	r.Header()
	r.Result(chat.Result{
		Question: "What is X?",
		Context:  "X is Y",
		Answer:   completion.Answer{Text: "X is a Y."},
	}, "gpt-test")

	out := buf.String()
	assert.Contains(t, out, "RAG-powered Q&A System")
	assert.Contains(t, out, "Retrieved Context")
	assert.Contains(t, out, "X is Y")
	assert.Contains(t, out, "💡 Answer")
	assert.Contains(t, out, "X is a Y.")
	assert.Contains(t, out, "gpt-test")
}

func TestResult_HidesContextByDefault(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Result(chat.Result{Context: "secret sauce", Answer: completion.Answer{Text: "ok"}}, "m")

	assert.NotContains(t, buf.String(), "secret sauce")
	assert.Contains(t, buf.String(), "ok")
}

func TestResult_RetrievalErrorSkipsAnswer(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Result(chat.Result{RetrievalErr: errors.New("Failed to get context: bad query")}, "m")

	out := buf.String()
	assert.Contains(t, out, "Failed to get context: bad query")
	assert.NotContains(t, out, "Answer")
}

func TestResult_CompletionFailureStillShown(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Result(chat.Result{Answer: completion.Failure(errors.New("timeout"), 0)}, "m")

	assert.Contains(t, buf.String(), "Error generating response: timeout")
}
