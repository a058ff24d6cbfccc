package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/varsilias/ragqa/internal/completion"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--env-file", ""}, args...))
	err := root.Execute()
	return out.String(), err
}

func fakeRetriever(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "rag-retriever")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ragqa dev")
}

func TestAsk_MissingAPIKeyFailsFast(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("DRY_RUN", "")
	bin := fakeRetriever(t, `printf 'X is Y'`)

	_, err := execute(t, "ask", "--rag-retriever-bin", bin, "What is X?")
	assert.ErrorIs(t, err, completion.ErrMissingAPIKey)
}

func TestAsk_DryRunEndToEnd(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	bin := fakeRetriever(t, `printf 'X is Y\n'`)

	out, err := execute(t, "ask", "--dry-run", "--show-context", "--rag-retriever-bin", bin, "What", "is", "X?")
	require.NoError(t, err)
	assert.Contains(t, out, "X is Y")
	assert.Contains(t, out, "you asked: What is X?")
}

func TestAsk_RetrievalFailureExitsNonZero(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	bin := fakeRetriever(t, "echo 'bad query' >&2\nexit 1")

	out, err := execute(t, "ask", "--dry-run", "--rag-retriever-bin", bin, "What is X?")
	assert.ErrorIs(t, err, errRetrievalFailed)
	assert.Contains(t, out, "Failed to get context: bad query")
	assert.NotContains(t, out, "Answer")
}
