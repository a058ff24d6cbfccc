// Package console renders a question's result for a terminal.
package console

import (
	"fmt"
	"io"

	"github.com/varsilias/ragqa/internal/chat"
	"github.com/varsilias/ragqa/internal/completion"
)

type Renderer struct {
	w           io.Writer
	showContext bool
}

// New returns a renderer writing to w. The retrieved context is printed only
// when showContext is set; errors are always printed.
func New(w io.Writer, showContext bool) *Renderer {
	return &Renderer{w: w, showContext: showContext}
}

func (r *Renderer) Header() {
	fmt.Fprintln(r.w, HeaderStyle.Render("🤖 RAG-powered Q&A System"))
}

// Context prints the retrieval error in place of the context when err is set.
func (r *Renderer) Context(text string, err error) {
	if err != nil {
		fmt.Fprintln(r.w, ErrorStyle.Render("❌ "+err.Error()))
		return
	}
	if !r.showContext || text == "" {
		return
	}
	fmt.Fprintln(r.w, TitleStyle.Render("📚 Retrieved Context"))
	fmt.Fprintln(r.w, ContextPanel.Render(text))
}

func (r *Renderer) Answer(a completion.Answer, model string) {
	fmt.Fprintln(r.w, TitleStyle.Render("💡 Answer"))
	panel := AnswerPanel
	if a.Failed() {
		panel = panel.BorderForeground(ColorRed)
	}
	fmt.Fprintln(r.w, panel.Render(a.Text))
	fmt.Fprintln(r.w, MetaStyle.Render(fmt.Sprintf("%s · %d ms", model, a.Latency.Milliseconds())))
}

// Result prints the panels for res; the answer panel is skipped when
// retrieval failed.
func (r *Renderer) Result(res chat.Result, model string) {
	r.Context(res.Context, res.RetrievalErr)
	if !res.Answered() {
		return
	}
	r.Answer(res.Answer, model)
}
