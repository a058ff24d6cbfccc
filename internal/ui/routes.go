package ui

import (
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/varsilias/ragqa/internal/buildinfo"
	"github.com/varsilias/ragqa/internal/chat"
)

type pageData struct {
	Question string
	Context  *ContextView
	Answer   *AnswerView
	Build    versionVM
}

func RegisterRoutes(mux *chi.Mux, h *UI) {
	mux.Get("/", h.Home)
	mux.Post("/ui/ask", h.AskPost)
	mux.Get("/ui/version-pill", h.VersionPill)
}

// Home shows the empty question form.
func (u *UI) Home(w http.ResponseWriter, r *http.Request) {
	u.render(w, "home.html", pageData{Build: currentVersion()}, http.StatusOK)
}

// AskPost handles one submission. HTMX requests get the context (or error)
// fragment followed by the answer fragment; plain form posts get the whole
// page.
func (u *UI) AskPost(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	question := strings.TrimSpace(r.Form.Get("question"))

	res, err := u.chat.Ask(r.Context(), question)
	if errors.Is(err, chat.ErrEmptyQuestion) {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		u.log.Error("ask", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ctxView, ansView := u.views(res)

	if r.Header.Get("HX-Request") != "true" {
		u.render(w, "home.html", pageData{
			Question: question,
			Context:  ctxView,
			Answer:   ansView,
			Build:    currentVersion(),
		}, http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := u.tpl.ExecuteTemplate(w, "context.html", ctxView); err != nil {
		u.errTpl(w, err)
		return
	}
	if ansView == nil {
		return
	}
	if err := u.tpl.ExecuteTemplate(w, "answer.html", ansView); err != nil {
		u.errTpl(w, err)
	}
}

// views maps a result onto panels; no answer panel when retrieval failed.
func (u *UI) views(res chat.Result) (*ContextView, *AnswerView) {
	if res.RetrievalErr != nil {
		return &ContextView{Error: res.RetrievalErr.Error()}, nil
	}
	ans := &AnswerView{
		Failed:    res.Answer.Failed(),
		Model:     u.model,
		LatencyMS: res.Answer.Latency.Milliseconds(),
		At:        time.Now().Format(time.RFC822),
	}
	if ans.Failed {
		ans.HTML = template.HTML("<p>" + template.HTMLEscapeString(res.Answer.Text) + "</p>")
	} else {
		ans.HTML = u.mdHTML(res.Answer.Text)
	}
	return &ContextView{Text: res.Context}, ans
}

type versionVM struct {
	Version string
	Commit  string
	BuiltAt string
}

func currentVersion() versionVM {
	return versionVM{
		Version: buildinfo.Version,
		Commit:  buildinfo.Commit,
		BuiltAt: buildinfo.BuiltAt,
	}
}

func (u *UI) VersionPill(w http.ResponseWriter, r *http.Request) {
	// Fragment response; avoid caching so rollouts show quickly
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	if err := u.tpl.ExecuteTemplate(w, "version-pill.html", currentVersion()); err != nil {
		u.errTpl(w, err)
	}
}
