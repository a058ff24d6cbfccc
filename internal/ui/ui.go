package ui

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/varsilias/ragqa/internal/chat"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html templates/partials/*.html
var templatesFS embed.FS

type UI struct {
	log    *slog.Logger
	tpl    *template.Template
	chat   *chat.Controller
	model  string
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New wires the page renderer. model is only shown next to answers.
func New(log *slog.Logger, c *chat.Controller, model string) (*UI, error) {
	t, err := template.New("root").ParseFS(templatesFS, "templates/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, err
	}

	md := goldmark.New(
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		goldmark.WithExtensions(
			highlighting.NewHighlighting(
				highlighting.WithStyle("dracula"),
				highlighting.WithFormatOptions(
					// Use inline styles so we don’t need an external CSS file
					chromahtml.WithLineNumbers(false),
				),
			),
		),
	)

	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("code", "pre", "span")
	p.AllowAttrs("style").OnElements("span", "pre") // inline styles from highlighter

	return &UI{
		log:    log,
		tpl:    t,
		chat:   c,
		model:  model,
		md:     md,
		policy: p,
	}, nil
}

// ContextView is the panel under the form: retrieved text, or the retrieval
// error in its place.
type ContextView struct {
	Text  string
	Error string
}

type AnswerView struct {
	HTML      template.HTML
	Failed    bool
	Model     string
	LatencyMS int64
	At        string
}

func (u *UI) mdHTML(src string) template.HTML {
	var buf bytes.Buffer
	if err := u.md.Convert([]byte(src), &buf); err != nil {
		u.log.Warn("markdown convert", "err", err)
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(u.policy.SanitizeBytes(buf.Bytes()))
}

func (u *UI) render(w http.ResponseWriter, name string, data any, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := u.tpl.ExecuteTemplate(w, name, data); err != nil {
		u.errTpl(w, err)
	}
}

func (u *UI) errTpl(w http.ResponseWriter, err error) {
	u.log.Error("template execute", "err", err)
	_, _ = w.Write([]byte("<pre>template error: " + template.HTMLEscapeString(err.Error()) + "</pre>"))
}
