package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ragavan2104/mailblaster/pkg/sanitizer"
)

//go:embed layouts/*.html
var layoutsFS embed.FS

const defaultLayout = "layouts/newsletter.html"

// Renderer turns a markdown campaign body into a complete HTML email.
// It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	layout *template.Template
	sender string
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererConfig)

type rendererConfig struct {
	fsys   fs.FS
	layout string
	sender string
}

// WithLayout renders into a custom html/template layout.
// The layout receives .Content, .Subject, .Preheader, .Sender and .Metadata.
func WithLayout(fsys fs.FS, name string) RendererOption {
	return func(c *rendererConfig) {
		c.fsys = fsys
		c.layout = name
	}
}

// WithSenderName sets the name shown in the layout footer.
func WithSenderName(name string) RendererOption {
	return func(c *rendererConfig) {
		if name != "" {
			c.sender = name
		}
	}
}

// NewRenderer parses the layout once. Without options it uses the embedded newsletter layout.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	cfg := &rendererConfig{fsys: layoutsFS, layout: defaultLayout, sender: "MailBlaster Pro"}
	for _, opt := range opts {
		opt(cfg)
	}

	content, err := fs.ReadFile(cfg.fsys, cfg.layout)
	if err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, cfg.layout, err)
	}
	layout, err := template.New("layout").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, cfg.layout, err)
	}

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Table, extension.Strikethrough, ButtonExtension()),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		layout: layout,
		sender: cfg.sender,
	}, nil
}

// RenderResult is the output of one render.
type RenderResult struct {
	Metadata map[string]any
	HTML     string
	Text     string // the markdown body without front matter
}

// Render converts body (optionally led by YAML front matter) into HTML inside the layout.
// subject is only used for the document title.
func (r *Renderer) Render(body, subject string) (*RenderResult, error) {
	tpl := ParseBody(body)

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(tpl.Body), &buf); err != nil {
		return nil, fmt.Errorf("%w: markdown: %v", ErrRenderFailed, err)
	}

	var out bytes.Buffer
	err := r.layout.Execute(&out, map[string]any{
		// Sanitized above, so it is safe to mark as HTML.
		"Content":   template.HTML(sanitizer.EmailHTML(buf.String())), //nolint:gosec
		"Subject":   subject,
		"Preheader": tpl.String("Preheader"),
		"Sender":    r.sender,
		"Metadata":  tpl.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: layout: %v", ErrRenderFailed, err)
	}

	return &RenderResult{
		Metadata: tpl.Metadata,
		HTML:     out.String(),
		Text:     strings.TrimSpace(tpl.Body),
	}, nil
}
