// Package markup renders user-authored markdown for composer previews.
// Output is sanitized: whatever goldmark emits still passes through the
// bluemonday UGC policy, since comment and topic bodies are untrusted.
package markup

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown to sanitized HTML.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New creates a renderer with GitHub-flavored extensions enabled.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Strikethrough, extension.Linkify),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts markdown to HTML safe for embedding.
func (r *Renderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render markup: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

// Strip returns the plain text of a markdown source, for notification
// snippets and search previews.
func (r *Renderer) Strip(source string) (string, error) {
	rendered, err := r.Render(source)
	if err != nil {
		return "", err
	}
	return bluemonday.StrictPolicy().Sanitize(rendered), nil
}
