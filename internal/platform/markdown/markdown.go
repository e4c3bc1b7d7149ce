// Package markdown renders catalog copy written in Markdown to sanitized HTML.
package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts Markdown to HTML safe to embed in a page.
type Renderer interface {
	ToHTML(markdown string) (string, error)
	Sanitize(htmlContent string) string
	ToHTMLSanitized(markdown string) (string, error)
	Inline(markdown string) (string, error)
}

type renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy

	// Catalog copy is a small fixed set, so rendered output is kept.
	mu    sync.RWMutex
	cache map[string]string
}

// New builds a renderer with GFM extensions and a UGC sanitizer policy.
func New() Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Strikethrough,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span")
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &renderer{md: md, policy: policy, cache: map[string]string{}}
}

func (r *renderer) ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown to HTML: %w", err)
	}
	return buf.String(), nil
}

func (r *renderer) Sanitize(htmlContent string) string {
	return r.policy.Sanitize(htmlContent)
}

func (r *renderer) ToHTMLSanitized(markdown string) (string, error) {
	r.mu.RLock()
	cached, ok := r.cache[markdown]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}
	rendered, err := r.ToHTML(markdown)
	if err != nil {
		return "", err
	}
	sanitized := r.Sanitize(rendered)
	r.mu.Lock()
	r.cache[markdown] = sanitized
	r.mu.Unlock()
	return sanitized, nil
}

// Inline renders a single paragraph without its wrapping <p> element.
func (r *renderer) Inline(markdown string) (string, error) {
	rendered, err := r.ToHTMLSanitized(markdown)
	if err != nil {
		return "", err
	}
	trimmed := strings.TrimSpace(rendered)
	if strings.HasPrefix(trimmed, "<p>") && strings.HasSuffix(trimmed, "</p>") && strings.Count(trimmed, "<p>") == 1 {
		return strings.TrimSuffix(strings.TrimPrefix(trimmed, "<p>"), "</p>"), nil
	}
	return trimmed, nil
}
