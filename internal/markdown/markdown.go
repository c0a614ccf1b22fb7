// Package markdown converts post text written in Markdown to HTML fragments.
package markdown

import (
	"bytes"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrConversion indicates Markdown conversion failed.
var ErrConversion = errors.New("markdown conversion failed")

// Converter renders Markdown with GFM extensions and class-based highlighting.
type Converter struct {
	md goldmark.Markdown
}

// New creates a Converter. Raw HTML in the input is escaped.
func New() *Converter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // autolinks, strikethrough, tables
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // posts use bare newlines as line breaks
			html.WithXHTML(),
		),
	)
	return &Converter{md: md}
}

// ToHTML converts content to an HTML fragment without a document wrapper.
func (c *Converter) ToHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversion, err)
	}
	return buf.String(), nil
}
