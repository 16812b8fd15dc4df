package digest

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(htmlrenderer.WithHardWraps()),
)

// renderSummaryHTML converts the model's markdown bullet list into the HTML
// body of the digest email. Falls back to escaped preformatted text when the
// summary does not convert.
func renderSummaryHTML(summary string) string {
	var out bytes.Buffer
	if err := markdownEngine.Convert([]byte(summary), &out); err != nil {
		return "<pre>" + template.HTMLEscapeString(summary) + "</pre>"
	}
	return out.String()
}
