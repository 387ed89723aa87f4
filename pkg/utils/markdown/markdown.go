// Package markdown renders the short markdown snippets used in dialog text.
package markdown

import (
	"bytes"
	"html"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

var (
	renderer = blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.Safelink | blackfriday.NofollowLinks | blackfriday.HrefTargetBlank | blackfriday.Smartypants | blackfriday.SmartypantsDashes,
	})
	extensions = blackfriday.NoIntraEmphasis | blackfriday.Strikethrough | blackfriday.Autolink | blackfriday.HardLineBreak
	policy     = bluemonday.UGCPolicy()
)

// ToHTML renders source and sanitizes the result. A single paragraph is
// unwrapped so the text sits inline in its container.
func ToHTML(source string) template.HTML {
	if source == "" {
		return ""
	}
	out := bytes.TrimSpace(policy.SanitizeBytes(blackfriday.Run([]byte(source),
		blackfriday.WithRenderer(renderer),
		blackfriday.WithExtensions(extensions),
	)))
	return template.HTML(unwrapParagraph(out))
}

// ToText renders source and strips every tag. The result is plain text and
// must be escaped by whoever writes it into HTML.
func ToText(source string) string {
	out := blackfriday.Run([]byte(source),
		blackfriday.WithRenderer(renderer),
		blackfriday.WithExtensions(extensions),
	)
	return html.UnescapeString(string(bytes.TrimSpace(bluemonday.StrictPolicy().SanitizeBytes(out))))
}

func unwrapParagraph(b []byte) []byte {
	open, closing := []byte("<p>"), []byte("</p>")
	if !bytes.HasPrefix(b, open) || !bytes.HasSuffix(b, closing) {
		return b
	}
	inner := b[len(open) : len(b)-len(closing)]
	if bytes.Contains(inner, open) {
		return b
	}
	return inner
}
