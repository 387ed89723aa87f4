package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToHTML_Empty(t *testing.T) {
	require.Equal(t, "", string(ToHTML("")))
}

func TestToHTML_Sanitizes(t *testing.T) {
	html := string(ToHTML("Delete host **example.com**? <script>alert(1)</script>"))
	require.NotContains(t, strings.ToLower(html), "<script")
	require.Contains(t, html, "<strong>example.com</strong>")
}

func TestToHTML_SingleParagraphInline(t *testing.T) {
	require.Equal(t, "Remove <em>go.example.com</em>?", string(ToHTML("Remove *go.example.com*?")))
}

func TestToHTML_KeepsParagraphs(t *testing.T) {
	html := string(ToHTML("first\n\nsecond"))
	require.Equal(t, 2, strings.Count(html, "<p>"))
}

func TestToText(t *testing.T) {
	text := ToText("hello **world**")
	require.Equal(t, "hello world", text)
}

func TestToText_Unescaped(t *testing.T) {
	require.Equal(t, "A & B c", ToText("A & B <i>c</i>"))
}
