// Package conv renders assistant markdown for the channels that display it.
package conv

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
)

const extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock

var (
	emailPolicy    = bluemonday.UGCPolicy()
	telegramPolicy = newTelegramPolicy()
)

// newTelegramPolicy allows only the tags listed at https://core.telegram.org/bots/api#html-style.
func newTelegramPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("class").OnElements("code")
	return p
}

func render(md []byte, flags html.Flags) []byte {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: flags})
	return markdown.Render(p.Parse(md), renderer)
}

// MarkdownToTelegramHTML keeps the subset of HTML the Bot API accepts.
func MarkdownToTelegramHTML(md []byte) string {
	return string(telegramPolicy.SanitizeBytes(render(md, html.CommonFlags|html.HrefTargetBlank)))
}

// MarkdownToEmailHTML renders markdown into sanitized HTML suitable for a mail body.
func MarkdownToEmailHTML(md []byte) string {
	return string(emailPolicy.SanitizeBytes(render(md, html.CommonFlags)))
}

// HTMLToText produces the plain-text alternative of an HTML body.
func HTMLToText(body string) (string, error) {
	text, err := html2text.FromString(body, html2text.Options{OmitLinks: false})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
