// File: internal/services/chat/format.go
package chat

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// The fence rule is non-greedy with dot-matches-newline, mirroring how the
// emphasis rules stay line-local. Nested or unbalanced markers get no
// special handling: first-match wins and malformed input produces
// best-effort output beyond the escaping step.
var (
	codeBlockRe = regexp.MustCompile("(?s)```(\\w+)?\\s*\\n?(.*?)\\n?```")
	boldRe      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe    = regexp.MustCompile(`\*(.*?)\*`)
)

// FormatResponse transforms raw model output into displayable HTML. Rules
// run in a fixed order: fenced code blocks first, then bold, italic and
// line breaks. Code containers are pulled out into placeholders before the
// later rules run, so their markup is never re-escaped or re-matched.
func FormatResponse(text string) string {
	var blocks []string

	text = codeBlockRe.ReplaceAllStringFunc(text, func(match string) string {
		sub := codeBlockRe.FindStringSubmatch(match)
		language := sub[1]
		if language == "" {
			language = "text"
		}

		placeholder := fmt.Sprintf("\x00CODEBLOCK%d\x00", len(blocks))
		blocks = append(blocks, renderCodeBlock(language, sub[2]))
		return placeholder
	})

	text = boldRe.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicRe.ReplaceAllString(text, "<em>$1</em>")
	text = strings.ReplaceAll(text, "\n", "<br>")

	for i, block := range blocks {
		text = strings.Replace(text, fmt.Sprintf("\x00CODEBLOCK%d\x00", i), block, 1)
	}

	return text
}

// renderCodeBlock wraps escaped code in the labeled container the frontend
// renders. The raw code rides along in data-original-code so the copy
// button can restore it without undoing the display escaping.
func renderCodeBlock(language, code string) string {
	display := html.EscapeString(code)
	display = strings.ReplaceAll(display, " ", "&nbsp;")
	display = strings.ReplaceAll(display, "\n", "<br>")

	return fmt.Sprintf(
		`<div class="code-block" data-original-code="%s">`+
			`<div class="code-header">`+
			`<span class="language">%s</span>`+
			`<button class="copy-btn" onclick="copyCode(this)"><i class="fas fa-copy"></i> Copy</button>`+
			`</div>`+
			`<pre><code>%s</code></pre>`+
			`</div>`,
		html.EscapeString(code), language, display)
}
