package chapter

import (
	"regexp"
	"strings"
)

var (
	brTag     = regexp.MustCompile(`<br\s*/?>`)
	unescaper = strings.NewReplacer(
		"&nbsp;", " ",
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
	)
)

// ContentToHTML converts plain chapter text into paragraph markup the editor
// widget accepts: one <p> per line, an explicit <p><br></p> for blank lines.
// The conversion is intentionally lossy beyond paragraphs and line breaks;
// it only flattens initial plain-text uploads into an editable shape.
func ContentToHTML(content string) string {
	if content == "" {
		return ""
	}

	var b strings.Builder
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			b.WriteString("<p><br></p>")
			continue
		}
		b.WriteString("<p>")
		b.WriteString(line)
		b.WriteString("</p>")
	}

	return b.String()
}

// HTMLToContent reverses ContentToHTML: paragraph wrapping and breaks back
// to newlines, the four standard text escapes undone, surrounding
// whitespace trimmed.
func HTMLToContent(html string) string {
	if html == "" {
		return ""
	}

	// Empty-paragraph markers first, so the plain </p> pass below does not
	// see them.
	text := strings.ReplaceAll(html, "<p><br></p>", "\n")
	text = strings.ReplaceAll(text, "<p>", "")
	text = strings.ReplaceAll(text, "</p>", "\n")
	text = brTag.ReplaceAllString(text, "\n")
	text = unescaper.Replace(text)

	return strings.TrimSpace(text)
}
