package render

import (
	"strings"

	"golang.org/x/net/html"
)

// blockTags start a new line in plain-text output.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "tr": true,
}

// PlainText converts a rich-text description to plain text. Input that is
// not HTML passes through with whitespace normalized.
func PlainText(s string) string {
	if !strings.Contains(s, "<") {
		return collapse(s)
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return collapse(s)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
			if blockTags[n.Data] {
				b.WriteString("\n")
			}
			if n.Data == "li" {
				b.WriteString("• ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockTags[n.Data] && n.Data != "br" {
			b.WriteString("\n")
		}
	}
	walk(doc)

	return collapse(b.String())
}

// collapse trims every line, squeezes inner runs of spaces and keeps at most
// one blank line between paragraphs.
func collapse(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
