package text

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup flattens any residual HTML markup in a scraped string,
// returning only the visible text. Headings occasionally carry leftover
// tags or entities from scraping; they are cleaned with this before being
// shown as answer sources.
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return CorrectSpaces(s)
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return CorrectSpaces(s)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			t := strings.TrimSpace(n.Data)
			if t != "" {
				buf.WriteString(t)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return CorrectSpaces(buf.String())
}
