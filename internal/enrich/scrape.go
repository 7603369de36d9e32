package enrich

import (
	"strings"

	"golang.org/x/net/html"
)

// scrapeScholarships walks anchors in a fetched page and keeps links whose
// text or href looks scholarship-related, up to max entries.
func scrapeScholarships(page, base string, max int) []Scholarship {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return []Scholarship{}
	}

	out := make([]Scholarship, 0, max)
	seen := make(map[string]struct{})

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if len(out) >= max {
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" {
			href := attr(n, "href")
			text := strings.Join(strings.Fields(anchorText(n)), " ")
			if isScholarshipLink(text, href) {
				name := text
				if name == "" {
					name = href
				}
				if _, dup := seen[name]; !dup {
					seen[name] = struct{}{}
					out = append(out, Scholarship{Name: name, URL: absoluteURL(base, href)})
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return out
}

func isScholarshipLink(text, href string) bool {
	lowText := strings.ToLower(text)
	lowHref := strings.ToLower(href)
	if strings.Contains(lowText, "scholarship") || strings.Contains(lowText, "bursary") || strings.Contains(lowText, "grant") {
		return true
	}
	return strings.Contains(lowHref, "scholarship") && text != ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

func anchorText(n *html.Node) string {
	var b strings.Builder
	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func absoluteURL(base, href string) string {
	if href == "" {
		return base
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return strings.TrimSuffix(base, "/") + href
	}
	return strings.TrimSuffix(base, "/") + "/" + href
}
