package importer

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"declutter/internal/model"
)

// ParseHistoryHTML parses a declutter HTML export (or any Netscape-style
// bookmark file of file:// links) and returns the shortcuts and organized
// paths it contains. Links carrying a SHORTCUT_KEY attribute become
// shortcuts; plain file:// links become organized paths. Anything else is
// ignored.
func ParseHistoryHTML(r io.Reader) ([]model.Shortcut, []string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, nil, err
	}

	var shortcuts []model.Shortcut
	var organized []string

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "a") {
			href := getAttr(n, "href")
			path, ok := strings.CutPrefix(href, "file://")
			if !ok || path == "" {
				return
			}

			if key := getAttr(n, "shortcut_key"); key != "" {
				shortcuts = append(shortcuts, model.Shortcut{Key: key, Destination: path})
			} else {
				organized = append(organized, path)
			}
			return // Don't recurse into A
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}
	parse(doc)

	return shortcuts, organized, nil
}

// getAttr returns the value of the named attribute, or "".
func getAttr(n *html.Node, name string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, name) {
			return attr.Val
		}
	}
	return ""
}
