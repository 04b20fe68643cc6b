// Package preview renders a quick HTML view of a payload before the docx
// build is requested.
package preview

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"

	"github.com/dgallion1/specdoc/internal/spec"
)

// OutlineEntry is one heading in the rendered preview.
type OutlineEntry struct {
	Level int    `json:"level"`
	Title string `json:"title"`
}

// Result is the rendered preview plus its heading outline.
type Result struct {
	HTML    string         `json:"html"`
	Outline []OutlineEntry `json:"outline"`
}

// Render assembles the payload into a markdown document with the same
// numbering the docx build uses, converts it to HTML, and extracts the
// heading outline.
func Render(payload *spec.Payload, title string) (*Result, error) {
	if strings.TrimSpace(payload.Title) != "" {
		title = payload.Title
	}

	var md strings.Builder
	md.WriteString("# " + title + "\n\n")
	for i, section := range payload.Sections {
		fmt.Fprintf(&md, "## %d. %s\n\n", i+1, section.Title)
		if content, ok := spec.FindSectionContent(payload.Content, section.Title); ok && content != "" {
			md.WriteString(content)
			md.WriteString("\n\n")
		}
	}

	converter := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := converter.Convert([]byte(md.String()), &buf); err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}

	outline, err := extractOutline(buf.Bytes())
	if err != nil {
		return nil, err
	}

	return &Result{HTML: buf.String(), Outline: outline}, nil
}

// extractOutline walks the rendered HTML and collects heading tags in
// document order.
func extractOutline(rendered []byte) ([]OutlineEntry, error) {
	doc, err := html.Parse(bytes.NewReader(rendered))
	if err != nil {
		return nil, fmt.Errorf("parse preview html: %w", err)
	}

	var outline []OutlineEntry
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				outline = append(outline, OutlineEntry{
					Level: level,
					Title: textContent(n),
				})
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return outline, nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}
