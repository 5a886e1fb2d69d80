// Package htmlcheck inspects generated HTML: it checks that tags are balanced
// and summarizes the document structure.
package htmlcheck

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// voidElements never take an end tag.
var voidElements = map[atom.Atom]bool{
	atom.Br:     true,
	atom.Source: true,
	atom.Img:    true,
	atom.Hr:     true,
	atom.Meta:   true,
	atom.Link:   true,
	atom.Input:  true,
}

// Report summarizes a parsed document.
type Report struct {
	Doctype bool           // a <!DOCTYPE html> was present
	Title   string         // text of <title>, trimmed
	Counts  map[string]int // element name -> occurrences in the source
	Outline []string       // indented element tree of <body>
}

// Balanced tokenizes src and verifies that every non-void start tag is closed
// by the matching end tag in order.
func Balanced(src string) error {
	z := html.NewTokenizer(strings.NewReader(src))
	var stack []string
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return err
			}
			if len(stack) > 0 {
				return fmt.Errorf("unclosed <%s>", stack[len(stack)-1])
			}
			return nil
		case html.StartTagToken:
			tok := z.Token()
			if !voidElements[tok.DataAtom] {
				stack = append(stack, tok.Data)
			}
		case html.EndTagToken:
			tok := z.Token()
			if len(stack) == 0 {
				return fmt.Errorf("stray </%s>", tok.Data)
			}
			if top := stack[len(stack)-1]; top != tok.Data {
				return fmt.Errorf("</%s> closes <%s>", tok.Data, top)
			}
			stack = stack[:len(stack)-1]
		}
	}
}

// Inspect parses src and builds a Report. It fails when src has unbalanced
// tags or no <html> element of its own.
func Inspect(src string) (*Report, error) {
	if err := Balanced(src); err != nil {
		return nil, fmt.Errorf("unbalanced html: %w", err)
	}
	if !strings.Contains(strings.ToLower(src), "<html") {
		return nil, errors.New("missing <html> element")
	}

	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	r := &Report{Counts: countTags(src)}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DoctypeNode && strings.EqualFold(c.Data, "html") {
			r.Doctype = true
		}
	}
	if t := find(doc, atom.Title); t != nil {
		r.Title = strings.TrimSpace(textOf(t))
	}
	if body := find(doc, atom.Body); body != nil {
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			outline(c, 0, &r.Outline)
		}
	}
	return r, nil
}

// countTags counts start tags as written, before the parser adds implied ones.
func countTags(src string) map[string]int {
	counts := make(map[string]int)
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return counts
		}
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			name, _ := z.TagName()
			counts[string(name)]++
		}
	}
}

func find(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, a); found != nil {
			return found
		}
	}
	return nil
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textOf(c))
	}
	return sb.String()
}

func outline(n *html.Node, depth int, out *[]string) {
	switch n.Type {
	case html.ElementNode:
		line := strings.Repeat("  ", depth) + n.Data
		for _, a := range n.Attr {
			if a.Key == "src" {
				line += " " + a.Val
			}
		}
		*out = append(*out, line)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			outline(c, depth+1, out)
		}
	case html.CommentNode:
		*out = append(*out, strings.Repeat("  ", depth)+"<!--"+n.Data+"-->")
	case html.TextNode:
		if text := strings.TrimSpace(n.Data); text != "" {
			*out = append(*out, strings.Repeat("  ", depth)+fmt.Sprintf("%q", text))
		}
	}
}

// String renders the report for terminal output.
func (r *Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "doctype: %v\n", r.Doctype)
	if r.Title != "" {
		fmt.Fprintf(&sb, "title:   %q\n", r.Title)
	}
	names := make([]string, 0, len(r.Counts))
	for name := range r.Counts {
		names = append(names, name)
	}
	sort.Strings(names)
	sb.WriteString("elements:")
	for _, name := range names {
		fmt.Fprintf(&sb, " %s=%d", name, r.Counts[name])
	}
	sb.WriteString("\n")
	for _, line := range r.Outline {
		sb.WriteString("  ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
