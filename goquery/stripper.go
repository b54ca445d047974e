// Package goquery implements tag stripping on PuerkitoBio/goquery and
// golang.org/x/net/html.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pproszowski/tagstrip"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Stripper implements tagstrip.Stripper at compile time.
var _ tagstrip.Stripper = (*Stripper)(nil)

// Stripper removes tags from HTML text using lenient parsing.
// The zero value is ready to use and safe for concurrent use.
type Stripper struct{}

// NewStripper creates a new Stripper.
func NewStripper() *Stripper {
	return &Stripper{}
}

// Strip parses document, removes elements matching opts.Tags, applies
// attribute cleaning, and serializes the result. Inputs with a document
// shell (<html> or a doctype) round-trip as full documents; anything
// else is treated as a body fragment and never gains scaffolding.
func (s *Stripper) Strip(document string, opts tagstrip.StripOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	if hasDocumentShell(document) {
		return stripDocument(document, opts)
	}
	return stripFragment(document, opts)
}

func stripDocument(document string, opts tagstrip.StripOptions) (string, error) {
	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return "", tagstrip.Errorf(tagstrip.EPARSE, "failed to parse HTML: %v", err)
	}

	apply(root, opts)

	var b strings.Builder
	if err := html.Render(&b, root); err != nil {
		return "", tagstrip.Errorf(tagstrip.EINTERNAL, "failed to render HTML: %v", err)
	}
	return b.String(), nil
}

func stripFragment(document string, opts tagstrip.StripOptions) (string, error) {
	// Parse in a synthetic body context so fragments keep their shape.
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(document), body)
	if err != nil {
		return "", tagstrip.Errorf(tagstrip.EPARSE, "failed to parse HTML fragment: %v", err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}

	apply(body, opts)

	var b strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", tagstrip.Errorf(tagstrip.EINTERNAL, "failed to render HTML: %v", err)
		}
	}
	return b.String(), nil
}

// apply mutates the tree rooted at root per opts.
func apply(root *html.Node, opts tagstrip.StripOptions) {
	if opts.Tags.Contains(tagstrip.TagComment) {
		removeComments(root)
	}

	elements := matchingElements(root, opts.Tags)
	for _, n := range elements {
		if opts.Mode == tagstrip.UnwrapOnly {
			unwrapNode(n)
		} else {
			removeNode(n)
		}
	}

	cleanAttributes(root, opts)
}

// matchingElements collects elements whose tag name is in tags, in
// document order. Nodes are collected before mutation so nested matches
// are handled consistently.
func matchingElements(root *html.Node, tags tagstrip.TagSet) []*html.Node {
	var selectors []string
	for _, name := range tags.Names() {
		if name == tagstrip.TagComment {
			continue
		}
		selectors = append(selectors, name)
	}
	if len(selectors) == 0 {
		return nil
	}

	doc := goquery.NewDocumentFromNode(root)
	var nodes []*html.Node
	doc.Find(strings.Join(selectors, ", ")).Each(func(_ int, sel *goquery.Selection) {
		nodes = append(nodes, sel.Nodes...)
	})
	return nodes
}

// removeNode detaches n and its subtree from the tree.
func removeNode(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// unwrapNode removes n's markers, splicing its children into the parent
// at n's position in document order.
func unwrapNode(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
		c = next
	}
	parent.RemoveChild(n)
}

// removeComments deletes every comment node under root.
func removeComments(root *html.Node) {
	var comments []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.CommentNode {
			comments = append(comments, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	for _, c := range comments {
		removeNode(c)
	}
}

// cleanAttributes clears element attributes per opts.AttrMode.
func cleanAttributes(root *html.Node, opts tagstrip.StripOptions) {
	if opts.AttrMode == "" || opts.AttrMode == tagstrip.AttrKeep {
		return
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && shouldCleanAttrs(n.Data, opts) {
			n.Attr = nil
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
}

func shouldCleanAttrs(tagName string, opts tagstrip.StripOptions) bool {
	switch opts.AttrMode {
	case tagstrip.AttrCleanAll:
		return true
	case tagstrip.AttrCleanSelected:
		return opts.AttrTags.Contains(tagName)
	case tagstrip.AttrCleanExcept:
		return !opts.AttrTags.Contains(tagName)
	}
	return false
}

// hasDocumentShell reports whether the input looks like a full HTML
// document rather than a fragment.
func hasDocumentShell(document string) bool {
	lower := strings.ToLower(document)
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype")
}
