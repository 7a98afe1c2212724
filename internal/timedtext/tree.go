package timedtext

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ErrDetached is returned when a node without a parent is asked to replace itself.
var ErrDetached = errors.New("timedtext: node has no parent")

// NodeType identifies the kind of a tree node.
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
	CommentNode
)

// Node is an element, text run, or comment in a parsed document.
type Node struct {
	Type NodeType

	name     string
	attrs    []html.Attribute
	raw      string
	closeRaw string
	data     string

	parent   *Node
	children []*Node
}

// textEscaper escapes only markup delimiters; control characters such as
// "\r" must survive into serialized markup unchanged.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var (
	_ Document = (*Tree)(nil)
	_ Element  = (*Node)(nil)
)

// Tree is a parsed timed-text document.
type Tree struct {
	nodes []*Node
}

// Parse tokenizes r into a Tree. Malformed markup is tolerated: stray end
// tags are ignored and unterminated elements are closed at end of input.
func Parse(r io.Reader) (*Tree, error) {
	z := html.NewTokenizer(r)
	z.AllowCDATA(true)

	tree := &Tree{}
	var open []*Node
	attach := func(n *Node) {
		if len(open) == 0 {
			tree.nodes = append(tree.nodes, n)
			return
		}
		parent := open[len(open)-1]
		n.parent = parent
		parent.children = append(parent.children, n)
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return tree, nil
			}
			return nil, fmt.Errorf("tokenize timed text: %w", z.Err())
		case html.TextToken:
			// Raw must be copied before Text unescapes the buffer in place.
			raw := string(z.Raw())
			attach(&Node{Type: TextNode, raw: raw, data: string(z.Text())})
		case html.CommentToken, html.DoctypeToken:
			attach(&Node{Type: CommentNode, raw: string(z.Raw())})
		case html.StartTagToken, html.SelfClosingTagToken:
			// Timed text has no raw-text elements; style and title carry markup.
			z.NextIsNotRawText()
			raw := string(z.Raw())
			name, more := z.TagName()
			n := &Node{Type: ElementNode, name: string(name), raw: raw}
			for more {
				var key, val []byte
				key, val, more = z.TagAttr()
				n.attrs = append(n.attrs, html.Attribute{Key: string(key), Val: string(val)})
			}
			attach(n)
			if tt == html.StartTagToken && !isLineBreakName(n.name) {
				open = append(open, n)
			}
		case html.EndTagToken:
			raw := string(z.Raw())
			name, _ := z.TagName()
			for i := len(open) - 1; i >= 0; i-- {
				if strings.EqualFold(open[i].name, string(name)) {
					open[i].closeRaw = raw
					open = open[:i]
					break
				}
			}
		}
	}
}

func isLineBreakName(name string) bool {
	return strings.EqualFold(name, "br") || strings.HasSuffix(strings.ToLower(name), ":br")
}

// Root returns the first top-level element.
func (t *Tree) Root() Element {
	if t == nil {
		return nil
	}
	for _, n := range t.nodes {
		if n.Type == ElementNode {
			return n
		}
	}
	return nil
}

// ElementsByTagName returns every element named name, the root included.
func (t *Tree) ElementsByTagName(name string) Lookup {
	if t == nil {
		return Unsupported()
	}
	var matches []Element
	for _, n := range t.nodes {
		n.collect(name, &matches)
	}
	return Found(matches)
}

// Markup serializes the whole tree.
func (t *Tree) Markup() string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	for _, n := range t.nodes {
		n.writeMarkup(&b)
	}
	return b.String()
}

// Clone returns a deep copy that shares no nodes with t.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	out := &Tree{nodes: make([]*Node, 0, len(t.nodes))}
	for _, n := range t.nodes {
		out.nodes = append(out.nodes, n.clone(nil))
	}
	return out
}

// Name returns the qualified tag name as written in the source.
func (n *Node) Name() string {
	if n.Type != ElementNode {
		return ""
	}
	if len(n.raw) > len(n.name) && n.raw[0] == '<' {
		return n.raw[1 : 1+len(n.name)]
	}
	return n.name
}

// Attribute looks up an attribute by qualified name, ignoring case.
func (n *Node) Attribute(name string) (string, bool) {
	for _, attr := range n.attrs {
		if strings.EqualFold(attr.Key, name) {
			return attr.Val, true
		}
	}
	return "", false
}

// ElementsByTagName returns the descendants named name in document order.
func (n *Node) ElementsByTagName(name string) Lookup {
	var matches []Element
	for _, child := range n.children {
		child.collect(name, &matches)
	}
	return Found(matches)
}

func (n *Node) collect(name string, out *[]Element) {
	if n.Type != ElementNode {
		return
	}
	if strings.EqualFold(n.name, name) {
		*out = append(*out, n)
	}
	for _, child := range n.children {
		child.collect(name, out)
	}
}

// ReplaceWithText swaps n for a text node holding text.
func (n *Node) ReplaceWithText(text string) error {
	parent := n.parent
	if parent == nil {
		return ErrDetached
	}
	for i, child := range parent.children {
		if child == n {
			parent.children[i] = &Node{
				Type:   TextNode,
				raw:    textEscaper.Replace(text),
				data:   text,
				parent: parent,
			}
			n.parent = nil
			return nil
		}
	}
	return ErrDetached
}

// Content implements Element. PlainText is not available on parsed trees.
func (n *Node) Content(kind ContentKind) (string, bool) {
	switch kind {
	case InnerMarkup:
		var b strings.Builder
		for _, child := range n.children {
			child.writeMarkup(&b)
		}
		return b.String(), true
	case TextContent:
		var b strings.Builder
		n.writeText(&b)
		return b.String(), true
	default:
		return "", false
	}
}

func (n *Node) writeMarkup(b *strings.Builder) {
	b.WriteString(n.raw)
	if n.Type != ElementNode {
		return
	}
	for _, child := range n.children {
		child.writeMarkup(b)
	}
	b.WriteString(n.closeRaw)
}

func (n *Node) writeText(b *strings.Builder) {
	switch n.Type {
	case TextNode:
		b.WriteString(n.data)
	case ElementNode:
		for _, child := range n.children {
			child.writeText(b)
		}
	}
}

func (n *Node) clone(parent *Node) *Node {
	cp := &Node{
		Type:     n.Type,
		name:     n.name,
		raw:      n.raw,
		closeRaw: n.closeRaw,
		data:     n.data,
		parent:   parent,
	}
	if len(n.attrs) > 0 {
		cp.attrs = make([]html.Attribute, len(n.attrs))
		copy(cp.attrs, n.attrs)
	}
	if len(n.children) > 0 {
		cp.children = make([]*Node, 0, len(n.children))
		for _, child := range n.children {
			cp.children = append(cp.children, child.clone(cp))
		}
	}
	return cp
}
