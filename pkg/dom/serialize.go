package dom

import (
	"bytes"
	"io"
	"strconv"
	"strings"
)

// Options configures HTML serialization.
type Options struct {
	// Inner serializes only the children of the given node.
	Inner bool

	// NodeIDs adds a data-nid attribute carrying the node id to every
	// element, so a remote client can address elements in events.
	NodeIDs bool

	// Indent, when set, puts every node on its own line indented by one
	// Indent per depth.
	Indent string
}

// InnerHTML returns the serialized children of n.
func (n *Node) InnerHTML() string {
	return n.html(Options{Inner: true})
}

// OuterHTML returns n serialized with its children.
func (n *Node) OuterHTML() string {
	return n.html(Options{})
}

func (n *Node) html(opts Options) string {
	var buf bytes.Buffer
	// bytes.Buffer writes never fail.
	_ = Write(&buf, n, opts)
	return buf.String()
}

// Write streams the HTML serialization of n to w.
func Write(w io.Writer, n *Node, opts Options) error {
	if n == nil {
		return nil
	}
	s := &serializer{w: w, opts: opts}
	if opts.Inner {
		for _, c := range n.children {
			s.node(c, 0)
		}
	} else {
		s.node(n, 0)
	}
	return s.err
}

type serializer struct {
	w       io.Writer
	opts    Options
	err     error
	started bool
}

func (s *serializer) write(str string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, str)
}

// pad starts a new indented line when pretty printing.
func (s *serializer) pad(depth int) {
	if s.opts.Indent == "" {
		return
	}
	if s.started {
		s.write("\n")
	}
	s.started = true
	s.write(strings.Repeat(s.opts.Indent, depth))
}

func (s *serializer) node(n *Node, depth int) {
	s.pad(depth)
	switch n.Type {
	case TextNode:
		s.write(escapeHTML(n.Data))
	case CommentNode:
		s.write("<!--")
		s.write(strings.ReplaceAll(n.Data, "-->", "--&gt;"))
		s.write("-->")
	case ElementNode:
		s.element(n, depth)
	}
}

func (s *serializer) element(n *Node, depth int) {
	s.write("<")
	s.write(n.Tag)
	for _, a := range n.attrs {
		s.write(" ")
		s.write(a.Name)
		if a.Value != "" {
			s.write(`="`)
			s.write(escapeAttr(a.Value))
			s.write(`"`)
		}
	}
	if s.opts.NodeIDs {
		s.write(` data-nid="`)
		s.write(strconv.Itoa(n.id))
		s.write(`"`)
	}
	s.write(">")

	if isVoidElement(n.Tag) {
		return
	}
	for _, c := range n.children {
		s.node(c, depth+1)
	}
	if len(n.children) > 0 {
		s.pad(depth)
	}
	s.write("</")
	s.write(n.Tag)
	s.write(">")
}

// voidElements are elements that cannot have children and have no closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

func isVoidElement(tag string) bool {
	return voidElements[tag]
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	if !strings.ContainsAny(s, "&<>\"'") {
		return s
	}
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for attribute values. Whitespace that could break
// attribute parsing is escaped as well.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}
