package dom

import (
	"fmt"
	"strings"

	"github.com/vango-dev/incr/pkg/native"
)

// MutationKind classifies a native mutation.
type MutationKind uint8

const (
	MutationInsert MutationKind = iota + 1
	MutationRemove
	MutationAttribute
	MutationClass
	MutationProperty
	MutationText
)

// String returns the string representation of the MutationKind.
func (k MutationKind) String() string {
	switch k {
	case MutationInsert:
		return "Insert"
	case MutationRemove:
		return "Remove"
	case MutationAttribute:
		return "Attribute"
	case MutationClass:
		return "Class"
	case MutationProperty:
		return "Property"
	case MutationText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Mutation describes one change applied to the document.
type Mutation struct {
	Kind   MutationKind
	Target *Node
	Child  *Node  // inserted or removed child
	Name   string // attribute, class or property name
}

// Stats counts adapter calls since the document was created or last reset.
type Stats struct {
	Created    int
	Inserted   int
	Removed    int
	Attributes int
	Classes    int
	Properties int
	Texts      int
	Listeners  int
}

// Mutations returns the number of calls that changed the tree or a node.
// Node creation and listener registration are not mutations.
func (s Stats) Mutations() int {
	return s.Inserted + s.Removed + s.Attributes + s.Classes + s.Properties + s.Texts
}

// Document is an in-memory native.Document.
//
// Document is not safe for concurrent use.
type Document struct {
	nextID   int
	stats    Stats
	observer func(Mutation)
}

var _ native.Document = (*Document)(nil)

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Stats returns the current counters.
func (d *Document) Stats() Stats { return d.stats }

// ResetStats zeroes the counters.
func (d *Document) ResetStats() { d.stats = Stats{} }

// Observe installs fn to be called after every mutation. A nil fn removes
// the observer.
func (d *Document) Observe(fn func(Mutation)) { d.observer = fn }

func (d *Document) newNode(t NodeType) *Node {
	d.nextID++
	d.stats.Created++
	return &Node{Type: t, id: d.nextID}
}

func (d *Document) record(m Mutation) {
	switch m.Kind {
	case MutationInsert:
		d.stats.Inserted++
	case MutationRemove:
		d.stats.Removed++
	case MutationAttribute:
		d.stats.Attributes++
	case MutationClass:
		d.stats.Classes++
	case MutationProperty:
		d.stats.Properties++
	case MutationText:
		d.stats.Texts++
	}
	if d.observer != nil {
		d.observer(m)
	}
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) native.Node {
	n := d.newNode(ElementNode)
	n.Tag = strings.ToLower(tag)
	return n
}

// CreateText creates a detached text node.
func (d *Document) CreateText(text string) native.Node {
	n := d.newNode(TextNode)
	n.Data = text
	return n
}

// CreateComment creates a detached comment node.
func (d *Document) CreateComment(text string) native.Node {
	n := d.newNode(CommentNode)
	n.Data = text
	return n
}

// AppendChild moves child to the end of parent's children.
func (d *Document) AppendChild(parent, child native.Node) {
	d.InsertBefore(parent, child, nil)
}

// InsertBefore moves child into parent before ref. A nil ref appends.
func (d *Document) InsertBefore(parent, child, ref native.Node) {
	p, c := mustNode(parent), mustNode(child)
	if p.Type != ElementNode {
		panic(fmt.Sprintf("dom: cannot insert into %s node", p.Type))
	}
	if c.Contains(p) {
		panic("dom: cannot insert a node into its own subtree")
	}
	c.detach()

	idx := len(p.children)
	if ref != nil {
		r := mustNode(ref)
		if idx = p.IndexOf(r); idx < 0 {
			panic("dom: reference node is not a child of parent")
		}
	}
	p.children = append(p.children, nil)
	copy(p.children[idx+1:], p.children[idx:])
	p.children[idx] = c
	c.parent = p

	d.record(Mutation{Kind: MutationInsert, Target: p, Child: c})
}

// RemoveChild detaches child from parent.
func (d *Document) RemoveChild(parent, child native.Node) {
	p, c := mustNode(parent), mustNode(child)
	if c.parent != p {
		panic("dom: node to remove is not a child of parent")
	}
	c.detach()
	d.record(Mutation{Kind: MutationRemove, Target: p, Child: c})
}

// NextSibling returns the node after n, or nil.
func (d *Document) NextSibling(n native.Node) native.Node {
	c := mustNode(n)
	if c.parent == nil {
		return nil
	}
	i := c.parent.IndexOf(c)
	if i < 0 || i+1 >= len(c.parent.children) {
		return nil
	}
	return c.parent.children[i+1]
}

// SetAttribute sets an attribute value.
func (d *Document) SetAttribute(el native.Node, name, value string) {
	n := mustNode(el)
	if name == "class" {
		n.setClasses(strings.Fields(value))
	} else {
		n.setAttr(name, value)
	}
	d.record(Mutation{Kind: MutationAttribute, Target: n, Name: name})
}

// AddClass adds a class token if absent.
func (d *Document) AddClass(el native.Node, class string) {
	n := mustNode(el)
	if !n.HasClass(class) {
		n.setClasses(append(n.Classes(), class))
	}
	d.record(Mutation{Kind: MutationClass, Target: n, Name: class})
}

// RemoveClass removes a class token.
func (d *Document) RemoveClass(el native.Node, class string) {
	n := mustNode(el)
	classes := n.Classes()
	out := classes[:0]
	for _, c := range classes {
		if c != class {
			out = append(out, c)
		}
	}
	n.setClasses(out)
	d.record(Mutation{Kind: MutationClass, Target: n, Name: class})
}

// ToggleClass adds class when on is true and removes it otherwise.
func (d *Document) ToggleClass(el native.Node, class string, on bool) {
	if on {
		d.AddClass(el, class)
		return
	}
	d.RemoveClass(el, class)
}

// ReplaceClass swaps oldClass for newClass in place. Nothing happens when
// oldClass is absent.
func (d *Document) ReplaceClass(el native.Node, oldClass, newClass string) {
	n := mustNode(el)
	classes := n.Classes()
	for i, c := range classes {
		if c == oldClass {
			classes[i] = newClass
			n.setClasses(classes)
			break
		}
	}
	d.record(Mutation{Kind: MutationClass, Target: n, Name: newClass})
}

// SetProperty assigns an arbitrary property. The "textContent" property
// replaces the children of an element with a single text node.
func (d *Document) SetProperty(el native.Node, name string, value any) {
	n := mustNode(el)
	if name == "textContent" && n.Type == ElementNode {
		for _, c := range n.children {
			c.parent = nil
		}
		n.children = nil
		text := d.newNode(TextNode)
		text.Data = fmt.Sprint(value)
		text.parent = n
		n.children = []*Node{text}
	}
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[name] = value
	d.record(Mutation{Kind: MutationProperty, Target: n, Name: name})
}

// SetText replaces the content of a text or comment node.
func (d *Document) SetText(tn native.Node, text string) {
	n := mustNode(tn)
	n.Data = text
	d.record(Mutation{Kind: MutationText, Target: n})
}

// AddEventListener registers fn for event on el.
func (d *Document) AddEventListener(el native.Node, event string, fn native.Listener) {
	n := mustNode(el)
	if n.listeners == nil {
		n.listeners = make(map[string][]native.Listener)
	}
	n.listeners[event] = append(n.listeners[event], fn)
	d.stats.Listeners++
}

// Dispatch fires event on target and bubbles it through its ancestors.
// It returns the number of listeners invoked.
func (d *Document) Dispatch(target *Node, event string, detail any) int {
	ev := native.Event{Type: event, Target: target, Detail: detail}
	invoked := 0
	for n := target; n != nil; n = n.parent {
		listeners := append([]native.Listener(nil), n.listeners[event]...)
		for _, fn := range listeners {
			fn(ev)
			invoked++
		}
	}
	return invoked
}

func mustNode(n native.Node) *Node {
	node, ok := n.(*Node)
	if !ok || node == nil {
		panic(fmt.Sprintf("dom: foreign native node %T", n))
	}
	return node
}
