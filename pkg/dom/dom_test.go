package dom

import (
	"bytes"
	"testing"

	"github.com/vango-dev/incr/pkg/native"
)

func el(d *Document, tag string) *Node {
	return d.CreateElement(tag).(*Node)
}

func TestInsertBefore(t *testing.T) {
	d := NewDocument()
	p := el(d, "ul")
	a, b, c := el(d, "a"), el(d, "b"), el(d, "c")

	d.AppendChild(p, a)
	d.AppendChild(p, c)
	d.InsertBefore(p, b, c)

	if got := p.InnerHTML(); got != "<a></a><b></b><c></c>" {
		t.Fatalf("html = %q", got)
	}

	// Moving an attached node detaches it first.
	d.InsertBefore(p, c, a)
	if got := p.InnerHTML(); got != "<c></c><a></a><b></b>" {
		t.Errorf("html after move = %q", got)
	}
	if got := d.Stats().Inserted; got != 4 {
		t.Errorf("inserted = %d, want 4", got)
	}
}

func TestInsertBefore_Panics(t *testing.T) {
	tests := []struct {
		name string
		fn   func(d *Document)
	}{
		{"into text", func(d *Document) { d.AppendChild(d.CreateText("x"), el(d, "a")) }},
		{"into own subtree", func(d *Document) {
			a, b := el(d, "a"), el(d, "b")
			d.AppendChild(a, b)
			d.AppendChild(b, a)
		}},
		{"foreign ref", func(d *Document) { d.InsertBefore(el(d, "a"), el(d, "b"), el(d, "c")) }},
		{"foreign node", func(d *Document) { d.AppendChild(el(d, "a"), "not a node") }},
		{"remove non-child", func(d *Document) { d.RemoveChild(el(d, "a"), el(d, "b")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn(NewDocument())
		})
	}
}

func TestNextSibling(t *testing.T) {
	d := NewDocument()
	p := el(d, "p")
	a, b := el(d, "a"), el(d, "b")
	d.AppendChild(p, a)
	d.AppendChild(p, b)

	if got := d.NextSibling(a); got != native.Node(b) {
		t.Errorf("NextSibling(a) = %v, want b", got)
	}
	if got := d.NextSibling(b); got != nil {
		t.Errorf("NextSibling(last) = %v, want nil", got)
	}
	if got := d.NextSibling(el(d, "x")); got != nil {
		t.Errorf("NextSibling(detached) = %v, want nil", got)
	}
}

func TestClasses(t *testing.T) {
	d := NewDocument()
	n := el(d, "div")

	d.AddClass(n, "a")
	d.AddClass(n, "b")
	d.AddClass(n, "a")
	if got, _ := n.Attr("class"); got != "a b" {
		t.Fatalf("class = %q, want %q", got, "a b")
	}

	d.ReplaceClass(n, "a", "c")
	if got, _ := n.Attr("class"); got != "c b" {
		t.Errorf("class after replace = %q", got)
	}

	d.ToggleClass(n, "b", false)
	d.ToggleClass(n, "d", true)
	if got, _ := n.Attr("class"); got != "c d" {
		t.Errorf("class after toggle = %q", got)
	}

	d.RemoveClass(n, "c")
	d.RemoveClass(n, "d")
	if _, ok := n.Attr("class"); ok {
		t.Error("empty class list should drop the attribute")
	}
	if got := d.Stats().Classes; got != 8 {
		t.Errorf("class mutations = %d, want 8", got)
	}
}

func TestSetProperty_TextContent(t *testing.T) {
	d := NewDocument()
	p := el(d, "p")
	old := el(d, "b")
	d.AppendChild(p, old)

	d.SetProperty(p, "textContent", 42)
	if got := p.InnerHTML(); got != "42" {
		t.Errorf("html = %q, want 42", got)
	}
	if old.Parent() != nil {
		t.Error("replaced child still has a parent")
	}
	if v, _ := p.Property("textContent"); v != 42 {
		t.Errorf("property = %v", v)
	}
}

func TestDispatch_Bubbles(t *testing.T) {
	d := NewDocument()
	outer, inner := el(d, "div"), el(d, "button")
	d.AppendChild(outer, inner)

	var got []string
	d.AddEventListener(outer, "click", func(ev native.Event) {
		got = append(got, "outer:"+ev.Target.(*Node).Tag)
	})
	d.AddEventListener(inner, "click", func(ev native.Event) {
		got = append(got, "inner:"+ev.Detail.(string))
	})

	if n := d.Dispatch(inner, "click", "x"); n != 2 {
		t.Errorf("invoked = %d, want 2", n)
	}
	if len(got) != 2 || got[0] != "inner:x" || got[1] != "outer:button" {
		t.Errorf("order = %v", got)
	}
	if n := d.Dispatch(inner, "keydown", nil); n != 0 {
		t.Errorf("unrelated event invoked %d listeners", n)
	}
}

func TestObserve(t *testing.T) {
	d := NewDocument()
	var kinds []MutationKind
	d.Observe(func(m Mutation) { kinds = append(kinds, m.Kind) })

	p := el(d, "p")
	txt := d.CreateText("a")
	d.AppendChild(p, txt)
	d.SetText(txt, "b")
	d.SetAttribute(p, "id", "x")
	d.RemoveChild(p, txt)

	want := []MutationKind{MutationInsert, MutationText, MutationAttribute, MutationRemove}
	if len(kinds) != len(want) {
		t.Fatalf("observed %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("mutation %d = %s, want %s", i, kinds[i], want[i])
		}
	}

	d.Observe(nil)
	d.SetText(txt, "c")
	if len(kinds) != len(want) {
		t.Error("observer still called after removal")
	}
	if got := d.Stats().Mutations(); got != 5 {
		t.Errorf("mutations = %d, want 5", got)
	}
}

func TestSerialize(t *testing.T) {
	d := NewDocument()
	div := el(d, "DIV")
	d.SetAttribute(div, "id", "a&b")
	d.SetAttribute(div, "hidden", "")
	d.AppendChild(div, d.CreateText("1 < 2"))
	d.AppendChild(div, d.CreateComment("x-->y"))
	br := el(d, "br")
	d.AppendChild(div, br)

	want := `<div id="a&amp;b" hidden>1 &lt; 2<!--x--&gt;y--><br></div>`
	if got := div.OuterHTML(); got != want {
		t.Errorf("OuterHTML() = %q\nwant %q", got, want)
	}

	var buf bytes.Buffer
	if err := Write(&buf, div, Options{Inner: true, NodeIDs: true}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if got := buf.String(); got != `1 &lt; 2<!--x--&gt;y--><br data-nid="4">` {
		t.Errorf("inner with ids = %q", got)
	}
}

func TestSerialize_Indent(t *testing.T) {
	d := NewDocument()
	ul := el(d, "ul")
	li := el(d, "li")
	d.AppendChild(ul, li)
	d.AppendChild(li, d.CreateText("a"))
	d.AppendChild(ul, el(d, "li"))

	var buf bytes.Buffer
	if err := Write(&buf, ul, Options{Indent: "  "}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	want := "<ul>\n  <li>\n    a\n  </li>\n  <li></li>\n</ul>"
	if got := buf.String(); got != want {
		t.Errorf("indented = %q\nwant %q", got, want)
	}
}

func TestTextContentAndFind(t *testing.T) {
	d := NewDocument()
	root := el(d, "div")
	span := el(d, "span")
	d.AppendChild(root, d.CreateText("a"))
	d.AppendChild(root, span)
	d.AppendChild(span, d.CreateText("b"))

	if got := root.TextContent(); got != "ab" {
		t.Errorf("TextContent() = %q", got)
	}
	if got := root.FindByID(span.ID()); got != span {
		t.Errorf("FindByID() = %v", got)
	}
	if root.FindByID(999) != nil {
		t.Error("FindByID() found a missing id")
	}
	if !root.Contains(span.FirstChild()) || span.Contains(root) {
		t.Error("Contains() wrong")
	}
}
