package demo

import (
	"testing"

	"github.com/vango-dev/incr/internal/errors"
	"github.com/vango-dev/incr/pkg/dom"
	"github.com/vango-dev/incr/pkg/enginetest"
)

func TestEveryDemoRendersAndSteps(t *testing.T) {
	for _, name := range List() {
		t.Run(name, func(t *testing.T) {
			d, err := Get(name)
			if err != nil {
				t.Fatalf("Get(%q) failed: %v", name, err)
			}
			state := d.NewState()
			h := enginetest.New(t, d.Template, state)
			if h.HTML() == "" {
				t.Fatal("first pass rendered nothing")
			}
			for i := 0; i < 4; i++ {
				d.Step(state)
				h.Refresh(t)
			}
		})
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("nope")
	if !errors.IsCode(err, "E021") {
		t.Fatalf("expected E021, got %v", err)
	}
	if ee := err.(*errors.EngineError); ee.Suggestion == "" {
		t.Error("expected a suggestion listing the demos")
	}
}

func TestListSorted(t *testing.T) {
	names := List()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("List not sorted: %v", names)
		}
	}
	if len(names) != len(demos) {
		t.Errorf("List returned %d names, want %d", len(names), len(demos))
	}
}

func TestHello(t *testing.T) {
	d, _ := Get("hello")
	state := d.NewState()
	h := enginetest.New(t, d.Template, state)
	h.ExpectHTML(t, "Hello, World")

	d.Step(state)
	h.Refresh(t)
	h.ExpectHTML(t, "Hello, New World")
}

func TestCounterClick(t *testing.T) {
	h := enginetest.New(t, counter, &Counter{})
	btn := h.MustFind(t, "button")

	h.Click(t, btn)
	h.Click(t, btn)
	h.ExpectContains(t, "Clicked 2 times")
}

func TestConditionalClick(t *testing.T) {
	h := enginetest.New(t, conditional, &Toggle{})
	h.ExpectNotContains(t, "<p>")

	h.Click(t, h.MustFind(t, "button"))
	h.ExpectHTML(t, `<button type="button">Toggle</button><p>Shown conditionally</p><!--container 2-->`)

	h.Click(t, h.MustFind(t, "button"))
	h.ExpectHTML(t, `<button type="button">Toggle</button><!--container 2-->`)
}

func TestTodos(t *testing.T) {
	state := todosDemo().NewState().(*Todos)
	h := enginetest.New(t, todos, state)
	h.ExpectContains(t, `<ul class="todos"><li>Write the engine</li><li>Test the engine</li><!--container 1--></ul>`)

	buttons := elements(h.Host, "button")
	if len(buttons) != 2 {
		t.Fatalf("expected 2 buttons, got %d", len(buttons))
	}
	add, clear := buttons[0], buttons[1]

	h.Click(t, add)
	items := elements(h.Host, "li")
	if len(items) != 3 {
		t.Fatalf("expected 3 items after Add, got %d", len(items))
	}

	h.Click(t, items[0])
	if !items[0].HasClass("done") {
		t.Error("expected first item marked done")
	}

	h.Click(t, clear)
	h.ExpectContains(t, `<ul class="todos"><li>Test the engine</li><li>Task 2</li><!--container 1--></ul>`)

	// Surviving items keep their native nodes.
	after := elements(h.Host, "li")
	if after[0] != items[1] || after[1] != items[2] {
		t.Error("expected surviving items to be reused")
	}
}

func TestCardProjectsInSlotOrder(t *testing.T) {
	d, _ := Get("card")
	state := d.NewState()
	h := enginetest.New(t, d.Template, state)
	h.ExpectHTML(t, `<x-card class="card"><header><!--slot 1--><h2>Card</h2></header>`+
		`<div class="card-body"><!--slot 3-->Body text</div></x-card>`)

	d.Step(state)
	h.Refresh(t)
	h.ExpectContains(t, `<!--slot 3-->Body text.</div>`)
}

func TestTabs(t *testing.T) {
	d, _ := Get("tabs")
	state := d.NewState().(*TabsState)
	h := enginetest.New(t, d.Template, state)

	buttons := elements(h.MustFind(t, "nav"), "button")
	if len(buttons) != 3 {
		t.Fatalf("expected 3 tab buttons, got %d", len(buttons))
	}
	if !buttons[0].HasClass("active") {
		t.Error("expected first tab active")
	}
	h.ExpectContains(t, `<section class="tab-body"><!--slot 3--><p>First tab</p></section>`)

	h.Click(t, buttons[1])
	if state.Selected != 1 {
		t.Fatalf("expected Selected 1, got %d", state.Selected)
	}
	if buttons[0].HasClass("active") || !buttons[1].HasClass("active") {
		t.Error("expected active class to follow the selection")
	}
	h.ExpectContains(t, `<section class="tab-body"><!--slot 3--><p>Second tab</p></section>`)
	h.ExpectNotContains(t, "First tab")

	d.Step(state)
	h.Refresh(t)
	h.ExpectContains(t, `<p>Third tab</p>`)
}

func TestTooltip(t *testing.T) {
	d, _ := Get("tooltip")
	state := d.NewState()
	h := enginetest.New(t, d.Template, state)

	btn := h.MustFind(t, "button")
	if title, _ := btn.Attr("title"); title != "Saves the document" {
		t.Errorf("title = %q", title)
	}
	if !btn.HasClass("has-tooltip") {
		t.Error("expected has-tooltip class")
	}

	d.Step(state)
	h.Refresh(t)
	if btn.HasClass("has-tooltip") {
		t.Error("expected has-tooltip removed for an empty hint")
	}

	d.Step(state)
	n := h.CountMutations(func() { h.Refresh(t) })
	if n != 2 {
		t.Errorf("expected 2 mutations (title, class), got %d", n)
	}
}

func elements(n *dom.Node, tag string) []*dom.Node {
	var out []*dom.Node
	for _, c := range n.Children() {
		if c.Type == dom.ElementNode && c.Tag == tag {
			out = append(out, c)
		}
		out = append(out, elements(c, tag)...)
	}
	return out
}
