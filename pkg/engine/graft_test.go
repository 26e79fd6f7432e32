package engine

import (
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/incr/internal/errors"
	"github.com/vango-dev/incr/pkg/dom"
	"github.com/vango-dev/incr/pkg/native"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func render(t *testing.T, tmpl Template, ctx any) (*Renderer, *dom.Document, *dom.Node) {
	t.Helper()
	doc := dom.NewDocument()
	host := doc.CreateElement("body").(*dom.Node)
	r, err := Render(doc, host, tmpl, ctx, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return r, doc, host
}

func oneView(r *Renderer, flags Flags, _ any) {
	if flags.Has(Create) {
		r.Container(0)
	}
	if flags.Has(Update) {
		r.ContainerRefreshStart(0)
		r.View(0, 0, func(r *Renderer, flags Flags, _ any) {
			if flags.Has(Create) {
				r.ElementStart(0, "p")
				r.Text(1, "x")
				r.ElementEnd()
				r.Text(2, "y")
			}
		}, nil)
		r.ContainerRefreshEnd(0)
	}
}

func TestInsertGroup_Idempotent(t *testing.T) {
	r, doc, host := render(t, oneView, nil)
	c := r.root.nodes[0]
	view := c.children[0]

	if view.renderParent != native.Node(host) {
		t.Fatalf("view renderParent = %v, want host", view.renderParent)
	}

	doc.ResetStats()
	r.insertGroup(host, c.native, view)
	if n := doc.Stats().Mutations(); n != 0 {
		t.Errorf("re-inserting a grafted group caused %d mutations, want 0", n)
	}
	if got := host.InnerHTML(); got != "<p>x</p>y<!--container 0-->" {
		t.Errorf("html = %q", got)
	}
}

func TestRemoveGroup_Idempotent(t *testing.T) {
	r, doc, host := render(t, oneView, nil)
	view := r.root.nodes[0].children[0]

	r.removeGroup(view)
	if got := host.InnerHTML(); got != "<!--container 0-->" {
		t.Fatalf("html after remove = %q", got)
	}
	if view.renderParent != nil {
		t.Error("removed group still records a render parent")
	}

	doc.ResetStats()
	r.removeGroup(view)
	if n := doc.Stats().Mutations(); n != 0 {
		t.Errorf("second removal caused %d mutations, want 0", n)
	}

	r.insertGroup(host, r.root.nodes[0].native, view)
	if got := host.InnerHTML(); got != "<p>x</p>y<!--container 0-->" {
		t.Errorf("html after re-insert = %q", got)
	}
}

func TestFindRenderParent(t *testing.T) {
	r, _, host := render(t, oneView, nil)
	view := r.root.nodes[0].children[0]
	p := view.embedded.nodes[0]

	if got := r.findRenderParent(view.embedded.nodes[1]); got != native.Node(p.native) {
		t.Errorf("text inside element resolved to %v", got)
	}
	if got := r.findRenderParent(view.embedded.nodes[2]); got != native.Node(host) {
		t.Errorf("top-level text resolved to %v, want host", got)
	}

	loose := &VNode{kind: KindSlotable, parent: view}
	child := &VNode{kind: KindText, parent: loose}
	if got := r.findRenderParent(child); got != nil {
		t.Errorf("content of an unprojected slotable resolved to %v, want nil", got)
	}
}

type relocator struct {
	content ContentAPI
	toB     bool
}

func (c *relocator) Render(r *Renderer, flags Flags) {
	if flags.Has(Create) {
		r.Slot(0)
		r.Slot(1)
	}
	if flags.Has(Update) {
		s := c.content.Slotables("x")[0]
		if c.toB {
			r.SlotRefreshImperative(1, s)
		} else {
			r.SlotRefreshImperative(0, s)
		}
	}
}

func relocatorPage(r *Renderer, flags Flags, ctx any) {
	if flags.Has(Create) {
		r.ComponentStart(0, "x-relocate", func(_ native.Node, _ func(), content ContentAPI) any {
			return &relocator{content: content}
		})
		r.SlotableStart(1, "x", nil)
		r.Text(2, "payload")
		r.SlotableEnd()
		r.ComponentEnd(0)
	}
	if flags.Has(Update) {
		r.Component(0).(*relocator).toB = ctx.(bool)
		r.ComponentRefresh(0)
	}
}

func TestDetachSlotable_DivergedBackReference(t *testing.T) {
	r, _, _ := render(t, relocatorPage, false)

	host := r.root.nodes[0]
	slotA := host.componentView.nodes[0]
	if len(slotA.children) != 1 {
		t.Fatalf("slot A holds %d slotables, want 1", len(slotA.children))
	}
	// Break the slot's child list while the slotable still points at it.
	slotA.children = nil

	err := r.RefreshWith(true)
	if !errors.IsCode(err, "E003") {
		t.Fatalf("RefreshWith() error = %v, want E003", err)
	}
}
