package engine_test

import (
	"testing"

	"github.com/vango-dev/incr/pkg/dom"
	"github.com/vango-dev/incr/pkg/engine"
	"github.com/vango-dev/incr/pkg/enginetest"
	"github.com/vango-dev/incr/pkg/native"
)

type card struct{}

func (c *card) Render(r *engine.Renderer, flags engine.Flags) {
	if flags.Has(engine.Create) {
		r.ElementStart(0, "div", "class", "card")
		r.Slot(1)
		r.Slot(2)
		r.ElementEnd()
	}
	if flags.Has(engine.Update) {
		r.SlotRefresh(1, "header")
		r.SlotRefresh(2, "body")
	}
}

func cardPage(r *engine.Renderer, flags engine.Flags, _ any) {
	if flags.Has(engine.Create) {
		r.ComponentStart(0, "x-card", func(native.Node, func(), engine.ContentAPI) any { return &card{} })
		r.SlotableStart(1, "body", nil)
		r.Text(2, "Body")
		r.SlotableEnd()
		r.SlotableStart(3, "header", nil)
		r.Text(4, "Header")
		r.SlotableEnd()
		r.ComponentEnd(0)
	}
	if flags.Has(engine.Update) {
		r.ComponentRefresh(0)
	}
}

func TestProjection_SlotOrderGovernsOutput(t *testing.T) {
	h := enginetest.New(t, cardPage, nil)
	h.ExpectHTML(t, `<x-card><div class="card"><!--slot 1-->Header<!--slot 2-->Body</div></x-card>`)

	if n := h.CountMutations(func() { h.Refresh(t) }); n != 0 {
		t.Errorf("unchanged refresh caused %d mutations, want 0", n)
	}
}

type panel struct{}

func (p *panel) Render(r *engine.Renderer, flags engine.Flags) {
	if flags.Has(engine.Create) {
		r.ElementStart(0, "section")
		r.Slot(1)
		r.ElementEnd()
	}
	if flags.Has(engine.Update) {
		r.SlotRefresh(1, "")
	}
}

func panelPage(r *engine.Renderer, flags engine.Flags, ctx any) {
	if flags.Has(engine.Create) {
		r.ComponentStart(0, "x-panel", func(native.Node, func(), engine.ContentAPI) any { return &panel{} })
		r.Text(1, "Hi ")
		r.ElementStart(2, "b")
		r.Text(3, "")
		r.ElementEnd()
		r.SlotableStart(4, "aside", nil)
		r.Text(5, "hidden")
		r.SlotableEnd()
		r.ComponentEnd(0)
	}
	if flags.Has(engine.Update) {
		r.BindText(3, ctx)
		r.ComponentRefresh(0)
	}
}

func TestProjection_DefaultContent(t *testing.T) {
	h := enginetest.New(t, panelPage, "there")
	h.ExpectHTML(t, `<x-panel><section><!--slot 1-->Hi <b>there</b></section></x-panel>`)

	h.RefreshWith(t, "you")
	h.ExpectHTML(t, `<x-panel><section><!--slot 1-->Hi <b>you</b></section></x-panel>`)

	host, _ := h.Renderer.Root().Node(0)
	def := host.Children()[0]
	if !def.IsDefaultContent() || def.Kind() != engine.KindSlotable {
		t.Fatalf("first host child = %s, want default slotable", def.Kind())
	}
	slot, _ := host.ComponentView().Node(1)
	if def.ProjectionParent() != slot {
		t.Error("default content not attached to the slot")
	}
}

type switcher struct {
	content engine.ContentAPI
	toB     bool
}

func (c *switcher) Render(r *engine.Renderer, flags engine.Flags) {
	if flags.Has(engine.Create) {
		r.ElementStart(0, "header")
		r.Slot(1)
		r.ElementEnd()
		r.ElementStart(2, "footer")
		r.Slot(3)
		r.ElementEnd()
	}
	if flags.Has(engine.Update) {
		s := c.content.Slotables("x")[0]
		if c.toB {
			r.SlotRefreshImperative(1, nil)
			r.SlotRefreshImperative(3, s)
		} else {
			r.SlotRefreshImperative(3, nil)
			r.SlotRefreshImperative(1, s)
		}
	}
}

func switcherPage(r *engine.Renderer, flags engine.Flags, ctx any) {
	if flags.Has(engine.Create) {
		r.ComponentStart(0, "x-switch", func(_ native.Node, _ func(), content engine.ContentAPI) any {
			return &switcher{content: content}
		})
		r.SlotableStart(1, "x", nil)
		r.ElementStart(2, "b")
		r.Text(3, "moved")
		r.ElementEnd()
		r.SlotableEnd()
		r.ComponentEnd(0)
	}
	if flags.Has(engine.Update) {
		r.Component(0).(*switcher).toB = ctx.(bool)
		r.ComponentRefresh(0)
	}
}

func TestProjection_Relocation(t *testing.T) {
	h := enginetest.New(t, switcherPage, false)
	h.ExpectHTML(t, `<x-switch><header><!--slot 1--><b>moved</b></header><footer><!--slot 3--></footer></x-switch>`)

	root := h.Renderer.Root()
	host, _ := root.Node(0)
	x, _ := root.Node(1)
	b, _ := root.Node(2)
	slotA, _ := host.ComponentView().Node(1)
	slotB, _ := host.ComponentView().Node(3)

	if x.ProjectionParent() != slotA {
		t.Fatal("slotable not projected into slot A")
	}

	h.RefreshWith(t, true)
	h.ExpectHTML(t, `<x-switch><header><!--slot 1--></header><footer><!--slot 3--><b>moved</b></footer></x-switch>`)

	if x.ProjectionParent() != slotB {
		t.Error("projection parent not updated to slot B")
	}
	anchorB := slotB.Native().(*dom.Node)
	footer := anchorB.Parent()
	bEl := b.Native().(*dom.Node)
	if footer.IndexOf(bEl) != footer.IndexOf(anchorB)+1 {
		t.Error("relocated content does not follow slot B's anchor")
	}
	if len(slotA.Children()) != 0 {
		t.Errorf("slot A still lists %d slotables", len(slotA.Children()))
	}

	h.RefreshWith(t, false)
	h.ExpectHTML(t, `<x-switch><header><!--slot 1--><b>moved</b></header><footer><!--slot 3--></footer></x-switch>`)
}

type picker struct {
	content engine.ContentAPI
}

func (p *picker) Render(r *engine.Renderer, flags engine.Flags) {
	if flags.Has(engine.Create) {
		r.ElementStart(0, "ol")
		r.Slot(1)
		r.ElementEnd()
	}
	if flags.Has(engine.Update) {
		r.SlotRefresh(1, "item")
	}
}

type pickCtx struct {
	ids []int
}

func pickerPage(r *engine.Renderer, flags engine.Flags, ctx any) {
	c := ctx.(pickCtx)
	if flags.Has(engine.Create) {
		r.ComponentStart(0, "x-list", func(_ native.Node, _ func(), content engine.ContentAPI) any {
			return &picker{content: content}
		})
		r.Container(1)
		r.ComponentEnd(0)
	}
	if flags.Has(engine.Update) {
		r.ContainerRefreshStart(1)
		for _, id := range c.ids {
			r.View(1, id, pickerItem, id)
		}
		r.ContainerRefreshEnd(1)
		r.ComponentRefresh(0)
	}
}

func pickerItem(r *engine.Renderer, flags engine.Flags, ctx any) {
	if flags.Has(engine.Create) {
		r.SlotableStart(0, "item", nil)
		r.ElementStart(1, "li")
		r.Text(2, "")
		r.ElementEnd()
		r.SlotableEnd()
	}
	if flags.Has(engine.Update) {
		r.BindText(2, ctx)
	}
}

func TestProjection_SlotablesInsideContainers(t *testing.T) {
	h := enginetest.New(t, pickerPage, pickCtx{ids: []int{1, 2}})
	h.ExpectHTML(t, `<x-list><ol><!--slot 1--><li>1</li><li>2</li></ol></x-list>`)

	h.RefreshWith(t, pickCtx{ids: []int{2}})
	h.ExpectHTML(t, `<x-list><ol><!--slot 1--><li>2</li></ol></x-list>`)

	h.RefreshWith(t, pickCtx{ids: []int{0, 2, 3}})
	h.ExpectHTML(t, `<x-list><ol><!--slot 1--><li>0</li><li>2</li><li>3</li></ol></x-list>`)

	host, _ := h.Renderer.Root().Node(0)
	if got := len(host.Instance().(*picker).content.Slotables("item")); got != 3 {
		t.Errorf("Slotables(item) = %d, want 3", got)
	}
}

type chooser struct {
	content engine.ContentAPI
	pick    []int
}

func (c *chooser) Render(r *engine.Renderer, flags engine.Flags) {
	if flags.Has(engine.Create) {
		r.Slot(0)
		r.Slot(1)
	}
	if flags.Has(engine.Update) {
		items := c.content.Slotables("opt")
		for slot, i := range c.pick {
			if i < 0 {
				r.SlotRefreshImperative(slot, nil)
				continue
			}
			r.SlotRefreshImperative(slot, items[i])
		}
	}
}

type opt struct {
	node *engine.VNode
}

func chooserPage(r *engine.Renderer, flags engine.Flags, ctx any) {
	if flags.Has(engine.Create) {
		r.ComponentStart(0, "x-choose", func(_ native.Node, _ func(), content engine.ContentAPI) any {
			return &chooser{content: content}
		})
		for i, label := range []string{"a", "b", "c"} {
			r.SlotableStart(1+2*i, "opt", func(s *engine.VNode) any { return &opt{node: s} })
			r.Text(2+2*i, label)
			r.SlotableEnd()
		}
		r.ComponentEnd(0)
	}
	if flags.Has(engine.Update) {
		r.Component(0).(*chooser).pick = ctx.([]int)
		r.ComponentRefresh(0)
	}
}

func TestProjection_Imperative(t *testing.T) {
	tests := []struct {
		name string
		pick []int
		want string
	}{
		{"first and third", []int{0, 2}, "<!--slot 0-->a<!--slot 1-->c"},
		{"swapped", []int{2, 0}, "<!--slot 0-->c<!--slot 1-->a"},
		{"cleared", []int{-1, 1}, "<!--slot 0--><!--slot 1-->b"},
	}

	h := enginetest.New(t, chooserPage, []int{-1, -1})
	h.ExpectHTML(t, "<x-choose><!--slot 0--><!--slot 1--></x-choose>")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h.RefreshWith(t, tt.pick)
			h.ExpectHTML(t, "<x-choose>"+tt.want+"</x-choose>")
		})
	}

	s, _ := h.Renderer.Root().Node(1)
	if o, ok := s.Instance().(*opt); !ok || o.node != s {
		t.Errorf("slotable instance = %v, want opt bound to its node", s.Instance())
	}
}
