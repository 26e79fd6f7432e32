package demo

import (
	"github.com/vango-dev/incr/pkg/engine"
	"github.com/vango-dev/incr/pkg/native"
)

// Card projects its "header" and "body" slotables into fixed slots,
// whatever order they are authored in.
type Card struct{}

// NewCard is the ComponentFactory of Card.
func NewCard(native.Node, func(), engine.ContentAPI) any {
	return &Card{}
}

// Render implements engine.Renderable.
func (c *Card) Render(r *engine.Renderer, flags engine.Flags) {
	if flags.Has(engine.Create) {
		r.ElementStart(0, "header")
		r.Slot(1)
		r.ElementEnd()
		r.ElementStart(2, "div", "class", "card-body")
		r.Slot(3)
		r.ElementEnd()
	}
	if flags.Has(engine.Update) {
		r.SlotRefresh(1, "header")
		r.SlotRefresh(3, "body")
	}
}

// CardState is the state of the card demo.
type CardState struct {
	Title string
	Body  string
}

func cardDemo() *Demo {
	return &Demo{
		Name:        "card",
		Description: "A component projecting named slotables",
		Template:    card,
		NewState:    func() any { return &CardState{Title: "Card", Body: "Body text"} },
		Step: func(state any) {
			c := state.(*CardState)
			c.Body += "."
		},
	}
}

func card(r *engine.Renderer, flags engine.Flags, ctx any) {
	c := ctx.(*CardState)
	if flags.Has(engine.Create) {
		r.ComponentStart(0, "x-card", NewCard, "class", "card")
		r.SlotableStart(1, "body", nil)
		r.Text(2, "")
		r.SlotableEnd()
		r.SlotableStart(3, "header", nil)
		r.ElementStart(4, "h2")
		r.Text(5, "")
		r.ElementEnd()
		r.SlotableEnd()
		r.ComponentEnd(0)
	}
	if flags.Has(engine.Update) {
		r.BindText(2, c.Body)
		r.BindText(5, c.Title)
		r.ComponentRefresh(0)
	}
}

// Tab is the instance behind a "tab" slotable.
type Tab struct {
	data *TabData
}

// Title returns the tab's button label.
func (t *Tab) Title() string { return t.data.Title }

// TabData is one authored tab.
type TabData struct {
	Title string
	Body  string
}

// TabsState is the state of the tabs demo.
type TabsState struct {
	Tabs     []*TabData
	Selected int
}

// TabSet renders one button per "tab" slotable and projects the selected
// tab into its body slot.
type TabSet struct {
	state   *TabsState
	content engine.ContentAPI
}

// NewTabSet returns a ComponentFactory bound to state.
func NewTabSet(state *TabsState) engine.ComponentFactory {
	return func(_ native.Node, _ func(), content engine.ContentAPI) any {
		return &TabSet{state: state, content: content}
	}
}

type tabButton struct {
	set   *TabSet
	index int
	title string
}

// Render implements engine.Renderable.
func (ts *TabSet) Render(r *engine.Renderer, flags engine.Flags) {
	if flags.Has(engine.Create) {
		r.ElementStart(0, "nav")
		r.Container(1)
		r.ElementEnd()
		r.ElementStart(2, "section", "class", "tab-body")
		r.Slot(3)
		r.ElementEnd()
	}
	if flags.Has(engine.Update) {
		tabs := ts.content.Slotables("tab")

		r.ContainerRefreshStart(1)
		for i, s := range tabs {
			r.View(1, i, tabButtonTemplate, tabButton{set: ts, index: i, title: s.Instance().(*Tab).Title()})
		}
		r.ContainerRefreshEnd(1)

		if len(tabs) == 0 {
			r.SlotRefreshImperative(3, nil)
			return
		}
		sel := ts.state.Selected
		if sel < 0 || sel >= len(tabs) {
			sel = 0
		}
		r.SlotRefreshImperative(3, tabs[sel])
	}
}

func tabButtonTemplate(r *engine.Renderer, flags engine.Flags, ctx any) {
	b := ctx.(tabButton)
	if flags.Has(engine.Create) {
		r.ElementStart(0, "button", "type", "button")
		r.Text(1, "")
		r.ElementEnd()
		r.Listener(0, 0, "click", nil)
	}
	if flags.Has(engine.Update) {
		r.BindText(1, b.title)
		r.BindClass(0, 1, "active", b.set.state.Selected == b.index)
		refresh := r.CurrentView().Refresh
		r.ListenerRefresh(0, 0, func(native.Event) {
			b.set.state.Selected = b.index
			refresh()
		})
	}
}

func tabsDemo() *Demo {
	return &Demo{
		Name:        "tabs",
		Description: "Slotables rendered by a container, projected imperatively",
		Template:    tabs,
		NewState: func() any {
			return &TabsState{Tabs: []*TabData{
				{Title: "One", Body: "First tab"},
				{Title: "Two", Body: "Second tab"},
				{Title: "Three", Body: "Third tab"},
			}}
		},
		Step: func(state any) {
			s := state.(*TabsState)
			s.Selected = (s.Selected + 1) % len(s.Tabs)
		},
	}
}

func tabs(r *engine.Renderer, flags engine.Flags, ctx any) {
	s := ctx.(*TabsState)
	if flags.Has(engine.Create) {
		r.ComponentStart(0, "x-tabs", NewTabSet(s))
		r.Container(1)
		r.ComponentEnd(0)
	}
	if flags.Has(engine.Update) {
		r.ContainerRefreshStart(1)
		for i, t := range s.Tabs {
			r.View(1, i, tabPane, t)
		}
		r.ContainerRefreshEnd(1)
		r.ComponentRefresh(0)
	}
}

func tabPane(r *engine.Renderer, flags engine.Flags, ctx any) {
	t := ctx.(*TabData)
	if flags.Has(engine.Create) {
		r.SlotableStart(0, "tab", func(*engine.VNode) any { return &Tab{data: t} })
		r.ElementStart(1, "p")
		r.Text(2, "")
		r.ElementEnd()
		r.SlotableEnd()
	}
	if flags.Has(engine.Update) {
		r.BindText(2, t.Body)
	}
}

// Tooltip is a directive that mirrors Text into the host's title and
// counts the passes it has seen.
type Tooltip struct {
	Text   string
	Passes int
}

// NewTooltip is the DirectiveFactory of Tooltip.
func NewTooltip(native.Node, func()) any {
	return &Tooltip{}
}

// Host implements engine.HostBinder.
func (t *Tooltip) Host(r *engine.Renderer, flags engine.Flags) {
	if flags.Has(engine.Update) {
		r.BindAttribute(0, 1, "title", t.Text)
		r.BindClass(0, 2, "has-tooltip", t.Text != "")
	}
}

// Refresh implements engine.Refresher.
func (t *Tooltip) Refresh() {
	t.Passes++
}

// Hint is the state of the tooltip demo.
type Hint struct {
	Text string
}

var hints = []string{"Saves the document", "", "Saved"}

func tooltipDemo() *Demo {
	return &Demo{
		Name:        "tooltip",
		Description: "A directive binding its host element",
		Template:    tooltip,
		NewState:    func() any { return &Hint{Text: hints[0]} },
		Step: func(state any) {
			h := state.(*Hint)
			for i, text := range hints {
				if text == h.Text {
					h.Text = hints[(i+1)%len(hints)]
					return
				}
			}
		},
	}
}

func tooltip(r *engine.Renderer, flags engine.Flags, ctx any) {
	h := ctx.(*Hint)
	if flags.Has(engine.Create) {
		r.ElementStart(0, "button", "type", "button")
		r.Text(1, "Save")
		r.ElementEnd()
		r.Directive(0, 0, NewTooltip)
	}
	if flags.Has(engine.Update) {
		r.DirectiveInstance(0, 0).(*Tooltip).Text = h.Text
		r.DirectiveRefresh(0, 0)
	}
}
