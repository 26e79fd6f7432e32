package demo

import (
	"github.com/vango-dev/incr/pkg/engine"
	"github.com/vango-dev/incr/pkg/native"
)

// Greeting is the state of the hello demo.
type Greeting struct {
	Name string
}

var greetings = []string{"World", "New World", "Gophers"}

func helloDemo() *Demo {
	return &Demo{
		Name:        "hello",
		Description: "A single bound text node",
		Template:    hello,
		NewState:    func() any { return &Greeting{Name: greetings[0]} },
		Step: func(state any) {
			g := state.(*Greeting)
			for i, name := range greetings {
				if name == g.Name {
					g.Name = greetings[(i+1)%len(greetings)]
					return
				}
			}
			g.Name = greetings[0]
		},
	}
}

func hello(r *engine.Renderer, flags engine.Flags, ctx any) {
	g := ctx.(*Greeting)
	if flags.Has(engine.Create) {
		r.Text(0, "Hello, ")
		r.Text(1, "")
	}
	if flags.Has(engine.Update) {
		r.BindText(1, g.Name)
	}
}

// Counter is the state of the counter demo.
type Counter struct {
	Count int
}

func counterDemo() *Demo {
	return &Demo{
		Name:        "counter",
		Description: "A button whose listener refreshes the root",
		Template:    counter,
		NewState:    func() any { return &Counter{} },
		Step:        func(state any) { state.(*Counter).Count++ },
	}
}

func counter(r *engine.Renderer, flags engine.Flags, ctx any) {
	c := ctx.(*Counter)
	if flags.Has(engine.Create) {
		r.ElementStart(0, "button", "type", "button")
		r.Text(1, "Clicked ")
		r.Text(2, "")
		r.Text(3, " times")
		r.ElementEnd()
		refresh := r.CurrentView().Refresh
		r.Listener(0, 0, "click", func(native.Event) {
			c.Count++
			refresh()
		})
	}
	if flags.Has(engine.Update) {
		r.BindText(2, c.Count)
	}
}

// Toggle is the state of the conditional demo.
type Toggle struct {
	Shown bool
}

func conditionalDemo() *Demo {
	return &Demo{
		Name:        "conditional",
		Description: "A container toggled by a button",
		Template:    conditional,
		NewState:    func() any { return &Toggle{} },
		Step:        func(state any) { t := state.(*Toggle); t.Shown = !t.Shown },
	}
}

func conditional(r *engine.Renderer, flags engine.Flags, ctx any) {
	t := ctx.(*Toggle)
	if flags.Has(engine.Create) {
		r.ElementStart(0, "button", "type", "button")
		r.Text(1, "Toggle")
		r.ElementEnd()
		refresh := r.CurrentView().Refresh
		r.Listener(0, 0, "click", func(native.Event) {
			t.Shown = !t.Shown
			refresh()
		})
		r.Container(2)
	}
	if flags.Has(engine.Update) {
		r.ContainerRefreshStart(2)
		if t.Shown {
			r.View(2, 0, details, nil)
		}
		r.ContainerRefreshEnd(2)
	}
}

func details(r *engine.Renderer, flags engine.Flags, _ any) {
	if flags.Has(engine.Create) {
		r.ElementStart(0, "p")
		r.Text(1, "Shown conditionally")
		r.ElementEnd()
	}
}
