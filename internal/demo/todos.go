package demo

import (
	"strconv"

	"github.com/vango-dev/incr/pkg/engine"
	"github.com/vango-dev/incr/pkg/native"
)

// Todo is one item of the todos demo.
type Todo struct {
	ID    int
	Title string
	Done  bool
}

// Todos is the state of the todos demo. Items stay ordered by ID.
type Todos struct {
	Items  []*Todo
	NextID int
}

// Add appends a new item.
func (t *Todos) Add(title string) {
	t.Items = append(t.Items, &Todo{ID: t.NextID, Title: title})
	t.NextID++
}

// Prune removes finished items.
func (t *Todos) Prune() {
	kept := t.Items[:0]
	for _, it := range t.Items {
		if !it.Done {
			kept = append(kept, it)
		}
	}
	t.Items = kept
}

func todosDemo() *Demo {
	return &Demo{
		Name:        "todos",
		Description: "A keyed list reconciled by a container",
		Template:    todos,
		NewState: func() any {
			t := &Todos{}
			t.Add("Write the engine")
			t.Add("Test the engine")
			return t
		},
		Step: func(state any) {
			t := state.(*Todos)
			t.Prune()
			if len(t.Items) > 0 {
				t.Items[0].Done = true
			}
			t.Add("Task " + strconv.Itoa(t.NextID))
		},
	}
}

func todos(r *engine.Renderer, flags engine.Flags, ctx any) {
	t := ctx.(*Todos)
	if flags.Has(engine.Create) {
		r.ElementStart(0, "ul", "class", "todos")
		r.Container(1)
		r.ElementEnd()
		r.ElementStart(2, "button", "type", "button")
		r.Text(3, "Add")
		r.ElementEnd()
		r.ElementStart(4, "button", "type", "button")
		r.Text(5, "Clear done")
		r.ElementEnd()

		refresh := r.CurrentView().Refresh
		r.Listener(2, 0, "click", func(native.Event) {
			t.Add("Task " + strconv.Itoa(t.NextID))
			refresh()
		})
		r.Listener(4, 0, "click", func(native.Event) {
			t.Prune()
			refresh()
		})
	}
	if flags.Has(engine.Update) {
		r.ContainerRefreshStart(1)
		for _, it := range t.Items {
			r.View(1, it.ID, todoItem, it)
		}
		r.ContainerRefreshEnd(1)
	}
}

func todoItem(r *engine.Renderer, flags engine.Flags, ctx any) {
	it := ctx.(*Todo)
	if flags.Has(engine.Create) {
		r.ElementStart(0, "li")
		r.Text(1, "")
		r.ElementEnd()
		r.Listener(0, 0, "click", nil)
	}
	if flags.Has(engine.Update) {
		r.BindText(1, it.Title)
		r.BindClass(0, 1, "done", it.Done)
		refresh := r.CurrentView().Refresh
		r.ListenerRefresh(0, 0, func(native.Event) {
			it.Done = !it.Done
			refresh()
		})
	}
}
