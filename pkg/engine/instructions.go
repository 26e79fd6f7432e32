package engine

import "github.com/vango-dev/incr/pkg/native"

// ElementStart creates an element at idx with static attribute name/value
// pairs and makes it the insertion parent.
func (r *Renderer) ElementStart(idx int, tag string, attrs ...string) {
	n := r.createElement(idx, tag, attrs)
	r.parent = n
}

// ElementEnd closes the element opened by the matching ElementStart.
func (r *Renderer) ElementEnd() {
	if r.parent == nil || r.parent.kind != KindElement {
		r.fail("E007", -1)
	}
	r.parent = r.parent.parent
}

// Element creates an element without children.
func (r *Renderer) Element(idx int, tag string, attrs ...string) {
	r.createElement(idx, tag, attrs)
}

func (r *Renderer) createElement(idx int, tag string, attrs []string) *VNode {
	n := r.createNode(idx, KindElement)
	n.name = tag
	n.native = r.doc.CreateElement(tag)
	for i := 0; i < len(attrs); i += 2 {
		value := ""
		if i+1 < len(attrs) {
			value = attrs[i+1]
		}
		r.doc.SetAttribute(n.native, attrs[i], value)
	}
	r.attachNative(n)
	return n
}

// Text creates a text node holding value.
func (r *Renderer) Text(idx int, value string) {
	n := r.createNode(idx, KindText)
	n.native = r.doc.CreateText(value)
	r.attachNative(n)
}

// Comment creates a comment node holding value.
func (r *Renderer) Comment(idx int, value string) {
	n := r.createNode(idx, KindText)
	n.native = r.doc.CreateComment(value)
	r.attachNative(n)
}

// BindText updates the text node at idx when value changed.
func (r *Renderer) BindText(idx int, value any) {
	n := r.nodeOfKind(idx, KindText)
	if r.bind(n, 0, value) {
		r.doc.SetText(n.native, toString(value))
	}
}

// BindProperty assigns a native property when value changed since the last
// pass. bind is the data slot the value is recorded in.
func (r *Renderer) BindProperty(idx, bind int, name string, value any) {
	n := r.nodeOfKind(idx, KindElement)
	if r.bind(n, bind, value) {
		r.doc.SetProperty(n.native, name, value)
	}
}

// BindAttribute sets an attribute when value changed.
func (r *Renderer) BindAttribute(idx, bind int, name string, value any) {
	n := r.nodeOfKind(idx, KindElement)
	if r.bind(n, bind, value) {
		r.doc.SetAttribute(n.native, name, toString(value))
	}
}

// BindClass toggles class when on changed.
func (r *Renderer) BindClass(idx, bind int, class string, on bool) {
	n := r.nodeOfKind(idx, KindElement)
	if r.bind(n, bind, on) {
		r.doc.ToggleClass(n.native, class, on)
	}
}

// ReplaceClass swaps the class previously bound at bind for class.
func (r *Renderer) ReplaceClass(idx, bind int, class string) {
	n := r.nodeOfKind(idx, KindElement)
	prev, _ := n.Binding(bind)
	if !r.bind(n, bind, class) {
		return
	}
	old, _ := prev.(string)
	switch {
	case old == "":
		if class != "" {
			r.doc.AddClass(n.native, class)
		}
	case class == "":
		r.doc.RemoveClass(n.native, old)
	default:
		r.doc.ReplaceClass(n.native, old, class)
	}
}

// SetAttribute sets a static attribute unconditionally.
func (r *Renderer) SetAttribute(idx int, name, value string) {
	n := r.nodeOfKind(idx, KindElement)
	r.doc.SetAttribute(n.native, name, value)
}

// SetCSSClass adds a static class unconditionally.
func (r *Renderer) SetCSSClass(idx int, class string) {
	n := r.nodeOfKind(idx, KindElement)
	r.doc.AddClass(n.native, class)
}

// listenerSlot holds the handler of the current pass.
type listenerSlot struct {
	handler native.Listener
}

// Listener registers a native listener for event on the element at idx.
// The native listener dispatches to the handler stored in data slot bind,
// which ListenerRefresh replaces on every pass.
func (r *Renderer) Listener(idx, bind int, event string, handler native.Listener) {
	n := r.nodeOfKind(idx, KindElement)
	slot := &listenerSlot{handler: handler}
	setData(n, bind, slot)
	r.doc.AddEventListener(n.native, event, func(ev native.Event) {
		if slot.handler != nil {
			slot.handler(ev)
		}
	})
}

// ListenerRefresh rebinds the handler registered at bind so it observes the
// values of the current pass.
func (r *Renderer) ListenerRefresh(idx, bind int, handler native.Listener) {
	n := r.nodeOfKind(idx, KindElement)
	slot, ok := valueAt(n, bind).(*listenerSlot)
	if !ok {
		panic(r.errorAt("E004", idx).WithDetailf("no listener recorded at data slot %d", bind))
	}
	slot.handler = handler
}

// bind runs the binding diff for a data slot of n.
func (r *Renderer) bind(n *VNode, index int, value any) bool {
	changed := checkAndUpdateBinding(&n.data, index, value)
	if changed {
		r.metrics.bindingChanged()
	}
	return changed
}

func valueAt(n *VNode, i int) any {
	v, _ := n.Binding(i)
	return v
}
