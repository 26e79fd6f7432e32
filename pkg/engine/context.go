package engine

// Flags is the phase bitmask passed to templates.
type Flags uint8

const (
	// Create builds nodes. It is only set on a view's first execution.
	Create Flags = 1 << iota
	// Update refreshes bindings and nested views.
	Update
)

// Has reports whether all bits of f2 are set in f.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

// String returns the string representation of the Flags.
func (f Flags) String() string {
	switch f {
	case Create:
		return "Create"
	case Update:
		return "Update"
	case Create | Update:
		return "Create|Update"
	default:
		return "None"
	}
}

// Template is a compiled template. ctx is the caller-supplied value the
// template binds against.
type Template func(r *Renderer, flags Flags, ctx any)

// enter installs parent and v as the traversal context and returns the
// function that restores the previous pair. Callers defer it so the
// context is restored on every exit path, panics included:
//
//	defer r.enter(v.node, v)()
func (r *Renderer) enter(parent *VNode, v *View) func() {
	prevParent, prevView := r.parent, r.view
	r.parent, r.view = parent, v
	return func() {
		r.parent, r.view = prevParent, prevView
	}
}

// execView runs fn against v with v's node as insertion parent.
func (r *Renderer) execView(v *View, fn Template, flags Flags, ctx any) {
	defer r.enter(v.node, v)()
	fn(r, flags, ctx)
}

// CurrentView returns the view instructions currently address.
func (r *Renderer) CurrentView() *View { return r.view }
