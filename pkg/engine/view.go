package engine

import "github.com/vango-dev/incr/pkg/native"

// View is one instantiation of a template: its node registry plus the
// bookkeeping needed to tear it down.
type View struct {
	// id is -1 for root, component and host views, otherwise the key the
	// view was created under in its container.
	id int

	// node stands for this view in the tree.
	node *VNode

	// nodes is the registry indexed by compiler-assigned node index.
	nodes []*VNode

	// subViews are containers and component/host view nodes that must be
	// destroyed along with this view.
	subViews []*VNode

	host       native.Node
	destroyFns []func()
	refresh    func()

	// component is the host element of the component whose content this
	// view renders, inherited by nested views. Nil outside components.
	component *VNode

	destroyed bool
}

// ID returns the view id.
func (v *View) ID() int { return v.id }

// Node returns the node registered at idx.
func (v *View) Node(idx int) (*VNode, bool) {
	if idx < 0 || idx >= len(v.nodes) || v.nodes[idx] == nil {
		return nil, false
	}
	return v.nodes[idx], true
}

// VNode returns the node standing for this view in the tree.
func (v *View) VNode() *VNode { return v.node }

// Host returns the native host of the enclosing component or root.
func (v *View) Host() native.Node { return v.host }

// Refresh runs a refresh pass of the root this view belongs to. Templates
// capture it for listeners; it must not be called during a pass.
func (v *View) Refresh() {
	if v.refresh != nil {
		v.refresh()
	}
}

// Destroyed reports whether the view has been torn down.
func (v *View) Destroyed() bool { return v.destroyed }

// newView creates a view whose node hangs off parent. Refresh and component
// context are inherited from the view it is created in.
func newView(id int, parent *VNode, host native.Node, from *View) *View {
	v := &View{id: id, host: host}
	v.node = &VNode{kind: KindView, parent: parent, embedded: v}
	if from != nil {
		v.node.view = from
		v.refresh = from.refresh
		v.component = from.component
	}
	return v
}

// destroyView tears down v and everything nested in it exactly once. Every
// destroy hook in the subtree runs, nested views first, before any
// projection link is cut.
// Native nodes are left in place; callers detach the top-level group.
func (r *Renderer) destroyView(v *View) {
	var torn []*View
	r.runDestroyHooks(v, &torn)
	for _, tv := range torn {
		r.unlinkProjections(tv)
	}
}

// runDestroyHooks marks v and its nested views destroyed and runs their
// hooks, appending each view to torn in the order it was finished.
func (r *Renderer) runDestroyHooks(v *View, torn *[]*View) {
	if v == nil || v.destroyed {
		return
	}
	v.destroyed = true

	for _, sub := range v.subViews {
		switch sub.kind {
		case KindContainer:
			for _, child := range sub.children {
				r.runDestroyHooks(child.embedded, torn)
			}
		case KindView:
			r.runDestroyHooks(sub.embedded, torn)
		}
	}

	for _, fn := range v.destroyFns {
		fn()
	}
	*torn = append(*torn, v)

	r.metrics.viewDestroyed()
	r.logger.Debug("view destroyed", "view_id", v.id)
}

// unlinkProjections cuts the slot links owned by v's nodes.
func (r *Renderer) unlinkProjections(v *View) {
	for _, n := range v.nodes {
		if n == nil {
			continue
		}
		switch n.kind {
		case KindSlotable:
			if n.projectionParent != nil {
				r.detachSlotable(n)
			}
		case KindSlot:
			for _, s := range n.Children() {
				r.detachSlotable(s)
			}
		case KindElement:
			if n.componentView != nil && len(n.children) > 0 && n.children[0].projectionParent != nil {
				r.detachSlotable(n.children[0])
			}
		}
	}
}
