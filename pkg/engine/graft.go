package engine

import "github.com/vango-dev/incr/pkg/native"

// findRenderParent returns the native node that content under n is grafted
// into. Slots are transparent; a slotable resolves through the slot it is
// projected into. Nil means the content is not currently in the tree.
func (r *Renderer) findRenderParent(n *VNode) native.Node {
	for n != nil {
		switch n.kind {
		case KindElement:
			return n.native
		case KindView:
			return n.renderParent
		case KindSlotable:
			if n.projectionParent == nil {
				return nil
			}
			n = n.projectionParent
		case KindText, KindContainer, KindSlot:
			n = n.parent
		default:
			return nil
		}
	}
	return nil
}

// insertGroup grafts the children of group into renderParent before ref.
// A group already grafted into renderParent is left alone.
func (r *Renderer) insertGroup(renderParent, ref native.Node, group *VNode) {
	if group.renderParent == renderParent {
		return
	}
	for _, c := range group.children {
		r.insertNode(renderParent, ref, c)
	}
	group.renderParent = renderParent
}

func (r *Renderer) insertNode(renderParent, ref native.Node, n *VNode) {
	switch n.kind {
	case KindText, KindElement:
		r.doc.InsertBefore(renderParent, n.native, ref)
	case KindContainer:
		// Container content precedes its anchor.
		for _, v := range n.children {
			r.insertGroup(renderParent, ref, v)
		}
		r.doc.InsertBefore(renderParent, n.native, ref)
	case KindSlot:
		// Projected content follows its anchor.
		r.doc.InsertBefore(renderParent, n.native, ref)
		for _, s := range n.children {
			r.insertGroup(renderParent, ref, s)
		}
	case KindView:
		r.insertGroup(renderParent, ref, n)
	case KindSlotable:
		// Grafted only through projection.
	}
}

// removeGroup detaches the native nodes of group from its render parent and
// marks the group ungrafted.
func (r *Renderer) removeGroup(group *VNode) {
	rp := group.renderParent
	if rp == nil {
		return
	}
	for _, c := range group.children {
		r.removeNode(rp, c)
	}
	group.renderParent = nil
}

func (r *Renderer) removeNode(renderParent native.Node, n *VNode) {
	switch n.kind {
	case KindText, KindElement:
		r.doc.RemoveChild(renderParent, n.native)
	case KindContainer:
		for _, v := range n.children {
			r.removeGroup(v)
		}
		r.doc.RemoveChild(renderParent, n.native)
	case KindSlot:
		r.doc.RemoveChild(renderParent, n.native)
		for _, s := range n.children {
			r.removeGroup(s)
		}
	case KindView:
		r.removeGroup(n)
	case KindSlotable:
	}
}

// firstNative returns the first native node of a grafted group, or nil.
func firstNative(group *VNode) native.Node {
	if group.renderParent == nil {
		return nil
	}
	for _, c := range group.children {
		switch c.kind {
		case KindText, KindElement, KindSlot:
			return c.native
		case KindContainer:
			for _, v := range c.children {
				if first := firstNative(v); first != nil {
					return first
				}
			}
			return c.native
		case KindView:
			if first := firstNative(c); first != nil {
				return first
			}
		}
	}
	return nil
}

// lastNative returns the last native node of a grafted group, or nil.
func lastNative(group *VNode) native.Node {
	if group.renderParent == nil {
		return nil
	}
	for i := len(group.children) - 1; i >= 0; i-- {
		c := group.children[i]
		switch c.kind {
		case KindText, KindElement, KindContainer:
			return c.native
		case KindSlot:
			return slotTail(c)
		case KindView:
			if last := lastNative(c); last != nil {
				return last
			}
		}
	}
	return nil
}

// slotTail is the last native node belonging to a slot: the end of its last
// grafted slotable, or the anchor itself.
func slotTail(slot *VNode) native.Node {
	for i := len(slot.children) - 1; i >= 0; i-- {
		if last := lastNative(slot.children[i]); last != nil {
			return last
		}
	}
	return slot.native
}

// viewInsertionRef returns the native node a view created at pos in
// container c must be inserted before: the first node of the next grafted
// sibling view, else the container anchor.
func viewInsertionRef(c *VNode, pos int) native.Node {
	for i := pos + 1; i < len(c.children); i++ {
		if first := firstNative(c.children[i]); first != nil {
			return first
		}
	}
	return c.native
}
