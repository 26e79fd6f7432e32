package engine

import (
	"strconv"

	"github.com/vango-dev/incr/pkg/native"
)

// SlotableFactory constructs the instance backing a slotable.
type SlotableFactory func(s *VNode) any

// SlotableStart opens a named group of authored content and makes it the
// insertion parent. factory may be nil. The slotable must sit directly in a
// component's default content, or in a view of a container that does.
func (r *Renderer) SlotableStart(idx int, name string, factory SlotableFactory) {
	if !inDefaultContent(r.parent) {
		panic(r.errorAt("E004", idx).WithDetailf("slotable %q outside default content", name))
	}
	n := r.createNode(idx, KindSlotable)
	n.name = name
	if factory != nil {
		n.instance = factory(n)
		if d, ok := n.instance.(Destroyer); ok {
			r.view.destroyFns = append(r.view.destroyFns, d.Destroy)
		}
	}
	r.parent = n
}

// inDefaultContent reports whether p is a position SlotRefresh searches:
// the default slotable itself, or a container view under such a position.
func inDefaultContent(p *VNode) bool {
	for p != nil {
		switch {
		case p.kind == KindSlotable && p.isDefault:
			return true
		case p.kind == KindView && p.parent != nil && p.parent.kind == KindContainer:
			p = p.parent.parent
		default:
			return false
		}
	}
	return false
}

// SlotableEnd closes the slotable opened by the matching SlotableStart.
func (r *Renderer) SlotableEnd() {
	if r.parent == nil || r.parent.kind != KindSlotable || r.parent.isDefault {
		r.fail("E007", -1)
	}
	r.parent = r.parent.parent
}

// Slot creates an anchor that projected content is grafted after.
func (r *Renderer) Slot(idx int) {
	n := r.createNode(idx, KindSlot)
	n.native = r.doc.CreateComment("slot " + strconv.Itoa(idx))
	r.attachNative(n)
}

// SlotRefresh projects content of the owning component into the slot at
// idx. With a name, every slotable so named is attached in first-encounter
// order, searching through containers. Without one, the component's default
// content is attached.
func (r *Renderer) SlotRefresh(idx int, name string) {
	slot := r.nodeOfKind(idx, KindSlot)
	comp := r.view.component
	if comp == nil || len(comp.children) == 0 {
		panic(r.errorAt("E004", idx).WithDetail("slot is not rendered by a component"))
	}
	def := comp.children[0]

	var want []*VNode
	if name == "" {
		want = []*VNode{def}
	} else {
		want = collectSlotables(def, name, nil)
	}
	r.project(slot, want)
}

// SlotRefreshImperative attaches exactly s to the slot at idx. A nil s
// clears the slot.
func (r *Renderer) SlotRefreshImperative(idx int, s *VNode) {
	slot := r.nodeOfKind(idx, KindSlot)
	var want []*VNode
	if s != nil {
		if s.kind != KindSlotable {
			panic(r.errorAt("E004", idx).WithDetailf("expected Slotable node, found %s", s.kind))
		}
		want = []*VNode{s}
	}
	r.project(slot, want)
}

// project makes the slot's attached list equal want. The common prefix is
// kept in place; everything after it is detached and reattached in order.
func (r *Renderer) project(slot *VNode, want []*VNode) {
	keep := 0
	for keep < len(slot.children) && keep < len(want) && slot.children[keep] == want[keep] {
		keep++
	}
	for len(slot.children) > keep {
		r.detachSlotable(slot.children[keep])
	}
	for _, s := range want[keep:] {
		r.appendSlotable(slot, s)
	}
}

// appendSlotable attaches s as the last slotable of slot, moving it out of
// any other slot first. Attaching to the current slot is a no-op.
func (r *Renderer) appendSlotable(slot, s *VNode) {
	if s.projectionParent == slot {
		return
	}
	if s.projectionParent != nil {
		r.detachSlotable(s)
	}

	rp := r.findRenderParent(slot)
	var ref native.Node
	if rp != nil {
		ref = r.doc.NextSibling(slotTail(slot))
	}

	slot.children = append(slot.children, s)
	s.projectionParent = slot
	if rp != nil {
		r.insertGroup(rp, ref, s)
	}
	r.metrics.slotableMoved()
}

// detachSlotable removes s from the slot it is attached to along with its
// native nodes.
func (r *Renderer) detachSlotable(s *VNode) {
	slot := s.projectionParent
	if slot == nil {
		return
	}
	if !slot.removeChild(s) {
		panic(r.errorAt("E003", -1).WithDetailf("slotable %q not found under its slot", s.name))
	}
	s.projectionParent = nil
	r.removeGroup(s)
}

// collectSlotables appends the slotables named name found under n to out.
// The search descends into container views but not into elements or other
// slotables.
func collectSlotables(n *VNode, name string, out []*VNode) []*VNode {
	for _, c := range n.children {
		switch c.kind {
		case KindSlotable:
			if c.name == name {
				out = append(out, c)
			}
		case KindContainer:
			for _, v := range c.children {
				out = collectSlotables(v, name, out)
			}
		}
	}
	return out
}
