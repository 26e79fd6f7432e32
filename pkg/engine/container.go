package engine

import (
	"reflect"
	"strconv"
)

// Container creates an anchor for conditional or repeated content at idx.
func (r *Renderer) Container(idx int) {
	n := r.createNode(idx, KindContainer)
	n.native = r.doc.CreateComment("container " + strconv.Itoa(idx))
	n.data = []any{0}
	r.view.subViews = append(r.view.subViews, n)
	r.attachNative(n)
}

// ContainerRefreshStart resets the container's position counter before its
// views are revisited.
func (r *Renderer) ContainerRefreshStart(idx int) {
	c := r.nodeOfKind(idx, KindContainer)
	c.data[0] = 0
}

// ContainerRefreshEnd destroys and detaches every child view the pass did
// not revisit.
func (r *Renderer) ContainerRefreshEnd(idx int) {
	c := r.nodeOfKind(idx, KindContainer)
	pos := c.data[0].(int)
	for len(c.children) > pos {
		stale := c.children[pos]
		c.children = append(c.children[:pos], c.children[pos+1:]...)
		r.destroyEmbedded(stale)
	}
}

// View refreshes the child view keyed viewID of container containerIdx, or
// creates it at the container's current position. Child views scanned on the
// way whose id is lower than viewID are stale and destroyed. Callers issue
// ids in non-decreasing order within a pass.
func (r *Renderer) View(containerIdx, viewID int, fn Template, ctx any) {
	c := r.nodeOfKind(containerIdx, KindContainer)
	pos := c.data[0].(int)

	var found *VNode
	for pos < len(c.children) {
		cand := c.children[pos]
		id := cand.embedded.id
		if id == viewID {
			found = cand
			break
		}
		if id > viewID {
			break
		}
		c.children = append(c.children[:pos], c.children[pos+1:]...)
		r.logger.Debug("stale view removed", "container", containerIdx, "view_id", id)
		r.destroyEmbedded(cand)
	}

	if found != nil {
		r.execView(found.embedded, fn, Update, ctx)
	} else {
		r.createEmbedded(c, pos, viewID, fn, ctx)
	}
	c.data[0] = pos + 1
}

// ContainerView returns the child view at pos of container containerIdx.
func (r *Renderer) ContainerView(containerIdx, pos int) *View {
	c := r.nodeOfKind(containerIdx, KindContainer)
	if pos < 0 || pos >= len(c.children) {
		panic(r.errorAt("E002", containerIdx).WithDetailf("position %d of %d child views", pos, len(c.children)))
	}
	return c.children[pos].embedded
}

// Include renders a single child view keyed by the identity of fn. A
// different fn replaces the child; a nil fn removes it.
func (r *Renderer) Include(containerIdx int, fn Template, ctx any) {
	c := r.nodeOfKind(containerIdx, KindContainer)
	key := templateKey(fn)

	if len(c.children) > 0 && key != 0 && key == c.includeKey {
		r.execView(c.children[0].embedded, fn, Update, ctx)
		return
	}

	for len(c.children) > 0 {
		old := c.children[0]
		c.children = c.children[1:]
		r.destroyEmbedded(old)
	}
	c.includeKey = key
	if fn != nil {
		r.createEmbedded(c, 0, -1, fn, ctx)
	}
}

// createEmbedded executes fn as a new child view of c at pos and grafts it
// when the container is currently in the native tree.
func (r *Renderer) createEmbedded(c *VNode, pos, viewID int, fn Template, ctx any) {
	parentView := r.view
	v := newView(viewID, c, parentView.host, parentView)

	r.execView(v, fn, Create|Update, ctx)
	c.insertChild(pos, v.node)

	if rp := r.findRenderParent(c); rp != nil {
		r.insertGroup(rp, viewInsertionRef(c, pos), v.node)
	}

	r.metrics.viewCreated()
	r.logger.Debug("view created", "view_id", viewID, "position", pos)
}

// destroyEmbedded cascades destruction through a container child view and
// then removes its native nodes.
func (r *Renderer) destroyEmbedded(n *VNode) {
	r.destroyView(n.embedded)
	r.removeGroup(n)
}

// templateKey identifies a template by its code pointer. Closures created
// from the same function literal share a key.
func templateKey(fn Template) uintptr {
	if fn == nil {
		return 0
	}
	return reflect.ValueOf(fn).Pointer()
}
