package engine

import "github.com/vango-dev/incr/pkg/native"

// DirectiveFactory constructs a directive instance attached to host.
type DirectiveFactory func(host native.Node, refresh func()) any

// directiveRecord is what a host keeps in the directive's data slot.
type directiveRecord struct {
	instance any
	hostView *View
}

// Directive attaches a directive to the element at hostIdx and records it in
// data slot slotIdx of the host.
func (r *Renderer) Directive(hostIdx, slotIdx int, factory DirectiveFactory) {
	host := r.nodeOfKind(hostIdx, KindElement)
	inst := factory(host.native, r.view.refresh)
	rec := &directiveRecord{instance: inst}

	if d, ok := inst.(Destroyer); ok {
		r.view.destroyFns = append(r.view.destroyFns, d.Destroy)
	}
	if h, ok := inst.(HostBinder); ok {
		rec.hostView = r.createHostView(host, h)
	}
	setData(host, slotIdx, rec)
}

// DirectiveRefresh re-runs the directive's host bindings, then its own
// Refresh hook regardless of whether any binding changed.
func (r *Renderer) DirectiveRefresh(hostIdx, slotIdx int) {
	rec := r.directive(hostIdx, slotIdx)
	if rec.hostView != nil {
		r.execView(rec.hostView, hostTemplate(rec.instance.(HostBinder)), Update, nil)
	}
	if rf, ok := rec.instance.(Refresher); ok {
		rf.Refresh()
	}
}

// DirectiveInstance returns the directive attached at hostIdx/slotIdx.
func (r *Renderer) DirectiveInstance(hostIdx, slotIdx int) any {
	return r.directive(hostIdx, slotIdx).instance
}

func (r *Renderer) directive(hostIdx, slotIdx int) *directiveRecord {
	host := r.nodeOfKind(hostIdx, KindElement)
	rec, ok := valueAt(host, slotIdx).(*directiveRecord)
	if !ok {
		r.fail("E009", hostIdx)
	}
	return rec
}
