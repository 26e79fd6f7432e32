package engine

import "github.com/vango-dev/incr/pkg/native"

// ComponentFactory constructs a component instance for a host element.
// refresh re-runs the root pass; content exposes the host's authored
// content for projection.
type ComponentFactory func(host native.Node, refresh func(), content ContentAPI) any

// Renderable is implemented by components that render a content view.
type Renderable interface {
	Render(r *Renderer, flags Flags)
}

// HostBinder is implemented by components and directives that bind to their
// host element. Inside Host, node index 0 addresses the host.
type HostBinder interface {
	Host(r *Renderer, flags Flags)
}

// Refresher is implemented by directives that react on every pass.
type Refresher interface {
	Refresh()
}

// Destroyer is implemented by instances that release resources when their
// enclosing view is destroyed.
type Destroyer interface {
	Destroy()
}

// ContentAPI gives a component access to the content authored inside its
// host.
type ContentAPI interface {
	// DefaultSlotable returns the grouping of all authored content.
	DefaultSlotable() *VNode
	// Slotables returns the slotables named name in first-encounter order,
	// including those rendered by containers.
	Slotables(name string) []*VNode
}

type contentAPI struct {
	host *VNode
}

func (c contentAPI) DefaultSlotable() *VNode {
	return c.host.children[0]
}

func (c contentAPI) Slotables(name string) []*VNode {
	return collectSlotables(c.host.children[0], name, nil)
}

// ComponentStart creates the host element of a component and opens its
// default content grouping as the insertion parent.
func (r *Renderer) ComponentStart(idx int, tag string, factory ComponentFactory, attrs ...string) {
	host := r.createElement(idx, tag, attrs)
	host.factory = factory

	def := &VNode{kind: KindSlotable, view: r.view, parent: host, isDefault: true}
	host.children = append(host.children, def)
	r.parent = def
}

// ComponentEnd instantiates the component opened at hostIdx, builds its host
// binding view and runs its first render.
func (r *Renderer) ComponentEnd(hostIdx int) {
	host := r.nodeOfKind(hostIdx, KindElement)
	if host.factory == nil || len(host.children) == 0 || r.parent != host.children[0] {
		r.fail("E007", hostIdx)
	}
	r.parent = host.parent

	enclosing := r.view
	inst := host.factory(host.native, enclosing.refresh, contentAPI{host: host})
	host.instance = inst

	cv := newView(-1, host, host.native, enclosing)
	cv.node.renderParent = host.native
	cv.component = host
	host.componentView = cv
	enclosing.subViews = append(enclosing.subViews, cv.node)

	if d, ok := inst.(Destroyer); ok {
		enclosing.destroyFns = append(enclosing.destroyFns, d.Destroy)
	}
	if h, ok := inst.(HostBinder); ok {
		host.hostView = r.createHostView(host, h)
	}
	if rd, ok := inst.(Renderable); ok {
		r.execView(cv, renderTemplate(rd), Create|Update, nil)
	}
	r.metrics.viewCreated()
}

// ComponentRefresh re-runs the host bindings and render of a component.
func (r *Renderer) ComponentRefresh(hostIdx int) {
	host := r.nodeOfKind(hostIdx, KindElement)
	if host.componentView == nil {
		panic(r.errorAt("E004", hostIdx).WithDetail("element is not a component host"))
	}
	if host.hostView != nil {
		h := host.instance.(HostBinder)
		r.execView(host.hostView, hostTemplate(h), Update, nil)
	}
	if rd, ok := host.instance.(Renderable); ok {
		r.execView(host.componentView, renderTemplate(rd), Update, nil)
	}
}

// Component returns the instance of the component hosted at idx in the
// current view.
func (r *Renderer) Component(idx int) any {
	return r.nodeOfKind(idx, KindElement).instance
}

// createHostView builds the view a HostBinder runs in. Its registry holds
// the host at index 0; it lives in the enclosing view's sub-view list, not
// under the component content.
func (r *Renderer) createHostView(host *VNode, h HostBinder) *View {
	enclosing := r.view
	hv := newView(-1, host, enclosing.host, enclosing)
	hv.nodes = []*VNode{host}
	enclosing.subViews = append(enclosing.subViews, hv.node)
	r.execView(hv, hostTemplate(h), Create|Update, nil)
	return hv
}

func renderTemplate(rd Renderable) Template {
	return func(r *Renderer, flags Flags, _ any) { rd.Render(r, flags) }
}

func hostTemplate(h HostBinder) Template {
	return func(r *Renderer, flags Flags, _ any) { h.Host(r, flags) }
}
