package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/vango-dev/incr/internal/errors"
	"github.com/vango-dev/incr/pkg/native"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for engine passes.
const defaultTracerName = "incr"

// Renderer owns one root tree and the traversal context threaded through
// every instruction of a pass.
type Renderer struct {
	doc     native.Document
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer

	root *View
	tmpl Template
	ctx  any

	// Traversal context.
	parent *VNode
	view   *View

	inPass    bool
	destroyed bool
	passes    int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records pass and view counters into m.
func WithMetrics(m *Metrics) Option {
	return func(r *Renderer) {
		r.metrics = m
	}
}

// WithTracer sets the tracer used for pass spans. Defaults to the global
// OpenTelemetry provider's "incr" tracer.
func WithTracer(t trace.Tracer) Option {
	return func(r *Renderer) {
		if t != nil {
			r.tracer = t
		}
	}
}

// Render builds the tree of tmpl under host and runs its first pass with
// Create|Update. The returned Renderer is usable even when err is non-nil;
// it holds whatever the failed pass built.
func Render(doc native.Document, host native.Node, tmpl Template, ctx any, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		doc:    doc,
		logger: slog.Default(),
		tmpl:   tmpl,
		ctx:    ctx,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(defaultTracerName)
	}

	r.root = newView(-1, nil, host, nil)
	r.root.node.renderParent = host
	r.root.refresh = r.refreshFromCallback

	err := r.pass("render", func() {
		r.execView(r.root, tmpl, Create|Update, ctx)
	})
	return r, err
}

// Refresh re-runs the root template with Update only.
func (r *Renderer) Refresh() error {
	return r.pass("refresh", func() {
		r.execView(r.root, r.tmpl, Update, r.ctx)
	})
}

// RefreshWith replaces the root context and refreshes.
func (r *Renderer) RefreshWith(ctx any) error {
	if r.inPass {
		return errors.New("E006")
	}
	r.ctx = ctx
	return r.Refresh()
}

// Destroy tears down the root view, runs every destroy hook and removes the
// root's nodes from the host.
func (r *Renderer) Destroy() error {
	if r.inPass {
		return errors.New("E006")
	}
	err := r.pass("destroy", func() {
		r.destroyView(r.root)
		r.removeGroup(r.root.node)
	})
	r.destroyed = true
	return err
}

// Root returns the root view.
func (r *Renderer) Root() *View { return r.root }

// Document returns the native document the renderer mutates.
func (r *Renderer) Document() native.Document { return r.doc }

// Context returns the current root context value.
func (r *Renderer) Context() any { return r.ctx }

// refreshFromCallback is the refresh function handed to components,
// directives and views. Errors are logged since callers cannot return them.
func (r *Renderer) refreshFromCallback() {
	if err := r.Refresh(); err != nil {
		r.logger.Error("refresh failed", "error", err)
	}
}

// pass runs fn as one synchronous pass. Engine faults raised with fail are
// recovered and returned; any other panic is re-raised after the pass
// bookkeeping is restored.
func (r *Renderer) pass(kind string, fn func()) (err error) {
	if r.destroyed {
		return errors.New("E008")
	}
	if r.inPass {
		return errors.New("E006")
	}

	r.passes++
	_, span := r.tracer.Start(context.Background(), "incr."+kind,
		trace.WithAttributes(
			attribute.String("incr.pass", kind),
			attribute.Int("incr.pass_number", r.passes),
		),
	)
	start := time.Now()
	r.inPass = true

	defer func() {
		r.inPass = false
		r.parent, r.view = nil, nil

		if rec := recover(); rec != nil {
			ee, ok := rec.(*errors.EngineError)
			if !ok {
				span.End()
				panic(rec)
			}
			err = ee
		}

		status := "ok"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			r.logger.Error("pass failed", "pass", kind, "error", err)
		}
		span.End()
		r.metrics.passObserved(kind, status, time.Since(start))
	}()

	fn()
	return nil
}

// fail aborts the pass with a located engine error.
func (r *Renderer) fail(code string, idx int) {
	panic(r.errorAt(code, idx))
}

func (r *Renderer) errorAt(code string, idx int) *errors.EngineError {
	viewID := -1
	if r.view != nil {
		viewID = r.view.id
	}
	return errors.New(code).WithLocation(viewID, idx)
}

// node returns the node registered at idx in the current view.
func (r *Renderer) node(idx int) *VNode {
	n, ok := r.view.Node(idx)
	if !ok {
		r.fail("E001", idx)
	}
	return n
}

// nodeOfKind is node with a kind check.
func (r *Renderer) nodeOfKind(idx int, kind Kind) *VNode {
	n := r.node(idx)
	if n.kind != kind {
		panic(r.errorAt("E004", idx).WithDetailf("expected %s node, found %s", kind, n.kind))
	}
	return n
}

// createNode registers a new node of kind at idx under the current
// insertion parent.
func (r *Renderer) createNode(idx int, kind Kind) *VNode {
	v := r.view
	if idx < 0 {
		r.fail("E001", idx)
	}
	for len(v.nodes) <= idx {
		v.nodes = append(v.nodes, nil)
	}
	if v.nodes[idx] != nil {
		r.fail("E005", idx)
	}
	n := &VNode{kind: kind, view: v, parent: r.parent}
	v.nodes[idx] = n
	r.parent.children = append(r.parent.children, n)
	return n
}

// attachNative appends a freshly created native node to its parent when the
// parent is realized. Nodes under ungrafted views or slotables are grafted
// later as part of their group.
func (r *Renderer) attachNative(n *VNode) {
	p := n.parent
	switch p.kind {
	case KindElement:
		r.doc.AppendChild(p.native, n.native)
	case KindView:
		// Root and component views own their render parent outright;
		// container views are grafted as a group once executed.
		if p.renderParent != nil && (p.parent == nil || p.parent.kind == KindElement) {
			r.doc.AppendChild(p.renderParent, n.native)
		}
	}
}
