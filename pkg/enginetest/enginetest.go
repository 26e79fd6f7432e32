package enginetest

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/incr/pkg/dom"
	"github.com/vango-dev/incr/pkg/engine"
)

// Harness is a rendered template together with its document and host.
type Harness struct {
	Doc      *dom.Document
	Host     *dom.Node
	Renderer *engine.Renderer
}

// New renders tmpl with ctx into a fresh <body> host and fails the test if
// the first pass returns an error. Engine logs are discarded unless opts
// install a logger.
func New(t *testing.T, tmpl engine.Template, ctx any, opts ...engine.Option) *Harness {
	t.Helper()
	h, err := TryNew(tmpl, ctx, opts...)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return h
}

// TryNew is New for tests that expect the first pass to fail. The harness
// is returned either way.
func TryNew(tmpl engine.Template, ctx any, opts ...engine.Option) (*Harness, error) {
	doc := dom.NewDocument()
	host := doc.CreateElement("body").(*dom.Node)
	opts = append([]engine.Option{engine.WithLogger(DiscardLogger())}, opts...)
	r, err := engine.Render(doc, host, tmpl, ctx, opts...)
	return &Harness{Doc: doc, Host: host, Renderer: r}, err
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// HTML returns the serialized content of the host.
func (h *Harness) HTML() string {
	return h.Host.InnerHTML()
}

// Refresh runs an update pass and fails the test on error.
func (h *Harness) Refresh(t *testing.T) {
	t.Helper()
	if err := h.Renderer.Refresh(); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
}

// RefreshWith replaces the root context, refreshes and fails the test on
// error.
func (h *Harness) RefreshWith(t *testing.T, ctx any) {
	t.Helper()
	if err := h.Renderer.RefreshWith(ctx); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
}

// CountMutations returns the number of native mutations fn caused.
func (h *Harness) CountMutations(fn func()) int {
	before := h.Doc.Stats().Mutations()
	fn()
	return h.Doc.Stats().Mutations() - before
}

// ExpectHTML asserts the host's serialized content equals expected.
func (h *Harness) ExpectHTML(t *testing.T, expected string) {
	t.Helper()
	if got := h.HTML(); got != expected {
		t.Errorf("unexpected HTML\n got: %s\nwant: %s", truncate(got, 500), expected)
	}
}

// ExpectContains asserts the host's serialized content contains expected.
func (h *Harness) ExpectContains(t *testing.T, expected string) {
	t.Helper()
	if html := h.HTML(); !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts the host's serialized content does not contain
// unexpected.
func (h *Harness) ExpectNotContains(t *testing.T, unexpected string) {
	t.Helper()
	if html := h.HTML(); strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// Find returns the first element with tag under the host in document
// order, or nil.
func (h *Harness) Find(tag string) *dom.Node {
	return find(h.Host, tag)
}

// MustFind is Find that fails the test when no element matches.
func (h *Harness) MustFind(t *testing.T, tag string) *dom.Node {
	t.Helper()
	n := h.Find(tag)
	if n == nil {
		t.Fatalf("no <%s> element in:\n%s", tag, truncate(h.HTML(), 500))
	}
	return n
}

// Dispatch fires event at el and returns the number of listeners invoked.
func (h *Harness) Dispatch(el *dom.Node, event string, detail any) int {
	return h.Doc.Dispatch(el, event, detail)
}

// Click dispatches a click at el and fails the test if nothing listened.
func (h *Harness) Click(t *testing.T, el *dom.Node) {
	t.Helper()
	if h.Dispatch(el, "click", nil) == 0 {
		t.Fatalf("click on <%s> reached no listener", el.Tag)
	}
}

func find(n *dom.Node, tag string) *dom.Node {
	for _, c := range n.Children() {
		if c.Type == dom.ElementNode && c.Tag == tag {
			return c
		}
		if found := find(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
