package preview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/incr/internal/errors"
	"github.com/vango-dev/incr/pkg/dom"
	"github.com/vango-dev/incr/pkg/engine"
)

// Options configures a Server.
type Options struct {
	// Title is the page title of the HTML shell.
	Title string

	// Logger receives server and engine logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Metrics records engine passes of the served root.
	Metrics *engine.Metrics

	// Gatherer is exposed at MetricsPath when set.
	Gatherer prometheus.Gatherer

	// MetricsPath is the metrics route. Defaults to "/metrics".
	MetricsPath string
}

// Server serves one render root to any number of browsers.
type Server struct {
	opts   Options
	logger *slog.Logger

	// mu serializes engine access and the broadcasts that follow a pass,
	// so every client sees content in pass order. Lock order is mu,
	// clientMu, writeMu.
	mu       sync.Mutex
	doc      *dom.Document
	host     *dom.Node
	renderer *engine.Renderer
	state    any

	clients  map[*websocket.Conn]bool
	clientMu sync.RWMutex
	writeMu  sync.Mutex
	upgrader websocket.Upgrader
}

// New renders tmpl with state and returns a server for it.
func New(tmpl engine.Template, state any, opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}
	if opts.Title == "" {
		opts.Title = "incr preview"
	}

	doc := dom.NewDocument()
	host := doc.CreateElement("div").(*dom.Node)
	doc.SetAttribute(host, "id", "incr-root")

	r, err := engine.Render(doc, host, tmpl, state,
		engine.WithLogger(opts.Logger),
		engine.WithMetrics(opts.Metrics),
	)
	if err != nil {
		return nil, err
	}

	return &Server{
		opts:     opts,
		logger:   opts.Logger,
		doc:      doc,
		host:     host,
		renderer: r,
		state:    state,
		clients:  make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Preview is a local tool
			},
		},
	}, nil
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/_incr/html", s.handleHTML)
	r.Get("/_incr/ws", s.HandleWebSocket)
	if s.opts.Gatherer != nil {
		r.Handle(s.opts.MetricsPath, promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// HTML returns the current content with node ids.
func (s *Server) HTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.htmlLocked()
}

func (s *Server) htmlLocked() string {
	var buf bytes.Buffer
	_ = dom.Write(&buf, s.host, dom.Options{Inner: true, NodeIDs: true})
	return buf.String()
}

// Update runs fn on the root state, refreshes and broadcasts the result.
func (s *Server) Update(fn func(state any)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.state)
	if err := s.renderer.Refresh(); err != nil {
		return err
	}
	s.broadcast(Message{Type: MessageHTML, HTML: s.htmlLocked()})
	return nil
}

// Dispatch fires event at the element with node id nid. Listeners run
// their own refreshes; the resulting content is returned.
func (s *Server) Dispatch(nid int, event string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatchLocked(nid, event)
}

func (s *Server) dispatchLocked(nid int, event string) (string, error) {
	target := s.host.FindByID(nid)
	if target == nil || target == s.host {
		return "", errors.New("E060").WithDetailf("no element with node id %d", nid)
	}
	invoked := s.doc.Dispatch(target, event, nil)
	s.logger.Debug("event dispatched", "nid", nid, "event", event, "listeners", invoked)
	return s.htmlLocked(), nil
}

// HandleWebSocket upgrades the connection, sends the current content and
// serves events until the client disconnects.
func (s *Server) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	s.mu.Lock()
	s.clientMu.Lock()
	s.clients[conn] = true
	s.clientMu.Unlock()
	s.send(conn, Message{Type: MessageHTML, HTML: s.htmlLocked()})
	s.mu.Unlock()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		s.handleMessage(conn, data)
	}

	s.clientMu.Lock()
	delete(s.clients, conn)
	s.clientMu.Unlock()
	conn.Close()
}

func (s *Server) handleMessage(conn *websocket.Conn, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(conn, errors.New("E060").Wrap(err))
		return
	}
	if msg.Type != MessageEvent || msg.Event == "" {
		s.sendError(conn, errors.New("E060").WithDetailf("unexpected message type %q", msg.Type))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	html, err := s.dispatchLocked(msg.NID, msg.Event)
	if err != nil {
		s.sendError(conn, err)
		return
	}
	s.broadcast(Message{Type: MessageHTML, HTML: html})
}

func (s *Server) sendError(conn *websocket.Conn, err error) {
	s.logger.Warn("invalid preview message", "error", err)
	s.send(conn, Message{Type: MessageError, Error: err.Error()})
}

func (s *Server) send(conn *websocket.Conn, msg Message) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		return false
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, data) == nil
}

// broadcast sends msg to all clients, dropping those that fail.
func (s *Server) broadcast(msg Message) {
	s.clientMu.RLock()
	clients := make([]*websocket.Conn, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}
	s.clientMu.RUnlock()

	for _, client := range clients {
		if !s.send(client, msg) {
			s.clientMu.Lock()
			delete(s.clients, client)
			s.clientMu.Unlock()
			client.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.clientMu.RLock()
	defer s.clientMu.RUnlock()
	return len(s.clients)
}

// Close disconnects every client and destroys the render root.
func (s *Server) Close() error {
	s.clientMu.Lock()
	for client := range s.clients {
		client.Close()
		delete(s.clients, client)
	}
	s.clientMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer.Destroy()
}

func (s *Server) handleHTML(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, s.HTML())
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTemplate.Execute(w, struct {
		Title   string
		Content template.HTML
	}{
		Title:   s.opts.Title,
		Content: template.HTML(s.HTML()),
	})
	if err != nil {
		s.logger.Error("index render failed", "error", err)
	}
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<div id="incr-root">{{.Content}}</div>
<script>
(function() {
    'use strict';

    var root = document.getElementById('incr-root');
    var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
    var ws = new WebSocket(protocol + '//' + location.host + '/_incr/ws');

    ws.onmessage = function(e) {
        var msg;
        try {
            msg = JSON.parse(e.data);
        } catch (err) {
            return;
        }
        if (msg.type === 'html') {
            root.innerHTML = msg.html;
        } else if (msg.type === 'error') {
            console.error('[incr]', msg.error);
        }
    };

    root.addEventListener('click', function(e) {
        var el = e.target.closest('[data-nid]');
        if (!el || ws.readyState !== WebSocket.OPEN) {
            return;
        }
        ws.send(JSON.stringify({type: 'event', nid: parseInt(el.dataset.nid, 10), event: 'click'}));
    });
})();
</script>
</body>
</html>
`))
