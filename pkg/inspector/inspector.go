package inspector

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/deuce-x/deuce/pkg/dom"
	"github.com/deuce-x/deuce/pkg/loop"
	"github.com/deuce-x/deuce/pkg/render"
)

// MessageType identifies a message on the WebSocket.
type MessageType string

const (
	// TypeSnapshot carries the container's HTML after a commit (server to
	// browser).
	TypeSnapshot MessageType = "snapshot"

	// TypeEvent carries a DOM event (browser to server).
	TypeEvent MessageType = "event"

	// TypeError reports a rejected event (server to browser).
	TypeError MessageType = "error"
)

// Message is a WebSocket frame.
type Message struct {
	Type MessageType `json:"type"`

	// Snapshot
	Seq  uint64 `json:"seq,omitempty"`
	HTML string `json:"html,omitempty"`

	// Event. Path holds element-child indexes from the container; text
	// nodes are not counted.
	Path  []int  `json:"path,omitempty"`
	Event string `json:"event,omitempty"`
	Key   string `json:"key,omitempty"`
	Value string `json:"value,omitempty"`

	// Error
	Error string `json:"error,omitempty"`
}

// Snapshot is the state of the container at a commit.
type Snapshot struct {
	Seq  uint64 `json:"seq"`
	HTML string `json:"html"`
}

// sendBuffer is the number of snapshots queued per client before it is
// dropped as too slow.
const sendBuffer = 16

// Server serves a live view of a rendered root.
type Server struct {
	root     *render.Root
	doc      *dom.Memory
	loop     *loop.Loop
	logger   *slog.Logger
	gatherer prometheus.Gatherer
	title    string

	upgrader    websocket.Upgrader
	router      chi.Router
	unsubscribe func()

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGatherer serves the gatherer's metrics on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(s *Server) {
		s.title = title
	}
}

// New creates a server for root, which must have been rendered into a
// container of doc. The loop must be driven by someone else, usually
// Loop.Run.
func New(root *render.Root, doc *dom.Memory, l *loop.Loop, opts ...Option) *Server {
	s := &Server{
		root:    root,
		doc:     doc,
		loop:    l,
		logger:  slog.Default(),
		title:   "deuce",
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "inspector")
	s.unsubscribe = root.Subscribe(s.onCommit)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/snapshot", s.handleSnapshot)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Snapshot returns the current state of the container. It runs on the loop.
func (s *Server) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := s.loop.Call(ctx, func() {
		snap = s.snapshot()
	})
	return snap, err
}

// snapshot must run on the loop.
func (s *Server) snapshot() Snapshot {
	return Snapshot{Seq: s.root.Commits(), HTML: dom.InnerHTML(s.root.Container())}
}

// Dispatch delivers an event to the element at path. It runs on the loop
// and reports whether the element exists.
func (s *Server) Dispatch(ctx context.Context, path []int, ev dom.Event) (bool, error) {
	found := false
	err := s.loop.Call(ctx, func() {
		el, ok := dom.At(s.root.Container(), path)
		if !ok {
			return
		}
		found = true
		n := s.doc.Dispatch(el, ev)
		s.logger.Debug("event dispatched", "event", ev.Type, "path", path, "listeners", n)
	})
	return found, err
}

// onCommit runs on the loop after every commit of the root.
func (s *Server) onCommit(c render.Commit) {
	data, err := json.Marshal(Message{
		Type: TypeSnapshot,
		Seq:  c.Seq,
		HTML: dom.InnerHTML(s.root.Container()),
	})
	if err != nil {
		return
	}
	s.broadcast(data)
}

func (s *Server) broadcast(data []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.clients {
		c.enqueue(data)
	}
}

// ClientCount returns the number of connected WebSocket clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Close stops following the root and disconnects every client.
func (s *Server) Close() {
	s.unsubscribe()

	s.mu.Lock()
	s.closed = true
	clients := s.clients
	s.clients = make(map[*client]struct{})
	s.mu.Unlock()

	for c := range clients {
		c.close()
	}
}

// Serve listens on addr and serves until ctx ends.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx ends.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("inspector listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errCh
	return nil
}
