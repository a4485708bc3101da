// Package devtools exposes a tree over HTTP for inspection and poking during
// development: a flat dump of the registry, the live state sets, mutation
// endpoints per node, and a websocket that streams state changes as they
// happen. It is meant to be mounted on a dev server, not shipped.
package devtools

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/loom-ui/loom/pkg/nested"
	"github.com/loom-ui/loom/pkg/reactive"
)

// Default tracer name for devtools servers.
const defaultTracerName = "loom.devtools"

// State is the JSON shape of the tree's live state, served on /state and
// streamed over /ws.
type State struct {
	Selected []string `json:"selected"`
	Mixed    []string `json:"mixed"`
	Opened   []string `json:"opened"`
	Active   []string `json:"active"`
	Roots    []string `json:"roots"`
	Leaves   []string `json:"leaves"`
	Size     int      `json:"size"`
}

// Config configures a devtools server.
type Config struct {
	// TracerName names the tracer used for mutation spans (default:
	// "loom.devtools").
	TracerName string

	// Logger receives request and websocket lifecycle logs. Defaults to
	// slog.Default with a component attribute.
	Logger *slog.Logger

	// CheckOrigin overrides the websocket origin check. The default accepts
	// any origin, which is what you want on localhost and nowhere else.
	CheckOrigin func(r *http.Request) bool
}

// Option configures a devtools server.
type Option func(*Config)

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithCheckOrigin sets the websocket origin check.
func WithCheckOrigin(check func(r *http.Request) bool) Option {
	return func(c *Config) {
		c.CheckOrigin = check
	}
}

// Server serves one tree.
type Server[T any] struct {
	tree     *nested.Nested[T]
	logger   *slog.Logger
	tracer   trace.Tracer
	upgrader websocket.Upgrader
	router   chi.Router
}

// New creates a devtools server around the given tree.
func New[T any](tree *nested.Nested[T], opts ...Option) *Server[T] {
	cfg := Config{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default().With("component", "devtools")
	}
	if cfg.CheckOrigin == nil {
		cfg.CheckOrigin = func(*http.Request) bool { return true }
	}

	s := &Server[T]{
		tree:   tree,
		logger: cfg.Logger,
		tracer: otel.Tracer(cfg.TracerName),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     cfg.CheckOrigin,
		},
	}

	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Get("/tree", s.handleTree)
	r.Get("/state", s.handleState)
	r.Post("/nodes/{id}/{action}", s.handleAction)
	r.Get("/ws", s.handleWS)
	s.router = r
	return s
}

// Handler returns the HTTP handler. Mount it wherever the dev server lives:
//
//	mux.Handle("/debug/tree/", http.StripPrefix("/debug/tree", dt.Handler()))
func (s *Server[T]) Handler() http.Handler {
	return s.router
}

func (s *Server[T]) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start))
	})
}

func (s *Server[T]) handleTree(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.tree.ToFlat())
}

func (s *Server[T]) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.snapshotState())
}

// handleAction applies one named mutation to one node. Unknown node IDs are
// no-ops at the tree level; the handler still returns the resulting state so
// clients always see something coherent.
func (s *Server[T]) handleAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	action := chi.URLParam(r, "action")

	_, span := s.tracer.Start(r.Context(), "devtools."+action,
		trace.WithAttributes(
			attribute.String("node.id", id),
			attribute.String("action", action),
		))
	defer span.End()

	switch action {
	case "select":
		s.tree.Select(id)
	case "unselect":
		s.tree.Unselect(id)
	case "toggle":
		s.tree.Toggle(id)
	case "open":
		s.tree.Open(id)
	case "close":
		s.tree.Close(id)
	case "flip":
		s.tree.Flip(id)
	case "reveal":
		s.tree.Reveal(id)
	case "activate":
		s.tree.Activate(id)
	case "deactivate":
		s.tree.Deactivate(id)
	default:
		span.SetStatus(codes.Error, "unknown action")
		http.Error(w, "unknown action: "+action, http.StatusBadRequest)
		return
	}

	span.SetAttributes(attribute.Int("selected.count", len(s.tree.SelectedIDs())))
	writeJSON(w, s.snapshotState())
}

// handleWS upgrades to a websocket and streams the state on every change.
// A watcher re-reads the state sets so any mutation, from HTTP or from the
// program embedding the tree, wakes the stream. Writes happen on a single
// goroutine; the watcher only signals, coalescing bursts into one frame.
func (s *Server[T]) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	notify := make(chan State, 1)
	watcher := reactive.Watch(func() {
		state := s.snapshotState()
		select {
		case notify <- state:
		default:
			// A frame is already pending; drop this one, the pending
			// write will re-read anyway on the next wake.
		}
	})
	defer watcher.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	s.logger.Debug("websocket connected", "remote", r.RemoteAddr)
	for {
		select {
		case state := <-notify:
			if err := conn.WriteJSON(state); err != nil {
				s.logger.Debug("websocket write failed", "error", err)
				return
			}
		case <-done:
			s.logger.Debug("websocket closed", "remote", r.RemoteAddr)
			return
		case <-r.Context().Done():
			return
		}
	}
}

// snapshotState reads the tracked state signals. Called both from handlers
// (untracked) and from the websocket watcher (tracked, which is what wires
// the stream to the signals).
func (s *Server[T]) snapshotState() State {
	return State{
		Selected: s.tree.SelectedIDs(),
		Mixed:    s.tree.MixedIDs(),
		Opened:   s.tree.OpenedIDs(),
		Active:   s.tree.ActiveIDs(),
		Roots:    s.tree.Roots(),
		Leaves:   s.tree.Leaves(),
		Size:     s.tree.Size(),
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
