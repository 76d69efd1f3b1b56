// Package bridge serves the flow panel over a websocket. A browser or plugin
// panel connects to /ws/panel, receives controller updates, and sends
// intents back; the host reports selection changes over HTTP.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"flowshow/internal/application"
	"flowshow/internal/application/controller"
	"flowshow/internal/domain"
)

const writeWait = 10 * time.Second

// Config holds server configuration
type Config struct {
	Addr     string
	AllowAll bool // allow all CORS and websocket origins
}

// Selector replaces the host selection
type Selector interface {
	SetSelection(nodeIDs []string) error
}

// Server exposes one controller loop to remote panels
type Server struct {
	cfg        Config
	loop       *controller.Loop
	hub        *Hub
	host       Selector
	log        zerolog.Logger
	upgrader   websocket.Upgrader
	router     chi.Router
	httpServer *http.Server
}

// New creates a server. The controller behind loop must post to hub.
func New(cfg Config, loop *controller.Loop, hub *Hub, host Selector, log zerolog.Logger) *Server {
	s := &Server{
		cfg:  cfg,
		loop: loop,
		hub:  hub,
		host: host,
		log:  log.With().Str("component", "bridge").Logger(),
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "panels": s.hub.Clients()})
	})

	r.Get("/ws/panel", s.handlePanel)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Post("/selection", s.handleSelection)
		r.Get("/state", s.handleState)
	})

	return r
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler { return s.router }

// Start listens on the configured address until Shutdown
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info().Str("addr", s.cfg.Addr).Msg("bridge listening")
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if s.cfg.AllowAll {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1"
}

// errorFrame reports a rejected inbound frame to the panel that sent it
type errorFrame struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

func (s *Server) handlePanel(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	c := s.hub.register()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.writePump(conn, c)
	}()

	// a new panel starts like a freshly opened plugin
	if err := s.loop.Launch(r.Context()); err != nil {
		s.log.Error().Err(err).Msg("launch failed")
	}

	s.readPump(r.Context(), conn, c)
	s.hub.unregister(c)
	<-done
}

func (s *Server) readPump(ctx context.Context, conn *websocket.Conn, c *client) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn().Err(err).Msg("websocket read")
			}
			return
		}

		var in domain.Intent
		if err := json.Unmarshal(msg, &in); err != nil || in.Type == "" {
			s.reject(c, "invalid intent")
			continue
		}
		if err := s.loop.Intent(ctx, in); err != nil {
			s.reject(c, err.Error())
		}
	}
}

func (s *Server) writePump(conn *websocket.Conn, c *client) {
	for data := range c.send {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.log.Warn().Err(err).Msg("websocket write")
			return
		}
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

func (s *Server) reject(c *client, message string) {
	data, _ := json.Marshal(errorFrame{Text: "error", Error: message})
	select {
	case c.send <- data:
	default:
	}
}

type selectionRequest struct {
	IDs []string `json:"ids"`
}

type stateResponse struct {
	SelectedArrows []string         `json:"selectedArrows"`
	SelectedFlow   domain.FlowState `json:"selectedFlow"`
	IncludeLocked  bool             `json:"includeLocked"`
}

func newStateResponse(st controller.State) stateResponse {
	ids := make([]string, 0, len(st.SelectedArrows))
	for _, a := range st.SelectedArrows {
		ids = append(ids, a.ID)
	}
	return stateResponse{SelectedArrows: ids, SelectedFlow: st.SelectedFlow, IncludeLocked: st.IncludeLocked}
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var st controller.State
	err := s.loop.Do(r.Context(), func(ctx context.Context, c *controller.Controller) error {
		if err := s.host.SetSelection(req.IDs); err != nil {
			return err
		}
		if err := c.SelectionChanged(ctx); err != nil {
			return err
		}
		st = c.State()
		return nil
	})
	switch {
	case errors.Is(err, application.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, newStateResponse(st))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st, err := s.loop.State(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(st))
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
