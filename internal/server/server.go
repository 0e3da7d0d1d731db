package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/scythe504/spyfall-backend/internal/database"
	"github.com/scythe504/spyfall-backend/internal/game"
	"github.com/scythe504/spyfall-backend/internal/hub"
)

type Server struct {
	addr       string
	engine     *game.Engine
	hub        *hub.Hub
	db         database.Service // nil when no database is configured
	sendBuffer int
	log        zerolog.Logger
}

type Option func(*Server)

func WithDatabase(db database.Service) Option {
	return func(s *Server) { s.db = db }
}

func WithSendBuffer(n int) Option {
	return func(s *Server) { s.sendBuffer = n }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) { s.log = logger }
}

func New(addr string, engine *game.Engine, h *hub.Hub, opts ...Option) *Server {
	s := &Server{
		addr:       addr,
		engine:     engine,
		hub:        h,
		sendBuffer: hub.DefaultSendBuffer,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HTTPServer wires the routes into an http.Server listening on addr.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.addr,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
