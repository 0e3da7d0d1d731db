package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/scythe504/spyfall-backend/internal"
	"github.com/scythe504/spyfall-backend/internal/game"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// Apply CORS middleware
	r.Use(s.corsMiddleware)

	r.HandleFunc("/", s.HelloWorldHandler)
	r.HandleFunc("/health", s.HealthHandler)
	r.HandleFunc("/rooms/{code}", s.RoomHandler)
	r.HandleFunc("/rooms/{code}/history", s.HistoryHandler)

	r.HandleFunc("/ws", s.HandleWebSocket)

	return r
}

// CORS middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type")
		w.Header().Set("Access-Control-Allow-Credentials", "false")

		// If it's a websocket upgrade, skip further CORS checks
		if strings.ToLower(r.Header.Get("Upgrade")) == "websocket" {
			next.ServeHTTP(w, r)
			return
		}

		// Handle preflight OPTIONS requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) HelloWorldHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Spyfall server"})
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"status": "ok"}
	status := http.StatusOK

	if s.db != nil {
		dbHealth := s.db.Health(r.Context())
		resp["database"] = dbHealth
		if dbHealth["status"] != "up" {
			resp["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	s.writeJSON(w, status, resp)
}

func (s *Server) RoomHandler(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.engine.Snapshot(mux.Vars(r)["code"])
	if errors.Is(err, game.ErrRoomNotFound) {
		s.writeJSON(w, http.StatusNotFound, internal.ErrorData{Message: err.Error()})
		return
	}
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, internal.ErrorData{Message: "internal server error"})
		return
	}

	s.writeJSON(w, http.StatusOK, snapshot)
}

// HistoryHandler lists archived outcomes of a room, newest first. The list is
// empty when no database is configured.
func (s *Server) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	code := game.NormalizeCode(mux.Vars(r)["code"])

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeJSON(w, http.StatusBadRequest, internal.ErrorData{Message: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	outcomes := []internal.Outcome{}
	if s.db != nil {
		found, err := s.db.RecentOutcomes(r.Context(), code, limit)
		if err != nil {
			s.log.Error().Err(err).Str("room", code).Msg("failed to load room history")
			s.writeJSON(w, http.StatusInternalServerError, internal.ErrorData{Message: "internal server error"})
			return
		}
		outcomes = append(outcomes, found...)
	}

	s.writeJSON(w, http.StatusOK, outcomes)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error().Err(err).Msg("error encoding response")
	}
}
