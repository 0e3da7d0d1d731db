package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/scythe504/spyfall-backend/internal"
)

// DefaultHistoryLimit caps RecentOutcomes when the caller passes a
// non-positive limit.
const DefaultHistoryLimit = 20

// Service is the append-only archive of resolved rounds. Live rooms are never
// restored from it.
type Service interface {
	// Health returns a map of health status information.
	Health(ctx context.Context) map[string]string

	RecordOutcome(ctx context.Context, outcome internal.Outcome) error

	// RecentOutcomes lists the newest outcomes of a room first.
	RecentOutcomes(ctx context.Context, code string, limit int) ([]internal.Outcome, error)

	Close()
}

type service struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS round_outcomes (
		id          UUID PRIMARY KEY,
		room_code   TEXT NOT NULL,
		spy_win     BOOLEAN NOT NULL,
		reason      TEXT NOT NULL,
		location_id TEXT NOT NULL,
		spy_names   TEXT[] NOT NULL,
		scores      JSONB NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS round_outcomes_room_code_idx
		ON round_outcomes (room_code, finished_at DESC)`,
}

// New connects to databaseURL, checks the connection and creates the schema.
func New(ctx context.Context, databaseURL string, logger zerolog.Logger) (Service, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &service{pool: pool, log: logger}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info().Str("database", pool.Config().ConnConfig.Database).Msg("connected to database")
	return s, nil
}

func (s *service) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}
	return nil
}

func (s *service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.pool.Ping(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		s.log.Error().Err(err).Msg("database health check failed")
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	poolStats := s.pool.Stat()
	stats["total_connections"] = strconv.Itoa(int(poolStats.TotalConns()))
	stats["acquired_connections"] = strconv.Itoa(int(poolStats.AcquiredConns()))
	stats["idle_connections"] = strconv.Itoa(int(poolStats.IdleConns()))
	stats["max_connections"] = strconv.Itoa(int(poolStats.MaxConns()))

	if poolStats.AcquiredConns() >= poolStats.MaxConns() {
		stats["message"] = "The database pool is exhausted."
	}

	return stats
}

func (s *service) RecordOutcome(ctx context.Context, outcome internal.Outcome) error {
	spyNames := outcome.SpyNames
	if spyNames == nil {
		spyNames = []string{}
	}
	scores := outcome.Scores
	if scores == nil {
		scores = map[string]int{}
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO round_outcomes
			(id, room_code, spy_win, reason, location_id, spy_names, scores, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.New(),
		outcome.RoomCode,
		outcome.SpyWin,
		string(outcome.Reason),
		outcome.LocationID,
		spyNames,
		scores,
		outcome.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("record outcome for room %s: %w", outcome.RoomCode, err)
	}

	s.log.Debug().Str("room", outcome.RoomCode).Str("reason", string(outcome.Reason)).Msg("archived round outcome")
	return nil
}

func (s *service) RecentOutcomes(ctx context.Context, code string, limit int) ([]internal.Outcome, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := s.pool.Query(ctx, `
		SELECT room_code, spy_win, reason, location_id, spy_names, scores, finished_at
		FROM round_outcomes
		WHERE room_code = $1
		ORDER BY finished_at DESC
		LIMIT $2`,
		code, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query outcomes for room %s: %w", code, err)
	}

	outcomes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (internal.Outcome, error) {
		var (
			o      internal.Outcome
			reason string
		)
		err := row.Scan(&o.RoomCode, &o.SpyWin, &reason, &o.LocationID, &o.SpyNames, &o.Scores, &o.FinishedAt)
		o.Reason = internal.Reason(reason)
		return o, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan outcomes for room %s: %w", code, err)
	}
	return outcomes, nil
}

func (s *service) Close() {
	s.log.Info().Msg("disconnected from database")
	s.pool.Close()
}
