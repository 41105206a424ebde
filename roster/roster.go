// Package roster reads the prospect roster from Postgres. The roster maps
// event pitchers to the recruiting contacts who receive their reports.
package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pitch-reports/report"
)

// ErrNotFound is returned when no prospect matches a lookup.
var ErrNotFound = errors.New("prospect not found")

// Prospect is one tracked player on the recruiting roster.
type Prospect struct {
	ID          int     `json:"id"`
	Event       string  `json:"event"`
	Name        string  `json:"name"`
	Email       *string `json:"email"`
	PlayerType  string  `json:"player_type"`
	TargetLevel string  `json:"target_level"`
}

// Level resolves the prospect's recruiting target to a benchmark level,
// defaulting to D1 when unset or unrecognized.
func (p *Prospect) Level() report.Level {
	return report.ResolveLevel(p.TargetLevel)
}

// Store reads prospects from Postgres.
type Store struct {
	db *pgxpool.Pool
}

// Connect opens a pgx pool against the roster database and verifies it.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse db config: %w", err)
	}

	cfg.MaxConns = 25
	cfg.MinConns = 5
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = time.Minute * 30

	db, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.Ping(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// NewStore wraps an existing pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Close releases the pool.
func (s *Store) Close() {
	s.db.Close()
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

const prospectColumns = `id, event, name, email, player_type, target_level`

// Pitchers lists every pitcher prospect on the roster.
func (s *Store) Pitchers(ctx context.Context) ([]Prospect, error) {
	query := `
		SELECT ` + prospectColumns + `
		FROM prospects
		WHERE LOWER(player_type) = 'pitcher'
		ORDER BY name ASC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query prospects: %w", err)
	}
	defer rows.Close()

	var prospects []Prospect
	for rows.Next() {
		var p Prospect
		if err := rows.Scan(&p.ID, &p.Event, &p.Name, &p.Email, &p.PlayerType, &p.TargetLevel); err != nil {
			return nil, fmt.Errorf("failed to scan prospect: %w", err)
		}
		prospects = append(prospects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prospects: %w", err)
	}

	return prospects, nil
}

// FindPitcher looks up a pitcher prospect by name, case-insensitively.
func (s *Store) FindPitcher(ctx context.Context, name string) (*Prospect, error) {
	query := `
		SELECT ` + prospectColumns + `
		FROM prospects
		WHERE LOWER(player_type) = 'pitcher' AND LOWER(name) = LOWER($1)
		LIMIT 1
	`

	var p Prospect
	err := s.db.QueryRow(ctx, query, strings.TrimSpace(name)).Scan(
		&p.ID, &p.Event, &p.Name, &p.Email, &p.PlayerType, &p.TargetLevel,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query prospect: %w", err)
	}

	return &p, nil
}
