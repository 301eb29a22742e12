package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/firesync/firesync/internal/models"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Repository persists finished matches through database/sql, on sqlite or
// postgres depending on env. It records history only; nothing in the game
// reads it back to resume a session.
type Repository struct {
	dialect Dialect
	db      *sql.DB
}

// OpenFromEnv opens the repository selected by MATCH_DB_DIALECT. An unset
// dialect means no persistence: (nil, nil).
//
//	MATCH_DB_DIALECT       sqlite | postgres
//	MATCH_DB_SQLITE_PATH   sqlite file (default tmp/firesync_matches.sqlite)
//	MATCH_DB_POSTGRES_DSN  postgres DSN (DATABASE_URL also honoured)
func OpenFromEnv() (*Repository, error) {
	dialectRaw := strings.TrimSpace(strings.ToLower(os.Getenv("MATCH_DB_DIALECT")))
	if dialectRaw == "" {
		return nil, nil
	}
	dialect := Dialect(dialectRaw)

	var driverName string
	var dsn string
	switch dialect {
	case DialectSQLite:
		driverName = "sqlite"
		path := strings.TrimSpace(os.Getenv("MATCH_DB_SQLITE_PATH"))
		if path == "" {
			path = filepath.Join("tmp", "firesync_matches.sqlite")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
		dsn = path
	case DialectPostgres:
		driverName = "pgx"
		dsn = strings.TrimSpace(os.Getenv("MATCH_DB_POSTGRES_DSN"))
		if dsn == "" {
			dsn = strings.TrimSpace(os.Getenv("DATABASE_URL"))
		}
		if dsn == "" {
			return nil, errors.New("MATCH_DB_DIALECT=postgres requires MATCH_DB_POSTGRES_DSN or DATABASE_URL")
		}
	default:
		return nil, fmt.Errorf("unsupported MATCH_DB_DIALECT %q", dialectRaw)
	}

	return Open(dialect, driverName, dsn)
}

// Open connects, pings, and creates the schema.
func Open(dialect Dialect, driverName, dsn string) (*Repository, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s database: %w", dialect, err)
	}

	r := &Repository{dialect: dialect, db: db}
	if err := r.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Printf("match store: dialect=%s", dialect)
	return r, nil
}

func (r *Repository) Close() error { return r.db.Close() }

func (r *Repository) bind(pos int) string {
	if r.dialect == DialectPostgres {
		return fmt.Sprintf("$%d", pos)
	}
	return "?"
}

func (r *Repository) ensureSchema(ctx context.Context) error {
	ddl := `CREATE TABLE IF NOT EXISTS matches (
		id TEXT PRIMARY KEY,
		played TEXT NOT NULL,
		team TEXT NOT NULL,
		wins INTEGER NOT NULL,
		losses INTEGER NOT NULL,
		final_budget INTEGER NOT NULL,
		rounds TEXT NOT NULL
	)`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create matches table: %w", err)
	}
	return nil
}

// Save inserts one finished match. Rounds are stored as a JSON blob; the
// history is append-only.
func (r *Repository) Save(ctx context.Context, m models.MatchSummary) error {
	rounds, err := json.Marshal(m.Rounds)
	if err != nil {
		return fmt.Errorf("encode rounds: %w", err)
	}
	q := fmt.Sprintf(
		`INSERT INTO matches (id, played, team, wins, losses, final_budget, rounds)
		 VALUES (%s, %s, %s, %s, %s, %s, %s)`,
		r.bind(1), r.bind(2), r.bind(3), r.bind(4), r.bind(5), r.bind(6), r.bind(7),
	)
	_, err = r.db.ExecContext(ctx, q,
		m.ID, m.Played.UTC().Format(time.RFC3339), m.Team,
		m.Wins, m.Losses, m.FinalBudget, string(rounds),
	)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

// Recent returns up to limit matches, newest first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]models.MatchSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	q := fmt.Sprintf(
		`SELECT id, played, team, wins, losses, final_budget, rounds
		 FROM matches ORDER BY played DESC LIMIT %s`, r.bind(1),
	)
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var out []models.MatchSummary
	for rows.Next() {
		var m models.MatchSummary
		var played, rounds string
		if err := rows.Scan(&m.ID, &played, &m.Team, &m.Wins, &m.Losses, &m.FinalBudget, &rounds); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, played); err == nil {
			m.Played = t
		}
		if err := json.Unmarshal([]byte(rounds), &m.Rounds); err != nil {
			return nil, fmt.Errorf("decode rounds for %s: %w", m.ID, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
