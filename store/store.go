// Package store persists pricing runs to Postgres so batch runs can be
// compared after the fact.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/meenmo/mbslib/sim"
)

// Store wraps a Postgres connection for run persistence.
type Store struct {
	db *sql.DB
}

// Open connects using a lib/pq DSN, either URL or key=value form.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("Open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("Open: ping: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS mbs_runs (
	id         UUID PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL,
	runs       INTEGER NOT NULL,
	seed       BIGINT NOT NULL,
	pool_size  INTEGER NOT NULL,
	cpr        DOUBLE PRECISION NOT NULL,
	cdr        DOUBLE PRECISION NOT NULL,
	recovery   DOUBLE PRECISION NOT NULL,
	disc_rate  DOUBLE PRECISION NOT NULL
);

CREATE TABLE IF NOT EXISTS mbs_run_tranches (
	run_id   UUID NOT NULL REFERENCES mbs_runs (id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	name     TEXT NOT NULL,
	face     DOUBLE PRECISION NOT NULL,
	coupon   DOUBLE PRECISION NOT NULL,
	pv       DOUBLE PRECISION NOT NULL,
	std_err  DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (run_id, position)
);`

// Init creates the run tables if they do not exist.
func (s *Store) Init() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("Init: %w", err)
	}
	return nil
}

// SaveResult writes one pricing run with its inputs and per-tranche values,
// returning the generated run ID.
func (s *Store) SaveResult(cfg sim.Config, res *sim.Result) (uuid.UUID, error) {
	id := uuid.New()

	tx, err := s.db.Begin()
	if err != nil {
		return uuid.Nil, fmt.Errorf("SaveResult: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO mbs_runs (id, created_at, runs, seed, pool_size, cpr, cdr, recovery, disc_rate)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, time.Now().UTC(), res.Runs, int64(cfg.Seed), cfg.PoolSize,
		cfg.CPR, cfg.CDR, cfg.Recovery, cfg.DiscountRate,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("SaveResult: run row: %w", err)
	}

	for i, tv := range res.Tranches {
		def := cfg.Tranches[i]
		_, err = tx.Exec(
			`INSERT INTO mbs_run_tranches (run_id, position, name, face, coupon, pv, std_err)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			id, i, tv.Name, def.Face, def.Coupon, tv.PV, tv.StdErr,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("SaveResult: tranche %s: %w", tv.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("SaveResult: commit: %w", err)
	}
	return id, nil
}
