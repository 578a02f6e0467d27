package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/coolbeans/slovlex/pkg/types"
)

// schema bootstraps the three tables. Provisions keep their document
// position so ordering survives the round trip.
const schema = `
CREATE TABLE IF NOT EXISTS acts (
	law_id        TEXT PRIMARY KEY,
	year          INTEGER NOT NULL,
	number        INTEGER NOT NULL,
	title         TEXT NOT NULL,
	short_title   TEXT NOT NULL DEFAULT '',
	full_title    TEXT NOT NULL,
	status        TEXT NOT NULL,
	issued_date   TEXT NOT NULL DEFAULT '',
	in_force_date TEXT NOT NULL DEFAULT '',
	source_url    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS provisions (
	law_id    TEXT NOT NULL REFERENCES acts(law_id) ON DELETE CASCADE,
	position  INTEGER NOT NULL,
	reference TEXT NOT NULL,
	chapter   TEXT NOT NULL DEFAULT '',
	section   TEXT NOT NULL,
	title     TEXT NOT NULL,
	content   TEXT NOT NULL,
	PRIMARY KEY (law_id, position)
);

CREATE TABLE IF NOT EXISTS definitions (
	law_id        TEXT NOT NULL REFERENCES acts(law_id) ON DELETE CASCADE,
	provision_ref TEXT NOT NULL,
	term          TEXT NOT NULL,
	definition    TEXT NOT NULL,
	PRIMARY KEY (law_id, provision_ref, term)
);`

// PostgresStore persists acts in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects to the database and verifies the connection.
func OpenPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: opening postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: pinging postgres: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the tables when absent.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("store: ensuring schema: %w", err)
	}
	return nil
}

// SaveAct replaces the stored record for the act's law id in one
// transaction: the prior act row (and its cascaded provisions and
// definitions) is deleted before the new rows are inserted.
func (s *PostgresStore) SaveAct(ctx context.Context, act *types.ParsedAct) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM acts WHERE law_id = $1`, act.LawID); err != nil {
		return fmt.Errorf("store: deleting prior record for %s: %w", act.LawID, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO acts (law_id, year, number, title, short_title, full_title, status, issued_date, in_force_date, source_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		act.LawID, act.Year, act.Number, act.Title, act.ShortTitle, act.FullTitle,
		string(act.Status), act.IssuedDate, act.InForceDate, act.SourceURL)
	if err != nil {
		return fmt.Errorf("store: inserting act %s: %w", act.LawID, err)
	}

	for i, provision := range act.Provisions {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO provisions (law_id, position, reference, chapter, section, title, content)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			act.LawID, i, provision.Reference, provision.Chapter, provision.Section,
			provision.Title, provision.Content)
		if err != nil {
			return fmt.Errorf("store: inserting provision %s %s: %w", act.LawID, provision.Reference, err)
		}
	}

	for _, definition := range act.Definitions {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO definitions (law_id, provision_ref, term, definition)
			VALUES ($1, $2, $3, $4)`,
			act.LawID, definition.ProvisionRef, definition.Term, definition.Definition)
		if err != nil {
			return fmt.Errorf("store: inserting definition %s %q: %w", act.LawID, definition.Term, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: committing %s: %w", act.LawID, err)
	}
	return nil
}
