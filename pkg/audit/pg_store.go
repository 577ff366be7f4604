package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Entry is one recorded registry mutation.
type Entry struct {
	ID        string          `json:"id"`
	Action    string          `json:"action"`
	AirportID string          `json:"airport_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewEntry builds an entry for action on airportID, encoding payload as JSON.
func NewEntry(action, airportID string, payload any) (Entry, error) {
	entry := Entry{
		ID:        uuid.NewString(),
		Action:    action,
		AirportID: airportID,
		CreatedAt: time.Now().UTC(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return Entry{}, fmt.Errorf("marshal audit payload: %w", err)
		}
		entry.Payload = raw
	}
	return entry, nil
}

// PostgresJournal appends registry mutations to Postgres. It is write-mostly
// and is never used to rebuild the registry.
type PostgresJournal struct {
	db *sql.DB
}

// NewPostgresJournal opens dsn with the pgx driver and ensures the audit table exists.
func NewPostgresJournal(ctx context.Context, dsn string) (*PostgresJournal, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres connection string is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	db.SetMaxIdleConns(5)
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(time.Hour)

	j, err := NewJournalWithDB(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

// NewJournalWithDB wraps an opened database handle and ensures the audit
// table exists. Closing the journal closes db.
func NewJournalWithDB(ctx context.Context, db *sql.DB) (*PostgresJournal, error) {
	j := &PostgresJournal{db: db}
	if err := j.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *PostgresJournal) ensureSchema(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS airport_audit (
    id TEXT PRIMARY KEY,
    action TEXT NOT NULL,
    airport_id TEXT NOT NULL,
    payload JSONB,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS airport_audit_created_at_idx ON airport_audit (created_at DESC);
`
	if _, err := j.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	return nil
}

func (j *PostgresJournal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Record appends entry. A nil payload is stored as SQL NULL.
func (j *PostgresJournal) Record(ctx context.Context, entry Entry) error {
	var payload any
	if len(entry.Payload) > 0 {
		payload = []byte(entry.Payload)
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO airport_audit (id, action, airport_id, payload, created_at) VALUES ($1,$2,$3,$4,$5)`,
		entry.ID, entry.Action, entry.AirportID, payload, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record audit entry %s: %w", entry.ID, err)
	}
	return nil
}

// List returns the latest entries, newest first.
func (j *PostgresJournal) List(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, action, airport_id, payload, created_at FROM airport_audit ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var payload []byte
		if err := rows.Scan(&e.ID, &e.Action, &e.AirportID, &payload, &e.CreatedAt); err != nil {
			return nil, err
		}
		if len(payload) > 0 {
			e.Payload = json.RawMessage(payload)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
