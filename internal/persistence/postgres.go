package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-core-go/internal/pkg/database"
)

// PostgresStore keeps the document snapshot in a single keyed row, for
// deployments where the composer moves between workstations.
type PostgresStore struct {
	db     *database.DB
	logger *slog.Logger
}

func NewPostgresStore(db *database.DB, logger *slog.Logger) (*PostgresStore, error) {
	s := &PostgresStore{db: db, logger: logger}

	_, err := db.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS document_snapshots (
			slot TEXT PRIMARY KEY,
			payload JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("ensure snapshot table: %w", err)
	}

	return s, nil
}

func (s *PostgresStore) Save(ctx context.Context, doc timesheet.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO document_snapshots (slot, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (slot)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
	`, Slot, payload)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}

	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (*timesheet.Document, error) {
	var payload []byte
	err := s.db.QueryRow(ctx, `
		SELECT payload FROM document_snapshots WHERE slot = $1
	`, Slot).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}

	var doc timesheet.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		s.logger.Warn("discarding corrupt document snapshot", "slot", Slot, "error", err)
		return nil, nil
	}

	return &doc, nil
}
