package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lumberg/petitions/internal/queue"
	"github.com/lumberg/petitions/internal/records"
	"github.com/rs/zerolog/log"
	"github.com/volatiletech/null/v8"
)

// Store wraps the Postgres handle holding the signature and validation
// tables. Every operation takes the handle through the receiver, there is no
// process-global connection state.
type Store struct {
	db *sql.DB
}

var _ queue.Sink = (*Store)(nil)

// New creates a Store over an open database handle and validates the static
// record-to-column mappings.
func New(db *sql.DB) (*Store, error) {
	if err := records.ValidateMappings(); err != nil {
		return nil, fmt.Errorf("invalid record mappings: %w", err)
	}

	return &Store{db: db}, nil
}

// DB exposes the underlying handle for callers that manage their own
// transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func insertStatement(table string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
}

// InsertPendingSignature persists a pending signature record.
func (s *Store) InsertPendingSignature(ctx context.Context, rec *records.PendingSignature) error {
	stmt := insertStatement(records.TableSignaturesPending, rec.Columns())

	if _, err := s.db.ExecContext(ctx, stmt, rec.Row()...); err != nil {
		return fmt.Errorf("failed to insert pending signature: %w", err)
	}

	return nil
}

// InsertValidation persists a validation record.
func (s *Store) InsertValidation(ctx context.Context, rec *records.Validation) error {
	stmt := insertStatement(records.TableValidations, rec.Columns())

	if _, err := s.db.ExecContext(ctx, stmt, rec.Row()...); err != nil {
		return fmt.Errorf("failed to insert validation: %w", err)
	}

	return nil
}

// ValidationProcessed reports whether a secret validation key is already in
// the processed-validations ledger. Read-only, single-row existence check.
func (s *Store) ValidationProcessed(ctx context.Context, secretKey string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM validations_processed WHERE secret_validation_key = $1)`,
		secretKey,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query processed validations ledger: %w", err)
	}

	return exists, nil
}

// RecordProcessedValidation adds a secret validation key to the
// processed-validations ledger. Used by the downstream counting job and by
// seed tooling; the receive workflow itself only reads the ledger.
func (s *Store) RecordProcessedValidation(ctx context.Context, secretKey string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO validations_processed (secret_validation_key) VALUES ($1)
		 ON CONFLICT (secret_validation_key) DO NOTHING`,
		secretKey,
	)
	if err != nil {
		return fmt.Errorf("failed to record processed validation: %w", err)
	}

	return nil
}

// PendingSignatureRow is a persisted pending signature as read back for the
// REST surface.
type PendingSignatureRow struct {
	ID          int64
	PetitionID  string
	FirstName   string
	LastName    string
	Zip         null.String
	Signup      int
	SubmittedAt time.Time
	CreatedAt   time.Time
}

// SignatureFilters narrows ListPendingSignatures.
type SignatureFilters struct {
	PetitionID string
	Limit      int
	Offset     int
}

// ListPendingSignatures returns pending signatures ordered newest first.
func (s *Store) ListPendingSignatures(ctx context.Context, f SignatureFilters) ([]PendingSignatureRow, error) {
	query := `SELECT id, petition_id, first_name, last_name, zip, signup, submitted_at, created_at
		FROM signatures_pending`

	args := []interface{}{}
	if f.PetitionID != "" {
		query += ` WHERE petition_id = $1`
		args = append(args, f.PetitionID)
	}

	query += fmt.Sprintf(` ORDER BY id DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending signatures: %w", err)
	}
	defer rows.Close()

	var out []PendingSignatureRow
	for rows.Next() {
		var r PendingSignatureRow
		if err := rows.Scan(&r.ID, &r.PetitionID, &r.FirstName, &r.LastName, &r.Zip, &r.Signup, &r.SubmittedAt, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pending signature row: %w", err)
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

// CountPendingSignatures returns the total number of pending signatures,
// optionally restricted to a petition.
func (s *Store) CountPendingSignatures(ctx context.Context, petitionID string) (int64, error) {
	var count int64
	var err error

	if petitionID != "" {
		err = s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM signatures_pending WHERE petition_id = $1`, petitionID,
		).Scan(&count)
	} else {
		err = s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM signatures_pending`,
		).Scan(&count)
	}

	if err != nil {
		return 0, fmt.Errorf("failed to count pending signatures: %w", err)
	}

	return count, nil
}

// Migrate applies the schema. Statements are idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}

	log.Info().Int("statements", len(migrations)).Msg("Database schema migrated")

	return nil
}
