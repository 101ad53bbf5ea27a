package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/mookgen/internal/game/generator"
)

// ErrStatblockNotFound is returned when a statblock lookup yields no results.
var ErrStatblockNotFound = errors.New("statblock not found")

// ErrStatblockExists is returned when saving a statblock whose ID is already stored.
var ErrStatblockExists = errors.New("statblock already saved")

// StatblockSummary is one row of the generation history.
type StatblockSummary struct {
	ID         uuid.UUID
	TemplateID string
	Name       string
	CreatedAt  time.Time
}

// StatblockRepository persists generated statblocks. The full statblock is
// stored as a jsonb document next to the columns used for listing.
type StatblockRepository struct {
	db *pgxpool.Pool
}

// NewStatblockRepository creates a StatblockRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewStatblockRepository(db *pgxpool.Pool) *StatblockRepository {
	return &StatblockRepository{db: db}
}

// Save inserts sb.
//
// Precondition: sb must be non-nil with a non-nil ID.
// Postcondition: Returns nil on success, ErrStatblockExists on a duplicate ID.
func (r *StatblockRepository) Save(ctx context.Context, sb *generator.Statblock) error {
	if sb == nil || sb.ID == uuid.Nil {
		return errors.New("saving statblock: statblock must have an id")
	}
	body, err := json.Marshal(sb)
	if err != nil {
		return fmt.Errorf("encoding statblock: %w", err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO statblocks (id, template_id, name, created_at, body)
		VALUES ($1::uuid, $2, $3, $4, $5)`,
		sb.ID.String(), sb.TemplateID, sb.Name, sb.CreatedAt, body,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrStatblockExists
		}
		return fmt.Errorf("inserting statblock: %w", err)
	}
	return nil
}

// List returns the most recent statblocks, newest first. An empty templateID
// lists every template.
//
// Precondition: limit must be > 0.
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *StatblockRepository) List(ctx context.Context, templateID string, limit int) ([]StatblockSummary, error) {
	if limit < 1 {
		return nil, fmt.Errorf("listing statblocks: limit must be > 0, got %d", limit)
	}
	rows, err := r.db.Query(ctx, `
		SELECT id::text, template_id, name, created_at
		FROM statblocks
		WHERE $1 = '' OR template_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2`,
		templateID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing statblocks: %w", err)
	}
	defer rows.Close()

	out := make([]StatblockSummary, 0)
	for rows.Next() {
		var (
			s  StatblockSummary
			id string
		)
		if err := rows.Scan(&id, &s.TemplateID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning statblock row: %w", err)
		}
		if s.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parsing statblock id %q: %w", id, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID retrieves a full statblock.
//
// Postcondition: Returns the Statblock or ErrStatblockNotFound.
func (r *StatblockRepository) GetByID(ctx context.Context, id uuid.UUID) (*generator.Statblock, error) {
	var body []byte
	err := r.db.QueryRow(ctx, `SELECT body FROM statblocks WHERE id = $1::uuid`, id.String()).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStatblockNotFound
		}
		return nil, fmt.Errorf("querying statblock: %w", err)
	}
	var sb generator.Statblock
	if err := json.Unmarshal(body, &sb); err != nil {
		return nil, fmt.Errorf("decoding statblock %s: %w", id, err)
	}
	return &sb, nil
}

func isDuplicateKeyError(err error) bool {
	// SQLSTATE 23505 is unique_violation.
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
