package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/siamerp/finpost/internal/apperrors"
	portsrepo "github.com/siamerp/finpost/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSequenceRepository allocates gapless document numbers from the
// document_sequences table. The counter row is locked FOR UPDATE inside the
// caller's transaction, so two concurrent postings in the same scope serialize
// on the row and a rolled-back posting never consumes a number.
type PgxSequenceRepository struct {
	BaseRepository
}

// NewSequenceRepository creates a new sequence allocator.
func NewSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceAllocator {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceAllocator = (*PgxSequenceRepository)(nil)

// NextInTx returns the next sequence value for the scope key.
func (r *PgxSequenceRepository) NextInTx(ctx context.Context, tx pgx.Tx, scopeKey string) (int64, error) {
	var last int64
	err := tx.QueryRow(ctx,
		`SELECT last_number FROM document_sequences WHERE scope_key = $1 FOR UPDATE;`,
		scopeKey,
	).Scan(&last)

	if errors.Is(err, pgx.ErrNoRows) {
		// First number in this scope: seed the counter. Two transactions can
		// both observe the missing row; the unique key on scope_key makes the
		// loser fail with a conflict the caller retries.
		if _, err := tx.Exec(ctx,
			`INSERT INTO document_sequences (scope_key, last_number) VALUES ($1, 1);`,
			scopeKey,
		); err != nil {
			if isUniqueViolation(err) {
				return 0, fmt.Errorf("%w: scope %s", apperrors.ErrSequenceConflict, scopeKey)
			}
			return 0, apperrors.NewAppError(500, "failed to seed sequence for scope "+scopeKey, err)
		}
		return 1, nil
	}
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to lock sequence for scope "+scopeKey, err)
	}

	next := last + 1
	if _, err := tx.Exec(ctx,
		`UPDATE document_sequences SET last_number = $2 WHERE scope_key = $1;`,
		scopeKey, next,
	); err != nil {
		return 0, apperrors.NewAppError(500, "failed to advance sequence for scope "+scopeKey, err)
	}
	return next, nil
}
