package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// SequenceAllocator hands out the next value of a gapless, monotonically
// increasing counter keyed by scope (e.g. "JV-2025-08" for journals, "2025"
// for certificates). Allocation happens inside the caller's transaction so the
// number is consumed only if the enclosing document commit succeeds.
type SequenceAllocator interface {
	// NextInTx returns the next sequence value for the scope, serializing
	// concurrent callers via a row lock on the scope's counter. Returns
	// apperrors.ErrSequenceConflict when two transactions race to seed the
	// same scope; callers retry that transparently.
	NextInTx(ctx context.Context, tx pgx.Tx, scopeKey string) (int64, error)
}
