package repositories

import (
	"context"

	"github.com/siamerp/finpost/internal/core/domain"
)

// DeterminationReader defines read operations for GL determination configuration
type DeterminationReader interface {
	// FindDetermination retrieves the configuration entry for a (profile, process key)
	// pair. Returns apperrors.ErrNotFound when the pair is not configured.
	FindDetermination(ctx context.Context, profileName, processKey string) (*domain.GLDetermination, error)

	// ListDeterminations retrieves every entry of a configuration profile.
	ListDeterminations(ctx context.Context, profileName string) ([]domain.GLDetermination, error)
}

// DeterminationWriter defines write operations for GL determination configuration
type DeterminationWriter interface {
	// UpsertDetermination creates or replaces the entry for (profile, process key).
	UpsertDetermination(ctx context.Context, det domain.GLDetermination) error
}

// DeterminationRepositoryFacade combines determination repository interfaces
type DeterminationRepositoryFacade interface {
	DeterminationReader
	DeterminationWriter
}
