package services

import (
	"context"

	"github.com/siamerp/finpost/internal/core/domain"
	"github.com/siamerp/finpost/internal/dto"
)

// DeterminationSvc resolves abstract business-process keys to concrete ledger
// accounts. Business logic never embeds a literal account code.
type DeterminationSvc interface {
	// ResolveAccount returns the account id configured for the process key under
	// the given profile ("" means the Default profile). The category parameter
	// is an override extension point; pass nil when no category applies.
	// A missing configuration fails with apperrors.ErrConfigurationMissing.
	ResolveAccount(ctx context.Context, processKey string, profileName string, category *string) (string, error)

	// ListDeterminations returns every configuration entry of a profile.
	ListDeterminations(ctx context.Context, profileName string) ([]domain.GLDetermination, error)

	// UpsertDetermination creates or replaces a configuration entry and
	// synchronously invalidates the resolver cache.
	UpsertDetermination(ctx context.Context, req dto.UpsertDeterminationRequest, actingUserID string) (*domain.GLDetermination, error)
}

// DeterminationSvcFacade is the full determination service surface.
type DeterminationSvcFacade interface {
	DeterminationSvc
}
