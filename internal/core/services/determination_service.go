package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/siamerp/finpost/internal/apperrors"
	"github.com/siamerp/finpost/internal/core/domain"
	portsrepo "github.com/siamerp/finpost/internal/core/ports/repositories"
	portssvc "github.com/siamerp/finpost/internal/core/ports/services"
	"github.com/siamerp/finpost/internal/dto"
	"github.com/siamerp/finpost/internal/middleware"
)

// DefaultProfile is the configuration profile used when a caller passes none.
const DefaultProfile = "Default"

type cacheKey struct {
	profile string
	process string
}

// determinationService resolves business-process keys to ledger accounts.
// The determination table is read-mostly, so resolutions are cached; the cache
// is invalidated synchronously on every write because a stale resolution would
// misdirect real money.
type determinationService struct {
	repo portsrepo.DeterminationRepositoryFacade

	mu    sync.RWMutex
	cache map[cacheKey]string
}

// NewDeterminationService creates a new GL determination service.
func NewDeterminationService(repo portsrepo.DeterminationRepositoryFacade) portssvc.DeterminationSvcFacade {
	return &determinationService{
		repo:  repo,
		cache: make(map[cacheKey]string),
	}
}

var _ portssvc.DeterminationSvcFacade = (*determinationService)(nil)

// ResolveAccount maps a process key to a concrete account id.
// Resolution precedence: per-category override (reserved, not yet configured),
// then the profile-scoped configuration entry. No match is a hard stop.
func (s *determinationService) ResolveAccount(ctx context.Context, processKey string, profileName string, category *string) (string, error) {
	if processKey == "" {
		return "", fmt.Errorf("%w: process key is required", apperrors.ErrValidation)
	}
	if profileName == "" {
		profileName = DefaultProfile
	}

	// Category overrides are an accepted extension point. No override source is
	// configured yet, so resolution falls through to the profile configuration.
	_ = category

	key := cacheKey{profile: profileName, process: processKey}

	s.mu.RLock()
	accountID, hit := s.cache[key]
	s.mu.RUnlock()
	if hit {
		return accountID, nil
	}

	det, err := s.repo.FindDetermination(ctx, profileName, processKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: process %q in profile %q", apperrors.ErrConfigurationMissing, processKey, profileName)
		}
		return "", fmt.Errorf("failed to look up determination for process %q: %w", processKey, err)
	}

	s.mu.Lock()
	s.cache[key] = det.AccountID
	s.mu.Unlock()

	return det.AccountID, nil
}

// ListDeterminations returns every configuration entry of a profile.
func (s *determinationService) ListDeterminations(ctx context.Context, profileName string) ([]domain.GLDetermination, error) {
	if profileName == "" {
		profileName = DefaultProfile
	}
	return s.repo.ListDeterminations(ctx, profileName)
}

// UpsertDetermination creates or replaces a configuration entry. The cache
// entry for the pair is dropped before the write returns to the caller.
func (s *determinationService) UpsertDetermination(ctx context.Context, req dto.UpsertDeterminationRequest, actingUserID string) (*domain.GLDetermination, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	profileName := req.ProfileName
	if profileName == "" {
		profileName = DefaultProfile
	}
	if req.ProcessKey == "" || req.AccountID == "" {
		return nil, fmt.Errorf("%w: process key and account id are required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	det := domain.GLDetermination{
		DeterminationID: uuid.NewString(),
		ProfileName:     profileName,
		ProcessKey:      req.ProcessKey,
		AccountID:       req.AccountID,
		Description:     req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}

	if err := s.repo.UpsertDetermination(ctx, det); err != nil {
		logger.Error("Failed to upsert GL determination", slog.String("process_key", req.ProcessKey), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to upsert determination: %w", err)
	}

	// Invalidate synchronously: the next resolution must see the new account.
	s.mu.Lock()
	delete(s.cache, cacheKey{profile: profileName, process: req.ProcessKey})
	s.mu.Unlock()

	logger.Info("GL determination updated", slog.String("profile", profileName), slog.String("process_key", req.ProcessKey), slog.String("account_id", req.AccountID))
	return &det, nil
}
