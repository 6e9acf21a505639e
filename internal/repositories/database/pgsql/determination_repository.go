package pgsql

import (
	"context"
	"errors"

	"github.com/siamerp/finpost/internal/apperrors"
	"github.com/siamerp/finpost/internal/core/domain"
	portsrepo "github.com/siamerp/finpost/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxDeterminationRepository persists GL determination configuration.
type PgxDeterminationRepository struct {
	BaseRepository
}

// NewDeterminationRepository creates a new repository for determination data.
func NewDeterminationRepository(pool *pgxpool.Pool) portsrepo.DeterminationRepositoryFacade {
	return &PgxDeterminationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DeterminationRepositoryFacade = (*PgxDeterminationRepository)(nil)

const determinationColumns = `
	determination_id, profile_name, process_key, account_id, description,
	created_at, created_by, last_updated_at, last_updated_by
`

// FindDetermination retrieves the entry for a (profile, process key) pair.
func (r *PgxDeterminationRepository) FindDetermination(ctx context.Context, profileName, processKey string) (*domain.GLDetermination, error) {
	query := `SELECT ` + determinationColumns + ` FROM gl_determinations WHERE profile_name = $1 AND process_key = $2;`
	det, err := scanDetermination(r.Pool.QueryRow(ctx, query, profileName, processKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find determination "+profileName+"/"+processKey, err)
	}
	return det, nil
}

// ListDeterminations retrieves every entry of a configuration profile.
func (r *PgxDeterminationRepository) ListDeterminations(ctx context.Context, profileName string) ([]domain.GLDetermination, error) {
	query := `SELECT ` + determinationColumns + ` FROM gl_determinations WHERE profile_name = $1 ORDER BY process_key;`
	rows, err := r.Pool.Query(ctx, query, profileName)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list determinations for profile "+profileName, err)
	}
	defer rows.Close()

	var dets []domain.GLDetermination
	for rows.Next() {
		det, err := scanDetermination(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan determination", err)
		}
		dets = append(dets, *det)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read determinations", err)
	}
	return dets, nil
}

// UpsertDetermination creates or replaces the entry for (profile, process key).
func (r *PgxDeterminationRepository) UpsertDetermination(ctx context.Context, det domain.GLDetermination) error {
	query := `
		INSERT INTO gl_determinations (` + determinationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (profile_name, process_key) DO UPDATE SET
			account_id      = EXCLUDED.account_id,
			description     = EXCLUDED.description,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		det.DeterminationID,
		det.ProfileName,
		det.ProcessKey,
		det.AccountID,
		det.Description,
		det.CreatedAt,
		det.CreatedBy,
		det.LastUpdatedAt,
		det.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert determination "+det.ProfileName+"/"+det.ProcessKey, err)
	}
	return nil
}

func scanDetermination(row pgx.Row) (*domain.GLDetermination, error) {
	var det domain.GLDetermination
	err := row.Scan(
		&det.DeterminationID,
		&det.ProfileName,
		&det.ProcessKey,
		&det.AccountID,
		&det.Description,
		&det.CreatedAt,
		&det.CreatedBy,
		&det.LastUpdatedAt,
		&det.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &det, nil
}
