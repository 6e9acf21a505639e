package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/siamerp/finpost/internal/apperrors"
	"github.com/siamerp/finpost/internal/core/domain"
	portsrepo "github.com/siamerp/finpost/internal/core/ports/repositories"
	"github.com/siamerp/finpost/internal/utils/pagination"
	"github.com/siamerp/finpost/internal/utils/sequencing"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxJournalEntryRepository persists journal headers and lines.
type PgxJournalEntryRepository struct {
	BaseRepository
	sequences portsrepo.SequenceAllocator
}

// NewJournalEntryRepository creates a new repository for journal entry data.
func NewJournalEntryRepository(pool *pgxpool.Pool, sequences portsrepo.SequenceAllocator) portsrepo.JournalEntryRepositoryWithTx {
	return &PgxJournalEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		sequences:      sequences,
	}
}

var _ portsrepo.JournalEntryRepositoryWithTx = (*PgxJournalEntryRepository)(nil)

// SaveJournalEntry allocates the next journal number for the entry's month and
// persists header plus lines in one transaction. Sequence conflicts (two
// requests racing to seed a new month) are retried here so callers never see
// them; the number is only consumed when the transaction commits.
func (r *PgxJournalEntryRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (string, error) {
	return allocateNumbered("journal number", func() (string, error) {
		return r.saveOnce(ctx, entry, lines)
	})
}

func (r *PgxJournalEntryRepository) saveOnce(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	scope := sequencing.JournalScope(entry.JournalDate)
	seq, err := r.sequences.NextInTx(ctx, tx, scope)
	if err != nil {
		return "", err
	}
	journalNo := sequencing.JournalNumber(scope, seq)

	headerQuery := `
		INSERT INTO journal_entries (
			journal_id, journal_no, journal_date, description, reference, status,
			source_document_type, source_document_id, posted_at, posted_by,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, headerQuery,
		entry.JournalID,
		journalNo,
		entry.JournalDate,
		entry.Description,
		entry.Reference,
		entry.Status,
		nullable(string(entry.SourceDocumentType)),
		nullable(entry.SourceDocumentID),
		entry.PostedAt,
		nullable(entry.PostedBy),
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Another transaction committed this number first.
			return "", fmt.Errorf("%w: journal number %s", apperrors.ErrSequenceConflict, journalNo)
		}
		return "", apperrors.NewAppError(500, "failed to insert journal entry "+entry.JournalID, err)
	}

	lineQuery := `
		INSERT INTO journal_entry_lines (
			line_id, journal_id, line_no, account_id, partner_id, cost_center_id,
			project_id, description, debit, credit
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for i, line := range lines {
		batch.Queue(lineQuery,
			line.LineID,
			entry.JournalID,
			i+1, // line order is insertion order, preserved for display
			line.AccountID,
			nullable(line.PartnerID),
			nullable(line.CostCenterID),
			nullable(line.ProjectID),
			line.Description,
			line.Debit,
			line.Credit,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return "", apperrors.NewAppError(500, "failed to insert lines for journal "+entry.JournalID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return journalNo, nil
}

// FindJournalEntryByNo retrieves a journal header by its journal number.
func (r *PgxJournalEntryRepository) FindJournalEntryByNo(ctx context.Context, journalNo string) (*domain.JournalEntry, error) {
	query := `
		SELECT journal_id, journal_no, journal_date, description, reference, status,
		       source_document_type, source_document_id, posted_at, posted_by,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		WHERE journal_no = $1;
	`
	entry, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, journalNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+journalNo, err)
	}
	return entry, nil
}

// FindLinesByJournalID retrieves the lines of one journal in insertion order.
func (r *PgxJournalEntryRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, journal_id, account_id, partner_id, cost_center_id,
		       project_id, description, debit, credit
		FROM journal_entry_lines
		WHERE journal_id = $1
		ORDER BY line_no;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal "+journalID, err)
	}
	defer rows.Close()

	var lines []domain.JournalLine
	for rows.Next() {
		var line domain.JournalLine
		var partnerID, costCenterID, projectID *string
		if err := rows.Scan(
			&line.LineID,
			&line.JournalID,
			&line.AccountID,
			&partnerID,
			&costCenterID,
			&projectID,
			&line.Description,
			&line.Debit,
			&line.Credit,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line for journal "+journalID, err)
		}
		line.PartnerID = deref(partnerID)
		line.CostCenterID = deref(costCenterID)
		line.ProjectID = deref(projectID)
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read lines for journal "+journalID, err)
	}
	return lines, nil
}

// ListJournalEntries retrieves a page of journal headers, newest first, using
// a (journal_date, created_at) keyset token.
func (r *PgxJournalEntryRepository) ListJournalEntries(ctx context.Context, params portsrepo.ListJournalEntriesParams) ([]domain.JournalEntry, *string, error) {
	query := `
		SELECT journal_id, journal_no, journal_date, description, reference, status,
		       source_document_type, source_document_id, posted_at, posted_by,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
	`
	args := []interface{}{}
	if params.NextToken != nil {
		journalDate, createdAt, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` WHERE (journal_date, created_at) < ($1, $2)`
		args = append(args, journalDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY journal_date DESC, created_at DESC LIMIT %d;`, params.Limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		entry, err := scanJournalEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to read journal entries", err)
	}

	var nextToken *string
	if len(entries) > params.Limit {
		entries = entries[:params.Limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.JournalDate, last.CreatedAt)
		nextToken = &token
	}
	return entries, nextToken, nil
}

// scanJournalEntry reads one journal header row.
func scanJournalEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var entry domain.JournalEntry
	var sourceType, sourceID, postedBy *string
	err := row.Scan(
		&entry.JournalID,
		&entry.JournalNo,
		&entry.JournalDate,
		&entry.Description,
		&entry.Reference,
		&entry.Status,
		&sourceType,
		&sourceID,
		&entry.PostedAt,
		&postedBy,
		&entry.CreatedAt,
		&entry.CreatedBy,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	entry.SourceDocumentType = domain.SourceDocumentType(deref(sourceType))
	entry.SourceDocumentID = deref(sourceID)
	entry.PostedBy = deref(postedBy)
	return &entry, nil
}

// nullable maps an empty string to NULL for optional text columns.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
