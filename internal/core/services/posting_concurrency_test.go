package services_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/siamerp/finpost/internal/core/domain"
	portsrepo "github.com/siamerp/finpost/internal/core/ports/repositories"
	"github.com/siamerp/finpost/internal/core/services"
	"github.com/siamerp/finpost/internal/dto"
	"github.com/siamerp/finpost/internal/utils/sequencing"
)

// fakeInvoiceReader serves a fixed invoice for any id.
type fakeInvoiceReader struct {
	invoiceDate time.Time
}

func (f *fakeInvoiceReader) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.SalesInvoice, error) {
	return &domain.SalesInvoice{
		InvoiceID:    invoiceID,
		InvoiceNo:    "INV-" + invoiceID[:8],
		CustomerID:   uuid.NewString(),
		CustomerName: "Concurrent Customer",
		InvoiceDate:  f.invoiceDate,
		Subtotal:     decimal.RequireFromString("1000.00"),
		TaxAmount:    decimal.RequireFromString("70.00"),
		TotalAmount:  decimal.RequireFromString("1070.00"),
	}, nil
}

// fakeJournalRepo allocates journal numbers under a mutex, the in-memory
// equivalent of the row lock the database repository takes.
type fakeJournalRepo struct {
	mu      sync.Mutex
	counter map[string]int64
	numbers []string
}

func newFakeJournalRepo() *fakeJournalRepo {
	return &fakeJournalRepo{counter: make(map[string]int64)}
}

func (f *fakeJournalRepo) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	scope := sequencing.JournalScope(entry.JournalDate)
	f.counter[scope]++
	journalNo := sequencing.JournalNumber(scope, f.counter[scope])
	f.numbers = append(f.numbers, journalNo)
	return journalNo, nil
}

func (f *fakeJournalRepo) FindJournalEntryByNo(ctx context.Context, journalNo string) (*domain.JournalEntry, error) {
	return nil, nil
}

func (f *fakeJournalRepo) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	return nil, nil
}

func (f *fakeJournalRepo) ListJournalEntries(ctx context.Context, params portsrepo.ListJournalEntriesParams) ([]domain.JournalEntry, *string, error) {
	return nil, nil, nil
}

// fakeAccountReader reports every requested account as active and postable.
type fakeAccountReader struct{}

func (f *fakeAccountReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return &domain.Account{AccountID: accountID, IsActive: true, IsPostable: true}, nil
}

func (f *fakeAccountReader) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return nil, nil
}

func (f *fakeAccountReader) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		accounts[id] = domain.Account{AccountID: id, Code: id[:8], IsActive: true, IsPostable: true}
	}
	return accounts, nil
}

func (f *fakeAccountReader) ListAccounts(ctx context.Context, filter portsrepo.ListAccountsFilter) ([]domain.Account, error) {
	return nil, nil
}

// fakeDeterminationSvc resolves every process key to a fixed account.
type fakeDeterminationSvc struct {
	accounts map[string]string
}

func (f *fakeDeterminationSvc) ResolveAccount(ctx context.Context, processKey string, profileName string, category *string) (string, error) {
	return f.accounts[processKey], nil
}

func (f *fakeDeterminationSvc) ListDeterminations(ctx context.Context, profileName string) ([]domain.GLDetermination, error) {
	return nil, nil
}

func (f *fakeDeterminationSvc) UpsertDetermination(ctx context.Context, req dto.UpsertDeterminationRequest, actingUserID string) (*domain.GLDetermination, error) {
	return nil, nil
}

// TestConcurrentPosting_NumbersAreGaplessAndUnique drives many simultaneous
// postings into the same monthly scope and verifies the allocated journal
// numbers are exactly 1..N with no duplicates and no holes.
func TestConcurrentPosting_NumbersAreGaplessAndUnique(t *testing.T) {
	const workers = 60

	invoiceDate := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	journalRepo := newFakeJournalRepo()
	determinations := &fakeDeterminationSvc{accounts: map[string]string{
		domain.ProcessARDomestic:   uuid.NewString(),
		domain.ProcessSalesRevenue: uuid.NewString(),
		domain.ProcessSalesVAT:     uuid.NewString(),
	}}
	svc := services.NewPostingService(&fakeInvoiceReader{invoiceDate: invoiceDate}, journalRepo, &fakeAccountReader{}, determinations)

	results := make(chan string, workers)
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entry, err := svc.PostSalesInvoice(context.Background(), uuid.NewString(), uuid.NewString())
			if err != nil {
				errs <- err
				return
			}
			results <- entry.JournalNo
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	scope := sequencing.JournalScope(invoiceDate)
	seen := make(map[string]bool)
	var suffixes []int64
	for journalNo := range results {
		require.False(t, seen[journalNo], "duplicate journal number %s", journalNo)
		seen[journalNo] = true

		n, err := sequencing.SuffixValue(journalNo, scope, "-")
		require.NoError(t, err)
		suffixes = append(suffixes, n)
	}

	require.Len(t, suffixes, workers)
	sort.Slice(suffixes, func(i, j int) bool { return suffixes[i] < suffixes[j] })
	for i, n := range suffixes {
		require.Equal(t, int64(i+1), n, "sequence has a gap at position %d", i)
	}
}
