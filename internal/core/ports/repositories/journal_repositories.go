package repositories

import (
	"context"
	"time"

	"github.com/daftarhq/daftar_backend/internal/core/domain"
)

// JournalReader defines read operations for journal data.
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournalsByFiscalYear retrieves a paginated list of journals for a
	// fiscal year using token-based pagination. It returns the journals, a
	// token for the next page, and an error.
	ListJournalsByFiscalYear(ctx context.Context, fiscalYearID string, limit int, nextToken *string, includeReversals bool) ([]domain.Journal, *string, error)
}

// JournalItemReader defines read operations for journal line items.
type JournalItemReader interface {
	// FindItemsByJournalID retrieves all items of a single journal in line order.
	FindItemsByJournalID(ctx context.Context, journalID string) ([]domain.JournalItem, error)

	// FindItemsByJournalIDs retrieves items for multiple journals, grouped by
	// journal ID.
	FindItemsByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.JournalItem, error)
}

// JournalWriter defines write operations for journal data. Multi-row writes
// execute inside a single database transaction.
type JournalWriter interface {
	// SaveJournal persists a new draft journal together with its items.
	SaveJournal(ctx context.Context, journal domain.Journal, items []domain.JournalItem) error

	// UpdateJournal rewrites a draft journal's header and replaces its item
	// set atomically.
	UpdateJournal(ctx context.Context, journal domain.Journal, items []domain.JournalItem) error

	// DeleteJournal removes a draft journal; its items cascade.
	DeleteJournal(ctx context.Context, journalID string) error

	// PostJournal atomically assigns the next serial number from the
	// counter row and flips the journal to POSTED. It returns the serial.
	// Concurrent posts serialize on the counter row lock, so serials stay
	// unique, gap-free and strictly increasing.
	PostJournal(ctx context.Context, journalID string, postedAt time.Time) (int64, error)

	// SaveReversal persists an already-posted reversal journal with its
	// items, assigns its serial and links the original journal, all in one
	// transaction. It returns the reversal's serial.
	SaveReversal(ctx context.Context, reversal domain.Journal, items []domain.JournalItem, originalJournalID string) (int64, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalItemReader
	JournalWriter
}
