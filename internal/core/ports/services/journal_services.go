package services

import (
	"context"

	"github.com/daftarhq/daftar_backend/internal/core/domain"
	"github.com/daftarhq/daftar_backend/internal/dto"
)

// JournalReaderSvc defines read operations for journals
type JournalReaderSvc interface {
	// GetJournalByID retrieves a journal with its items.
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a token-paginated page of journals for a
	// fiscal year, newest first.
	ListJournals(ctx context.Context, params dto.ListJournalsParams) ([]domain.Journal, *string, error)
}

// JournalWriterSvc defines mutations on draft journals
type JournalWriterSvc interface {
	// CreateJournal persists a new balanced draft journal.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest) (*domain.Journal, error)

	// UpdateJournal rewrites a draft journal's header and, when given, its
	// full item set. Posted and reversed journals are immutable.
	UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest) (*domain.Journal, error)

	// DeleteJournal removes a draft journal and its items.
	DeleteJournal(ctx context.Context, journalID string) error
}

// JournalLifecycleSvc defines the posting state machine
type JournalLifecycleSvc interface {
	// PostJournal validates a draft and posts it, assigning the next
	// gap-free serial number for its fiscal year.
	PostJournal(ctx context.Context, journalID string) (*domain.Journal, error)

	// ReverseJournal posts a mirror-image journal and marks the original
	// as reversed.
	ReverseJournal(ctx context.Context, journalID string, req dto.ReverseJournalRequest) (*domain.Journal, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalLifecycleSvc
}
