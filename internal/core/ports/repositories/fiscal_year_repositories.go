package repositories

import (
	"context"
	"time"

	"github.com/daftarhq/daftar_backend/internal/core/domain"
)

// FiscalYearReader defines read operations for fiscal year data.
type FiscalYearReader interface {
	// FindFiscalYearByID retrieves a fiscal year by its unique identifier.
	FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)

	// ListFiscalYears retrieves all fiscal years ordered by start date.
	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)

	// FindOverlappingFiscalYear returns a fiscal year whose span intersects
	// the given range, or nil when none exists.
	FindOverlappingFiscalYear(ctx context.Context, start, end time.Time) (*domain.FiscalYear, error)
}

// FiscalYearWriter defines write operations for fiscal year data.
type FiscalYearWriter interface {
	// SaveFiscalYear inserts a new fiscal year.
	SaveFiscalYear(ctx context.Context, fiscalYear domain.FiscalYear) error

	// MarkFiscalYearClosed flips is_closed on an open fiscal year.
	MarkFiscalYearClosed(ctx context.Context, fiscalYearID string, closedAt time.Time) error
}

// FiscalYearRepositoryFacade combines all fiscal-year repository interfaces.
type FiscalYearRepositoryFacade interface {
	FiscalYearReader
	FiscalYearWriter
}
