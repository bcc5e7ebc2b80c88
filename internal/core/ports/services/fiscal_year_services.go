package services

import (
	"context"

	"github.com/daftarhq/daftar_backend/internal/core/domain"
	"github.com/daftarhq/daftar_backend/internal/dto"
)

// FiscalYearReaderSvc defines read operations for fiscal years
type FiscalYearReaderSvc interface {
	// GetFiscalYearByID retrieves a specific fiscal year by its identifier.
	GetFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)

	// ListFiscalYears retrieves all fiscal years ordered by start date.
	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)
}

// FiscalYearWriterSvc defines lifecycle operations for fiscal years
type FiscalYearWriterSvc interface {
	// CreateFiscalYear persists a new open fiscal year after span validation.
	CreateFiscalYear(ctx context.Context, req dto.CreateFiscalYearRequest) (*domain.FiscalYear, error)

	// CloseFiscalYear marks an open fiscal year as closed.
	CloseFiscalYear(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)

	// OpenNextFiscalYear creates the successor of a closed fiscal year,
	// starting the day after its end date.
	OpenNextFiscalYear(ctx context.Context, fiscalYearID string, req dto.OpenNextFiscalYearRequest) (*domain.FiscalYear, error)
}

// FiscalYearSvcFacade combines all fiscal-year service interfaces
type FiscalYearSvcFacade interface {
	FiscalYearReaderSvc
	FiscalYearWriterSvc
}
