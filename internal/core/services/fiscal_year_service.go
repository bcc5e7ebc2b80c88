package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/daftarhq/daftar_backend/internal/apperrors"
	"github.com/daftarhq/daftar_backend/internal/core/domain"
	portsrepo "github.com/daftarhq/daftar_backend/internal/core/ports/repositories"
	"github.com/daftarhq/daftar_backend/internal/dto"
	"github.com/google/uuid"
)

// FiscalYearService manages the fiscal year lifecycle: open, close, open the
// successor. Closing is terminal; there is no reopen.
type FiscalYearService struct {
	BaseService
	fiscalYearRepo portsrepo.FiscalYearRepositoryFacade
}

func NewFiscalYearService(repo portsrepo.FiscalYearRepositoryFacade) *FiscalYearService {
	return &FiscalYearService{fiscalYearRepo: repo}
}

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(dto.DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a %s date, got %q", apperrors.ErrValidation, field, dto.DateFormat, value)
	}
	return t, nil
}

// CreateFiscalYear persists a new open fiscal year after validating its span
// against existing years.
func (s *FiscalYearService) CreateFiscalYear(ctx context.Context, req dto.CreateFiscalYearRequest) (*domain.FiscalYear, error) {
	logger := s.GetLogger(ctx)

	start, err := parseDate(req.StartDate, "startDate")
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate, "endDate")
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: endDate must be after startDate", apperrors.ErrValidation)
	}

	overlap, err := s.fiscalYearRepo.FindOverlappingFiscalYear(ctx, start, end)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check fiscal year overlap", slog.String("error", err.Error()))
		return nil, err
	}
	if overlap != nil {
		return nil, fmt.Errorf("%w: span overlaps fiscal year %s", apperrors.ErrConflict, overlap.Name)
	}

	now := time.Now()
	fy := domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		Name:         req.Name,
		StartDate:    start,
		EndDate:      end,
		IsClosed:     false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.fiscalYearRepo.SaveFiscalYear(ctx, fy); err != nil {
		logger.Error("Failed to save fiscal year", slog.String("error", err.Error()), slog.String("name", fy.Name))
		return nil, err
	}

	logger.Info("Fiscal year created successfully", slog.String("fiscal_year_id", fy.FiscalYearID), slog.String("name", fy.Name))
	return &fy, nil
}

// GetFiscalYearByID retrieves a fiscal year.
func (s *FiscalYearService) GetFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	fy, err := s.fiscalYearRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find fiscal year by ID", slog.String("fiscal_year_id", fiscalYearID))
		}
		return nil, err
	}
	return fy, nil
}

// ListFiscalYears retrieves all fiscal years ordered by start date.
func (s *FiscalYearService) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	fys, err := s.fiscalYearRepo.ListFiscalYears(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal years")
		return nil, fmt.Errorf("failed to list fiscal years: %w", err)
	}
	if fys == nil {
		return []domain.FiscalYear{}, nil
	}
	return fys, nil
}

// CloseFiscalYear marks an open fiscal year as closed. Closing an already
// closed year is a state error, not a no-op.
func (s *FiscalYearService) CloseFiscalYear(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	logger := s.GetLogger(ctx)

	fy, err := s.fiscalYearRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if fy.IsClosed {
		return nil, fmt.Errorf("%w: fiscal year %s is already closed", apperrors.ErrInvalidState, fy.Name)
	}

	now := time.Now()
	if err := s.fiscalYearRepo.MarkFiscalYearClosed(ctx, fiscalYearID, now); err != nil {
		logger.Error("Failed to close fiscal year", slog.String("error", err.Error()), slog.String("fiscal_year_id", fiscalYearID))
		return nil, err
	}

	fy.IsClosed = true
	fy.LastUpdatedAt = now
	logger.Info("Fiscal year closed", slog.String("fiscal_year_id", fiscalYearID), slog.String("name", fy.Name))
	return fy, nil
}

// OpenNextFiscalYear creates the successor of a closed fiscal year. The new
// year starts the day after the old one ends and mirrors its length unless an
// explicit end date is given.
func (s *FiscalYearService) OpenNextFiscalYear(ctx context.Context, fiscalYearID string, req dto.OpenNextFiscalYearRequest) (*domain.FiscalYear, error) {
	logger := s.GetLogger(ctx)

	fy, err := s.fiscalYearRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if !fy.IsClosed {
		return nil, fmt.Errorf("%w: fiscal year %s must be closed before its successor opens", apperrors.ErrInvalidState, fy.Name)
	}

	start, end := fy.NextSpan()
	if req.EndDate != nil {
		end, err = parseDate(*req.EndDate, "endDate")
		if err != nil {
			return nil, err
		}
		if !end.After(start) {
			return nil, fmt.Errorf("%w: endDate must be after %s", apperrors.ErrValidation, start.Format(dto.DateFormat))
		}
	}

	name := fmt.Sprintf("%s (next)", fy.Name)
	if req.Name != nil {
		name = *req.Name
	}

	overlap, err := s.fiscalYearRepo.FindOverlappingFiscalYear(ctx, start, end)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check fiscal year overlap", slog.String("error", err.Error()))
		return nil, err
	}
	if overlap != nil {
		return nil, fmt.Errorf("%w: successor span overlaps fiscal year %s", apperrors.ErrConflict, overlap.Name)
	}

	now := time.Now()
	next := domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		Name:         name,
		StartDate:    start,
		EndDate:      end,
		IsClosed:     false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.fiscalYearRepo.SaveFiscalYear(ctx, next); err != nil {
		logger.Error("Failed to save successor fiscal year", slog.String("error", err.Error()), slog.String("name", next.Name))
		return nil, err
	}

	logger.Info("Successor fiscal year opened", slog.String("fiscal_year_id", next.FiscalYearID), slog.String("name", next.Name))
	return &next, nil
}
