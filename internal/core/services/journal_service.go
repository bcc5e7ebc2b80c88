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
	portssvc "github.com/daftarhq/daftar_backend/internal/core/ports/services"
	"github.com/daftarhq/daftar_backend/internal/dto"
	"github.com/daftarhq/daftar_backend/internal/utils/accounting"
	"github.com/google/uuid"
)

const (
	defaultJournalPageSize = 20
	maxJournalPageSize     = 100
)

// JournalService implements the journal lifecycle: draft, post, reverse.
// Serial numbers are assigned by the repository inside the posting
// transaction, never read-then-incremented here.
type JournalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	fiscalYears portssvc.FiscalYearReaderSvc
	validator   *PostingValidator
}

func NewJournalService(repo portsrepo.JournalRepositoryFacade, fiscalYears portssvc.FiscalYearReaderSvc, validator *PostingValidator) *JournalService {
	return &JournalService{
		journalRepo: repo,
		fiscalYears: fiscalYears,
		validator:   validator,
	}
}

func (s *JournalService) buildItems(journalID string, reqs []dto.CreateJournalItemRequest, now time.Time) []domain.JournalItem {
	items := make([]domain.JournalItem, len(reqs))
	for i, r := range reqs {
		items[i] = domain.JournalItem{
			ItemID:      uuid.NewString(),
			JournalID:   journalID,
			CodeID:      r.CodeID,
			PartyID:     r.PartyID,
			Debit:       r.Debit,
			Credit:      r.Credit,
			Description: r.Description,
			LineNo:      i + 1,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
	}
	return items
}

// CreateJournal persists a new balanced draft journal.
func (s *JournalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest) (*domain.Journal, error) {
	logger := s.GetLogger(ctx)

	fy, err := s.fiscalYears.GetFiscalYearByID(ctx, req.FiscalYearID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: fiscal year %s not found", apperrors.ErrValidation, req.FiscalYearID)
		}
		return nil, err
	}

	journalDate, err := parseDate(req.Date, "date")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	journalID := uuid.NewString()
	items := s.buildItems(journalID, req.Items, now)

	if err := s.validator.ValidateDraft(ctx, fy, journalDate, items); err != nil {
		return nil, err
	}

	journal := domain.Journal{
		JournalID:    journalID,
		FiscalYearID: req.FiscalYearID,
		RefNo:        req.RefNo,
		JournalDate:  journalDate,
		Description:  req.Description,
		Status:       domain.Draft,
		Items:        items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, journal, items); err != nil {
		logger.Error("Failed to save journal in repository", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, err
	}

	logger.Info("Journal created successfully", slog.String("journal_id", journalID), slog.Int("item_count", len(items)))
	return &journal, nil
}

// GetJournalByID retrieves a journal together with its items.
func (s *JournalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal by ID", slog.String("journal_id", journalID))
		}
		return nil, err
	}

	items, err := s.journalRepo.FindItemsByJournalID(ctx, journalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal items", slog.String("journal_id", journalID))
		return nil, err
	}
	journal.Items = items
	return journal, nil
}

// ListJournals retrieves a token-paginated page of a fiscal year's journals,
// newest first, each loaded with its items.
func (s *JournalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) ([]domain.Journal, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultJournalPageSize
	}
	if limit > maxJournalPageSize {
		limit = maxJournalPageSize
	}

	journals, nextToken, err := s.journalRepo.ListJournalsByFiscalYear(ctx, params.FiscalYearID, limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals", slog.String("fiscal_year_id", params.FiscalYearID))
		return nil, nil, fmt.Errorf("failed to list journals: %w", err)
	}
	if len(journals) == 0 {
		return []domain.Journal{}, nil, nil
	}

	journalIDs := make([]string, len(journals))
	for i, j := range journals {
		journalIDs[i] = j.JournalID
	}
	itemsByJournal, err := s.journalRepo.FindItemsByJournalIDs(ctx, journalIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal items for page", slog.Int("journal_count", len(journalIDs)))
		return nil, nil, err
	}
	for i := range journals {
		journals[i].Items = itemsByJournal[journals[i].JournalID]
	}

	return journals, nextToken, nil
}

// UpdateJournal rewrites a draft journal's header and, when items are given,
// replaces its full item set. Posted and reversed journals are immutable.
func (s *JournalService) UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest) (*domain.Journal, error) {
	logger := s.GetLogger(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if journal.Status != domain.Draft {
		return nil, fmt.Errorf("%w: journal %s is %s and cannot be modified", apperrors.ErrInvalidState, journalID, journal.Status)
	}

	fy, err := s.fiscalYears.GetFiscalYearByID(ctx, journal.FiscalYearID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if req.Date != nil {
		journalDate, err := parseDate(*req.Date, "date")
		if err != nil {
			return nil, err
		}
		journal.JournalDate = journalDate
	}
	if req.RefNo != nil {
		journal.RefNo = req.RefNo
	}
	if req.Description != nil {
		journal.Description = *req.Description
	}
	journal.LastUpdatedAt = now

	var items []domain.JournalItem
	if req.Items != nil {
		items = s.buildItems(journalID, *req.Items, now)
	} else {
		items, err = s.journalRepo.FindItemsByJournalID(ctx, journalID)
		if err != nil {
			return nil, err
		}
	}

	if err := s.validator.ValidateDraft(ctx, fy, journal.JournalDate, items); err != nil {
		return nil, err
	}

	if err := s.journalRepo.UpdateJournal(ctx, *journal, items); err != nil {
		logger.Error("Failed to update journal in repository", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, err
	}

	journal.Items = items
	logger.Info("Journal updated successfully", slog.String("journal_id", journalID))
	return journal, nil
}

// DeleteJournal removes a draft journal. Posted history is never deleted.
func (s *JournalService) DeleteJournal(ctx context.Context, journalID string) error {
	logger := s.GetLogger(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return err
	}
	if journal.Status != domain.Draft {
		return fmt.Errorf("%w: journal %s is %s and cannot be deleted", apperrors.ErrInvalidState, journalID, journal.Status)
	}

	if err := s.journalRepo.DeleteJournal(ctx, journalID); err != nil {
		logger.Error("Failed to delete journal in repository", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return err
	}

	logger.Info("Journal deleted", slog.String("journal_id", journalID))
	return nil
}

// PostJournal validates a draft and posts it. The serial number comes out of
// the counter row inside the posting transaction, so concurrent posts cannot
// collide or leave gaps.
func (s *JournalService) PostJournal(ctx context.Context, journalID string) (*domain.Journal, error) {
	logger := s.GetLogger(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if journal.Status != domain.Draft {
		return nil, fmt.Errorf("%w: journal %s is already %s", apperrors.ErrInvalidState, journalID, journal.Status)
	}

	items, err := s.journalRepo.FindItemsByJournalID(ctx, journalID)
	if err != nil {
		return nil, err
	}

	fy, err := s.fiscalYears.GetFiscalYearByID(ctx, journal.FiscalYearID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidatePosting(ctx, fy, journal.JournalDate, items); err != nil {
		return nil, err
	}

	now := time.Now()
	serial, err := s.journalRepo.PostJournal(ctx, journalID, now)
	if err != nil {
		logger.Error("Failed to post journal in repository", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, err
	}

	journal.Status = domain.Posted
	journal.SerialNo = &serial
	journal.LastUpdatedAt = now
	journal.Items = items

	logger.Info("Journal posted", slog.String("journal_id", journalID), slog.Int64("serial_no", serial))
	return journal, nil
}

// ReverseJournal posts a mirror-image journal and marks the original as
// reversed, in one transaction. The original's numbers stay on the books; the
// reversal cancels them arithmetically.
func (s *JournalService) ReverseJournal(ctx context.Context, journalID string, req dto.ReverseJournalRequest) (*domain.Journal, error) {
	logger := s.GetLogger(ctx)

	original, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if original.OriginalJournalID != nil {
		return nil, fmt.Errorf("%w: journal %s is itself a reversal; reverse the original instead", apperrors.ErrInvalidState, journalID)
	}
	switch original.Status {
	case domain.Posted:
		// reversible
	case domain.Draft:
		return nil, fmt.Errorf("%w: journal %s is a draft; delete it instead of reversing", apperrors.ErrInvalidState, journalID)
	default:
		return nil, fmt.Errorf("%w: journal %s is already reversed", apperrors.ErrInvalidState, journalID)
	}

	originalItems, err := s.journalRepo.FindItemsByJournalID(ctx, journalID)
	if err != nil {
		return nil, err
	}

	fy, err := s.fiscalYears.GetFiscalYearByID(ctx, original.FiscalYearID)
	if err != nil {
		return nil, err
	}

	reversalDate := original.JournalDate
	if req.Date != nil {
		reversalDate, err = parseDate(*req.Date, "date")
		if err != nil {
			return nil, err
		}
	}

	description := fmt.Sprintf("Reversal of journal %s", journalID)
	if req.Description != nil {
		description = *req.Description
	}

	now := time.Now()
	reversalID := uuid.NewString()
	mirrored := accounting.MirrorItems(originalItems)
	items := make([]domain.JournalItem, len(mirrored))
	for i, m := range mirrored {
		m.ItemID = uuid.NewString()
		m.JournalID = reversalID
		m.AuditFields = domain.AuditFields{CreatedAt: now, LastUpdatedAt: now}
		items[i] = m
	}

	if err := s.validator.ValidatePosting(ctx, fy, reversalDate, items); err != nil {
		return nil, err
	}

	reversal := domain.Journal{
		JournalID:         reversalID,
		FiscalYearID:      original.FiscalYearID,
		RefNo:             original.RefNo,
		JournalDate:       reversalDate,
		Description:       description,
		Status:            domain.Posted,
		OriginalJournalID: &original.JournalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	serial, err := s.journalRepo.SaveReversal(ctx, reversal, items, original.JournalID)
	if err != nil {
		logger.Error("Failed to save reversal in repository", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, err
	}

	reversal.SerialNo = &serial
	reversal.Items = items

	logger.Info("Journal reversed", slog.String("journal_id", journalID), slog.String("reversal_id", reversalID), slog.Int64("serial_no", serial))
	return &reversal, nil
}
