package services

import (
	"context"
	"fmt"
	"time"

	"github.com/daftarhq/daftar_backend/internal/apperrors"
	"github.com/daftarhq/daftar_backend/internal/core/domain"
	portssvc "github.com/daftarhq/daftar_backend/internal/core/ports/services"
	"github.com/daftarhq/daftar_backend/internal/utils/accounting"
)

// PostingValidator gathers every check a journal must pass before it may be
// written to the ledger: item shape and balance, postable target codes, the
// date inside the fiscal year span, and the closed-year gate.
type PostingValidator struct {
	codes portssvc.CodeReaderSvc

	// AllowClosedYearPosting relaxes the closed-year gate for late
	// adjustment entries. Off by default.
	AllowClosedYearPosting bool
}

func NewPostingValidator(codes portssvc.CodeReaderSvc, allowClosedYearPosting bool) *PostingValidator {
	return &PostingValidator{codes: codes, AllowClosedYearPosting: allowClosedYearPosting}
}

// ValidateDraft checks everything that must hold when a journal is created or
// edited: well-formed balanced items, active specific target codes, and a
// date inside the fiscal year.
func (v *PostingValidator) ValidateDraft(ctx context.Context, fy *domain.FiscalYear, journalDate time.Time, items []domain.JournalItem) error {
	if err := accounting.ValidateItems(items); err != nil {
		return err
	}
	if !fy.Contains(journalDate) {
		return fmt.Errorf("%w: journal date %s is outside fiscal year %s",
			apperrors.ErrValidation, journalDate.Format("2006-01-02"), fy.Name)
	}
	return v.checkTargetCodes(ctx, items)
}

// ValidatePosting runs the draft checks plus the closed-year gate. Reversals
// go through the same gate because a reversal is itself a posting.
func (v *PostingValidator) ValidatePosting(ctx context.Context, fy *domain.FiscalYear, journalDate time.Time, items []domain.JournalItem) error {
	if fy.IsClosed && !v.AllowClosedYearPosting {
		return fmt.Errorf("%w: fiscal year %s is closed", apperrors.ErrInvalidState, fy.Name)
	}
	return v.ValidateDraft(ctx, fy, journalDate, items)
}

func (v *PostingValidator) checkTargetCodes(ctx context.Context, items []domain.JournalItem) error {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.CodeID]; ok {
			continue
		}
		seen[item.CodeID] = struct{}{}
		ids = append(ids, item.CodeID)
	}

	codes, err := v.codes.GetCodesByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve journal item codes: %w", err)
	}
	for _, id := range ids {
		code, ok := codes[id]
		if !ok {
			return fmt.Errorf("%w: code %s not found", apperrors.ErrValidation, id)
		}
		if !code.IsPostable() {
			return fmt.Errorf("%w: code %s (%s) is not a postable code", apperrors.ErrValidation, code.Code, code.Title)
		}
	}
	return nil
}
