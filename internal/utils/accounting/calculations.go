package accounting

import (
	"fmt"

	"github.com/daftarhq/daftar_backend/internal/apperrors"
	"github.com/daftarhq/daftar_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceEpsilon absorbs rounding at the comparison boundary only; it never
// allows a genuine imbalance through.
var BalanceEpsilon = decimal.New(1, -4) // 1e-4

// SumItems returns the debit and credit totals across a set of journal items.
func SumItems(items []domain.JournalItem) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, item := range items {
		debit = debit.Add(item.Debit)
		credit = credit.Add(item.Credit)
	}
	return debit, credit
}

// IsBalanced reports whether the debit and credit totals agree within
// BalanceEpsilon.
func IsBalanced(debit, credit decimal.Decimal) bool {
	return debit.Sub(credit).Abs().LessThanOrEqual(BalanceEpsilon)
}

// ValidateItems checks the shape and balance of a proposed item set. It is
// applied at journal create, update and posting time.
func ValidateItems(items []domain.JournalItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: journal must have at least one item", apperrors.ErrValidation)
	}
	for i, item := range items {
		if item.Debit.IsNegative() || item.Credit.IsNegative() {
			return fmt.Errorf("%w: item %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		if item.Debit.IsPositive() && item.Credit.IsPositive() {
			return fmt.Errorf("%w: item %d has both debit and credit set", apperrors.ErrValidation, i+1)
		}
		if item.Debit.IsZero() && item.Credit.IsZero() {
			return fmt.Errorf("%w: item %d has neither debit nor credit set", apperrors.ErrValidation, i+1)
		}
	}
	debit, credit := SumItems(items)
	if !IsBalanced(debit, credit) {
		return fmt.Errorf("%w: journal is unbalanced, debit sum is %s and credit sum is %s",
			apperrors.ErrValidation, debit.String(), credit.String())
	}
	return nil
}

// SignedAmount converts a single item into a movement signed by the code's
// nature: debit-normal codes grow with debits, credit-normal codes with
// credits. Used for running balances and report partitions.
func SignedAmount(item domain.JournalItem, nature domain.CodeNature) decimal.Decimal {
	switch nature {
	case domain.NatureCredit:
		return item.Credit.Sub(item.Debit)
	default:
		return item.Debit.Sub(item.Credit)
	}
}

// MirrorItems produces the debit/credit-swapped copies of a journal's items,
// used to build a reversal journal. IDs and journal linkage are left for the
// caller to assign.
func MirrorItems(items []domain.JournalItem) []domain.JournalItem {
	mirrored := make([]domain.JournalItem, len(items))
	for i, item := range items {
		mirrored[i] = domain.JournalItem{
			CodeID:      item.CodeID,
			PartyID:     item.PartyID,
			Debit:       item.Credit,
			Credit:      item.Debit,
			Description: item.Description,
			LineNo:      item.LineNo,
		}
	}
	return mirrored
}
