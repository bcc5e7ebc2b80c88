package repositories

import (
	"context"
	"time"

	"github.com/daftarhq/daftar_backend/internal/core/domain"
)

// ReportingRepository defines the read-only aggregation queries reports are
// built from. Only non-draft journals dated inside the given span contribute.
type ReportingRepository interface {
	// GetCodeSums returns per-leaf-code debit and credit totals for the
	// fiscal year span.
	GetCodeSums(ctx context.Context, fiscalYearID string, from, to time.Time) ([]domain.CodeSum, error)

	// GetLedgerEntries returns every posted movement touching a code within
	// the span, ordered by journal date then serial. Running balances are
	// computed by the caller.
	GetLedgerEntries(ctx context.Context, fiscalYearID, codeID string, from, to time.Time) ([]domain.LedgerEntry, error)
}
