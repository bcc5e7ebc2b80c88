package services

import (
	"context"
	"time"

	"github.com/daftarhq/daftar_backend/internal/core/domain"
)

// ReportingSvcFacade defines operations for generating financial reports.
// All reports are scoped to one fiscal year; nil from/to default to the
// year's own span.
type ReportingSvcFacade interface {
	// TrialBalance generates per-code debit and credit totals.
	TrialBalance(ctx context.Context, fiscalYearID string, from, to *time.Time) (*domain.TrialBalanceReport, error)

	// Ledger generates the chronological movement list for one code with
	// running balances.
	Ledger(ctx context.Context, fiscalYearID, codeID string, from, to *time.Time) (*domain.LedgerReport, error)

	// BalanceSheet generates the asset/liability/equity statement.
	BalanceSheet(ctx context.Context, fiscalYearID string, asOf *time.Time) (*domain.BalanceSheetReport, error)

	// ProfitAndLoss generates the revenue/expense statement.
	ProfitAndLoss(ctx context.Context, fiscalYearID string, from, to *time.Time) (*domain.ProfitLossReport, error)
}
