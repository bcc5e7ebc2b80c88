package dto

import (
	"github.com/daftarhq/daftar_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse is one report row in the trial balance.
type TrialBalanceRowResponse struct {
	Code   string          `json:"code"`
	Title  string          `json:"title"`
	Kind   string          `json:"kind"`
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse is the full trial balance report payload.
type TrialBalanceResponse struct {
	FiscalYearID string                    `json:"fiscalYearID"`
	Rows         []TrialBalanceRowResponse `json:"rows"`
	TotalDebit   decimal.Decimal           `json:"totalDebit"`
	TotalCredit  decimal.Decimal           `json:"totalCredit"`
}

// LedgerEntryResponse is one movement row in a per-code ledger.
type LedgerEntryResponse struct {
	JournalID   string          `json:"journalID"`
	SerialNo    int64           `json:"serialNo"`
	Date        string          `json:"date"`
	RefNo       *string         `json:"refNo"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// LedgerResponse is the per-code ledger report payload.
type LedgerResponse struct {
	FiscalYearID string                `json:"fiscalYearID"`
	Code         string                `json:"code"`
	Title        string                `json:"title"`
	Entries      []LedgerEntryResponse `json:"entries"`
	Balance      decimal.Decimal       `json:"balance"`
}

// CategoryAmountResponse is one code line inside a report partition.
type CategoryAmountResponse struct {
	Code   string          `json:"code"`
	Title  string          `json:"title"`
	Amount decimal.Decimal `json:"amount"`
}

// BalanceSheetResponse is the balance sheet report payload.
type BalanceSheetResponse struct {
	FiscalYearID     string                   `json:"fiscalYearID"`
	Assets           []CategoryAmountResponse `json:"assets"`
	Liabilities      []CategoryAmountResponse `json:"liabilities"`
	Equity           []CategoryAmountResponse `json:"equity"`
	PeriodResult     decimal.Decimal          `json:"periodResult"`
	TotalAssets      decimal.Decimal          `json:"totalAssets"`
	TotalLiabilities decimal.Decimal          `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal          `json:"totalEquity"`
	Balanced         bool                     `json:"balanced"`
}

// ProfitLossResponse is the profit & loss report payload.
type ProfitLossResponse struct {
	FiscalYearID string                   `json:"fiscalYearID"`
	Revenue      []CategoryAmountResponse `json:"revenue"`
	Expense      []CategoryAmountResponse `json:"expense"`
	TotalRevenue decimal.Decimal          `json:"totalRevenue"`
	TotalExpense decimal.Decimal          `json:"totalExpense"`
	Profit       decimal.Decimal          `json:"profit"`
}

// ToTrialBalanceResponse converts the domain report to its payload.
func ToTrialBalanceResponse(fiscalYearID string, report *domain.TrialBalanceReport) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(report.Rows))
	for i, r := range report.Rows {
		rows[i] = TrialBalanceRowResponse{
			Code:   r.Code,
			Title:  r.Title,
			Kind:   string(r.Kind),
			Debit:  r.Debit,
			Credit: r.Credit,
		}
	}
	return TrialBalanceResponse{
		FiscalYearID: fiscalYearID,
		Rows:         rows,
		TotalDebit:   report.TotalDebit,
		TotalCredit:  report.TotalCredit,
	}
}

// ToLedgerResponse converts the domain ledger report to its payload.
func ToLedgerResponse(fiscalYearID string, report *domain.LedgerReport) LedgerResponse {
	entries := make([]LedgerEntryResponse, len(report.Entries))
	for i, e := range report.Entries {
		entries[i] = LedgerEntryResponse{
			JournalID:   e.JournalID,
			SerialNo:    e.SerialNo,
			Date:        e.JournalDate.Format(DateFormat),
			RefNo:       e.RefNo,
			Description: e.Description,
			Debit:       e.Debit,
			Credit:      e.Credit,
			Balance:     e.Balance,
		}
	}
	return LedgerResponse{
		FiscalYearID: fiscalYearID,
		Code:         report.Code,
		Title:        report.Title,
		Entries:      entries,
		Balance:      report.Balance,
	}
}

func toCategoryAmountResponses(amounts []domain.CategoryAmount) []CategoryAmountResponse {
	responses := make([]CategoryAmountResponse, len(amounts))
	for i, a := range amounts {
		responses[i] = CategoryAmountResponse{Code: a.Code, Title: a.Title, Amount: a.Amount}
	}
	return responses
}

// ToBalanceSheetResponse converts the domain balance sheet to its payload.
func ToBalanceSheetResponse(fiscalYearID string, report *domain.BalanceSheetReport) BalanceSheetResponse {
	return BalanceSheetResponse{
		FiscalYearID:     fiscalYearID,
		Assets:           toCategoryAmountResponses(report.Assets),
		Liabilities:      toCategoryAmountResponses(report.Liabilities),
		Equity:           toCategoryAmountResponses(report.Equity),
		PeriodResult:     report.PeriodResult,
		TotalAssets:      report.TotalAssets,
		TotalLiabilities: report.TotalLiabilities,
		TotalEquity:      report.TotalEquity,
		Balanced:         report.Balanced,
	}
}

// ToProfitLossResponse converts the domain P&L report to its payload.
func ToProfitLossResponse(fiscalYearID string, report *domain.ProfitLossReport) ProfitLossResponse {
	return ProfitLossResponse{
		FiscalYearID: fiscalYearID,
		Revenue:      toCategoryAmountResponses(report.Revenue),
		Expense:      toCategoryAmountResponses(report.Expense),
		TotalRevenue: report.TotalRevenue,
		TotalExpense: report.TotalExpense,
		Profit:       report.Profit,
	}
}
