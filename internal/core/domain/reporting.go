package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CodeSum is the per-code debit/credit aggregate a reporting query returns
// for leaf codes; rollups to ancestor codes happen in the service layer.
type CodeSum struct {
	CodeID string
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// TrialBalanceRow is one code (leaf or rolled-up ancestor) in a trial balance.
type TrialBalanceRow struct {
	CodeID string          `json:"codeID"`
	Code   string          `json:"code"`
	Title  string          `json:"title"`
	Kind   CodeKind        `json:"kind"`
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// TrialBalanceReport holds the rows plus grand totals, which always balance.
type TrialBalanceReport struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// LedgerEntry is one posted movement affecting a code, annotated with the
// running balance after the movement.
type LedgerEntry struct {
	JournalID   string          `json:"journalID"`
	SerialNo    int64           `json:"serialNo"`
	JournalDate time.Time       `json:"journalDate"`
	RefNo       *string         `json:"refNo"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// LedgerReport is the chronological movement list for a single code.
type LedgerReport struct {
	CodeID  string          `json:"codeID"`
	Code    string          `json:"code"`
	Title   string          `json:"title"`
	Entries []LedgerEntry   `json:"entries"`
	Balance decimal.Decimal `json:"balance"`
}

// CategoryAmount is one code with its net amount inside a report partition.
type CategoryAmount struct {
	CodeID string          `json:"codeID"`
	Code   string          `json:"code"`
	Title  string          `json:"title"`
	Amount decimal.Decimal `json:"amount"`
}

// BalanceSheetReport partitions codes by their group-level category. Equity
// includes the current period result so the accounting identity holds for
// any well-formed ledger; Balanced flags a violation, which indicates data
// corruption rather than a user error.
type BalanceSheetReport struct {
	Assets           []CategoryAmount `json:"assets"`
	Liabilities      []CategoryAmount `json:"liabilities"`
	Equity           []CategoryAmount `json:"equity"`
	PeriodResult     decimal.Decimal  `json:"periodResult"`
	TotalAssets      decimal.Decimal  `json:"totalAssets"`
	TotalLiabilities decimal.Decimal  `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal  `json:"totalEquity"`
	Balanced         bool             `json:"balanced"`
}

// ProfitLossReport is the period result summary.
type ProfitLossReport struct {
	Revenue      []CategoryAmount `json:"revenue"`
	Expense      []CategoryAmount `json:"expense"`
	TotalRevenue decimal.Decimal  `json:"totalRevenue"`
	TotalExpense decimal.Decimal  `json:"totalExpense"`
	Profit       decimal.Decimal  `json:"profit"`
}
