package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal document.
type JournalStatus string

const (
	Draft    JournalStatus = "DRAFT"
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// Journal is the persistence model of a journal document.
type Journal struct {
	JournalID          string        `db:"journal_id"`
	FiscalYearID       string        `db:"fiscal_year_id"`
	RefNo              *string       `db:"ref_no"`
	SerialNo           *int64        `db:"serial_no"`
	JournalDate        time.Time     `db:"journal_date"`
	Description        string        `db:"description"`
	Status             JournalStatus `db:"status"`
	OriginalJournalID  *string       `db:"original_journal_id"`
	ReversingJournalID *string       `db:"reversing_journal_id"`
	AuditFields
}

// JournalItem is the persistence model of a single journal line.
type JournalItem struct {
	ItemID      string          `db:"item_id"`
	JournalID   string          `db:"journal_id"`
	CodeID      string          `db:"code_id"`
	PartyID     *string         `db:"party_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
	LineNo      int             `db:"line_no"`
	AuditFields
}
