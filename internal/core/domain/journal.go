package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal document.
type JournalStatus string

const (
	Draft    JournalStatus = "DRAFT"
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED" // posted journal that has a reversal
)

// Journal represents a single, balanced accounting document composed of
// line items. A journal is created as a draft, posted exactly once (which
// assigns its serial number and freezes it) and may be reversed exactly once
// afterwards.
type Journal struct {
	JournalID          string        `json:"journalID"`    // Primary Key (UUID)
	FiscalYearID       string        `json:"fiscalYearID"` // FK -> fiscal_years
	RefNo              *string       `json:"refNo"`        // Optional free-text reference
	SerialNo           *int64        `json:"serialNo"`     // Assigned on posting; unique, gap-free
	JournalDate        time.Time     `json:"journalDate"`
	Description        string        `json:"description"`
	Status             JournalStatus `json:"status"`
	OriginalJournalID  *string       `json:"originalJournalID"`  // Set on a reversal journal
	ReversingJournalID *string       `json:"reversingJournalID"` // Set on a reversed original
	Items              []JournalItem `json:"items,omitempty"`    // Often loaded separately
	AuditFields
}

// JournalItem is a single line of a journal, targeting one specific code.
// Exactly one of Debit/Credit is positive on a well-formed line.
type JournalItem struct {
	ItemID      string          `json:"itemID"`    // Primary Key (UUID)
	JournalID   string          `json:"journalID"` // FK -> journals (cascade)
	CodeID      string          `json:"codeID"`    // FK -> codes, specific codes only
	PartyID     *string         `json:"partyID"`   // Optional external party reference
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	LineNo      int             `json:"lineNo"` // Stable ordering within the journal
	AuditFields
}
