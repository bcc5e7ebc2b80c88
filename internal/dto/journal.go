package dto

import (
	"time"

	"github.com/daftarhq/daftar_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalItemRequest defines one proposed journal line. Exactly one of
// Debit/Credit must be positive; the service enforces the shape.
type CreateJournalItemRequest struct {
	CodeID      string          `json:"codeID" binding:"required"`
	PartyID     *string         `json:"partyID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateJournalRequest defines the input for creating a draft journal.
type CreateJournalRequest struct {
	FiscalYearID string                     `json:"fiscalYearID" binding:"required"`
	Date         string                     `json:"date" binding:"required"`
	RefNo        *string                    `json:"refNo"`
	Description  string                     `json:"description"`
	Items        []CreateJournalItemRequest `json:"items" binding:"required,dive"`
}

// UpdateJournalRequest defines a partial update of a draft journal. When
// Items is present the full item set is replaced.
type UpdateJournalRequest struct {
	Date        *string                     `json:"date"`
	RefNo       *string                     `json:"refNo"`
	Description *string                     `json:"description"`
	Items       *[]CreateJournalItemRequest `json:"items" binding:"omitempty,dive"`
}

// ReverseJournalRequest defines the optional overrides for a reversal; the
// reversal is dated independently of the original when Date is given.
type ReverseJournalRequest struct {
	Date        *string `json:"date"`
	Description *string `json:"description"`
}

// ListJournalsParams holds query parameters for listing journals.
type ListJournalsParams struct {
	FiscalYearID     string  `form:"fiscal_year_id" binding:"required"`
	Limit            int     `form:"limit"`
	NextToken        *string `form:"nextToken"`
	IncludeReversals bool    `form:"includeReversals"`
}

// JournalItemResponse defines the data returned for a journal line.
type JournalItemResponse struct {
	ItemID      string          `json:"itemID"`
	CodeID      string          `json:"codeID"`
	PartyID     *string         `json:"partyID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	LineNo      int             `json:"lineNo"`
}

// JournalResponse defines the data returned for a journal document.
type JournalResponse struct {
	JournalID          string                `json:"journalID"`
	FiscalYearID       string                `json:"fiscalYearID"`
	RefNo              *string               `json:"refNo"`
	SerialNo           *int64                `json:"serialNo"`
	Date               string                `json:"date"`
	Description        string                `json:"description"`
	Status             string                `json:"status"`
	OriginalJournalID  *string               `json:"originalJournalID,omitempty"`
	ReversingJournalID *string               `json:"reversingJournalID,omitempty"`
	Items              []JournalItemResponse `json:"items,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
}

// ListJournalsResponse wraps a journal page plus its pagination token.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToJournalItemResponse converts a domain.JournalItem to its response DTO.
func ToJournalItemResponse(item *domain.JournalItem) JournalItemResponse {
	return JournalItemResponse{
		ItemID:      item.ItemID,
		CodeID:      item.CodeID,
		PartyID:     item.PartyID,
		Debit:       item.Debit,
		Credit:      item.Credit,
		Description: item.Description,
		LineNo:      item.LineNo,
	}
}

// ToJournalResponse converts a domain.Journal to its response DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:          j.JournalID,
		FiscalYearID:       j.FiscalYearID,
		RefNo:              j.RefNo,
		SerialNo:           j.SerialNo,
		Date:               j.JournalDate.Format(DateFormat),
		Description:        j.Description,
		Status:             string(j.Status),
		OriginalJournalID:  j.OriginalJournalID,
		ReversingJournalID: j.ReversingJournalID,
		CreatedAt:          j.CreatedAt,
	}
	if len(j.Items) > 0 {
		resp.Items = make([]JournalItemResponse, len(j.Items))
		for i := range j.Items {
			resp.Items[i] = ToJournalItemResponse(&j.Items[i])
		}
	}
	return resp
}
