package mapping

import (
	"github.com/daftarhq/daftar_backend/internal/core/domain"
	"github.com/daftarhq/daftar_backend/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal.
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:          d.JournalID,
		FiscalYearID:       d.FiscalYearID,
		RefNo:              d.RefNo,
		SerialNo:           d.SerialNo,
		JournalDate:        d.JournalDate,
		Description:        d.Description,
		Status:             models.JournalStatus(d.Status),
		OriginalJournalID:  d.OriginalJournalID,
		ReversingJournalID: d.ReversingJournalID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal.
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:          m.JournalID,
		FiscalYearID:       m.FiscalYearID,
		RefNo:              m.RefNo,
		SerialNo:           m.SerialNo,
		JournalDate:        m.JournalDate,
		Description:        m.Description,
		Status:             domain.JournalStatus(m.Status),
		OriginalJournalID:  m.OriginalJournalID,
		ReversingJournalID: m.ReversingJournalID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalItem converts a domain JournalItem to a model JournalItem.
func ToModelJournalItem(d domain.JournalItem) models.JournalItem {
	return models.JournalItem{
		ItemID:      d.ItemID,
		JournalID:   d.JournalID,
		CodeID:      d.CodeID,
		PartyID:     d.PartyID,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		LineNo:      d.LineNo,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalItem converts a model JournalItem to a domain JournalItem.
func ToDomainJournalItem(m models.JournalItem) domain.JournalItem {
	return domain.JournalItem{
		ItemID:      m.ItemID,
		JournalID:   m.JournalID,
		CodeID:      m.CodeID,
		PartyID:     m.PartyID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		LineNo:      m.LineNo,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalItemSlice converts a slice of model JournalItems to domain
// JournalItems.
func ToDomainJournalItemSlice(ms []models.JournalItem) []domain.JournalItem {
	ds := make([]domain.JournalItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalItem(m)
	}
	return ds
}
