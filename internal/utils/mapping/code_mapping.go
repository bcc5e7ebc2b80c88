package mapping

import (
	"github.com/daftarhq/daftar_backend/internal/core/domain"
	"github.com/daftarhq/daftar_backend/internal/models"
)

// ToModelCode converts a domain Code to a model Code.
func ToModelCode(d domain.Code) models.Code {
	var nature *string
	if d.Nature != nil {
		n := string(*d.Nature)
		nature = &n
	}
	return models.Code{
		CodeID:       d.CodeID,
		Code:         d.Code,
		Title:        d.Title,
		Kind:         models.CodeKind(d.Kind),
		ParentCodeID: d.ParentCodeID,
		Nature:       nature,
		Category:     string(d.Category),
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCode converts a model Code to a domain Code.
func ToDomainCode(m models.Code) domain.Code {
	var nature *domain.CodeNature
	if m.Nature != nil {
		n := domain.CodeNature(*m.Nature)
		nature = &n
	}
	return domain.Code{
		CodeID:       m.CodeID,
		Code:         m.Code,
		Title:        m.Title,
		Kind:         domain.CodeKind(m.Kind),
		ParentCodeID: m.ParentCodeID,
		Nature:       nature,
		Category:     domain.CodeCategory(m.Category),
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCodeSlice converts a slice of model Codes to domain Codes.
func ToDomainCodeSlice(ms []models.Code) []domain.Code {
	ds := make([]domain.Code, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCode(m)
	}
	return ds
}
