package dto

import (
	"github.com/daftarhq/daftar_backend/internal/core/domain"
)

// CreateCodeRequest defines the input for creating a chart-of-codes node.
// The tier is derived from the code's digit length; Nature is required on
// specific codes and Category on group codes.
type CreateCodeRequest struct {
	Code         string  `json:"code" binding:"required"`
	Title        string  `json:"title" binding:"required"`
	ParentCodeID *string `json:"parentCodeID"`
	Nature       *string `json:"nature" binding:"omitempty,oneof=DEBIT CREDIT"`
	Category     *string `json:"category" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
}

// UpdateCodeRequest defines the mutable fields of a code node. The code
// string, tier and parent linkage are fixed at creation.
type UpdateCodeRequest struct {
	Title    *string `json:"title"`
	Nature   *string `json:"nature" binding:"omitempty,oneof=DEBIT CREDIT"`
	IsActive *bool   `json:"isActive"`
}

// CodeResponse defines the data returned for a code node.
type CodeResponse struct {
	CodeID       string  `json:"codeID"`
	Code         string  `json:"code"`
	Title        string  `json:"title"`
	Kind         string  `json:"kind"`
	ParentCodeID *string `json:"parentCodeID"`
	Nature       *string `json:"nature"`
	Category     string  `json:"category,omitempty"`
	IsActive     bool    `json:"isActive"`
}

// ListCodesResponse wraps the chart of codes.
type ListCodesResponse struct {
	Codes []CodeResponse `json:"codes"`
}

// ToCodeResponse converts a domain.Code to its response DTO.
func ToCodeResponse(c *domain.Code) CodeResponse {
	var nature *string
	if c.Nature != nil {
		n := string(*c.Nature)
		nature = &n
	}
	return CodeResponse{
		CodeID:       c.CodeID,
		Code:         c.Code,
		Title:        c.Title,
		Kind:         string(c.Kind),
		ParentCodeID: c.ParentCodeID,
		Nature:       nature,
		Category:     string(c.Category),
		IsActive:     c.IsActive,
	}
}

// ToCodeResponses converts a slice of domain codes.
func ToCodeResponses(codes []domain.Code) []CodeResponse {
	responses := make([]CodeResponse, len(codes))
	for i := range codes {
		responses[i] = ToCodeResponse(&codes[i])
	}
	return responses
}
