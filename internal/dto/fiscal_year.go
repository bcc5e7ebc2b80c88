package dto

import (
	"time"

	"github.com/daftarhq/daftar_backend/internal/core/domain"
)

// DateFormat is the wire format for all calendar dates.
const DateFormat = "2006-01-02"

// CreateFiscalYearRequest defines the input for creating a fiscal year.
// Dates travel as plain strings and are coerced explicitly by the service.
type CreateFiscalYearRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

// OpenNextFiscalYearRequest defines the optional overrides when opening the
// successor of a closed fiscal year.
type OpenNextFiscalYearRequest struct {
	Name    *string `json:"name"`
	EndDate *string `json:"endDate"`
}

// FiscalYearResponse defines the data returned for a fiscal year.
type FiscalYearResponse struct {
	FiscalYearID string    `json:"fiscalYearID"`
	Name         string    `json:"name"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
	IsClosed     bool      `json:"isClosed"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ListFiscalYearsResponse wraps the fiscal year collection.
type ListFiscalYearsResponse struct {
	FiscalYears []FiscalYearResponse `json:"fiscalYears"`
}

// ToFiscalYearResponse converts a domain.FiscalYear to its response DTO.
func ToFiscalYearResponse(fy *domain.FiscalYear) FiscalYearResponse {
	return FiscalYearResponse{
		FiscalYearID: fy.FiscalYearID,
		Name:         fy.Name,
		StartDate:    fy.StartDate.Format(DateFormat),
		EndDate:      fy.EndDate.Format(DateFormat),
		IsClosed:     fy.IsClosed,
		CreatedAt:    fy.CreatedAt,
	}
}

// ToFiscalYearResponses converts a slice of domain fiscal years.
func ToFiscalYearResponses(fys []domain.FiscalYear) []FiscalYearResponse {
	responses := make([]FiscalYearResponse, len(fys))
	for i := range fys {
		responses[i] = ToFiscalYearResponse(&fys[i])
	}
	return responses
}
