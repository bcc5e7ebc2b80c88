package domain

import "time"

// FiscalYear is a bounded accounting period that journals belong to and
// reports are scoped by.
type FiscalYear struct {
	FiscalYearID string    `json:"fiscalYearID"` // Primary Key (UUID)
	Name         string    `json:"name"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	IsClosed     bool      `json:"isClosed"`
	AuditFields
}

// Contains reports whether a journal date falls inside the year span,
// boundaries included.
func (fy *FiscalYear) Contains(date time.Time) bool {
	return !date.Before(fy.StartDate) && !date.After(fy.EndDate)
}

// NextSpan computes the successor period: it starts the day after this
// year's end and mirrors the same length.
func (fy *FiscalYear) NextSpan() (start, end time.Time) {
	start = fy.EndDate.AddDate(0, 0, 1)
	end = start.Add(fy.EndDate.Sub(fy.StartDate))
	return start, end
}
