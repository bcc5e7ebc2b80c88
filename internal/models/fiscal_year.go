package models

import "time"

// FiscalYear is the persistence model of an accounting period.
type FiscalYear struct {
	FiscalYearID string    `db:"fiscal_year_id"`
	Name         string    `db:"name"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	IsClosed     bool      `db:"is_closed"`
	AuditFields
}
