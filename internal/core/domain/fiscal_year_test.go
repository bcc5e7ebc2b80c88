package domain_test

import (
	"testing"
	"time"

	"github.com/daftarhq/daftar_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFiscalYearContains(t *testing.T) {
	fy := domain.FiscalYear{
		StartDate: date(2031, time.March, 21),
		EndDate:   date(2032, time.March, 20),
	}

	assert.True(t, fy.Contains(date(2031, time.March, 21)), "start boundary is inside")
	assert.True(t, fy.Contains(date(2032, time.March, 20)), "end boundary is inside")
	assert.True(t, fy.Contains(date(2031, time.September, 1)))
	assert.False(t, fy.Contains(date(2031, time.March, 20)))
	assert.False(t, fy.Contains(date(2032, time.March, 21)))
}

func TestFiscalYearNextSpan(t *testing.T) {
	fy := domain.FiscalYear{
		StartDate: date(2031, time.March, 21),
		EndDate:   date(2032, time.March, 20),
	}

	start, end := fy.NextSpan()
	assert.Equal(t, date(2032, time.March, 21), start, "successor starts the day after the end")
	assert.Equal(t, date(2033, time.March, 21), end, "successor mirrors the period length")
	assert.Equal(t, fy.EndDate.Sub(fy.StartDate), end.Sub(start))
}
