package accounting_test

import (
	"testing"

	"github.com/daftarhq/daftar_backend/internal/apperrors"
	"github.com/daftarhq/daftar_backend/internal/core/domain"
	"github.com/daftarhq/daftar_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debitItem(amount int64) domain.JournalItem {
	return domain.JournalItem{Debit: decimal.NewFromInt(amount), Credit: decimal.Zero}
}

func creditItem(amount int64) domain.JournalItem {
	return domain.JournalItem{Debit: decimal.Zero, Credit: decimal.NewFromInt(amount)}
}

func TestSumItems(t *testing.T) {
	debit, credit := accounting.SumItems([]domain.JournalItem{
		debitItem(600),
		debitItem(400),
		creditItem(1000),
	})
	assert.True(t, debit.Equal(decimal.NewFromInt(1000)))
	assert.True(t, credit.Equal(decimal.NewFromInt(1000)))
}

func TestIsBalanced(t *testing.T) {
	assert.True(t, accounting.IsBalanced(decimal.NewFromInt(100), decimal.NewFromInt(100)))
	assert.False(t, accounting.IsBalanced(decimal.NewFromInt(100), decimal.NewFromInt(99)))

	// Differences at the epsilon boundary are tolerated, just beyond are not.
	within := decimal.NewFromInt(100).Add(decimal.New(1, -4))
	beyond := decimal.NewFromInt(100).Add(decimal.New(2, -4))
	assert.True(t, accounting.IsBalanced(within, decimal.NewFromInt(100)))
	assert.False(t, accounting.IsBalanced(beyond, decimal.NewFromInt(100)))
}

func TestValidateItems(t *testing.T) {
	t.Run("balanced set passes", func(t *testing.T) {
		err := accounting.ValidateItems([]domain.JournalItem{debitItem(500), creditItem(500)})
		assert.NoError(t, err)
	})

	t.Run("empty set fails", func(t *testing.T) {
		err := accounting.ValidateItems(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("negative amount fails", func(t *testing.T) {
		items := []domain.JournalItem{
			{Debit: decimal.NewFromInt(-5), Credit: decimal.Zero},
			creditItem(5),
		}
		assert.ErrorIs(t, accounting.ValidateItems(items), apperrors.ErrValidation)
	})

	t.Run("both sides set fails", func(t *testing.T) {
		items := []domain.JournalItem{
			{Debit: decimal.NewFromInt(5), Credit: decimal.NewFromInt(5)},
			creditItem(5),
		}
		assert.ErrorIs(t, accounting.ValidateItems(items), apperrors.ErrValidation)
	})

	t.Run("neither side set fails", func(t *testing.T) {
		items := []domain.JournalItem{{}, creditItem(5)}
		assert.ErrorIs(t, accounting.ValidateItems(items), apperrors.ErrValidation)
	})

	t.Run("unbalanced set fails", func(t *testing.T) {
		items := []domain.JournalItem{debitItem(500), creditItem(400)}
		assert.ErrorIs(t, accounting.ValidateItems(items), apperrors.ErrValidation)
	})
}

func TestSignedAmount(t *testing.T) {
	item := debitItem(100)

	assert.True(t, accounting.SignedAmount(item, domain.NatureDebit).Equal(decimal.NewFromInt(100)))
	assert.True(t, accounting.SignedAmount(item, domain.NatureCredit).Equal(decimal.NewFromInt(-100)))

	item = creditItem(40)
	assert.True(t, accounting.SignedAmount(item, domain.NatureDebit).Equal(decimal.NewFromInt(-40)))
	assert.True(t, accounting.SignedAmount(item, domain.NatureCredit).Equal(decimal.NewFromInt(40)))
}

func TestMirrorItems(t *testing.T) {
	party := "party-1"
	original := []domain.JournalItem{
		{ItemID: "a", JournalID: "j", CodeID: "c1", PartyID: &party, Debit: decimal.NewFromInt(100), Credit: decimal.Zero, Description: "rent", LineNo: 1},
		{ItemID: "b", JournalID: "j", CodeID: "c2", Debit: decimal.Zero, Credit: decimal.NewFromInt(100), LineNo: 2},
	}

	mirrored := accounting.MirrorItems(original)
	require.Len(t, mirrored, 2)

	assert.True(t, mirrored[0].Credit.Equal(decimal.NewFromInt(100)))
	assert.True(t, mirrored[0].Debit.IsZero())
	assert.True(t, mirrored[1].Debit.Equal(decimal.NewFromInt(100)))
	assert.True(t, mirrored[1].Credit.IsZero())

	// Identity and linkage are left for the caller to assign.
	assert.Empty(t, mirrored[0].ItemID)
	assert.Empty(t, mirrored[0].JournalID)
	assert.Equal(t, "c1", mirrored[0].CodeID)
	assert.Equal(t, &party, mirrored[0].PartyID)
	assert.Equal(t, 1, mirrored[0].LineNo)

	// The mirror pair still balances.
	assert.NoError(t, accounting.ValidateItems(mirrored))
}
