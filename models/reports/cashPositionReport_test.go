package reports

import (
	"testing"

	"bitbucket.org/gfmis/budget_backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupCashPositionsOneRowPerAccount(t *testing.T) {
	balances := []*models.CashBalance{
		{AccountName: "Operations Account", Currency: "GHS", Balance: decimal.NewFromInt(120000)},
		{AccountName: "Operations Account", Currency: "USD", Balance: decimal.NewFromInt(5000)},
		{AccountName: "Donor Account", Currency: "EUR", Balance: decimal.NewFromInt(8000)},
		{AccountName: "Donor Account", Currency: "GBP", Balance: decimal.NewFromInt(1500)},
	}

	grouped := GroupCashPositions(balances)
	require.Len(t, grouped, 2)

	ops := grouped[0]
	assert.Equal(t, "Operations Account", ops.AccountName)
	assert.True(t, ops.GHS.Equal(decimal.NewFromInt(120000)))
	assert.True(t, ops.USD.Equal(decimal.NewFromInt(5000)))
	assert.True(t, ops.GBP.IsZero())
	assert.True(t, ops.EUR.IsZero())

	donor := grouped[1]
	assert.Equal(t, "Donor Account", donor.AccountName)
	assert.True(t, donor.EUR.Equal(decimal.NewFromInt(8000)))
	assert.True(t, donor.GBP.Equal(decimal.NewFromInt(1500)))
}

func TestGroupCashPositionsSumsDuplicateCurrency(t *testing.T) {
	balances := []*models.CashBalance{
		{AccountName: "Operations Account", Currency: "GHS", Balance: decimal.NewFromInt(100)},
		{AccountName: "Operations Account", Currency: "GHS", Balance: decimal.NewFromInt(250)},
	}
	grouped := GroupCashPositions(balances)
	require.Len(t, grouped, 1)
	assert.True(t, grouped[0].GHS.Equal(decimal.NewFromInt(350)))
}

func TestTotalCashPositions(t *testing.T) {
	grouped := []*CashPositionRow{
		{AccountName: "A", GHS: decimal.NewFromInt(100), USD: decimal.NewFromInt(10)},
		{AccountName: "B", GHS: decimal.NewFromInt(200), EUR: decimal.NewFromInt(30)},
	}
	totals := TotalCashPositions(grouped)
	assert.True(t, totals.GHS.Equal(decimal.NewFromInt(300)))
	assert.True(t, totals.USD.Equal(decimal.NewFromInt(10)))
	assert.True(t, totals.GBP.IsZero())
	assert.True(t, totals.EUR.Equal(decimal.NewFromInt(30)))
}
