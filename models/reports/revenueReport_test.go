package reports

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRevenueDataCanonicalNames(t *testing.T) {
	aggregates := []RevenueAggregate{
		{RevenueCategory: "fees/charges", TotalActual: decimal.NewFromInt(12000),
			TotalPayment: decimal.NewFromInt(11400), TotalRetention: decimal.NewFromInt(600)},
		{RevenueCategory: "fines", TotalActual: decimal.NewFromInt(3000)},
		{RevenueCategory: "road tolls", TotalActual: decimal.NewFromInt(500)},
	}

	rows := GroupRevenueData(aggregates)
	require.Len(t, rows, 3)

	assert.Equal(t, "Fees/Charges", rows[0].Category)
	assert.Equal(t, "Fines/Forfeitures", rows[1].Category)
	// Categories without a canonical mapping pass through untouched.
	assert.Equal(t, "road tolls", rows[2].Category)

	assert.True(t, rows[0].Actual.Equal(decimal.NewFromInt(12000)))
	assert.True(t, rows[0].Payment.Equal(decimal.NewFromInt(11400)))
	assert.True(t, rows[0].Retention.Equal(decimal.NewFromInt(600)))
	assert.True(t, rows[0].Projection.IsZero())
	assert.True(t, rows[0].ProjectionDec.Equal(rows[0].Actual),
		"December projection mirrors actual until projections are captured")
}

func TestTotalRevenueSummary(t *testing.T) {
	rows := []*RevenueReportRow{
		{Actual: decimal.NewFromInt(12000), Payment: decimal.NewFromInt(11400),
			Retention: decimal.NewFromInt(600), ProjectionDec: decimal.NewFromInt(12000)},
		{Actual: decimal.NewFromInt(3000), Payment: decimal.NewFromInt(3000),
			ProjectionDec: decimal.NewFromInt(3000)},
	}
	totals := TotalRevenueSummary(rows)
	assert.True(t, totals.Actual.Equal(decimal.NewFromInt(15000)))
	assert.True(t, totals.Payment.Equal(decimal.NewFromInt(14400)))
	assert.True(t, totals.Retention.Equal(decimal.NewFromInt(600)))
	assert.True(t, totals.ProjectionDec.Equal(decimal.NewFromInt(15000)))
}
