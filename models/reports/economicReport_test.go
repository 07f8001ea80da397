package reports

import (
	"testing"

	"bitbucket.org/gfmis/budget_backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func sampleAppropriations() []AppropriationAggregate {
	return []AppropriationAggregate{
		{EconomicClassification: models.ClassificationGoodsAndServices, SourceOfFunding: "IGF", TotalAppropriation: dec(50000)},
		{EconomicClassification: models.ClassificationCompensation, SourceOfFunding: "GoG", TotalAppropriation: dec(200000)},
		{EconomicClassification: models.ClassificationGoodsAndServices, SourceOfFunding: "GoG", TotalAppropriation: dec(80000)},
	}
}

func sampleExecution() []ExecutionAggregate {
	return []ExecutionAggregate{
		{EconomicClassification: models.ClassificationCompensation, SourceOfFunding: "GoG",
			TotalReleases: dec(60000), TotalExpenditure: dec(55000), TotalPayment: dec(50000)},
		{EconomicClassification: models.ClassificationGoodsAndServices, SourceOfFunding: "GoG",
			TotalReleases: dec(20000), TotalExpenditure: dec(18000), TotalPayment: dec(15000)},
	}
}

func TestMergeEconomicReportCombinesBudgetAndExecution(t *testing.T) {
	rows := MergeEconomicReport(sampleAppropriations(), sampleExecution(), models.AllFundingSources)
	require.Len(t, rows, 2)

	var goods *EconomicReportRow
	for _, row := range rows {
		if row.Title == models.ClassificationGoodsAndServices {
			goods = row
		}
	}
	require.NotNil(t, goods)
	require.Len(t, goods.Breakdown, 2)

	assert.True(t, goods.TotalBudget.Equal(dec(130000)), "parent budget sums its breakdown")
	assert.True(t, goods.AmountReleased.Equal(dec(20000)))
	assert.True(t, goods.ActualExpenditure.Equal(dec(18000)))
	assert.True(t, goods.ActualPayments.Equal(dec(15000)))
}

func TestMergeEconomicReportExecutionWithoutBudget(t *testing.T) {
	execution := []ExecutionAggregate{
		{EconomicClassification: models.ClassificationCapitalExpenditure, SourceOfFunding: "DPF",
			TotalReleases: dec(9000), TotalExpenditure: dec(7000), TotalPayment: dec(7000)},
	}
	rows := MergeEconomicReport(nil, execution, models.AllFundingSources)
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Breakdown, 1)

	child := rows[0].Breakdown[0]
	assert.True(t, child.TotalBudget.IsZero(), "spend against an unbudgeted source gets a zero-budget entry")
	assert.True(t, child.AmountReleased.Equal(dec(9000)))
	assert.True(t, rows[0].AmountReleased.Equal(dec(9000)))
}

func TestMergeEconomicReportFundingFilter(t *testing.T) {
	rows := MergeEconomicReport(sampleAppropriations(), sampleExecution(), "IGF")

	for _, row := range rows {
		for _, child := range row.Breakdown {
			assert.Equal(t, "IGF", child.Source)
		}
	}

	var goods *EconomicReportRow
	for _, row := range rows {
		if row.Title == models.ClassificationGoodsAndServices {
			goods = row
		}
	}
	require.NotNil(t, goods)
	// Parent totals must be recomputed from what survived the filter, not
	// carried over from the unfiltered merge.
	assert.True(t, goods.TotalBudget.Equal(dec(50000)))
	assert.True(t, goods.AmountReleased.IsZero())
}

func TestMergeEconomicReportParentTotalsInvariant(t *testing.T) {
	for _, filter := range []string{models.AllFundingSources, "GoG", "IGF", "DPF"} {
		rows := MergeEconomicReport(sampleAppropriations(), sampleExecution(), filter)
		for _, row := range rows {
			budget, released := decimal.Zero, decimal.Zero
			for _, child := range row.Breakdown {
				budget = budget.Add(child.TotalBudget)
				released = released.Add(child.AmountReleased)
			}
			assert.True(t, row.TotalBudget.Equal(budget), "filter %s: parent budget != breakdown sum", filter)
			assert.True(t, row.AmountReleased.Equal(released), "filter %s: parent releases != breakdown sum", filter)
		}
	}
}

func TestSortEconomicReportCanonicalOrder(t *testing.T) {
	rows := []*EconomicReportRow{
		{Title: models.ClassificationCapitalExpenditure},
		{Title: models.ClassificationCompensation},
		{Title: models.ClassificationGoodsAndServices},
	}
	rows[0].Breakdown = []*EconomicBreakdownRow{{Source: "DPF"}, {Source: "GoG"}, {Source: "IGF"}}
	SortEconomicReport(rows)

	assert.Equal(t, models.ClassificationCompensation, rows[0].Title)
	assert.Equal(t, models.ClassificationGoodsAndServices, rows[1].Title)
	assert.Equal(t, models.ClassificationCapitalExpenditure, rows[2].Title)

	capital := rows[2]
	assert.Equal(t, "GoG", capital.Breakdown[0].Source)
	assert.Equal(t, "IGF", capital.Breakdown[1].Source)
	assert.Equal(t, "DPF", capital.Breakdown[2].Source)
}

func TestSortEconomicReportUnknownsSortLast(t *testing.T) {
	rows := []*EconomicReportRow{
		{Title: "Subsidies"},
		{Title: models.ClassificationCompensation},
		{Title: "Grants"},
	}
	SortEconomicReport(rows)

	assert.Equal(t, models.ClassificationCompensation, rows[0].Title)
	// Unknown classifications keep their relative order after the known ones.
	assert.Equal(t, "Subsidies", rows[1].Title)
	assert.Equal(t, "Grants", rows[2].Title)

	breakdown := []*EconomicBreakdownRow{{Source: "World Bank"}, {Source: "GoG"}}
	SortFundingSources(breakdown)
	assert.Equal(t, "GoG", breakdown[0].Source)
	assert.Equal(t, "World Bank", breakdown[1].Source)
}

func TestSummarizeEconomicReport(t *testing.T) {
	rows := MergeEconomicReport(sampleAppropriations(), sampleExecution(), models.AllFundingSources)
	totals := SummarizeEconomicReport(rows)

	assert.True(t, totals.TotalBudget.Equal(dec(330000)))
	assert.True(t, totals.AmountReleased.Equal(dec(80000)))
	assert.True(t, totals.ActualExpenditure.Equal(dec(73000)))
	assert.True(t, totals.ActualPayments.Equal(dec(65000)))
	assert.True(t, totals.Projection.IsZero(), "projections are not captured yet")
}

func TestMergeEconomicReportIsDeterministic(t *testing.T) {
	first := MergeEconomicReport(sampleAppropriations(), sampleExecution(), models.AllFundingSources)
	second := MergeEconomicReport(sampleAppropriations(), sampleExecution(), models.AllFundingSources)
	SortEconomicReport(first)
	SortEconomicReport(second)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Title, second[i].Title)
		assert.True(t, first[i].TotalBudget.Equal(second[i].TotalBudget))
		require.Equal(t, len(first[i].Breakdown), len(second[i].Breakdown))
		for j := range first[i].Breakdown {
			assert.Equal(t, first[i].Breakdown[j].Source, second[i].Breakdown[j].Source)
		}
	}
}
