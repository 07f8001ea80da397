package reports

import (
	"bitbucket.org/gfmis/budget_backend/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AppropriationAggregate is one (classification, funding source) budget sum
// from loaded allocations. No ordering is guaranteed here; the presentation
// layer imposes it.
type AppropriationAggregate struct {
	EconomicClassification string          `json:"economic_classification"`
	SourceOfFunding        string          `json:"source_of_funding"`
	TotalAppropriation     decimal.Decimal `json:"total_appropriation"`
}

// ExecutionAggregate is one (classification, funding source) execution sum
// from posted expenditures within a quarter window.
type ExecutionAggregate struct {
	EconomicClassification string          `json:"economic_classification"`
	SourceOfFunding        string          `json:"source_of_funding"`
	TotalReleases          decimal.Decimal `json:"total_releases"`
	TotalExpenditure       decimal.Decimal `json:"total_expenditure"`
	TotalPayment           decimal.Decimal `json:"total_payment"`
}

// EconomicBreakdownRow is a funding-source line nested under a
// classification row.
type EconomicBreakdownRow struct {
	Source            string          `json:"source"`
	TotalBudget       decimal.Decimal `json:"totalBudget"`
	AmountReleased    decimal.Decimal `json:"amountReleased"`
	ActualExpenditure decimal.Decimal `json:"actualExpenditure"`
	ActualPayments    decimal.Decimal `json:"actualPayments"`
	Projection        decimal.Decimal `json:"projection"`
}

// EconomicReportRow is one classification with its funding-source breakdown.
// The same shape feeds the JSON, spreadsheet and PDF outputs.
type EconomicReportRow struct {
	Title             string                  `json:"title"`
	TotalBudget       decimal.Decimal         `json:"totalBudget"`
	AmountReleased    decimal.Decimal         `json:"amountReleased"`
	ActualExpenditure decimal.Decimal         `json:"actualExpenditure"`
	ActualPayments    decimal.Decimal         `json:"actualPayments"`
	Projection        decimal.Decimal         `json:"projection"`
	Breakdown         []*EconomicBreakdownRow `json:"breakdown"`
}

// EconomicReportTotals is the flat footer record across all rows.
type EconomicReportTotals struct {
	TotalBudget       decimal.Decimal `json:"totalBudget"`
	AmountReleased    decimal.Decimal `json:"amountReleased"`
	ActualExpenditure decimal.Decimal `json:"actualExpenditure"`
	ActualPayments    decimal.Decimal `json:"actualPayments"`
	Projection        decimal.Decimal `json:"projection"`
}

// GetAppropriationAggregates sums loaded appropriations by (classification,
// funding source), scoped by organization and optionally by year.
func GetAppropriationAggregates(db *gorm.DB, scope models.OrgScope, year int) ([]AppropriationAggregate, error) {
	query := db.Model(&models.Allocation{}).
		Select("economic_classification", "source_of_funding", "SUM(appropriation) AS total_appropriation").
		Group("economic_classification").
		Group("source_of_funding")
	if org := scope.Filter(); org != "" {
		query = query.Where("organization = ?", org)
	}
	if year > 0 {
		query = query.Where("year = ?", year)
	}
	var aggregates []AppropriationAggregate
	if err := query.Scan(&aggregates).Error; err != nil {
		return nil, err
	}
	return aggregates, nil
}

// GetExecutionAggregates sums posted expenditures by (classification,
// funding source) within a fiscal quarter's date window.
func GetExecutionAggregates(db *gorm.DB, scope models.OrgScope, period QuarterPeriod) ([]ExecutionAggregate, error) {
	query := db.Model(&models.Expenditure{}).
		Select("economic_classification", "source_of_funding",
			"SUM(releases) AS total_releases",
			"SUM(actual_expenditure) AS total_expenditure",
			"SUM(actual_payment) AS total_payment").
		Where("date BETWEEN ? AND ?", period.Start, period.End).
		Group("economic_classification").
		Group("source_of_funding")
	if org := scope.Filter(); org != "" {
		query = query.Where("organization = ?", org)
	}
	var aggregates []ExecutionAggregate
	if err := query.Scan(&aggregates).Error; err != nil {
		return nil, err
	}
	return aggregates, nil
}

// MergeEconomicReport reconciles the two independently-keyed aggregate sets
// into one nested structure:
//
//  1. appropriations seed a breakdown entry per funding source with zeroed
//     execution fields;
//  2. execution accumulates into the matching entry, creating a zero-budget
//     entry when spend was recorded against a source with no appropriation;
//  3. a non-ALL funding filter drops the other sources from every parent;
//  4. parent totals are recomputed from the surviving breakdown so they
//     always agree with what is visible.
//
// Insertion order is preserved via an explicit key list; canonical ordering
// is SortEconomicReport's job.
func MergeEconomicReport(appropriations []AppropriationAggregate, execution []ExecutionAggregate, fundingFilter string) []*EconomicReportRow {
	index := map[string]*EconomicReportRow{}
	var order []string

	parentFor := func(classification string) *EconomicReportRow {
		if row, ok := index[classification]; ok {
			return row
		}
		row := &EconomicReportRow{Title: classification, Breakdown: []*EconomicBreakdownRow{}}
		index[classification] = row
		order = append(order, classification)
		return row
	}

	for _, agg := range appropriations {
		parent := parentFor(agg.EconomicClassification)
		parent.Breakdown = append(parent.Breakdown, &EconomicBreakdownRow{
			Source:      agg.SourceOfFunding,
			TotalBudget: agg.TotalAppropriation,
		})
	}

	for _, agg := range execution {
		parent := parentFor(agg.EconomicClassification)

		var child *EconomicBreakdownRow
		for _, b := range parent.Breakdown {
			if b.Source == agg.SourceOfFunding {
				child = b
				break
			}
		}
		if child == nil {
			// execution without appropriation
			child = &EconomicBreakdownRow{Source: agg.SourceOfFunding}
			parent.Breakdown = append(parent.Breakdown, child)
		}

		child.AmountReleased = child.AmountReleased.Add(agg.TotalReleases)
		child.ActualExpenditure = child.ActualExpenditure.Add(agg.TotalExpenditure)
		child.ActualPayments = child.ActualPayments.Add(agg.TotalPayment)
	}

	rows := make([]*EconomicReportRow, 0, len(order))
	for _, classification := range order {
		parent := index[classification]

		if fundingFilter != models.AllFundingSources && fundingFilter != "" {
			filtered := parent.Breakdown[:0]
			for _, b := range parent.Breakdown {
				if b.Source == fundingFilter {
					filtered = append(filtered, b)
				}
			}
			parent.Breakdown = filtered
		}

		recomputeParentTotals(parent)
		rows = append(rows, parent)
	}
	return rows
}

func recomputeParentTotals(parent *EconomicReportRow) {
	parent.TotalBudget = decimal.Zero
	parent.AmountReleased = decimal.Zero
	parent.ActualExpenditure = decimal.Zero
	parent.ActualPayments = decimal.Zero
	parent.Projection = decimal.Zero
	for _, b := range parent.Breakdown {
		parent.TotalBudget = parent.TotalBudget.Add(b.TotalBudget)
		parent.AmountReleased = parent.AmountReleased.Add(b.AmountReleased)
		parent.ActualExpenditure = parent.ActualExpenditure.Add(b.ActualExpenditure)
		parent.ActualPayments = parent.ActualPayments.Add(b.ActualPayments)
	}
}

// SummarizeEconomicReport folds the rows into the flat footer totals.
func SummarizeEconomicReport(rows []*EconomicReportRow) EconomicReportTotals {
	var totals EconomicReportTotals
	for _, row := range rows {
		totals.TotalBudget = totals.TotalBudget.Add(row.TotalBudget)
		totals.AmountReleased = totals.AmountReleased.Add(row.AmountReleased)
		totals.ActualExpenditure = totals.ActualExpenditure.Add(row.ActualExpenditure)
		totals.ActualPayments = totals.ActualPayments.Add(row.ActualPayments)
	}
	return totals
}

// BuildEconomicReport is the single entry point all three output formats
// consume: aggregate, merge, sort, total.
func BuildEconomicReport(db *gorm.DB, period QuarterPeriod, fundingFilter string, scope models.OrgScope) ([]*EconomicReportRow, EconomicReportTotals, error) {
	cacheKey := economicReportCacheKey(period, fundingFilter, scope)
	var cached economicReportPayload
	if hit, err := cacheGet(cacheKey, &cached); err == nil && hit {
		return cached.Rows, cached.Totals, nil
	}

	appropriations, err := GetAppropriationAggregates(db, scope, period.Year)
	if err != nil {
		return nil, EconomicReportTotals{}, err
	}
	execution, err := GetExecutionAggregates(db, scope, period)
	if err != nil {
		return nil, EconomicReportTotals{}, err
	}

	rows := MergeEconomicReport(appropriations, execution, fundingFilter)
	SortEconomicReport(rows)
	totals := SummarizeEconomicReport(rows)

	cacheSet(cacheKey, economicReportPayload{Rows: rows, Totals: totals})
	return rows, totals, nil
}

type economicReportPayload struct {
	Rows   []*EconomicReportRow `json:"rows"`
	Totals EconomicReportTotals `json:"totals"`
}
