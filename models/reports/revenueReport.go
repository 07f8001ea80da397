package reports

import (
	"strings"

	"bitbucket.org/gfmis/budget_backend/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RevenueAggregate is one category's quarterly sums, keyed case-insensitively.
type RevenueAggregate struct {
	RevenueCategory string          `json:"revenue_category"`
	TotalActual     decimal.Decimal `json:"total_actual"`
	TotalPayment    decimal.Decimal `json:"total_payment"`
	TotalRetention  decimal.Decimal `json:"total_retention"`
	Remarks         string          `json:"remarks"`
}

// RevenueReportRow is the table shape the UI and exports share.
type RevenueReportRow struct {
	Category      string          `json:"category"`
	Projection    decimal.Decimal `json:"projection"`
	Actual        decimal.Decimal `json:"actual"`
	Payment       decimal.Decimal `json:"payment"`
	Retention     decimal.Decimal `json:"retention"`
	ProjectionDec decimal.Decimal `json:"projectionDec"`
	Remarks       string          `json:"remarks"`
}

type RevenueReportTotals struct {
	Projection    decimal.Decimal `json:"projection"`
	Actual        decimal.Decimal `json:"actual"`
	Payment       decimal.Decimal `json:"payment"`
	Retention     decimal.Decimal `json:"retention"`
	ProjectionDec decimal.Decimal `json:"projectionDec"`
}

// Canonical display names for loosely-entered categories.
var revenueCategoryNames = map[string]string{
	"fees/charges":               "Fees/Charges",
	"fines":                      "Fines/Forfeitures",
	"fines/forfeitures":          "Fines/Forfeitures",
	"interests":                  "Interests",
	"licenses":                   "Licenses",
	"others":                     "Others",
	"sale of goods and services": "Sale Of Goods and Services",
}

// GetRevenueAggregates sums approved-or-not revenue records per category in
// the quarter window, scoped by organization.
func GetRevenueAggregates(db *gorm.DB, scope models.OrgScope, period QuarterPeriod) ([]RevenueAggregate, error) {
	query := db.Model(&models.Revenue{}).
		Select("LOWER(revenue_category) AS revenue_category",
			"SUM(actual_collection) AS total_actual",
			"SUM(payment_amount) AS total_payment",
			"SUM(retention_amount) AS total_retention",
			"MAX(remarks) AS remarks").
		Where("date BETWEEN ? AND ?", period.Start, period.End).
		Group("LOWER(revenue_category)").
		Order("LOWER(revenue_category) ASC")
	if org := scope.Filter(); org != "" {
		query = query.Where("organization = ?", org)
	}
	var aggregates []RevenueAggregate
	if err := query.Scan(&aggregates).Error; err != nil {
		return nil, err
	}
	return aggregates, nil
}

// GroupRevenueData reshapes aggregates into report rows. Budget projections
// are not captured yet, so Projection is zero and the December projection
// temporarily mirrors actual collection.
func GroupRevenueData(aggregates []RevenueAggregate) []*RevenueReportRow {
	rows := make([]*RevenueReportRow, 0, len(aggregates))
	for _, agg := range aggregates {
		category := agg.RevenueCategory
		if canonical, ok := revenueCategoryNames[strings.ToLower(category)]; ok {
			category = canonical
		}
		rows = append(rows, &RevenueReportRow{
			Category:      category,
			Actual:        agg.TotalActual,
			Payment:       agg.TotalPayment,
			Retention:     agg.TotalRetention,
			ProjectionDec: agg.TotalActual,
			Remarks:       agg.Remarks,
		})
	}
	return rows
}

// TotalRevenueSummary adds everything up for the footer row.
func TotalRevenueSummary(rows []*RevenueReportRow) RevenueReportTotals {
	var totals RevenueReportTotals
	for _, row := range rows {
		totals.Projection = totals.Projection.Add(row.Projection)
		totals.Actual = totals.Actual.Add(row.Actual)
		totals.Payment = totals.Payment.Add(row.Payment)
		totals.Retention = totals.Retention.Add(row.Retention)
		totals.ProjectionDec = totals.ProjectionDec.Add(row.ProjectionDec)
	}
	return totals
}

// BuildRevenueReport is the shared entry point for JSON, xlsx and PDF.
func BuildRevenueReport(db *gorm.DB, period QuarterPeriod, scope models.OrgScope) ([]*RevenueReportRow, RevenueReportTotals, error) {
	aggregates, err := GetRevenueAggregates(db, scope, period)
	if err != nil {
		return nil, RevenueReportTotals{}, err
	}
	rows := GroupRevenueData(aggregates)
	return rows, TotalRevenueSummary(rows), nil
}
