package reports

import "sort"

// Canonical presentation orders. Values absent from a list sort after all
// known values, keeping their relative order (stable sort), rather than the
// undefined placement a plain index comparison would give.
var classificationOrder = []string{
	"Compensation of Employees",
	"Use of Goods and Services",
	"Capital Expenditure",
}

var fundingSourceOrder = []string{"GoG", "IGF", "DPF"}

func priorityIndex(order []string, value string) int {
	for i, v := range order {
		if v == value {
			return i
		}
	}
	return len(order)
}

// SortEconomicReport imposes the canonical classification order on the rows
// and the canonical funding-source order within each breakdown, in place.
func SortEconomicReport(rows []*EconomicReportRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return priorityIndex(classificationOrder, rows[i].Title) <
			priorityIndex(classificationOrder, rows[j].Title)
	})
	for _, row := range rows {
		SortFundingSources(row.Breakdown)
	}
}

// SortFundingSources orders breakdown entries GoG, IGF, DPF, then unknowns.
func SortFundingSources(breakdown []*EconomicBreakdownRow) {
	sort.SliceStable(breakdown, func(i, j int) bool {
		return priorityIndex(fundingSourceOrder, breakdown[i].Source) <
			priorityIndex(fundingSourceOrder, breakdown[j].Source)
	})
}
