package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const reportSheet = "Sheet1"

// WriteEconomicReportExcel renders the merged+sorted rows to a workbook:
// one bold parent row per classification, indented funding-source rows, and
// a grand-total footer. The caller owns response headers.
func WriteEconomicReportExcel(w io.Writer, rows []*EconomicReportRow, totals EconomicReportTotals, period QuarterPeriod) error {
	f := excelize.NewFile()
	defer f.Close()

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return err
	}
	childStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Italic: true, Color: "555555"},
		Alignment: &excelize.Alignment{Indent: 2},
	})
	if err != nil {
		return err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Color: "166534"}})
	if err != nil {
		return err
	}

	f.SetCellValue(reportSheet, "A1", "Summary of Budget Performance by Economic Classification")
	f.SetCellStyle(reportSheet, "A1", "A1", titleStyle)

	header := []interface{}{
		"EXPENDITURE ITEM",
		fmt.Sprintf("%d APPROVED BUDGET / APPROPRIATION", period.Year),
		fmt.Sprintf("AMOUNT RELEASED AS AT END %s %d", period.EndMonthName, period.Year),
		fmt.Sprintf("ACTUAL EXPENDITURE AS AT END %s %d", period.EndMonthName, period.Year),
		fmt.Sprintf("ACTUAL PAYMENTS AS AT END %s %d", period.EndMonthName, period.Year),
		fmt.Sprintf("PROJECTIONS AS AT %s", period.ProjectionLabel),
	}
	if err := f.SetSheetRow(reportSheet, "A2", &header); err != nil {
		return err
	}
	f.SetCellStyle(reportSheet, "A2", "F2", boldStyle)

	rowNo := 3
	for _, item := range rows {
		parent := []interface{}{
			item.Title,
			item.TotalBudget.InexactFloat64(),
			item.AmountReleased.InexactFloat64(),
			item.ActualExpenditure.InexactFloat64(),
			item.ActualPayments.InexactFloat64(),
			item.Projection.InexactFloat64(),
		}
		if err := f.SetSheetRow(reportSheet, fmt.Sprintf("A%d", rowNo), &parent); err != nil {
			return err
		}
		f.SetCellStyle(reportSheet, fmt.Sprintf("A%d", rowNo), fmt.Sprintf("F%d", rowNo), boldStyle)
		rowNo++

		for _, b := range item.Breakdown {
			child := []interface{}{
				b.Source,
				b.TotalBudget.InexactFloat64(),
				b.AmountReleased.InexactFloat64(),
				b.ActualExpenditure.InexactFloat64(),
				b.ActualPayments.InexactFloat64(),
				b.Projection.InexactFloat64(),
			}
			if err := f.SetSheetRow(reportSheet, fmt.Sprintf("A%d", rowNo), &child); err != nil {
				return err
			}
			f.SetCellStyle(reportSheet, fmt.Sprintf("A%d", rowNo), fmt.Sprintf("A%d", rowNo), childStyle)
			rowNo++
		}
	}

	footer := []interface{}{
		"TOTAL",
		totals.TotalBudget.InexactFloat64(),
		totals.AmountReleased.InexactFloat64(),
		totals.ActualExpenditure.InexactFloat64(),
		totals.ActualPayments.InexactFloat64(),
		totals.Projection.InexactFloat64(),
	}
	if err := f.SetSheetRow(reportSheet, fmt.Sprintf("A%d", rowNo), &footer); err != nil {
		return err
	}
	f.SetCellStyle(reportSheet, fmt.Sprintf("A%d", rowNo), fmt.Sprintf("F%d", rowNo), totalStyle)

	f.SetColWidth(reportSheet, "A", "A", 35)
	f.SetColWidth(reportSheet, "B", "F", 20)

	return f.Write(w)
}

// WriteCashPositionExcel renders the grouped cash rows plus the per-currency
// grand total.
func WriteCashPositionExcel(w io.Writer, rows []*CashPositionRow, totals CashPositionTotals, asAtDate string) error {
	f := excelize.NewFile()
	defer f.Close()

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	f.SetCellValue(reportSheet, "A1", fmt.Sprintf("Cash Position as at %s", asAtDate))
	f.SetCellStyle(reportSheet, "A1", "A1", boldStyle)

	header := []interface{}{"ACCOUNT NAME", "GHS", "USD", "GBP", "EUR"}
	if err := f.SetSheetRow(reportSheet, "A2", &header); err != nil {
		return err
	}
	f.SetCellStyle(reportSheet, "A2", "E2", boldStyle)

	rowNo := 3
	for _, row := range rows {
		values := []interface{}{
			row.AccountName,
			row.GHS.InexactFloat64(),
			row.USD.InexactFloat64(),
			row.GBP.InexactFloat64(),
			row.EUR.InexactFloat64(),
		}
		if err := f.SetSheetRow(reportSheet, fmt.Sprintf("A%d", rowNo), &values); err != nil {
			return err
		}
		rowNo++
	}

	footer := []interface{}{
		"TOTAL",
		totals.GHS.InexactFloat64(),
		totals.USD.InexactFloat64(),
		totals.GBP.InexactFloat64(),
		totals.EUR.InexactFloat64(),
	}
	if err := f.SetSheetRow(reportSheet, fmt.Sprintf("A%d", rowNo), &footer); err != nil {
		return err
	}
	f.SetCellStyle(reportSheet, fmt.Sprintf("A%d", rowNo), fmt.Sprintf("E%d", rowNo), boldStyle)

	f.SetColWidth(reportSheet, "A", "A", 35)
	f.SetColWidth(reportSheet, "B", "E", 18)

	return f.Write(w)
}

// WriteRevenueReportExcel renders the quarterly revenue table.
func WriteRevenueReportExcel(w io.Writer, rows []*RevenueReportRow, totals RevenueReportTotals, period QuarterPeriod) error {
	f := excelize.NewFile()
	defer f.Close()

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	f.SetCellValue(reportSheet, "A1", fmt.Sprintf("Revenue Performance %s", period.Label))
	f.SetCellStyle(reportSheet, "A1", "A1", boldStyle)

	header := []interface{}{
		"REVENUE CATEGORY",
		"BUDGET PROJECTION",
		"ACTUAL COLLECTION",
		"PAYMENT TO CF",
		"RETENTION",
		fmt.Sprintf("PROJECTION AS AT %s", period.ProjectionLabel),
		"REMARKS",
	}
	if err := f.SetSheetRow(reportSheet, "A2", &header); err != nil {
		return err
	}
	f.SetCellStyle(reportSheet, "A2", "G2", boldStyle)

	rowNo := 3
	for _, row := range rows {
		values := []interface{}{
			row.Category,
			row.Projection.InexactFloat64(),
			row.Actual.InexactFloat64(),
			row.Payment.InexactFloat64(),
			row.Retention.InexactFloat64(),
			row.ProjectionDec.InexactFloat64(),
			row.Remarks,
		}
		if err := f.SetSheetRow(reportSheet, fmt.Sprintf("A%d", rowNo), &values); err != nil {
			return err
		}
		rowNo++
	}

	footer := []interface{}{
		"TOTAL",
		totals.Projection.InexactFloat64(),
		totals.Actual.InexactFloat64(),
		totals.Payment.InexactFloat64(),
		totals.Retention.InexactFloat64(),
		totals.ProjectionDec.InexactFloat64(),
		"",
	}
	if err := f.SetSheetRow(reportSheet, fmt.Sprintf("A%d", rowNo), &footer); err != nil {
		return err
	}
	f.SetCellStyle(reportSheet, fmt.Sprintf("A%d", rowNo), fmt.Sprintf("G%d", rowNo), boldStyle)

	f.SetColWidth(reportSheet, "A", "A", 30)
	f.SetColWidth(reportSheet, "B", "G", 18)

	return f.Write(w)
}

// WriteAllocationTemplateExcel produces the downloadable bulk-import
// template with one sample row.
func WriteAllocationTemplateExcel(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4CAF50"}},
	})
	if err != nil {
		return err
	}

	header := []interface{}{
		"organization", "economicClassification", "sourceOfFunding",
		"naturalAccount", "year", "appropriation", "allotment",
	}
	if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
		return err
	}
	f.SetCellStyle(reportSheet, "A1", "G1", headerStyle)

	sample := []interface{}{
		"MOF", "Use of Goods and Services", "GoG", "123456", 2025, 500000.00, 200000.00,
	}
	if err := f.SetSheetRow(reportSheet, "A2", &sample); err != nil {
		return err
	}

	f.SetColWidth(reportSheet, "A", "D", 30)
	f.SetColWidth(reportSheet, "E", "G", 15)

	return f.Write(w)
}
