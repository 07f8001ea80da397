package reports

import (
	"io"

	"bitbucket.org/gfmis/budget_backend/utils"
	"codeberg.org/go-pdf/fpdf"
)

// PdfHeader carries the request context printed in the header block of
// every generated document.
type PdfHeader struct {
	Organization    string
	Year            int
	QuarterLabel    string
	SourceOfFunding string
}

func newReportPdf() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	return pdf
}

func writePdfHeader(pdf *fpdf.Fpdf, title string, header PdfHeader) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 7, title, "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, "Organization: "+header.Organization, "", 1, "L", false, 0, "")
	if header.QuarterLabel != "" {
		pdf.CellFormat(0, 5, "Period: "+header.QuarterLabel, "", 1, "L", false, 0, "")
	}
	if header.SourceOfFunding != "" {
		pdf.CellFormat(0, 5, "Source of Funding: "+header.SourceOfFunding, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 5, "Currency: Ghana Cedis (GHS)", "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

// WriteEconomicReportPDF renders the same merged+sorted rows the JSON and
// spreadsheet outputs receive: shaded parent rows per classification,
// indented funding-source rows, grand-total footer.
func WriteEconomicReportPDF(w io.Writer, rows []*EconomicReportRow, totals EconomicReportTotals, period QuarterPeriod, header PdfHeader) error {
	pdf := newReportPdf()
	header.QuarterLabel = period.Label
	writePdfHeader(pdf, "Summary of Budget Performance by Economic Classification", header)

	colWidths := []float64{56, 26, 26, 26, 26, 26}
	headings := []string{
		"EXPENDITURE ITEM", "APPROVED BUDGET", "AMOUNT RELEASED",
		"ACTUAL EXPENDITURE", "ACTUAL PAYMENTS", "PROJECTIONS",
	}

	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetFillColor(229, 231, 235)
	for i, h := range headings {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	for _, item := range rows {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(243, 244, 246)
		pdf.CellFormat(colWidths[0], 7, item.Title, "1", 0, "L", true, 0, "")
		pdf.CellFormat(colWidths[1], 7, utils.FormatMoney(item.TotalBudget), "1", 0, "R", true, 0, "")
		pdf.CellFormat(colWidths[2], 7, utils.FormatMoney(item.AmountReleased), "1", 0, "R", true, 0, "")
		pdf.CellFormat(colWidths[3], 7, utils.FormatMoney(item.ActualExpenditure), "1", 0, "R", true, 0, "")
		pdf.CellFormat(colWidths[4], 7, utils.FormatMoney(item.ActualPayments), "1", 0, "R", true, 0, "")
		pdf.CellFormat(colWidths[5], 7, utils.FormatMoney(item.Projection), "1", 1, "R", true, 0, "")

		pdf.SetFont("Helvetica", "", 8)
		for _, b := range item.Breakdown {
			pdf.CellFormat(colWidths[0], 6, "    "+b.Source, "1", 0, "L", false, 0, "")
			pdf.CellFormat(colWidths[1], 6, utils.FormatMoney(b.TotalBudget), "1", 0, "R", false, 0, "")
			pdf.CellFormat(colWidths[2], 6, utils.FormatMoney(b.AmountReleased), "1", 0, "R", false, 0, "")
			pdf.CellFormat(colWidths[3], 6, utils.FormatMoney(b.ActualExpenditure), "1", 0, "R", false, 0, "")
			pdf.CellFormat(colWidths[4], 6, utils.FormatMoney(b.ActualPayments), "1", 0, "R", false, 0, "")
			pdf.CellFormat(colWidths[5], 6, utils.FormatMoney(b.Projection), "1", 1, "R", false, 0, "")
		}
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(220, 252, 231)
	pdf.CellFormat(colWidths[0], 8, "TOTAL", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colWidths[1], 8, utils.FormatMoney(totals.TotalBudget), "1", 0, "R", true, 0, "")
	pdf.CellFormat(colWidths[2], 8, utils.FormatMoney(totals.AmountReleased), "1", 0, "R", true, 0, "")
	pdf.CellFormat(colWidths[3], 8, utils.FormatMoney(totals.ActualExpenditure), "1", 0, "R", true, 0, "")
	pdf.CellFormat(colWidths[4], 8, utils.FormatMoney(totals.ActualPayments), "1", 0, "R", true, 0, "")
	pdf.CellFormat(colWidths[5], 8, utils.FormatMoney(totals.Projection), "1", 1, "R", true, 0, "")

	return pdf.Output(w)
}

// WriteCashPositionPDF renders the per-account multi-currency table.
func WriteCashPositionPDF(w io.Writer, rows []*CashPositionRow, totals CashPositionTotals, asAtDate string, header PdfHeader) error {
	pdf := newReportPdf()
	writePdfHeader(pdf, "Cash Position as at "+asAtDate, header)

	colWidths := []float64{66, 30, 30, 30, 30}
	headings := []string{"ACCOUNT NAME", "GHS", "USD", "GBP", "EUR"}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(229, 231, 235)
	for i, h := range headings {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range rows {
		pdf.CellFormat(colWidths[0], 6, row.AccountName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 6, utils.FormatMoney(row.GHS), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[2], 6, utils.FormatMoney(row.USD), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], 6, utils.FormatMoney(row.GBP), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[4], 6, utils.FormatMoney(row.EUR), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(220, 252, 231)
	pdf.CellFormat(colWidths[0], 8, "TOTAL", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colWidths[1], 8, utils.FormatMoney(totals.GHS), "1", 0, "R", true, 0, "")
	pdf.CellFormat(colWidths[2], 8, utils.FormatMoney(totals.USD), "1", 0, "R", true, 0, "")
	pdf.CellFormat(colWidths[3], 8, utils.FormatMoney(totals.GBP), "1", 0, "R", true, 0, "")
	pdf.CellFormat(colWidths[4], 8, utils.FormatMoney(totals.EUR), "1", 1, "R", true, 0, "")

	return pdf.Output(w)
}

// WriteRevenueReportPDF renders the quarterly revenue table.
func WriteRevenueReportPDF(w io.Writer, rows []*RevenueReportRow, totals RevenueReportTotals, period QuarterPeriod, header PdfHeader) error {
	pdf := newReportPdf()
	header.QuarterLabel = period.Label
	writePdfHeader(pdf, "Revenue Performance "+period.Label, header)

	colWidths := []float64{46, 28, 28, 28, 28, 28}
	headings := []string{
		"REVENUE CATEGORY", "BUDGET PROJECTION", "ACTUAL COLLECTION",
		"PAYMENT TO CF", "RETENTION", "PROJECTION DEC",
	}

	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetFillColor(229, 231, 235)
	for i, h := range headings {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range rows {
		pdf.CellFormat(colWidths[0], 6, row.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 6, utils.FormatMoney(row.Projection), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[2], 6, utils.FormatMoney(row.Actual), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], 6, utils.FormatMoney(row.Payment), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[4], 6, utils.FormatMoney(row.Retention), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[5], 6, utils.FormatMoney(row.ProjectionDec), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(220, 252, 231)
	pdf.CellFormat(colWidths[0], 8, "TOTAL", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colWidths[1], 8, utils.FormatMoney(totals.Projection), "1", 0, "R", true, 0, "")
	pdf.CellFormat(colWidths[2], 8, utils.FormatMoney(totals.Actual), "1", 0, "R", true, 0, "")
	pdf.CellFormat(colWidths[3], 8, utils.FormatMoney(totals.Payment), "1", 0, "R", true, 0, "")
	pdf.CellFormat(colWidths[4], 8, utils.FormatMoney(totals.Retention), "1", 0, "R", true, 0, "")
	pdf.CellFormat(colWidths[5], 8, utils.FormatMoney(totals.ProjectionDec), "1", 1, "R", true, 0, "")

	return pdf.Output(w)
}
