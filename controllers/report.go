package controllers

import (
	"net/http"
	"strconv"

	"bitbucket.org/gfmis/budget_backend/models"
	"bitbucket.org/gfmis/budget_backend/models/reports"
	"bitbucket.org/gfmis/budget_backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func reportParams(c *gin.Context, db *gorm.DB) (*models.User, models.OrgScope, reports.QuarterPeriod, string, error) {
	user, err := currentUser(c, db)
	if err != nil {
		return nil, models.OrgScope{}, reports.QuarterPeriod{}, "", err
	}

	scope, err := models.ResolveOrgScope(user.Role, user.Organization, c.Query("organization"))
	if err != nil {
		return nil, models.OrgScope{}, reports.QuarterPeriod{}, "", err
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return nil, models.OrgScope{}, reports.QuarterPeriod{}, "", utils.NewValidationError("year and quarter are required")
	}
	quarter, err := strconv.Atoi(c.Query("quarter"))
	if err != nil {
		return nil, models.OrgScope{}, reports.QuarterPeriod{}, "", utils.NewValidationError("year and quarter are required")
	}
	period, err := reports.GetQuarterPeriod(year, quarter)
	if err != nil {
		return nil, models.OrgScope{}, reports.QuarterPeriod{}, "", err
	}

	sourceOfFunding := c.DefaultQuery("sourceOfFunding", models.AllFundingSources)
	return user, scope, period, sourceOfFunding, nil
}

func scopeLabel(scope models.OrgScope) string {
	if org := scope.Filter(); org != "" {
		return org
	}
	return models.AllOrganizations
}

// EconomicReport builds the quarterly budget-performance summary. The same
// merged+sorted rows and totals feed json, xlsx and pdf.
func EconomicReport(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, scope, period, sourceOfFunding, err := reportParams(c, db)
		if err != nil {
			respondError(c, err)
			return
		}

		rows, totals, err := reports.BuildEconomicReport(db, period, sourceOfFunding, scope)
		if err != nil {
			respondError(c, err)
			return
		}

		switch c.DefaultQuery("format", "json") {
		case "xlsx":
			c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			c.Header("Content-Disposition", attachmentName("Quarterly_Report_%d_Q%d.xlsx", period.Year, period.Quarter))
			if err := reports.WriteEconomicReportExcel(c.Writer, rows, totals, period); err != nil {
				respondError(c, err)
			}
		case "pdf":
			c.Header("Content-Type", "application/pdf")
			c.Header("Content-Disposition", attachmentName("Quarterly_Report_%d_Q%d.pdf", period.Year, period.Quarter))
			header := reports.PdfHeader{
				Organization:    scopeLabel(scope),
				Year:            period.Year,
				SourceOfFunding: sourceOfFunding,
			}
			if err := reports.WriteEconomicReportPDF(c.Writer, rows, totals, period, header); err != nil {
				respondError(c, err)
			}
		default:
			c.JSON(http.StatusOK, gin.H{
				"success":         true,
				"organization":    scopeLabel(scope),
				"sourceOfFunding": sourceOfFunding,
				"year":            period.Year,
				"quarter":         period.Quarter,
				"report":          rows,
				"totals":          totals,
			})
		}
	}
}

// DetailedExpenditureReport lists every expenditure in the quarter window,
// date ascending, under the caller's scope.
func DetailedExpenditureReport(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, scope, period, _, err := reportParams(c, db)
		if err != nil {
			respondError(c, err)
			return
		}

		expenditures, err := models.ListExpendituresForQuarter(db, period.Start, period.End, scope.Filter())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"organization": scopeLabel(scope),
			"year":         period.Year,
			"quarter":      period.Quarter,
			"count":        len(expenditures),
			"data":         expenditures,
		})
	}
}

// RevenueReport builds the quarterly revenue summary as json, xlsx or pdf.
func RevenueReport(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, scope, period, _, err := reportParams(c, db)
		if err != nil {
			respondError(c, err)
			return
		}

		rows, totals, err := reports.BuildRevenueReport(db, period, scope)
		if err != nil {
			respondError(c, err)
			return
		}

		switch c.DefaultQuery("format", "json") {
		case "xlsx":
			c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			c.Header("Content-Disposition", attachmentName("Revenue_Report_%d_Q%d.xlsx", period.Year, period.Quarter))
			if err := reports.WriteRevenueReportExcel(c.Writer, rows, totals, period); err != nil {
				respondError(c, err)
			}
		case "pdf":
			c.Header("Content-Type", "application/pdf")
			c.Header("Content-Disposition", attachmentName("Revenue_Report_%d_Q%d.pdf", period.Year, period.Quarter))
			header := reports.PdfHeader{Organization: scopeLabel(scope), Year: period.Year}
			if err := reports.WriteRevenueReportPDF(c.Writer, rows, totals, period, header); err != nil {
				respondError(c, err)
			}
		default:
			c.JSON(http.StatusOK, gin.H{
				"success":      true,
				"organization": scopeLabel(scope),
				"year":         period.Year,
				"quarter":      period.Quarter,
				"report":       rows,
				"totals":       totals,
			})
		}
	}
}
