package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"bitbucket.org/gfmis/budget_backend/models"
	"bitbucket.org/gfmis/budget_backend/models/reports"
	"bitbucket.org/gfmis/budget_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type AllocationInput struct {
	Organization           string `json:"organization" binding:"required"`
	EconomicClassification string `json:"economicClassification" binding:"required"`
	SourceOfFunding        string `json:"sourceOfFunding" binding:"required"`
	NaturalAccount         string `json:"naturalAccount" binding:"required"`
	Year                   int    `json:"year" binding:"required"`
	Appropriation          string `json:"appropriation" binding:"required,amount"`
	Allotment              string `json:"allotment" binding:"required,amount"`
}

// CreateAllocation loads one budget line manually. Admin only.
func CreateAllocation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			respondError(c, err)
			return
		}

		var input AllocationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(err.Error()))
			return
		}
		appropriation, err := utils.ParseAmount("appropriation", input.Appropriation)
		if err != nil {
			respondError(c, err)
			return
		}
		allotment, err := utils.ParseAmount("allotment", input.Allotment)
		if err != nil {
			respondError(c, err)
			return
		}

		allocation := &models.Allocation{
			Organization:           input.Organization,
			EconomicClassification: input.EconomicClassification,
			SourceOfFunding:        input.SourceOfFunding,
			NaturalAccount:         input.NaturalAccount,
			Year:                   input.Year,
			Appropriation:          appropriation,
			Allotment:              allotment,
			UserId:                 user.ID,
		}
		if err := models.CreateAllocation(db, allocation); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "data saved successfully", "data": allocation})
	}
}

type importRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// UploadAllocations bulk-imports budget lines from the xlsx template. Rows
// that fail validation are reported back with their row number; valid rows
// are inserted in one statement.
func UploadAllocations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			respondError(c, err)
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			respondError(c, utils.NewValidationError("excel file is required"))
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, utils.NewValidationError("could not open uploaded file"))
			return
		}
		defer file.Close()

		workbook, err := excelize.OpenReader(file)
		if err != nil {
			respondError(c, utils.NewValidationError("file is not a valid xlsx workbook"))
			return
		}
		defer workbook.Close()

		sheets := workbook.GetSheetList()
		if len(sheets) == 0 {
			respondError(c, utils.NewValidationError("workbook has no sheets"))
			return
		}
		rows, err := workbook.GetRows(sheets[0])
		if err != nil {
			respondError(c, err)
			return
		}

		var allocations []*models.Allocation
		var rowErrors []importRowError

		for i, row := range rows {
			if i == 0 {
				continue // header
			}
			rowNo := i + 1
			if len(row) < 7 {
				rowErrors = append(rowErrors, importRowError{Row: rowNo, Error: "missing one or more required fields"})
				continue
			}
			organization, classification, funding, account := row[0], row[1], row[2], row[3]
			if organization == "" || classification == "" || funding == "" || account == "" {
				rowErrors = append(rowErrors, importRowError{Row: rowNo, Error: "missing one or more required fields"})
				continue
			}
			year, err := strconv.Atoi(row[4])
			if err != nil {
				rowErrors = append(rowErrors, importRowError{Row: rowNo, Error: "year must be a number"})
				continue
			}
			appropriation, err := utils.ParseAmount("appropriation", row[5])
			if err != nil {
				rowErrors = append(rowErrors, importRowError{Row: rowNo, Error: "appropriation and allotment must be non-negative numbers"})
				continue
			}
			allotment, err := utils.ParseAmount("allotment", row[6])
			if err != nil {
				rowErrors = append(rowErrors, importRowError{Row: rowNo, Error: "appropriation and allotment must be non-negative numbers"})
				continue
			}

			allocations = append(allocations, &models.Allocation{
				Organization:           organization,
				EconomicClassification: classification,
				SourceOfFunding:        funding,
				NaturalAccount:         account,
				Year:                   year,
				Appropriation:          appropriation,
				Allotment:              allotment,
				UserId:                 user.ID,
			})
		}

		if len(allocations) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "no valid rows found", "errors": rowErrors})
			return
		}
		if err := models.BulkCreateAllocations(db, allocations); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":  true,
			"message":  "excel uploaded successfully",
			"inserted": len(allocations),
			"errors":   rowErrors,
		})
	}
}

// DownloadAllocationTemplate streams the import template workbook.
func DownloadAllocationTemplate() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", `attachment; filename="appropriation_template.xlsx"`)
		if err := reports.WriteAllocationTemplateExcel(c.Writer); err != nil {
			respondError(c, err)
		}
	}
}

// AppropriationSummary returns budget sums grouped by classification and
// funding source under the caller's resolved scope.
func AppropriationSummary(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			respondError(c, err)
			return
		}

		scope, err := models.ResolveOrgScope(user.Role, user.Organization, c.Query("organization"))
		if err != nil {
			respondError(c, err)
			return
		}

		year := 0
		if raw := c.Query("year"); raw != "" {
			year, err = strconv.Atoi(raw)
			if err != nil {
				respondError(c, utils.NewValidationError("year must be a number"))
				return
			}
		}

		aggregates, err := reports.GetAppropriationAggregates(db, scope, year)
		if err != nil {
			respondError(c, err)
			return
		}

		sourceOfFunding := c.DefaultQuery("sourceOfFunding", models.AllFundingSources)
		if sourceOfFunding != models.AllFundingSources {
			filtered := aggregates[:0]
			for _, agg := range aggregates {
				if agg.SourceOfFunding == sourceOfFunding {
					filtered = append(filtered, agg)
				}
			}
			aggregates = filtered
		}

		totals := reports.AppropriationAggregate{}
		for _, agg := range aggregates {
			totals.TotalAppropriation = totals.TotalAppropriation.Add(agg.TotalAppropriation)
		}

		organization := scope.Filter()
		if organization == "" {
			organization = models.AllOrganizations
		}

		c.JSON(http.StatusOK, gin.H{
			"success":         true,
			"year":            year,
			"organization":    organization,
			"sourceOfFunding": sourceOfFunding,
			"data":            aggregates,
			"totals":          gin.H{"totalAppropriation": totals.TotalAppropriation},
		})
	}
}

// attachmentName builds a Content-Disposition filename.
func attachmentName(pattern string, args ...interface{}) string {
	return fmt.Sprintf(`attachment; filename="%s"`, fmt.Sprintf(pattern, args...))
}
