package controllers

import (
	"net/http"
	"strconv"
	"time"

	"bitbucket.org/gfmis/budget_backend/models"
	"bitbucket.org/gfmis/budget_backend/models/reports"
	"bitbucket.org/gfmis/budget_backend/utils"
	"bitbucket.org/gfmis/budget_backend/workflow"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CashPositionCreateInput struct {
	AsAtDate    string `json:"as_at_date" binding:"required,datetime=2006-01-02"`
	AccountName string `json:"account_name" binding:"required"`
	Currency    string `json:"currency" binding:"required"`
	Balance     string `json:"balance" binding:"required,amount"`
}

// CreateCashPosition records one account/currency balance snapshot.
func CreateCashPosition(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			respondError(c, err)
			return
		}

		var input CashPositionCreateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(err.Error()))
			return
		}
		if !models.ValidCashCurrency(input.Currency) {
			respondError(c, utils.NewValidationError("currency must be one of GHS, USD, GBP, EUR"))
			return
		}
		asAtDate, err := time.Parse("2006-01-02", input.AsAtDate)
		if err != nil {
			respondError(c, utils.NewValidationError("as_at_date must be in YYYY-MM-DD format"))
			return
		}
		balance, err := utils.ParseAmount("balance", input.Balance)
		if err != nil {
			respondError(c, err)
			return
		}

		record := &models.CashPosition{
			UserId:       user.ID,
			Organization: user.Organization,
			AsAtDate:     asAtDate,
			AccountName:  input.AccountName,
			Currency:     input.Currency,
			Balance:      balance,
			Status:       models.RecordStatusPending,
		}
		if err := utils.MapStorageError(db.Create(record).Error); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "cash position added successfully", "record": record})
	}
}

// ListCashPositions returns snapshots under the caller's scope.
func ListCashPositions(db *gorm.DB) gin.HandlerFunc {
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

		creatorId := 0
		if user.Role == models.RoleDataEntry {
			creatorId = user.ID
		}

		records, err := models.ListCashPositions(db, scope.Filter(), creatorId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(records), "data": records})
	}
}

type CashPositionUpdateInput struct {
	AsAtDate    string `json:"as_at_date" binding:"omitempty,datetime=2006-01-02"`
	AccountName string `json:"account_name"`
	Currency    string `json:"currency"`
	Balance     string `json:"balance" binding:"omitempty,amount"`
}

// UpdateCashPosition edits a pending snapshot.
func UpdateCashPosition(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			respondError(c, err)
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, utils.NewValidationError("invalid cash position id"))
			return
		}
		var input CashPositionUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(err.Error()))
			return
		}

		record, err := models.GetCashPositionById(db, id)
		if err != nil {
			respondError(c, err)
			return
		}
		if record.UserId != user.ID && user.Role != models.RoleAdmin {
			respondError(c, utils.NewForbiddenError("you are not authorized to update this record"))
			return
		}
		if err := models.EnsureMutable(record); err != nil {
			respondError(c, err)
			return
		}

		if input.AsAtDate != "" {
			asAtDate, err := time.Parse("2006-01-02", input.AsAtDate)
			if err != nil {
				respondError(c, utils.NewValidationError("as_at_date must be in YYYY-MM-DD format"))
				return
			}
			record.AsAtDate = asAtDate
		}
		if input.AccountName != "" {
			record.AccountName = input.AccountName
		}
		if input.Currency != "" {
			if !models.ValidCashCurrency(input.Currency) {
				respondError(c, utils.NewValidationError("currency must be one of GHS, USD, GBP, EUR"))
				return
			}
			record.Currency = input.Currency
		}
		if input.Balance != "" {
			balance, err := utils.ParseAmount("balance", input.Balance)
			if err != nil {
				respondError(c, err)
				return
			}
			record.Balance = balance
		}

		if err := utils.MapStorageError(db.Save(record).Error); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "cash position updated successfully", "data": record})
	}
}

// DeleteCashPosition removes a pending snapshot.
func DeleteCashPosition(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			respondError(c, err)
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, utils.NewValidationError("invalid cash position id"))
			return
		}

		record, err := models.GetCashPositionById(db, id)
		if err != nil {
			respondError(c, err)
			return
		}
		if record.UserId != user.ID && user.Role != models.RoleAdmin {
			respondError(c, utils.NewForbiddenError("you are not authorized to delete this record"))
			return
		}
		if err := workflow.DeleteIfMutable(db, record); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "cash position deleted successfully"})
	}
}

// ReviewCashPosition stamps a pending snapshot as Reviewed.
func ReviewCashPosition(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			respondError(c, err)
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, utils.NewValidationError("invalid cash position id"))
			return
		}
		var input ReviewInput
		_ = c.ShouldBindJSON(&input)

		record, err := models.GetCashPositionById(db, id)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := workflow.ReviewAndSave(db, record, user.Name, input.ReviewComment); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "cash position reviewed successfully", "data": record})
	}
}

// ApproveCashPosition stamps a reviewed snapshot as Approved.
func ApproveCashPosition(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			respondError(c, err)
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, utils.NewValidationError("invalid cash position id"))
			return
		}

		record, err := models.GetCashPositionById(db, id)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := workflow.ApproveAndSave(db, record, user.Name); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "cash position approved successfully", "data": record})
	}
}

// CashPositionReport builds the per-account multi-currency summary for an
// as-at date, as JSON, xlsx or pdf.
func CashPositionReport(db *gorm.DB) gin.HandlerFunc {
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

		rawDate := c.Query("as_at_date")
		asAtDate, err := time.Parse("2006-01-02", rawDate)
		if err != nil {
			respondError(c, utils.NewValidationError("as_at_date must be in YYYY-MM-DD format"))
			return
		}

		rows, totals, err := reports.BuildCashPositionReport(db, asAtDate, scope)
		if err != nil {
			respondError(c, err)
			return
		}

		organization := scope.Filter()
		if organization == "" {
			organization = models.AllOrganizations
		}

		switch c.DefaultQuery("format", "json") {
		case "xlsx":
			c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			c.Header("Content-Disposition", attachmentName("Cash_Position_%s.xlsx", rawDate))
			if err := reports.WriteCashPositionExcel(c.Writer, rows, totals, rawDate); err != nil {
				respondError(c, err)
			}
		case "pdf":
			c.Header("Content-Type", "application/pdf")
			c.Header("Content-Disposition", attachmentName("Cash_Position_%s.pdf", rawDate))
			if err := reports.WriteCashPositionPDF(c.Writer, rows, totals, rawDate, reports.PdfHeader{Organization: organization}); err != nil {
				respondError(c, err)
			}
		default:
			c.JSON(http.StatusOK, gin.H{
				"success":      true,
				"as_at_date":   rawDate,
				"organization": organization,
				"data":         rows,
				"totals":       totals,
			})
		}
	}
}
