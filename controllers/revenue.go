package controllers

import (
	"net/http"
	"strconv"
	"time"

	"bitbucket.org/gfmis/budget_backend/config"
	"bitbucket.org/gfmis/budget_backend/models"
	"bitbucket.org/gfmis/budget_backend/utils"
	"bitbucket.org/gfmis/budget_backend/workflow"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RevenueCreateInput struct {
	Date              string `json:"date" binding:"required,datetime=2006-01-02"`
	RevenueCategory   string `json:"revenueCategory" binding:"required"`
	ActualCollection  string `json:"actualCollection" binding:"required,amount"`
	BudgetProjections string `json:"budgetProjections" binding:"omitempty,amount"`
	Remarks           string `json:"remarks"`
}

// CreateRevenue records a collection. Retention and payment are derived
// from the organization's configured rate, never taken from the caller.
func CreateRevenue(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			respondError(c, err)
			return
		}

		var input RevenueCreateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(err.Error()))
			return
		}
		date, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			respondError(c, utils.NewValidationError("date must be in YYYY-MM-DD format"))
			return
		}
		actualCollection, err := utils.ParseAmount("actualCollection", input.ActualCollection)
		if err != nil {
			respondError(c, err)
			return
		}
		budgetProjections, err := parseOptionalAmount("budgetProjections", input.BudgetProjections)
		if err != nil {
			respondError(c, err)
			return
		}

		rate, ok := config.GetRetentionRate(user.Organization)
		if !ok {
			respondError(c, utils.NewValidationError("retention rate not configured for this organization"))
			return
		}

		exists, err := models.RevenueExists(db, user.Organization, date, input.RevenueCategory)
		if err != nil {
			respondError(c, err)
			return
		}
		if exists {
			respondError(c, utils.NewConflictError("revenue record already exists for this date and category"))
			return
		}

		retention, payment, err := models.ComputeRetention(actualCollection, rate)
		if err != nil {
			respondError(c, err)
			return
		}

		revenue := &models.Revenue{
			UserId:            user.ID,
			Organization:      user.Organization,
			Date:              date,
			RevenueCategory:   input.RevenueCategory,
			RetentionRate:     rate,
			ActualCollection:  actualCollection,
			RetentionAmount:   retention,
			PaymentAmount:     payment,
			BudgetProjections: budgetProjections,
			Remarks:           input.Remarks,
			Status:            models.RecordStatusPending,
		}
		if err := utils.MapStorageError(db.Create(revenue).Error); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "revenue record added successfully", "data": revenue})
	}
}

// ListRevenue returns records under the caller's scope.
func ListRevenue(db *gorm.DB) gin.HandlerFunc {
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

		revenues, err := models.ListRevenues(db, scope.Filter(), creatorId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(revenues), "data": revenues})
	}
}

type RevenueUpdateInput struct {
	Date             string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	RevenueCategory  string `json:"revenueCategory"`
	ActualCollection string `json:"actualCollection" binding:"omitempty,amount"`
	Remarks          *string `json:"remarks"`
}

// UpdateRevenue edits a pending record. A changed collection recomputes the
// derived amounts from the record's stored rate; direct writes to the
// derived fields are ignored.
func UpdateRevenue(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			respondError(c, err)
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, utils.NewValidationError("invalid revenue id"))
			return
		}
		var input RevenueUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(err.Error()))
			return
		}

		record, err := models.GetRevenueById(db, id)
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

		if input.Date != "" {
			date, err := time.Parse("2006-01-02", input.Date)
			if err != nil {
				respondError(c, utils.NewValidationError("date must be in YYYY-MM-DD format"))
				return
			}
			record.Date = date
		}
		if input.RevenueCategory != "" {
			record.RevenueCategory = input.RevenueCategory
		}
		if input.Remarks != nil {
			record.Remarks = *input.Remarks
		}
		if input.ActualCollection != "" {
			actualCollection, err := utils.ParseAmount("actualCollection", input.ActualCollection)
			if err != nil {
				respondError(c, err)
				return
			}
			if err := record.ApplyCollection(actualCollection); err != nil {
				respondError(c, err)
				return
			}
		}

		if err := utils.MapStorageError(db.Save(record).Error); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "revenue record updated successfully", "data": record})
	}
}

// DeleteRevenue removes a pending record.
func DeleteRevenue(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			respondError(c, err)
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, utils.NewValidationError("invalid revenue id"))
			return
		}

		record, err := models.GetRevenueById(db, id)
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
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "revenue record deleted successfully"})
	}
}

// ReviewRevenue stamps a pending record as Reviewed.
func ReviewRevenue(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			respondError(c, err)
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, utils.NewValidationError("invalid revenue id"))
			return
		}
		var input ReviewInput
		_ = c.ShouldBindJSON(&input)

		record, err := models.GetRevenueById(db, id)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := workflow.ReviewAndSave(db, record, user.Name, input.ReviewComment); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "revenue record reviewed successfully", "data": record})
	}
}

// ApproveRevenue stamps a reviewed record as Approved.
func ApproveRevenue(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			respondError(c, err)
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, utils.NewValidationError("invalid revenue id"))
			return
		}

		record, err := models.GetRevenueById(db, id)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := workflow.ApproveAndSave(db, record, user.Name); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "revenue record approved successfully", "data": record})
	}
}
