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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenditureCreateInput struct {
	Activity               string `json:"activity" binding:"required"`
	Date                   string `json:"date" binding:"required,datetime=2006-01-02"`
	EconomicClassification string `json:"economicClassification" binding:"required"`
	SourceOfFunding        string `json:"sourceOfFunding" binding:"required"`
	NaturalAccount         string `json:"naturalAccount" binding:"required"`
	Description            string `json:"description" binding:"required"`
	Releases               string `json:"releases" binding:"omitempty,amount"`
	ActualExpenditure      string `json:"actualExpenditure" binding:"omitempty,amount"`
	ActualPayment          string `json:"actualPayment" binding:"omitempty,amount"`
}

func parseOptionalAmount(field string, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return utils.ParseAmount(field, raw)
}

// CreateExpenditure posts a new expenditure through the balance guard.
func CreateExpenditure(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			respondError(c, err)
			return
		}

		var input ExpenditureCreateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(err.Error()))
			return
		}

		date, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			respondError(c, utils.NewValidationError("date must be in YYYY-MM-DD format"))
			return
		}
		releases, err := parseOptionalAmount("releases", input.Releases)
		if err != nil {
			respondError(c, err)
			return
		}
		actualExpenditure, err := parseOptionalAmount("actualExpenditure", input.ActualExpenditure)
		if err != nil {
			respondError(c, err)
			return
		}
		actualPayment, err := parseOptionalAmount("actualPayment", input.ActualPayment)
		if err != nil {
			respondError(c, err)
			return
		}

		expenditure, err := workflow.ValidateAndRecordExpenditure(db, config.GetLogger(), user, workflow.ExpenditureInput{
			Activity:               input.Activity,
			Date:                   date,
			EconomicClassification: input.EconomicClassification,
			SourceOfFunding:        input.SourceOfFunding,
			NaturalAccount:         input.NaturalAccount,
			Description:            input.Description,
			Releases:               releases,
			ActualExpenditure:      actualExpenditure,
			ActualPayment:          actualPayment,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":     true,
			"message":     "expenditure record added successfully",
			"expenditure": expenditure,
		})
	}
}

// ListExpenditure returns records under the caller's scope, newest first.
// Data-entry users only see their own.
func ListExpenditure(db *gorm.DB) gin.HandlerFunc {
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

		expenditures, err := models.ListExpenditures(db, scope.Filter(), creatorId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(expenditures), "data": expenditures})
	}
}

type ReviewInput struct {
	ReviewComment string `json:"reviewComment"`
}

// ReviewExpenditure stamps a pending record as Reviewed.
func ReviewExpenditure(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			respondError(c, err)
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, utils.NewValidationError("invalid expenditure id"))
			return
		}
		var input ReviewInput
		_ = c.ShouldBindJSON(&input)

		record, err := models.GetExpenditureById(db, id)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := workflow.ReviewAndSave(db, record, user.Name, input.ReviewComment); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "expenditure record reviewed successfully", "data": record})
	}
}

// ApproveExpenditure stamps a reviewed record as Approved.
func ApproveExpenditure(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			respondError(c, err)
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, utils.NewValidationError("invalid expenditure id"))
			return
		}

		record, err := models.GetExpenditureById(db, id)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := workflow.ApproveAndSave(db, record, user.Name); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "expenditure record approved successfully", "data": record})
	}
}
