package controllers

import (
	"net/http"
	"strings"

	"bitbucket.org/gfmis/budget_backend/models"
	"bitbucket.org/gfmis/budget_backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NaturalAccounts returns the distinct natural accounts loaded for the
// caller's organization and the given classification/funding pair.
func NaturalAccounts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			respondError(c, err)
			return
		}

		eco := strings.TrimSpace(c.Query("eco"))
		fund := strings.TrimSpace(c.Query("fund"))
		if eco == "" || fund == "" {
			respondError(c, utils.NewValidationError("eco and fund query parameters are required"))
			return
		}

		accounts, err := models.ListNaturalAccounts(db, user.Organization, eco, fund)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "naturalAccounts": accounts})
	}
}

// BudgetValues returns the live appropriation, allotment and running balance
// for one budget line of the caller's organization. The running balance here
// is informational; the posting guard recomputes it under a row lock.
func BudgetValues(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			respondError(c, err)
			return
		}

		eco := strings.TrimSpace(c.Query("eco"))
		fund := strings.TrimSpace(c.Query("fund"))
		account := strings.TrimSpace(c.Query("account"))
		if eco == "" || fund == "" || account == "" {
			respondError(c, utils.NewValidationError("eco, fund and account are required"))
			return
		}

		allocation, err := models.FindAllocation(db, user.Organization, eco, fund, account)
		if err != nil {
			respondError(c, err)
			return
		}

		totalReleases, err := models.SumPreviousReleases(db, user.Organization, eco, fund, account)
		if err != nil {
			respondError(c, err)
			return
		}
		balance := allocation.Allotment.Sub(totalReleases)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"appropriation": allocation.Appropriation,
				"allotment":     allocation.Allotment,
				"balance":       balance,
			},
		})
	}
}
