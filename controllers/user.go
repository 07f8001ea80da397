package controllers

import (
	"net/http"
	"strconv"

	"bitbucket.org/gfmis/budget_backend/models"
	"bitbucket.org/gfmis/budget_backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListUsers returns every account. Admin only.
func ListUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []*models.User
		if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(users), "data": users})
	}
}

type UpdateUserStatusInput struct {
	Status string `json:"status" binding:"required,oneof=active inactive suspended"`
}

// UpdateUserStatus activates or suspends an account. Admin only.
func UpdateUserStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, utils.NewValidationError("invalid user id"))
			return
		}
		var input UpdateUserStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(err.Error()))
			return
		}

		user, err := models.GetUserById(db, id)
		if err != nil {
			respondError(c, err)
			return
		}
		user.Status = models.UserStatus(input.Status)
		if err := db.Model(user).Update("status", user.Status).Error; err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
	}
}
