package controllers

import (
	"net/http"
	"time"

	"bitbucket.org/gfmis/budget_backend/models"
	"bitbucket.org/gfmis/budget_backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password" binding:"required,min=8"`
	Role         string `json:"role" binding:"required"`
	Organization string `json:"organization" binding:"required"`
	Designation  string `json:"designation" binding:"required"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a user account. Admin only (route-level restrict).
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(err.Error()))
			return
		}
		if !models.Role(input.Role).Valid() {
			respondError(c, utils.NewValidationError("invalid role"))
			return
		}

		user := &models.User{
			Name:         input.Name,
			Email:        input.Email,
			Username:     input.Username,
			Password:     input.Password,
			Role:         models.Role(input.Role),
			Status:       models.UserStatusActive,
			Organization: input.Organization,
			Designation:  input.Designation,
		}
		if err := utils.MapStorageError(db.Create(user).Error); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": user})
	}
}

// Login verifies credentials, stamps last login and issues a token.
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(err.Error()))
			return
		}

		user, err := models.GetUserByUsername(db, input.Username)
		if err != nil || user.ComparePassword(input.Password) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid username or password"})
			return
		}
		if user.Status != models.UserStatusActive {
			respondError(c, utils.NewForbiddenError("your account is not active"))
			return
		}

		token, err := utils.JwtGenerate(user.ID, string(user.Role), user.Organization)
		if err != nil {
			respondError(c, err)
			return
		}

		now := time.Now()
		user.LastLogin = &now
		if err := db.Model(user).Update("last_login", now).Error; err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": user})
	}
}

// Me returns the authenticated user's record.
func Me(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
	}
}
