package controllers

import (
	"net/http"

	"bitbucket.org/gfmis/budget_backend/config"
	"bitbucket.org/gfmis/budget_backend/middlewares"
	"bitbucket.org/gfmis/budget_backend/models"
	"bitbucket.org/gfmis/budget_backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError maps the error taxonomy onto HTTP. Unclassified errors are
// logged with the request context and surfaced as a bare 500.
func respondError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		config.LogError(config.GetLogger(), "respond.go", "respondError", c.FullPath(), nil, err)
		c.JSON(status, gin.H{"success": false, "message": "internal server error"})
		return
	}
	c.JSON(status, gin.H{
		"success": false,
		"kind":    utils.KindOf(err),
		"message": err.Error(),
	})
}

// currentUser loads the authenticated user's full record; handlers need the
// name for review/approval stamps and the live role/organization rather than
// whatever the token was minted with.
func currentUser(c *gin.Context, db *gorm.DB) (*models.User, error) {
	claim := middlewares.CtxValue(c.Request.Context())
	if claim == nil {
		return nil, utils.NewForbiddenError("please log in")
	}
	user, err := models.GetUserById(db, claim.ID)
	if err != nil {
		return nil, err
	}
	if user.Status != models.UserStatusActive {
		return nil, utils.NewForbiddenError("your account is not active")
	}
	return user, nil
}
