package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Santiago26009/blog-challenge/services"
	"github.com/Santiago26009/blog-challenge/utils"
)

// ValidationController lets signup forms check identifiers before submitting.
type ValidationController struct {
	users *services.UserService
}

func NewValidationController(users *services.UserService) *ValidationController {
	return &ValidationController{users: users}
}

func (vc *ValidationController) ValidateUsername(c *gin.Context) {
	available, err := vc.users.UsernameAvailable(c.Request.Context(), c.Param("username"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": !available})
}

func (vc *ValidationController) ValidateEmail(c *gin.Context) {
	available, err := vc.users.EmailAvailable(c.Request.Context(), c.Param("email"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": !available})
}
