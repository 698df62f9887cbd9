package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Santiago26009/blog-challenge/services"
	"github.com/Santiago26009/blog-challenge/utils"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param user body services.UserInput true "Account"
// @Success 201 {object} userResponse
// @Router /signup [post]
func (ac *AuthController) Signup(c *gin.Context) {
	var req services.UserInput
	if err := bindJSON(c, &req); err != nil {
		utils.AbortWithError(c, err)
		return
	}

	user, err := ac.auth.Signup(c.Request.Context(), req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

// Login godoc
// @Summary Exchange credentials for an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body services.LoginInput true "Credentials"
// @Success 200 {object} services.LoginResult
// @Router /login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req services.LoginInput
	if err := bindJSON(c, &req); err != nil {
		utils.AbortWithError(c, err)
		return
	}

	result, err := ac.auth.Login(c.Request.Context(), req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (ac *AuthController) Logout(c *gin.Context) {
	var req services.LogoutInput
	if err := bindJSON(c, &req); err != nil {
		utils.AbortWithError(c, err)
		return
	}

	status, err := ac.auth.Logout(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req services.RefreshInput
	if err := bindJSON(c, &req); err != nil {
		utils.AbortWithError(c, err)
		return
	}

	access, err := ac.auth.Refresh(c.Request.Context(), req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}
