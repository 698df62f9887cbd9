package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Santiago26009/blog-challenge/domain"
	"github.com/Santiago26009/blog-challenge/services"
	"github.com/Santiago26009/blog-challenge/utils"
)

type UserController struct {
	users    *services.UserService
	activity *services.ActivityService
}

func NewUserController(users *services.UserService, activity *services.ActivityService) *UserController {
	return &UserController{users: users, activity: activity}
}

func (uc *UserController) GetUser(c *gin.Context) {
	user, err := uc.users.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateUser serves both PUT (full) and PATCH (partial).
func (uc *UserController) UpdateUser(c *gin.Context) {
	var req services.UserInput
	if err := bindJSON(c, &req); err != nil {
		utils.AbortWithError(c, err)
		return
	}

	partial := c.Request.Method == http.MethodPatch
	user, err := uc.users.Update(c.Request.Context(), currentUserID(c), req, partial)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

func (uc *UserController) DeleteUser(c *gin.Context) {
	if err := uc.users.Delete(c.Request.Context(), currentUserID(c)); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetActivity lists the caller's own activity, newest first.
func (uc *UserController) GetActivity(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.AbortWithError(c, domain.FieldValidation("limit", "invalid", "A valid positive integer is required."))
			return
		}
		limit = n
	}

	entries, err := uc.activity.List(c.Request.Context(), currentUserID(c), limit)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(entries, newActivityResponse))
}
