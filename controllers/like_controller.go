package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Santiago26009/blog-challenge/services"
	"github.com/Santiago26009/blog-challenge/utils"
)

const likeNotFound = "No like found"

type LikeController struct {
	likes *services.LikeService
}

func NewLikeController(likes *services.LikeService) *LikeController {
	return &LikeController{likes: likes}
}

func (lc *LikeController) ListLikes(c *gin.Context) {
	likes, err := lc.likes.List(c.Request.Context())
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(likes, newLikeResponse))
}

func (lc *LikeController) GetLike(c *gin.Context) {
	id, err := pathID(c, likeNotFound)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	like, err := lc.likes.Get(c.Request.Context(), id)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newLikeResponse(like))
}

// CreateLike godoc
// @Summary Like a post or a comment
// @Tags likes
// @Accept json
// @Produce json
// @Param like body services.LikeInput true "Exactly one of post or comment"
// @Success 200 {object} map[string]string
// @Router /like/ [post]
func (lc *LikeController) CreateLike(c *gin.Context) {
	var req services.LikeInput
	if err := bindJSON(c, &req); err != nil {
		utils.AbortWithError(c, err)
		return
	}

	if _, err := lc.likes.Create(c.Request.Context(), currentUserID(c), req); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Liked"})
}

func (lc *LikeController) DeleteLike(c *gin.Context) {
	id, err := pathID(c, likeNotFound)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	if err := lc.likes.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
