package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Santiago26009/blog-challenge/services"
	"github.com/Santiago26009/blog-challenge/utils"
)

const commentNotFound = "No comment found"

type CommentController struct {
	comments *services.CommentService
}

func NewCommentController(comments *services.CommentService) *CommentController {
	return &CommentController{comments: comments}
}

func (cc *CommentController) ListComments(c *gin.Context) {
	comments, err := cc.comments.List(c.Request.Context())
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(comments, newCommentResponse))
}

func (cc *CommentController) GetComment(c *gin.Context) {
	id, err := pathID(c, commentNotFound)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	comment, err := cc.comments.Get(c.Request.Context(), id)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCommentResponse(comment))
}

func (cc *CommentController) CreateComment(c *gin.Context) {
	var req services.CommentInput
	if err := bindJSON(c, &req); err != nil {
		utils.AbortWithError(c, err)
		return
	}

	comment, err := cc.comments.Create(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCommentResponse(comment))
}

// UpdateComment serves PUT and PATCH; both only change the text.
func (cc *CommentController) UpdateComment(c *gin.Context) {
	id, err := pathID(c, commentNotFound)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	var req services.CommentInput
	if err := bindJSON(c, &req); err != nil {
		utils.AbortWithError(c, err)
		return
	}

	comment, err := cc.comments.Update(c.Request.Context(), currentUserID(c), id, req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCommentResponse(comment))
}

func (cc *CommentController) DeleteComment(c *gin.Context) {
	id, err := pathID(c, commentNotFound)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	if err := cc.comments.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
