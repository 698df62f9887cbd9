package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Santiago26009/blog-challenge/services"
	"github.com/Santiago26009/blog-challenge/utils"
)

const postNotFound = "No post found"

type PostController struct {
	posts *services.PostService
}

func NewPostController(posts *services.PostService) *PostController {
	return &PostController{posts: posts}
}

// ListPosts godoc
// @Summary List posts, newest first
// @Tags posts
// @Produce json
// @Success 200 {array} postResponse
// @Router /post/ [get]
func (pc *PostController) ListPosts(c *gin.Context) {
	posts, err := pc.posts.List(c.Request.Context())
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(posts, newPostResponse))
}

func (pc *PostController) GetPost(c *gin.Context) {
	id, err := pathID(c, postNotFound)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	post, err := pc.posts.Get(c.Request.Context(), id)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPostResponse(post))
}

// CreatePost godoc
// @Summary Create a post authored by the caller
// @Tags posts
// @Accept json
// @Produce json
// @Param post body services.PostInput true "Post"
// @Success 201 {object} postResponse
// @Router /post/ [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	var req services.PostInput
	if err := bindJSON(c, &req); err != nil {
		utils.AbortWithError(c, err)
		return
	}

	post, err := pc.posts.Create(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newPostResponse(post))
}

// UpdatePost serves both PUT (full) and PATCH (partial).
func (pc *PostController) UpdatePost(c *gin.Context) {
	id, err := pathID(c, postNotFound)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	var req services.PostInput
	if err := bindJSON(c, &req); err != nil {
		utils.AbortWithError(c, err)
		return
	}

	partial := c.Request.Method == http.MethodPatch
	post, err := pc.posts.Update(c.Request.Context(), currentUserID(c), id, req, partial)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPostResponse(post))
}

func (pc *PostController) DeletePost(c *gin.Context) {
	id, err := pathID(c, postNotFound)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	if err := pc.posts.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
