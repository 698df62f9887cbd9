package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Santiago26009/blog-challenge/controllers"
)

// Reads are public; writes need a token.
func SetupPostRoutes(public, protected *gin.RouterGroup, postController *controllers.PostController) {
	public.GET("/post/", postController.ListPosts)
	public.GET("/post/:id/", postController.GetPost)

	posts := protected.Group("/post")
	{
		posts.POST("/", postController.CreatePost)
		posts.PUT("/:id/", postController.UpdatePost)
		posts.PATCH("/:id/", postController.UpdatePost)
		posts.DELETE("/:id/", postController.DeletePost)
	}
}
