package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Santiago26009/blog-challenge/controllers"
)

func SetupInteractionRoutes(public, protected *gin.RouterGroup, commentController *controllers.CommentController, likeController *controllers.LikeController) {
	// Comments: public reads
	public.GET("/comment/", commentController.ListComments)
	public.GET("/comment/:id/", commentController.GetComment)

	comments := protected.Group("/comment")
	{
		comments.POST("/", commentController.CreateComment)
		comments.PUT("/:id/", commentController.UpdateComment)
		comments.PATCH("/:id/", commentController.UpdateComment)
		comments.DELETE("/:id/", commentController.DeleteComment)
	}

	// Likes: everything needs a token
	likes := protected.Group("/like")
	{
		likes.GET("/", likeController.ListLikes)
		likes.GET("/:id/", likeController.GetLike)
		likes.POST("/", likeController.CreateLike)
		likes.DELETE("/:id/", likeController.DeleteLike)
	}
}
