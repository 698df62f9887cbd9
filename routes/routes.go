package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Santiago26009/blog-challenge/controllers"
	"github.com/Santiago26009/blog-challenge/middleware"
	"github.com/Santiago26009/blog-challenge/services"
)

// Options configures optional route groups.
type Options struct {
	// UploadDir, when set, is served under /uploads (disk image storage).
	UploadDir string
}

func SetupRoutes(r *gin.Engine, svc *services.Services, opts Options) {
	// Initialize controllers
	authController := controllers.NewAuthController(svc.Auth)
	userController := controllers.NewUserController(svc.Users, svc.Activity)
	profileController := controllers.NewProfileController(svc.Profiles)
	postController := controllers.NewPostController(svc.Posts)
	commentController := controllers.NewCommentController(svc.Comments)
	likeController := controllers.NewLikeController(svc.Likes)
	validationController := controllers.NewValidationController(svc.Users)

	// Public routes
	public := r.Group("")
	{
		public.POST("/signup", authController.Signup)
		public.POST("/login", authController.Login)
		public.POST("/token/refresh", authController.RefreshToken)

		SetupValidationRoutes(public, validationController)
	}

	// Protected routes
	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(svc.Auth))
	{
		protected.POST("/logout", authController.Logout)

		SetupUserRoutes(protected, userController, profileController)
		SetupPostRoutes(public, protected, postController)
		SetupInteractionRoutes(public, protected, commentController, likeController)
	}

	if opts.UploadDir != "" {
		SetupUploadRoutes(r, opts.UploadDir)
	}
}
