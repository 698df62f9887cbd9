package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Santiago26009/blog-challenge/controllers"
)

func SetupUserRoutes(protected *gin.RouterGroup, userController *controllers.UserController, profileController *controllers.ProfileController) {
	users := protected.Group("/user")
	{
		users.GET("/", userController.GetUser)
		users.PUT("/", userController.UpdateUser)
		users.PATCH("/", userController.UpdateUser)
		users.DELETE("/", userController.DeleteUser)

		// User activity
		users.GET("/activity/", userController.GetActivity)
	}

	profile := protected.Group("/profile")
	{
		profile.GET("/", profileController.GetProfile)
		profile.POST("/", profileController.CreateProfile)
		profile.PUT("/", profileController.UpdateProfile)
		profile.PATCH("/", profileController.UpdateProfile)
		profile.DELETE("/", profileController.DeleteProfile)
	}
}
