package routes

import (
	"github.com/gin-gonic/gin"
)

// UploadsPath is where disk-stored profile images are served.
const UploadsPath = "/uploads"

func SetupUploadRoutes(r *gin.Engine, uploadDir string) {
	r.Static(UploadsPath, uploadDir)
}
