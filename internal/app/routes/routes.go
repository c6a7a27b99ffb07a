package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/timetabler/internal/app/controllers"
	"github.com/yigit/timetabler/internal/app/models/dto"
	"github.com/yigit/timetabler/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	importController *controllers.ImportController,
	maxBodyBytes int64,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Import routes: preview is read-only, commit writes
	imports := v1.Group("/imports")
	imports.Use(middleware.BodyLimit(maxBodyBytes))
	{
		imports.POST("/preview", importController.Preview)
		imports.POST("/commit", importController.Commit)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})
}
