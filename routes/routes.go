package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"postboard/handlers"
	"postboard/middleware"
)

func SetupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "auth-token"},
		ExposeHeaders:    []string{"Content-Length", "auth-token"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Public
	router.POST("/api/auth/login", handlers.Login)
	router.POST("/api/auth/logout", handlers.Logout)

	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware())

	// Posts and their embedded comments/photos
	protected.GET("/posts", handlers.GetPosts)
	protected.POST("/posts", handlers.CreatePost)
	protected.GET("/posts/:id", handlers.GetPost)
	protected.PUT("/posts/:id", handlers.UpdatePost)
	protected.DELETE("/posts/:id", handlers.DeletePost)
	protected.POST("/posts/:id/comments", handlers.AddPostComment)
	protected.PUT("/posts/:id/comments/:commentId", handlers.UpdatePostComment)
	protected.DELETE("/posts/:id/comments/:commentId", handlers.DeletePostComment)
	protected.POST("/posts/:id/photos", handlers.AddPostPhoto)
	protected.PUT("/posts/:id/photos/:photoId", handlers.UpdatePostPhoto)
	protected.DELETE("/posts/:id/photos/:photoId", handlers.DeletePostPhoto)

	// Users
	protected.GET("/users", handlers.GetUsers)
	protected.POST("/users", handlers.CreateUser)
	protected.GET("/users/:id", handlers.GetUser)
	protected.PUT("/users/:id", handlers.UpdateUser)
	protected.DELETE("/users/:id", handlers.DeleteUser)

	// Groups
	protected.GET("/groups", handlers.GetGroups)
	protected.POST("/groups", handlers.CreateGroup)
	protected.GET("/groups/:id", handlers.GetGroup)
	protected.PUT("/groups/:id", handlers.UpdateGroup)
	protected.DELETE("/groups/:id", handlers.DeleteGroup)

	// Categories
	protected.GET("/categories", handlers.GetCategories)
	protected.POST("/categories", handlers.CreateCategory)
	protected.GET("/categories/:id", handlers.GetCategory)
	protected.PUT("/categories/:id", handlers.UpdateCategory)
	protected.DELETE("/categories/:id", handlers.DeleteCategory)

	// Standalone comments
	protected.GET("/comments", handlers.GetComments)
	protected.POST("/comments", handlers.CreateComment)
	protected.GET("/comments/:id", handlers.GetComment)
	protected.PUT("/comments/:id", handlers.UpdateComment)
	protected.DELETE("/comments/:id", handlers.DeleteComment)

	// Standalone photos
	protected.GET("/photos", handlers.GetPhotos)
	protected.POST("/photos", handlers.CreatePhoto)
	protected.GET("/photos/:id", handlers.GetPhoto)
	protected.PUT("/photos/:id", handlers.UpdatePhoto)
	protected.DELETE("/photos/:id", handlers.DeletePhoto)

	// Files (GridFS)
	protected.POST("/files", handlers.UploadFile)
	protected.GET("/files", handlers.GetFiles)
	protected.GET("/files/:id", handlers.DownloadFile)
	protected.DELETE("/files/:id", handlers.DeleteFile)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{"error": "Endpoint not found", "path": c.Request.URL.Path})
			return
		}
		c.Next()
	})

	return router
}
