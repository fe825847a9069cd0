package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"postboard/database"
	"postboard/handlers"
	"postboard/logger"
	"postboard/routes"
	"postboard/store"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	var dbErr error
	for i := 1; i <= 3; i++ {
		if dbErr = database.ConnectDB(); dbErr != nil {
			log.Warn("mongo connection attempt failed", "attempt", i, "error", dbErr)
			time.Sleep(2 * time.Second)
			continue
		}
		break
	}
	if dbErr != nil {
		log.Fatal("failed to connect to mongo", "error", dbErr)
	}
	log.Info("connected to mongo")

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	handlers.Init(log, handlers.Stores{
		Posts:      store.NewPostStore(database.Posts, log),
		Users:      store.NewUserStore(database.Users, log),
		Groups:     store.NewGroupStore(database.Groups, log),
		Categories: store.NewCategoryStore(database.Categories, log),
		Comments:   store.NewCommentStore(database.Comments, log),
		Photos:     store.NewPhotoStore(database.Photos, log),
	})

	router := routes.SetupRouter()

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
	if err := database.DisconnectDB(); err != nil {
		log.Error("mongo disconnect failed", "error", err)
	}

	log.Info("server stopped")
}
