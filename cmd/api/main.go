// ================== cmd/api/main.go ==================
//
// @title ServePupil API
// @version 1.0
// @description Social request board backed by a realtime tree store
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer <token>"
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/servepupil/api/internal/config"
	"github.com/servepupil/api/internal/database"
	"github.com/servepupil/api/internal/features/auth"
	"github.com/servepupil/api/internal/middleware"
	"github.com/servepupil/api/internal/pkg/objectstore"
	"github.com/servepupil/api/internal/pkg/response"
	"github.com/servepupil/api/internal/pkg/treestore"
	"github.com/servepupil/api/internal/routes"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	docs "github.com/servepupil/api/docs"
)

func main() {
	// Load config
	cfg := config.Load()

	// Configure Swagger metadata at runtime
	docs.SwaggerInfo.Title = "ServePupil API"
	docs.SwaggerInfo.Description = "Social request board backed by a realtime tree store"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Connect to firebase
	ctx := context.Background()
	clients, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to firebase:", err)
	}

	store := treestore.NewFirebaseStore(clients.Database, cfg.FirebaseDatabaseURL, clients.Tokens)

	objects, err := objectstore.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
	if err != nil {
		log.Fatal("Failed to initialise cloudinary:", err)
	}

	identity := auth.NewFirebaseIdentity(clients.Auth)

	// Setup Gin
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.FrontendURL))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	// Swagger documentation
	router.GET(
		"/swagger/*any",
		ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("/swagger/doc.json"),
			ginSwagger.DeepLinking(true),
			ginSwagger.DefaultModelsExpandDepth(-1),
			ginSwagger.DocExpansion("none"),
			ginSwagger.PersistAuthorization(true),
		),
	)

	// Register all routes
	routes.SetupRoutes(router, store, objects, identity, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
