package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Voxodinson/webass-api/controllers"
	"github.com/Voxodinson/webass-api/initializers"
	"github.com/Voxodinson/webass-api/middlewares"
	"github.com/Voxodinson/webass-api/routes"
	"github.com/Voxodinson/webass-api/storage"
	"github.com/Voxodinson/webass-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func buildStorage() storage.Storage {
	if os.Getenv("STORAGE_DRIVER") == "s3" {
		s3Store, err := storage.NewS3Storage(context.Background(), os.Getenv("S3_BUCKET"))
		if err != nil {
			log.Fatal("Failed to configure S3 storage: ", err)
		}
		return s3Store
	}

	root := os.Getenv("UPLOADS_DIR")
	if root == "" {
		root = "uploads/images"
	}
	return storage.NewDiskStorage(root)
}

func main() {
	initializers.LoadEnv()

	db, err := initializers.ConnectToDB()
	if err != nil {
		log.Fatal(err)
	}
	if err := initializers.SyncDatabase(db); err != nil {
		log.Fatal("Failed to sync database: ", err)
	}

	redisClient := initializers.ConnectRedis()
	store := buildStorage()
	resolver := storage.NewResolver(os.Getenv("APP_BASE_URL"))
	notifier := utils.NewOrderNotifier(os.Getenv("ORDER_WEBHOOK_URL"))

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	requireAuth := middlewares.RequireAuth(db)
	requireAdmin := middlewares.RequireAdmin()
	limiter := middlewares.RateLimiter(redisClient)

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server, controllers.NewAuthController(db, store), limiter, requireAuth)
	routes.UserRoutes(server, controllers.NewUserController(db, store, resolver), requireAuth)
	routes.ProductRoutes(server, controllers.NewProductController(db, store, resolver), requireAuth, requireAdmin)
	routes.CompanyRoutes(server, controllers.NewCompanyController(db, store, resolver), requireAuth, requireAdmin)
	routes.SocialMediaRoutes(server, controllers.NewSocialMediaController(db, store, resolver), requireAuth, requireAdmin)
	routes.FeedbackRoutes(server, controllers.NewFeedbackController(db, resolver), requireAuth)
	routes.OrderRoutes(server, controllers.NewOrderController(db, resolver, notifier), requireAuth)
	routes.DashboardRoutes(server, controllers.NewDashboardController(db), requireAuth, requireAdmin)

	server.Run()
}
