package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/gigfin/gigfin/config"
	"github.com/gigfin/gigfin/internal/api/handlers"
	"github.com/gigfin/gigfin/internal/api/middleware"
	"github.com/gigfin/gigfin/internal/api/routes"
	"github.com/gigfin/gigfin/internal/logger"
	"github.com/gigfin/gigfin/internal/models"
	mongorepo "github.com/gigfin/gigfin/internal/repositories/mongo"
	pgrepo "github.com/gigfin/gigfin/internal/repositories/postgres"
	"github.com/gigfin/gigfin/internal/services"
	"github.com/gigfin/gigfin/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()

	// Init MongoDB (gigs + applications)
	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	log.Info("MongoDB connected")

	// Init PostgreSQL (user profiles)
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.PostgresDB.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("PostgreSQL migrate error: %v", err)
	}
	log.Info("PostgreSQL connected")

	// Redis is optional; without it rate limiting is disabled
	var limiter *middleware.RedisLimiter
	if config.RedisConfigured() {
		if err := config.InitRedis(); err != nil {
			log.Fatalf("Redis init error: %v", err)
		}
		limiter = middleware.NewRedisLimiter(config.RedisClient)
		log.Info("Redis connected")
	}

	// Media store
	bucket := os.Getenv("GCS_BUCKET")
	if bucket == "" {
		log.Fatal("GCS_BUCKET environment variable is not set")
	}
	uploader, err := storage.NewGCSUploader(context.Background(), bucket)
	if err != nil {
		log.Fatalf("storage init error: %v", err)
	}
	defer uploader.Close()

	db := config.MongoDatabase()
	gigRepo := mongorepo.NewGigRepo(db)
	appRepo := mongorepo.NewApplicationRepo(db)
	userRepo := pgrepo.NewUserRepo(config.PostgresDB)

	gigSvc := services.NewGigService(gigRepo, appRepo)
	appSvc := services.NewApplicationService(appRepo, gigRepo, userRepo, uploader)
	profileSvc := services.NewProfileService(userRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Gig:         handlers.NewGigHandler(gigSvc),
		Application: handlers.NewApplicationHandler(appSvc),
		Upload:      handlers.NewUploadHandler(uploader),
		Profile:     handlers.NewProfileHandler(profileSvc),
		Limiter:     limiter,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
