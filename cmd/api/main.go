package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jobdeck/jobdeck/internal/cache"
	"github.com/jobdeck/jobdeck/internal/config"
	"github.com/jobdeck/jobdeck/internal/database"
	"github.com/jobdeck/jobdeck/internal/handlers"
	"github.com/jobdeck/jobdeck/internal/services"
	"github.com/jobdeck/jobdeck/internal/store"
)

const maxBodyBytes = 1 << 20 // 1mb JSON bodies, same cap the old server used

func main() {
	// 1. Configuration (.env + environment)
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	// 2. Database connection + migrations
	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	log.Println("Database connection established")

	// 3. Optional Redis listing cache
	var listingCache *cache.ListingCache
	if cfg.RedisURL != "" {
		listingCache, err = cache.New(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.Printf("Listing cache disabled: %v", err)
			listingCache = nil
		} else {
			log.Println("Listing cache connected")
		}
	}

	// 4. Core services
	jobService := services.NewJobService(store.NewGormStore(db), listingCache)

	var reviewService *services.ReviewService
	if cfg.GeminiAPIKey != "" {
		reviewService, err = services.NewReviewService(context.Background(), cfg.GeminiAPIKey, cfg.AIModel, cfg.AIMaxOutputTokens)
		if err != nil {
			log.Printf("AI review disabled: %v", err)
		}
	} else {
		log.Println("AI review disabled (no GEMINI_API_KEY)")
	}

	// 5. Handlers
	jobHandler := handlers.NewJobHandler(jobService)
	aiHandler := handlers.NewAIHandler(reviewService)

	// 6. Router & CORS
	r := gin.Default()
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = []string{cfg.CORSOrigin}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))
	r.Use(func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		c.Next()
	})

	// 7. Routes
	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/api")
	{
		api.GET("/jobs", jobHandler.ListJobs)
		api.GET("/jobs/:id", jobHandler.GetJob)
		api.POST("/jobs", jobHandler.CreateJob)
		api.PUT("/jobs/:id", jobHandler.UpdateJob)
		api.DELETE("/jobs/:id", jobHandler.DeleteJob)

		api.POST("/ai/review", aiHandler.ReviewResume)
	}

	log.Println("Server starting on port " + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start: ", err)
	}
}
