package routes

import (
	"time"

	"github.com/gigfin/gigfin/internal/api/handlers"
	"github.com/gigfin/gigfin/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Gig         *handlers.GigHandler
	Application *handlers.ApplicationHandler
	Upload      *handlers.UploadHandler
	Profile     *handlers.ProfileHandler
	Limiter     *middleware.RedisLimiter
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Public browse/search
	r.GET("/gigs", d.Gig.Search)
	r.GET("/gigs/:id", d.Gig.Get)

	// Protected routes (verified token)
	auth := r.Group("/")
	auth.Use(middleware.Auth())

	writeLimit := middleware.RateLimit(d.Limiter, 30, time.Minute)
	hirerOnly := middleware.RequireRole("hirer", "admin")

	auth.POST("/gigs", hirerOnly, writeLimit, d.Gig.Create)
	auth.GET("/my-gigs", hirerOnly, d.Gig.ListMine)

	auth.POST("/applications", writeLimit, d.Application.Create)
	auth.GET("/applications", d.Application.ListMine)
	auth.GET("/applications/gig/:gigId", hirerOnly, d.Application.ListByGig)
	auth.PATCH("/applications/schedule-interview/:applicationId", hirerOnly, d.Application.ScheduleInterview)

	auth.POST("/upload/pdf", writeLimit, d.Upload.UploadPDF)

	auth.GET("/profile/me", d.Profile.Me)
	auth.PUT("/profile/update", d.Profile.Update)
}
