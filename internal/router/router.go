package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/memodb-io/rentspot/internal/config"
	"github.com/memodb-io/rentspot/internal/middleware"
	"github.com/memodb-io/rentspot/internal/modules/handler"
	"github.com/memodb-io/rentspot/internal/modules/serializer"
	"github.com/memodb-io/rentspot/internal/telemetry"
)

type RouterDeps struct {
	Config         *config.Config
	Log            *zap.Logger
	SpotHandler    *handler.SpotHandler
	ReviewHandler  *handler.ReviewHandler
	BookingHandler *handler.BookingHandler
	CSRFHandler    *handler.CSRFHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	// validation errors report json field names
	serializer.UseJSONFieldNames()

	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.RequestID())
	r.Use(middleware.ZapLogger(d.Log))
	r.Use(middleware.Metrics())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Message: "ok"}) })
	r.GET("/metrics", gin.WrapH(telemetry.Handler()))

	// mutating routes share one limiter per client ip
	limit := func(c *gin.Context) { c.Next() }
	if d.Config.RateLimit.Enabled {
		limit = middleware.NewRateLimiter(d.Config, d.Log).Handler()
	}

	api := r.Group("/api")
	{
		api.Use(middleware.CSRF(d.Config))

		api.GET("/csrf/restore", d.CSRFHandler.Restore)

		spots := api.Group("/spots")
		{
			spots.GET("", d.SpotHandler.ListSpots)
			spots.POST("", limit, d.SpotHandler.CreateSpot)
			spots.GET("/:id", d.SpotHandler.GetSpot)
			spots.PUT("/:id", limit, d.SpotHandler.UpdateSpot)
			spots.DELETE("/:id", limit, d.SpotHandler.DeleteSpot)
			spots.POST("/:id/images", limit, d.SpotHandler.AddSpotImage)

			spots.GET("/:id/reviews", d.ReviewHandler.ListSpotReviews)
			spots.POST("/:id/reviews", limit, d.ReviewHandler.CreateReview)

			spots.GET("/:id/bookings", d.BookingHandler.ListSpotBookings)
			spots.POST("/:id/bookings", limit, d.BookingHandler.CreateBooking)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("", d.ReviewHandler.ListReviews)
			reviews.GET("/:id", d.ReviewHandler.GetReview)
			reviews.PUT("/:id", limit, d.ReviewHandler.UpdateReview)
			reviews.DELETE("/:id", limit, d.ReviewHandler.DeleteReview)
			reviews.POST("/:id/images", limit, d.ReviewHandler.AddReviewImage)
		}

		api.DELETE("/bookings/:id", limit, d.BookingHandler.DeleteBooking)
	}

	return r
}
