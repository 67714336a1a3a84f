package routes

import (
	"net/http"
	"time"

	"github.com/BattleKash/battlekash-admin-backend/internal/config"
	"github.com/BattleKash/battlekash-admin-backend/internal/handlers"
	"github.com/BattleKash/battlekash-admin-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HandlerDependencies carries the initialized handlers into the router
type HandlerDependencies struct {
	AuthHandler       *handlers.AuthHandler
	TournamentHandler *handlers.TournamentHandler
	ResultHandler     *handlers.ResultHandler
	WalletHandler     *handlers.WalletHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())

	// Settlement endpoints are guarded against accidental hammering; the
	// limiter fails open when Redis is not configured.
	distributeLimit := middleware.RedisRateLimit(10, time.Minute)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
			auth.POST("/register", deps.AuthHandler.Register)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		tournaments := protected.Group("/tournaments")
		{
			tournaments.GET("", deps.TournamentHandler.GetAllTournaments)
			tournaments.POST("", deps.TournamentHandler.CreateTournament)
			tournaments.GET("/:id", deps.TournamentHandler.GetTournamentByID)
			tournaments.GET("/:id/economics", deps.TournamentHandler.GetEconomics)
			tournaments.PUT("/:id/reward-config", deps.TournamentHandler.UpdateRewardConfig)
			tournaments.PATCH("/:id/status", deps.TournamentHandler.UpdateStatus)
			tournaments.GET("/:id/results", deps.ResultHandler.GetTournamentResults)
			tournaments.POST("/:id/results", deps.ResultHandler.SubmitResult)
			tournaments.POST("/:id/distribute-rewards", distributeLimit, deps.TournamentHandler.DistributeRewards)
			tournaments.GET("/:id/transactions", deps.WalletHandler.GetTournamentTransactions)
		}

		results := protected.Group("/results")
		{
			results.PATCH("/:id", deps.ResultHandler.UpdateResult)
			results.POST("/:id/verify", deps.ResultHandler.VerifyResult)
			results.POST("/:id/distribute", distributeLimit, deps.ResultHandler.Distribute)
			results.GET("/:id/screenshot-url", deps.ResultHandler.GetScreenshotURL)
		}

		users := protected.Group("/users")
		{
			users.GET("/:id/transactions", deps.WalletHandler.GetUserTransactions)
		}
	}

	return router
}
