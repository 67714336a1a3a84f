package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BattleKash/battlekash-admin-backend/api/routes"
	"github.com/BattleKash/battlekash-admin-backend/internal/config"
	"github.com/BattleKash/battlekash-admin-backend/internal/handlers"
	"github.com/BattleKash/battlekash-admin-backend/internal/middleware"
	"github.com/BattleKash/battlekash-admin-backend/internal/repositories"
	mongorepo "github.com/BattleKash/battlekash-admin-backend/internal/repositories/mongodb"
	"github.com/BattleKash/battlekash-admin-backend/internal/rewards"
	"github.com/BattleKash/battlekash-admin-backend/internal/services"
	"github.com/BattleKash/battlekash-admin-backend/pkg/mongodb"
	"github.com/BattleKash/battlekash-admin-backend/pkg/storage"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

func main() {
	// .env is optional; deployed environments inject variables directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	if cfg.JWT.Secret == "" {
		slog.Error("JWT_SECRET is not configured")
		os.Exit(1)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()
	db := mongoClient.Database(cfg.MongoDB.Database)

	middleware.InitRedisRateLimiter(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	// Screenshot storage is optional: without credentials only bare object
	// keys stay unresolvable, everything else keeps working.
	var assets storage.AssetStore
	if cfg.Storage.AccountID != "" {
		assets, err = storage.NewCloudflareR2Store(storage.CloudflareR2Config{
			AccountID:       cfg.Storage.AccountID,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			BucketName:      cfg.Storage.Bucket,
			PublicBaseURL:   cfg.Storage.PublicBaseURL,
		})
		if err != nil {
			slog.Error("Failed to initialize screenshot storage", "error", err)
			os.Exit(1)
		}
	}

	// Repositories
	var tournamentRepo repositories.TournamentRepository = mongorepo.NewTournamentRepository(db)
	var registrationRepo repositories.RegistrationRepository = mongorepo.NewRegistrationRepository(db)
	var resultRepo repositories.ResultRepository = mongorepo.NewResultRepository(db)
	var transactionRepo repositories.WalletTransactionRepository = mongorepo.NewWalletTransactionRepository(db)
	var userRepo repositories.UserRepository = mongorepo.NewUserRepository(db)
	var adminUserRepo repositories.AdminUserRepository = mongorepo.NewAdminUserRepository(db)

	// Services
	policy := rewards.Policy{
		PlacementSharePercent: cfg.Rewards.PlacementSharePercent,
		ExpectedKillFactor:    cfg.Rewards.ExpectedKillFactor,
		BudgetEpsilon:         cfg.Rewards.BudgetEpsilon,
	}
	tournamentService := services.NewTournamentService(tournamentRepo, policy)
	resultService := services.NewResultService(resultRepo, registrationRepo, tournamentRepo, assets)
	settlementService := services.NewSettlementService(resultRepo, tournamentRepo, transactionRepo, userRepo)
	authService := services.NewAuthService(adminUserRepo, cfg)

	// Handlers
	deps := routes.HandlerDependencies{
		AuthHandler:       handlers.NewAuthHandler(authService),
		TournamentHandler: handlers.NewTournamentHandler(tournamentService, settlementService),
		ResultHandler:     handlers.NewResultHandler(resultService, settlementService),
		WalletHandler:     handlers.NewWalletHandler(transactionRepo),
	}

	router := routes.SetupRouter(cfg, deps)
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
	slog.Info("Server stopped")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
