package main

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/yuetlam/splitter/internal/ai"
	"github.com/yuetlam/splitter/internal/auth"
	"github.com/yuetlam/splitter/internal/config"
	"github.com/yuetlam/splitter/internal/handler"
	"github.com/yuetlam/splitter/internal/ledger"
	"github.com/yuetlam/splitter/internal/middleware"
	"github.com/yuetlam/splitter/internal/notify"
	"github.com/yuetlam/splitter/internal/service"
	"github.com/yuetlam/splitter/internal/storage/sqlite"
	"github.com/yuetlam/splitter/pkg/logging"
)

func main() {
	cfg := config.Load()
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", cfg.DBPath)

	secret := cfg.JWTSecret
	if secret == "" {
		secret = randomSecret()
		slog.Warn("JWT_SECRET not set, using an ephemeral secret; sessions will not survive restarts")
	}
	jwtManager := auth.NewJWTManager(secret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	var pub notify.Publisher = notify.NopPublisher{}
	if cfg.RedisAddr != "" {
		redisPub := notify.NewRedisPublisher(cfg.RedisAddr)
		defer redisPub.Close()
		pub = redisPub
		slog.Info("trip event publishing enabled", "redis", cfg.RedisAddr)
	}

	var parser ai.Parser
	if cfg.GeminiAPIKey != "" {
		parser = ai.NewGeminiParser(cfg.GeminiAPIKey, cfg.GeminiURL)
		slog.Info("expense parsing enabled")
	}

	tripSvc := service.NewTripService(store, ledger.DefaultTable(), pub)
	authSvc := service.NewAuthService(authenticator, jwtManager)

	app := fiber.New(fiber.Config{
		AppName:               "splitter",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type, Authorization",
	}))
	app.Use(middleware.Observe())

	handler.RegisterRoutes(app, handler.NewAuthHandler(authSvc), handler.NewTripHandler(tripSvc, parser), jwtManager)

	// Shut down cleanly on SIGINT/SIGTERM so in-flight replaces finish.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		slog.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	addr := ":" + cfg.Port
	slog.Info("server starting", "address", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		slog.Error("failed to generate secret", "error", err)
		os.Exit(1)
	}
	return hex.EncodeToString(buf)
}
