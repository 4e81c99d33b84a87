package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	_ "github.com/redmonkez12/go-blog-api/docs" // Swagger docs (generated)
	"github.com/redmonkez12/go-blog-api/internal/auth"
	"github.com/redmonkez12/go-blog-api/internal/blog"
	"github.com/redmonkez12/go-blog-api/internal/config"
	"github.com/redmonkez12/go-blog-api/internal/database"
	"github.com/redmonkez12/go-blog-api/internal/email"
	httpServer "github.com/redmonkez12/go-blog-api/internal/http"
	"github.com/redmonkez12/go-blog-api/internal/logging"
	"github.com/redmonkez12/go-blog-api/internal/profile"
	"github.com/redmonkez12/go-blog-api/internal/user"
)

// @title           Blog API
// @version         1.0
// @description     Blogging API with cookie sessions, soft delete and trash recovery.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

// notifier is what the auth and profile services need from the mailer
type notifier interface {
	auth.Notifier
	profile.Notifier
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
	)

	ctx := context.Background()

	// Single shared database handle for every repository
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// Server-side logout needs Redis; otherwise sessions are purely stateless
	var denylist auth.Denylist
	if cfg.Auth.RevokeOnLogout {
		redisClient, err := initRedis(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to initialize Redis: %w", err)
		}
		defer redisClient.Close()
		denylist = auth.NewRedisDenylist(redisClient)
		logger.Info("session revocation on logout enabled")
	}

	var mailer notifier
	if cfg.Email.Enabled() {
		mailer = email.NewService(cfg.Email)
	} else {
		logger.Info("SMTP not configured, account notices disabled")
		mailer = email.NewNopService(logger)
	}

	// Initialize repositories
	userRepo := user.NewRepository(db)
	blogRepo := blog.NewRepository(db)

	// Initialize PASETO service
	pasetoService, err := auth.NewPasetoService(cfg.Auth.PasetoKey, cfg.Auth.SessionDuration)
	if err != nil {
		return fmt.Errorf("failed to initialize PASETO service: %w", err)
	}

	// Initialize services
	authService := auth.NewService(
		userRepo,
		pasetoService,
		auth.NewPasswordHasher(auth.DefaultArgon2Params),
		auth.NewStrengthChecker(cfg.Auth.PasswordMinScore),
		denylist,
		mailer,
		logger,
	)
	blogService := blog.NewService(blogRepo, logger)
	profileService := profile.NewService(userRepo, blogService, mailer, logger)

	// Initialize HTTP handlers
	isProduction := !cfg.Server.IsDevelopment()
	handlers := httpServer.Handlers{
		Auth:    auth.NewHandler(authService, logger, isProduction),
		Blog:    blog.NewHandler(blogService),
		Profile: profile.NewHandler(profileService, isProduction),
	}
	authMiddleware := auth.NewMiddleware(pasetoService, denylist)

	// Initialize router
	router := httpServer.NewRouter(cfg, handlers, authMiddleware, httpServer.NewMetrics(), logger)

	// Initialize HTTP server
	server := httpServer.NewServer(cfg.Server, router, logger)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received signal", "signal", sig.String())

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
