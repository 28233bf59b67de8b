package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/skous2/nails-by-brooke/internal/config"
	"github.com/skous2/nails-by-brooke/internal/email"
	"github.com/skous2/nails-by-brooke/internal/export"
	appointmentHandler "github.com/skous2/nails-by-brooke/internal/handler/appointment"
	authHandler "github.com/skous2/nails-by-brooke/internal/handler/auth"
	clientHandler "github.com/skous2/nails-by-brooke/internal/handler/client"
	dashboardHandler "github.com/skous2/nails-by-brooke/internal/handler/dashboard"
	"github.com/skous2/nails-by-brooke/internal/handler/health"
	reportHandler "github.com/skous2/nails-by-brooke/internal/handler/report"
	"github.com/skous2/nails-by-brooke/internal/middleware"
	"github.com/skous2/nails-by-brooke/internal/repository"
	"github.com/skous2/nails-by-brooke/internal/repository/memory"
	"github.com/skous2/nails-by-brooke/internal/repository/postgres"
	redisstore "github.com/skous2/nails-by-brooke/internal/repository/redis"
	"github.com/skous2/nails-by-brooke/internal/router"
	appointmentService "github.com/skous2/nails-by-brooke/internal/service/appointment"
	authService "github.com/skous2/nails-by-brooke/internal/service/auth"
	clientService "github.com/skous2/nails-by-brooke/internal/service/client"
	dashboardService "github.com/skous2/nails-by-brooke/internal/service/dashboard"
	reportService "github.com/skous2/nails-by-brooke/internal/service/report"
	"github.com/skous2/nails-by-brooke/pkg/auth"
	"github.com/skous2/nails-by-brooke/pkg/circuitbreaker"
	"github.com/skous2/nails-by-brooke/pkg/logger"
	"github.com/skous2/nails-by-brooke/pkg/mailer"
	"github.com/skous2/nails-by-brooke/pkg/metrics"
	"github.com/skous2/nails-by-brooke/pkg/security"
	"github.com/skous2/nails-by-brooke/pkg/validator"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	validator.Register()

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(cfg.Database.DSN()); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		log.Info().Msg("database migrations applied")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	tokens, closeTokens := newTokenStore(cfg)
	defer closeTokens()

	m := metrics.New("nails")

	// Repositories
	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	clientRepo := postgres.NewClientRepository(base)
	appointmentRepo := postgres.NewAppointmentRepository(base)
	dashboardRepo := postgres.NewDashboardRepository(base)
	reportRepo := postgres.NewReportRepository(base)

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry(), cfg.App.Name)
	authSvc := authService.NewService(userRepo, tokens, jwtSvc, security.NewBcrypt(0)).
		WithMetrics(m)
	clientSvc := clientService.NewService(clientRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo)
	dashboardSvc := dashboardService.NewService(dashboardRepo)

	var emailSvc email.Service
	if cfg.SMTP.Enabled() {
		sender := mailer.NewSMTPSender(mailer.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
		breaker := circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "smtp",
			MaxFailures: 3,
			Timeout:     time.Minute,
		})
		emailSvc = email.NewService(mailer.WithCircuitBreaker(sender, breaker), cfg.Report.BusinessName)
	} else {
		log.Info().Msg("SMTP not configured, report email disabled")
	}

	renderer := export.NewRenderer(export.Branding{
		BusinessName: cfg.Report.BusinessName,
		FilePrefix:   cfg.Report.FilePrefix,
	})
	reportSvc := reportService.NewService(reportRepo, clientRepo, renderer, emailSvc, m)

	// Router
	var rateLimit *middleware.RateLimiterConfig
	if cfg.RateLimit.Enabled {
		rateLimit = &middleware.RateLimiterConfig{
			Rate:  rate.Limit(cfg.RateLimit.RPS),
			Burst: cfg.RateLimit.Burst,
		}
	}

	mode := gin.ReleaseMode
	if cfg.App.IsDevelopment() {
		mode = gin.DebugMode
	}

	r := router.NewRouter(
		middleware.NewAuthMiddleware(authSvc),
		router.Handlers{
			Health:       health.NewHandler(db),
			Auth:         authHandler.NewHandler(authSvc),
			Clients:      clientHandler.NewHandler(clientSvc),
			Appointments: appointmentHandler.NewHandler(appointmentSvc),
			Dashboard:    dashboardHandler.NewHandler(dashboardSvc),
			Reports:      reportHandler.NewHandler(reportSvc),
		},
		router.RouterConfig{
			CORSConfig:   middleware.DefaultCORSConfig(cfg.CORS.AllowedOrigins),
			SizeLimit:    middleware.SizeLimitConfig{MaxBodySize: cfg.Server.MaxBodyBytes},
			Security:     middleware.DefaultSecurityConfig(!cfg.App.IsDevelopment()),
			RateLimit:    rateLimit,
			ExposeErrors: cfg.App.IsDevelopment(),
			Metrics:      m,
			Mode:         mode,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("env", cfg.App.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

// newTokenStore uses Redis when configured so logouts are shared between
// instances, and an in-process store otherwise.
func newTokenStore(cfg *config.Config) (repository.TokenStore, func()) {
	if cfg.Redis.URL == "" {
		log.Info().Msg("REDIS_URL not set, revoked tokens kept in memory")
		return memory.NewTokenStore(10 * time.Minute), func() {}
	}

	client, err := redisstore.Connect(context.Background(), redisstore.Config{URL: cfg.Redis.URL})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	return redisstore.NewTokenStore(client), func() {
		if err := client.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close Redis client")
		}
	}
}
