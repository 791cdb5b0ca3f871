package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/beautybox/salon-api/internal/config"
	appointmentHandler "github.com/beautybox/salon-api/internal/handler/appointment"
	catalogHandler "github.com/beautybox/salon-api/internal/handler/catalog"
	clientHandler "github.com/beautybox/salon-api/internal/handler/client"
	"github.com/beautybox/salon-api/internal/handler/dashboard"
	expenseHandler "github.com/beautybox/salon-api/internal/handler/expense"
	"github.com/beautybox/salon-api/internal/handler/health"
	requestHandler "github.com/beautybox/salon-api/internal/handler/request"
	"github.com/beautybox/salon-api/internal/middleware"
	"github.com/beautybox/salon-api/internal/repository/sheet"
	"github.com/beautybox/salon-api/internal/router"
	appointmentService "github.com/beautybox/salon-api/internal/service/appointment"
	bookingService "github.com/beautybox/salon-api/internal/service/booking"
	catalogService "github.com/beautybox/salon-api/internal/service/catalog"
	clientService "github.com/beautybox/salon-api/internal/service/client"
	expenseService "github.com/beautybox/salon-api/internal/service/expense"
	metricsService "github.com/beautybox/salon-api/internal/service/metrics"
	notificationService "github.com/beautybox/salon-api/internal/service/notification"
	"github.com/beautybox/salon-api/internal/sheetstore"
	"github.com/beautybox/salon-api/pkg/logger"
	"github.com/beautybox/salon-api/pkg/messaging"
	"github.com/beautybox/salon-api/pkg/messaging/redis"
	"github.com/beautybox/salon-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLog := logger.NewLogger(&logger.Config{
		Level:      logLevel(cfg.Logging.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	m := metrics.NewMetrics("salon", "api")

	store, err := newStore(cfg, appLog)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize store")
	}
	store = sheetstore.WithMetrics(store, m)

	repos := sheet.New(store, cfg.CacheTTL(), appLog.WithComponent("repository"), m)

	// The broker is optional; without Redis the workflow just skips eventing.
	var broker messaging.Broker
	if cfg.Redis.URL != "" {
		zl := zerolog.New(os.Stdout).With().Timestamp().Logger()
		broker, err = redis.NewRedisBroker(redis.Config{URL: cfg.Redis.URL}, &zl)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer broker.Close()
	}

	catalogSvc := catalogService.NewService(repos.Category, repos.Service)
	clientSvc := clientService.NewService(repos.Client, repos.Appointment)
	appointmentSvc := appointmentService.NewService(repos.Appointment, repos.Service)
	expenseSvc := expenseService.NewService(repos.FixedExpense, repos.VariableExpense)
	metricsSvc := metricsService.NewService(repos.Appointment, repos.FixedExpense, repos.VariableExpense)
	bookingSvc := bookingService.NewService(
		repos.Request, repos.Client, repos.Service, repos.Appointment,
		broker, appLog.WithComponent("booking"), m,
	)
	notifier := notificationService.NewService(cfg.Salon.Name, notificationService.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, appLog.WithComponent("notification"))

	engine := router.New(router.Config{
		Mode:        cfg.Server.Mode,
		CORS:        middleware.DefaultCORSConfig(),
		PublicRPS:   cfg.Server.PublicRPS,
		PublicBurst: cfg.Server.PublicBurst,
	}, router.Handlers{
		Health:      health.NewHandler(),
		Catalog:     catalogHandler.NewHandler(catalogSvc),
		Client:      clientHandler.NewHandler(clientSvc),
		Appointment: appointmentHandler.NewHandler(appointmentSvc),
		Expense:     expenseHandler.NewHandler(expenseSvc),
		Request:     requestHandler.NewHandler(bookingSvc, notifier),
		Dashboard:   dashboard.NewHandler(metricsSvc),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		appLog.Info("server listening", "addr", srv.Addr, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLog.Info("server exited properly")
}

func newStore(cfg *config.Config, appLog *logger.Logger) (sheetstore.TableStore, error) {
	switch strings.ToLower(cfg.Store.Driver) {
	case "sheets", "":
		return sheetstore.NewGoogleStore(context.Background(), sheetstore.GoogleConfig{
			SpreadsheetID:      cfg.Store.Sheets.SpreadsheetID,
			ServiceAccountPath: cfg.Store.Sheets.ServiceAccountPath,
		}, appLog.WithComponent("sheetstore"))
	case "postgres":
		return sheetstore.NewPostgresStore(sheetstore.PostgresConfig{
			Host:     cfg.Store.Postgres.Host,
			Port:     cfg.Store.Postgres.Port,
			User:     cfg.Store.Postgres.User,
			Password: cfg.Store.Postgres.Password,
			Name:     cfg.Store.Postgres.Name,
			SSLMode:  cfg.Store.Postgres.SSLMode,
		})
	case "memory":
		return sheetstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func logLevel(level string) logger.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logger.DebugLevel
	case "warn":
		return logger.WarnLevel
	case "error":
		return logger.ErrorLevel
	default:
		return logger.InfoLevel
	}
}
