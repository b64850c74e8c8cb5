package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"surveyflow/docs"
	"surveyflow/internal/config"
	"surveyflow/internal/database"
	"surveyflow/internal/database/migration"
	handlers "surveyflow/internal/http/handler"
	"surveyflow/internal/http/middleware"
	"surveyflow/internal/logger"
	"surveyflow/internal/otel"
	"surveyflow/internal/repository/postgres"
	"surveyflow/internal/service"
	"surveyflow/internal/storage"
	"surveyflow/internal/workflow"
)

// @title Survey Flow API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Env, cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	// PostgreSQL holds workflow documents and survey responses
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.Migrate {
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			log.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	// Survey definitions live as XML objects in S3-compatible storage
	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		log.Fatal("failed to initialize object storage", zap.Error(err))
	}

	wfMetrics, err := service.NewWorkflowMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("failed to register workflow metrics", zap.Error(err))
	}

	surveySvc := service.NewSurveyService(objStore, cfg.MinIO.SurveyPrefix, log)
	workflowSvc := service.NewWorkflowService(postgres.NewWorkflowPostgres(db), workflow.NewMachine(), wfMetrics, log)
	responseSvc := service.NewResponseService(postgres.NewResponsePostgres(db), surveySvc, workflowSvc, log)

	if cfg.SeedSample {
		seeded, err := surveySvc.SeedSample(ctx)
		if err != nil {
			log.Warn("sample survey not seeded", zap.Error(err))
		} else if seeded {
			log.Info("sample survey seeded")
		}
	}

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("failed to register http metrics", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	// RequestID runs before everything that reads the request id
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())
	app.Use(middleware.CORS(cfg.CORSAllowOrigins))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:        db,
		Surveys:   surveySvc,
		Responses: responseSvc,
		Workflows: workflowSvc,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("server shutdown", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Log.Env))
	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
