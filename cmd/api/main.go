package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/skolara/skolara-api/internal/config"
	"github.com/skolara/skolara-api/internal/database"
	"github.com/skolara/skolara-api/internal/handler"
	"github.com/skolara/skolara-api/internal/middleware"
	"github.com/skolara/skolara-api/internal/models"
	"github.com/skolara/skolara-api/internal/repository"
	"github.com/skolara/skolara-api/internal/router"
	"github.com/skolara/skolara-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Subject{},
		&models.Student{},
		&models.Assignment{},
		&models.Question{},
		&models.QuestionOption{},
		&models.Submission{},
		&models.StudentAnswer{},
		&models.ActivityLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())

	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, validate, activityService, logger)
	gradingService := service.NewGradingService(submissionRepo, validate, activityService, logger)
	overviewService := service.NewOverviewService(assignmentRepo, submissionRepo, studentRepo, redisClient, cfg.OverviewCacheTTL, logger)
	statsService := service.NewStatsService(assignmentRepo, submissionRepo, studentRepo, subjectRepo, logger)
	seedService := service.NewSeedService(db, cfg.SeedEnabled, cfg.SeedToken, logger)

	deps := router.Dependencies{
		SubmissionHandler: handler.NewSubmissionHandler(submissionService, logger),
		GradingHandler:    handler.NewGradingHandler(gradingService, logger),
		OverviewHandler:   handler.NewOverviewHandler(overviewService, statsService, logger),
		ActivityHandler:   handler.NewActivityHandler(activityService, validate, logger),
		SeedHandler:       handler.NewSeedHandler(seedService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, deps)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
