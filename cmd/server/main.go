package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitcoach/coaching-app/internal/api"
	"fitcoach/coaching-app/internal/config"
	"fitcoach/coaching-app/internal/repository/mongo"
	"fitcoach/coaching-app/internal/service"
	"fitcoach/coaching-app/internal/storage"
	"fitcoach/coaching-app/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("could not load config")
	}

	log := logger.Init(logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	log.Info().Msg("starting coaching app server")

	// --- Database ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to MongoDB")
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Error().Err(err).Msg("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Info().Str("database", cfg.Database.Name).Msg("database connection established")

	// Index creation runs in the background; the server does not wait on it.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureVideoIndexes(ctx, appDB.Collection("training_videos"))
		mongo.EnsureNutritionFileIndexes(ctx, appDB.Collection("nutrition_files"))
		mongo.EnsureScheduleIndexes(ctx, appDB.Collection("trainee_schedules"))
		mongo.EnsureMessageIndexes(ctx, appDB.Collection("messages"))
		mongo.EnsureNotificationIndexes(ctx, appDB.Collection("notifications"), appDB.Collection("notification_reads"))
		mongo.EnsureRatingIndexes(ctx, appDB.Collection("ratings"))
		log.Info().Msg("index creation completed")
	}()

	// --- Storage ---
	// Without a bucket the server still runs; presigned upload tickets are
	// just unavailable.
	var fileStorage storage.FileStorage
	if cfg.S3.BucketName != "" {
		fileStorage, err = storage.NewS3Storage(cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize S3 storage")
		}
		log.Info().Str("bucket", cfg.S3.BucketName).Msg("file storage initialized")
	} else {
		log.Warn().Msg("no S3 bucket configured, upload tickets disabled")
	}

	// --- Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	videoRepo := mongo.NewMongoVideoRepository(appDB)
	fileRepo := mongo.NewMongoNutritionFileRepository(appDB)
	scheduleRepo := mongo.NewMongoScheduleRepository(appDB)
	messageRepo := mongo.NewMongoMessageRepository(appDB)
	notificationRepo := mongo.NewMongoNotificationRepository(appDB)
	ratingRepo := mongo.NewMongoRatingRepository(appDB)

	// --- Services ---
	authService := service.NewAuthService(userRepo, planRepo)
	accountService := service.NewAccountService(userRepo)
	planService := service.NewPlanService(planRepo)
	mediaService := service.NewMediaService(videoRepo, fileRepo, userRepo, fileStorage)
	scheduleService := service.NewScheduleService(scheduleRepo, userRepo)
	chatService := service.NewChatService(messageRepo, userRepo)
	notificationService := service.NewNotificationService(notificationRepo, userRepo)
	ratingService := service.NewRatingService(ratingRepo, planRepo, userRepo)

	// --- Super admin seed ---
	if cfg.Admin.PhoneNumber != "" && cfg.Admin.Password != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := authService.EnsureSuperAdmin(ctx, cfg.Admin.PhoneNumber, cfg.Admin.Password, cfg.Admin.Country); err != nil {
			log.Fatal().Err(err).Msg("failed to seed super admin account")
		}
		cancel()
	} else {
		log.Warn().Msg("no super admin credentials configured, skipping seed")
	}

	// --- HTTP ---
	router := gin.Default()
	api.SetupRoutes(
		router,
		userRepo,
		authService,
		accountService,
		planService,
		mediaService,
		scheduleService,
		chatService,
		notificationService,
		ratingService,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("address", cfg.Server.Address).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen and serve failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}
