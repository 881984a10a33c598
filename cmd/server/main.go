package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estructura/coach-app/internal/api"
	"estructura/coach-app/internal/config"
	"estructura/coach-app/internal/repository/mongo"
	"estructura/coach-app/internal/service"
	"estructura/coach-app/internal/storage"
	"estructura/coach-app/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("could not load config: " + err.Error())
	}

	var log *logger.Logger
	if cfg.Logging.Development {
		log = logger.NewDevelopment()
	} else {
		log = logger.New()
	}
	defer log.Sync()

	log.Infow("starting coach-app server", "address", cfg.Server.Address)

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalw("could not connect to MongoDB", "error", err)
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Errorw("failed to disconnect MongoDB", "error", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Infow("database connection established", "database", cfg.Database.Name)

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureCredentialIndexes(ctx, appDB.Collection("credentials"))
		mongo.EnsureProfileIndexes(ctx, appDB.Collection("profiles"))
		mongo.EnsureDietPlanIndexes(ctx, appDB.Collection("diet_plans"))
		mongo.EnsureMealLogIndexes(ctx, appDB.Collection("meal_logs"))
		mongo.EnsureExerciseLogIndexes(ctx, appDB.Collection("exercise_logs"))
		mongo.EnsureWeightLogIndexes(ctx, appDB.Collection("weight_logs"))
		mongo.EnsureTrainingPlanIndexes(ctx, appDB.Collection("training_plans"))
		log.Infow("index creation completed")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3, log)
	if err != nil {
		log.Fatalw("failed to initialize S3 storage", "error", err)
	}

	// --- Initialize Repositories ---
	credentialRepo := mongo.NewMongoCredentialRepository(appDB)
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	dietPlanRepo := mongo.NewMongoDietPlanRepository(appDB)
	mealLogRepo := mongo.NewMongoMealLogRepository(appDB)
	exerciseLogRepo := mongo.NewMongoExerciseLogRepository(appDB)
	weightLogRepo := mongo.NewMongoWeightLogRepository(appDB)
	trainingPlanRepo := mongo.NewMongoTrainingPlanRepository(appDB)

	// --- Initialize Services ---
	authService := service.NewAuthService(credentialRepo, profileRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	clientService := service.NewClientService(profileRepo, dietPlanRepo, mealLogRepo, exerciseLogRepo, weightLogRepo, trainingPlanRepo, fileStorage, log)
	trainerService := service.NewTrainerService(credentialRepo, profileRepo, dietPlanRepo, mealLogRepo, exerciseLogRepo, weightLogRepo, trainingPlanRepo, fileStorage, log)

	// --- Initialize Gin Engine ---
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	api.SetupRoutes(router, cfg.JWT.Secret, authService, clientService, trainerService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infow("server listening", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("listen error", "error", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Infow("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Infow("server exiting")
}
