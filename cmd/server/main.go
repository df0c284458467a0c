package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/api"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/config"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository/mongo"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/service"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/storage"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func main() {
	log.Println("Starting ElitePlans API server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsurePlanIndexes(ctx, appDB.Collection("plans"))
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		mongo.EnsureUserPlanIndexes(ctx, appDB.Collection("user_plans"))
		mongo.EnsurePlanWorkoutIndexes(ctx, appDB.Collection("plan_workouts"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	userPlanRepo := mongo.NewMongoUserPlanRepository(appDB)
	planWorkoutRepo := mongo.NewMongoPlanWorkoutRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	userService := service.NewUserService(userRepo, planRepo, userPlanRepo)
	planService := service.NewPlanService(planRepo, userRepo, userPlanRepo)
	workoutService := service.NewWorkoutService(workoutRepo, exerciseRepo)
	exerciseService := service.NewExerciseService(exerciseRepo, workoutRepo, fileStorage)
	userPlanService := service.NewUserPlanService(userPlanRepo, userRepo, planRepo)
	planWorkoutService := service.NewPlanWorkoutService(planWorkoutRepo, planRepo, workoutRepo)

	// --- Initialize Gin Engine ---
	router := gin.Default()

	// Root health check pings the database.
	router.GET("/", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := dbClient.Ping(ctx, readpref.Primary()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(
		router,
		api.NewUserHandler(userService),
		api.NewPlanHandler(planService),
		api.NewWorkoutHandler(workoutService),
		api.NewExerciseHandler(exerciseService),
		api.NewUserPlanHandler(userPlanService),
		api.NewPlanWorkoutHandler(planWorkoutService),
	)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
