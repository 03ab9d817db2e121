package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"auditdesk/config"
	"auditdesk/internal/cache"
	"auditdesk/internal/repository"
	"auditdesk/internal/service"
	"auditdesk/internal/transport/rest"
	"auditdesk/internal/transport/ws"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	formRepo := repository.NewFormRepo(db)
	reportRepo := repository.NewReportRepo(db)
	userRepo := repository.NewUserRepo(db)

	// Initialize caches
	formCache := cache.NewFormCache(rdb)
	scoreboard := cache.NewScoreboardCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(userRepo)
	if err := authSvc.Bootstrap(ctx); err != nil {
		log.Fatal("Failed to bootstrap users:", err)
	}
	formSvc := service.NewFormService(formRepo, formCache)
	auditSvc := service.NewAuditService(formSvc, reportRepo, scoreboard)
	ataSvc := service.NewATAService(reportRepo, scoreboard)
	rebuttalSvc := service.NewRebuttalService(reportRepo)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	auditSvc.SetBroadcaster(wsHub)
	ataSvc.SetBroadcaster(wsHub)
	rebuttalSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:     authSvc,
		FormService:     formSvc,
		AuditService:    auditSvc,
		ATAService:      ataSvc,
		RebuttalService: rebuttalSvc,
		Scoreboard:      scoreboard,
		WSHub:           wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET /v1/forms")
		log.Println("  POST /v1/reports")
		log.Println("  POST /v1/reports/preview")
		log.Println("  POST /v1/reports/{id}/ata")
		log.Println("  POST /v1/reports/{id}/rebuttal")
		log.Println("  GET  /v1/scoreboard/{agents|auditors}")
		log.Println("  WS   /v1/ws/dashboard")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
