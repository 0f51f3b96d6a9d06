package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/egyakin/egyakin-api/internal/app"
	"github.com/egyakin/egyakin-api/internal/config"
	"github.com/egyakin/egyakin-api/internal/handler"
	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/egyakin/egyakin-api/internal/repository"
	"github.com/egyakin/egyakin-api/internal/service"
	"github.com/egyakin/egyakin-api/migrations"
	"github.com/egyakin/egyakin-api/pkg/auth"
	"github.com/egyakin/egyakin-api/pkg/push"
	"github.com/egyakin/egyakin-api/pkg/queue"
	"github.com/egyakin/egyakin-api/pkg/storage"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// @title           EGYAKIN API
// @version         1.0
// @description     Medical case-reporting platform backend: patient cases, groups, consultations, and notification fan-out with FCM push.

// @contact.name   API Support
// @contact.email  support@egyakin.local

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      api.localhost
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// ==================== Load Config ====================
	cfg := config.Load()
	log.Printf("🚀 Starting EGYAKIN API Server [env=%s]", cfg.App.Env)

	// ==================== Database (PostgreSQL) ====================
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.App.Env == "production" {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	log.Println("✅ Connected to PostgreSQL")

	// ==================== Run Migrations ====================
	if err := migrations.Run(cfg.DB.URL()); err != nil {
		log.Printf("⚠️  Migration warning: %v", err)
		log.Println("📦 Falling back to GORM AutoMigrate...")
		if err := db.AutoMigrate(
			&model.Doctor{},
			&model.AppNotification{},
			&model.DeviceToken{},
			&model.Group{},
			&model.GroupMember{},
			&model.GroupInvitation{},
			&model.Patient{},
			&model.PatientSectionStatus{},
			&model.Post{},
			&model.Consultation{},
			&model.ConsultationMember{},
		); err != nil {
			log.Fatalf("❌ Failed to migrate database: %v", err)
		}
	}
	log.Println("✅ Database migrated successfully")

	// ==================== Redis ====================
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("❌ Failed to connect to Redis: %v", err)
	}
	log.Println("✅ Connected to Redis")

	// ==================== Firebase FCM ====================
	fcmClient, err := push.NewFCM(cfg.FCM.CredentialsFile)
	if err != nil {
		log.Printf("⚠️  FCM not available: %v (push disabled)", err)
	}

	// ==================== MinIO Storage ====================
	minioStorage, err := storage.NewMinIO(storage.Config{
		Endpoint:  cfg.MinIO.Endpoint,
		PublicURL: cfg.MinIO.PublicURL,
		AccessKey: cfg.MinIO.AccessKey,
		SecretKey: cfg.MinIO.SecretKey,
		Bucket:    cfg.MinIO.Bucket,
		UseSSL:    cfg.MinIO.UseSSL,
	})
	if err != nil {
		log.Printf("⚠️  MinIO not available: %v (exports disabled)", err)
	}
	if minioStorage != nil {
		log.Println("✅ Connected to MinIO")
	}

	// ==================== Initialize Layers ====================
	// JWT Manager
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Repositories
	doctorRepo := repository.NewDoctorRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	deviceRepo := repository.NewDeviceRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	postRepo := repository.NewPostRepository(db)
	consultRepo := repository.NewConsultationRepository(db)

	// Services
	resolver := service.NewRecipientResolver(doctorRepo, groupRepo)
	var pusher service.Pusher
	if fcmClient != nil {
		pusher = fcmClient
	}
	notificationService := service.NewNotificationService(resolver, notifRepo, deviceRepo, pusher)
	authService := service.NewAuthService(doctorRepo, jwtManager, rdb)
	patientService := service.NewPatientService(patientRepo, doctorRepo, notificationService)
	feedService := service.NewFeedService(postRepo, groupRepo, doctorRepo, notificationService)
	groupService := service.NewGroupService(groupRepo, doctorRepo, notificationService)
	consultationService := service.NewConsultationService(consultRepo, patientRepo, doctorRepo, notificationService)
	syndicateService := service.NewSyndicateService(doctorRepo, notificationService)

	// Job Queue (exports)
	jobQueue := queue.New(rdb)
	var store storage.Storage
	if minioStorage != nil {
		store = minioStorage
	}
	exportService := service.NewExportService(jobQueue, notifRepo, store)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	jobQueue.RunWorkers(workerCtx, cfg.Queue.Workers, exportService.Handlers())
	log.Printf("⚙️  Job queue: %d workers running", cfg.Queue.Workers)

	// Handlers
	handlers := app.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Notification: handler.NewNotificationHandler(notificationService),
		Device:       handler.NewDeviceHandler(notificationService),
		Patient:      handler.NewPatientHandler(patientService),
		Feed:         handler.NewFeedHandler(feedService),
		Group:        handler.NewGroupHandler(groupService),
		Consultation: handler.NewConsultationHandler(consultationService),
		Syndicate:    handler.NewSyndicateHandler(syndicateService),
		Export:       handler.NewExportHandler(exportService),
	}

	// ==================== Gin Router ====================
	router := app.SetupRouter(cfg, handlers, jwtManager, rdb, syndicateService.IsAdmin)

	// ==================== Start Server ====================
	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	log.Printf("🌐 EGYAKIN API running on http://0.0.0.0:%s", cfg.App.Port)
	log.Printf("📋 API docs: http://0.0.0.0:%s/swagger/index.html", cfg.App.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	// Give ongoing requests 5 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	workerCancel()
	log.Println("✅ Server exited gracefully")
}
