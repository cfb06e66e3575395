package main

import (
	"context"
	"net/http"
	"time"

	"speakup/backend/internal/api/handler"
	"speakup/backend/internal/config"
	"speakup/backend/internal/identity"
	"speakup/backend/internal/models"
	"speakup/backend/internal/notify"
	"speakup/backend/internal/pii"
	"speakup/backend/internal/relay"
	"speakup/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	log := config.GetLogger()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.Case{},
		&models.User{},
		&models.Message{},
		&identity.ReporterRecord{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Info("Database and Redis connections established, migrations complete")
	return db, rdb
}

func main() {
	if err := godotenv.Load(); err != nil {
		config.GetLogger().Warn("no .env file loaded")
	}
	cfg := config.Load()
	log := config.GetLogger()

	db, rdb := setupDependencies(cfg)

	store := storage.NewService(db)
	resolver := identity.NewResolver(db)
	dispatcher := notify.NewDispatcher(rdb)
	auditor := notify.NewAuditPublisher(rdb)
	engine := pii.NewEngine()

	relaySvc := relay.NewService(store, store, resolver, dispatcher, auditor, engine, log)

	worker := notify.NewWorker(rdb, &notify.LogSender{Log: log}, log)
	go worker.Run(context.Background())

	r := gin.Default()
	h := handler.NewHandler(relaySvc, []byte(cfg.JWTSecret), log)

	r.POST("/auth/token", h.IssueToken)

	api := r.Group("/api", handler.AuthRequired([]byte(cfg.JWTSecret)))
	{
		api.POST("/cases/:caseId/messages", h.SendMessage)
		api.GET("/cases/:caseId/messages", h.ListMessages)
		api.GET("/cases/:caseId/messages/unread-count", h.UnreadCount)
		api.POST("/pii/check", h.CheckPII)
	}

	public := r.Group("/public")
	{
		public.POST("/reports/:accessCode/messages", h.ReceiveMessage)
		public.GET("/reports/:accessCode/messages", h.ListReporterMessages)
	}

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Infof("relay backend listening on %s", cfg.HTTPAddr)
	log.Fatal(server.ListenAndServe())
}
