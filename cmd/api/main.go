package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/jazyl/booking-service/internal/config"
	dbpkg "github.com/jazyl/booking-service/internal/db"
	"github.com/jazyl/booking-service/internal/middleware"
	"github.com/jazyl/booking-service/internal/notify"
	"github.com/jazyl/booking-service/internal/routes"
	"github.com/jazyl/booking-service/internal/tenant"
	"github.com/jazyl/booking-service/internal/uploads"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	registry := tenant.NewRegistry(db, rdb)

	var sender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendgridAPIKey,
		FromEmail: cfg.EmailFrom,
		FromName:  cfg.EmailFromName,
	}); sg != nil {
		sender = sg
	} else {
		sender = notify.NewStubSender()
	}
	notifier := notify.NewDispatcher(sender, cfg.PublicDomain)

	var uploader *uploads.Uploader
	if cfg.S3Bucket != "" {
		uploader = uploads.NewUploader(uploads.NewS3Client(cfg), cfg.S3Bucket, cfg.S3BaseURL)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Registry: registry,
		Notifier: notifier,
		Uploader: uploader,
	})

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
