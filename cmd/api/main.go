package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/calendar"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/config"
	dbpkg "github.com/AleCarrera11/citasya-fullstack-sub000/internal/db"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/idempotency"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/logging"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/messaging"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/middleware"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	db := dbpkg.NewDB(cfg)

	ctx := context.Background()

	var cal calendar.Client = calendar.Noop{}
	if cfg.CalendarEnabled() {
		gc, err := calendar.NewGoogleClient(
			ctx,
			cfg.GoogleKeyFile,
			cfg.GoogleCalendarID,
			cfg.ExternalCallTimeout,
		)
		if err != nil {
			log.Fatalf("failed to init calendar client: %v", err)
		}
		cal = gc
	} else {
		logger.Warn("calendar sync disabled, missing credentials")
	}

	var sender messaging.Sender = messaging.Noop{}
	if cfg.MessagingEnabled() {
		tc, err := messaging.NewTwilio(messaging.TwilioConfig{
			AccountSID: cfg.TwilioAccountSID,
			AuthToken:  cfg.TwilioAuthToken,
			From:       cfg.TwilioWhatsAppFrom,
			Timeout:    cfg.ExternalCallTimeout,
			Logger:     logger,
		})
		if err != nil {
			log.Fatalf("failed to init messaging client: %v", err)
		}
		sender = tc
	} else {
		logger.Warn("whatsapp notifications disabled, missing credentials")
	}

	var idem *idempotency.Store
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, tool calls run without idempotency", "error", err)
	} else {
		idem = idempotency.NewStore(rdb, 0)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, cfg, routes.Deps{
		DB:        db,
		Calendar:  cal,
		Messaging: sender,
		Idem:      idem,
		Logger:    logger,
	})

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
