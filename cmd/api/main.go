package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/appbarber/agenda-api/internal/config"
	dbpkg "github.com/appbarber/agenda-api/internal/db"
	"github.com/appbarber/agenda-api/internal/infra/lock"
	"github.com/appbarber/agenda-api/internal/middleware"
	"github.com/appbarber/agenda-api/internal/notify"
	"github.com/appbarber/agenda-api/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	locker := lock.NewNoopLocker()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		locker = lock.NewRedisAgendaLocker(client, 5*time.Second)
	}

	var notifier *notify.Dispatcher
	if cfg.NotifyWebhookURL != "" {
		notifier = notify.NewDispatcher(notify.NewWebhookNotifier(cfg.NotifyWebhookURL))
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, locker, notifier)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
