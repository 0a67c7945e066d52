package main

import (
	"log"
	"restofinder/cache"
	"restofinder/config"
	"restofinder/db"
	"restofinder/events"
	"restofinder/handlers"
	"restofinder/models"
	"restofinder/service"
	"restofinder/utils"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName     = "token"
	sessionExpirationTime = 365 * 86400 // 1 year
)

func main() {
	database, err := db.Open()
	if err != nil {
		log.Fatalf("Database: %v", err)
	}
	if err = models.Migrate(database); err != nil {
		log.Fatalf("Migration: %v", err)
	}
	if err = handlers.RegisterValidators(); err != nil {
		log.Fatalf("Validators: %v", err)
	}

	// Cache: Redis if configured and reachable, in-process otherwise
	ttl := time.Duration(config.CACHE_TTL) * time.Second
	var responseCache cache.Cache = cache.NewMemory(ttl)
	if config.REDIS_ADDR != "" {
		responseCache = cache.New(cache.NewRedisClient(), ttl)
	}
	// Events go to the websocket clients and, if configured, to RabbitMQ
	hub := events.NewHub()
	publishers := events.Publishers{hub}
	if config.AMQP_URL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(config.AMQP_URL, config.AMQP_EXCHANGE)
		if err != nil {
			log.Printf("RabbitMQ not available, events are not published: %v", err)
		} else {
			defer amqpPublisher.Close()
			publishers = append(publishers, amqpPublisher)
		}
	}
	h := &handlers.Handlers{
		Users:       service.NewUsers(database),
		Restaurants: service.NewRestaurants(database, responseCache),
		Lists:       service.NewLists(database, responseCache, publishers),
		Hub:         hub,
	}

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	router.Use(utils.RequestID)
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", utils.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", utils.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))
	cookieStore := gormsessions.NewStore(database, true, []byte(config.SESSION_KEY))
	cookieStore.Options(sessions.Options{Path: "/", MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/ws"})))
	}
	router.Use(utils.CacheControl(utils.CacheNoCache))
	h.Routes(router)

	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
