package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"traits-matcher/internal/config"
	"traits-matcher/internal/db"
	apihttp "traits-matcher/internal/http"
	"traits-matcher/internal/repository"
	"traits-matcher/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	personsPool, err := db.NewPool(ctx, cfg.PersonsDatabaseURL)
	if err != nil {
		logger.Fatal("persons db connect", zap.Error(err))
	}
	defer personsPool.Close()

	traitsPool, err := db.NewPool(ctx, cfg.TraitsDatabaseURL)
	if err != nil {
		logger.Fatal("traits db connect", zap.Error(err))
	}
	defer traitsPool.Close()

	personRepo := repository.NewPgPersonRepository(personsPool)
	if err := personRepo.EnsureSchema(ctx); err != nil {
		logger.Fatal("persons schema", zap.Error(err))
	}

	pgTraitRepo := repository.NewPgTraitRepository(traitsPool)
	if err := pgTraitRepo.EnsureSchema(ctx); err != nil {
		logger.Fatal("traits schema", zap.Error(err))
	}

	var traitRepo repository.TraitRepository = pgTraitRepo
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, trait cache disabled", zap.Error(err))
		} else {
			ttl := time.Duration(cfg.TraitCacheTTLMinutes) * time.Minute
			traitRepo = repository.NewRedisTraitCache(pgTraitRepo, redisClient, ttl, logger)
			logger.Info("trait cache enabled", zap.String("addr", cfg.RedisAddr))
		}
		cancel()
	}

	personalitySvc := service.NewPersonalityService(personRepo, traitRepo, logger)
	matchSvc := service.NewMatchService(personRepo, traitRepo, logger)

	personHandler := apihttp.NewPersonHandler(logger, personRepo, personalitySvc)
	traitHandler := apihttp.NewTraitHandler(logger, traitRepo)
	matchHandler := apihttp.NewMatchHandler(logger, matchSvc)

	var auth gin.HandlerFunc
	if cfg.AuthSecret != "" {
		tokenSvc := service.NewTokenService(cfg.AuthSecret, time.Duration(cfg.AuthTokenTTLMinutes)*time.Minute)
		auth = apihttp.BearerAuthMiddleware(tokenSvc)
	} else {
		logger.Warn("auth secret not configured, write routes are open")
	}

	health := func(c *gin.Context) {
		if err := db.Ping(c.Request.Context(), personsPool); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persons store unreachable"})
			return
		}
		if err := db.Ping(c.Request.Context(), traitsPool); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "traits store unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}

	router := apihttp.NewRouter(logger, personHandler, traitHandler, matchHandler, health, auth)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
