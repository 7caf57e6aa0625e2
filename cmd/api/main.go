package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"bci-auth/internal/config"
	"bci-auth/internal/db"
	apihttp "bci-auth/internal/http"
	"bci-auth/internal/repository"
	"bci-auth/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
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

	var userRepo repository.UserRepository
	switch cfg.StorageDriver {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := redisClient.Ping(ctxPing).Err()
		cancel()
		if err != nil {
			logger.Fatal("redis connect", zap.Error(err))
		}
		userRepo = repository.NewRedisUserRepository(redisClient)
	case "postgres":
		if err := db.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
			logger.Fatal("db migrate", zap.Error(err))
		}
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		if err := db.Ping(ctx, pool); err != nil {
			logger.Fatal("db ping", zap.Error(err))
		}
		userRepo = repository.NewPgUserRepository(pool)
	default:
		logger.Fatal("unknown storage driver", zap.String("driver", cfg.StorageDriver))
	}

	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	tokens := service.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	authSvc := service.NewAuthService(logger, userRepo, hasher, tokens)

	authHandler := apihttp.NewAuthHandler(logger, authSvc)
	router := apihttp.NewRouter(logger, authHandler)

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
