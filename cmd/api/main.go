package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"president-insights/internal/config"
	"president-insights/internal/db"
	apihttp "president-insights/internal/http"
	"president-insights/internal/repository"
	"president-insights/internal/service"
	"president-insights/internal/twitter"
	"president-insights/internal/watson"
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

	if len(cfg.Handles) == 0 {
		logger.Warn("no politician handles configured")
	}

	var analysisRepo repository.AnalysisRepository
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		if err := migrate(ctx, pool); err != nil {
			logger.Fatal("db migrate", zap.Error(err))
		}
		analysisRepo = repository.NewPgAnalysisRepository(pool)
	} else {
		logger.Warn("database not configured, history and similarity disabled")
	}

	cache := service.NewMemoryProfileCache()
	limiter := service.NewMemoryRateLimiter(cfg.AnalyzeRateWindow, cfg.AnalyzeRateLimit)
	// Sin Redis los tokens de operador se validan solo por firma.
	var tokenStore service.TokenStore
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			cache = service.NewRedisProfileCache(redisClient)
			limiter = service.NewRedisRateLimiter(redisClient, cfg.AnalyzeRateWindow, cfg.AnalyzeRateLimit)
			tokenStore = service.NewRedisTokenStore(redisClient)
		}
		cancel()
	}

	fetcher := twitter.NewHTTPClient(twitter.Options{
		BaseURL:        cfg.TwitterAPIURL,
		TokenURL:       cfg.TwitterTokenURL,
		ConsumerKey:    cfg.TwitterConsumerKey,
		ConsumerSecret: cfg.TwitterConsumerSecret,
		BearerToken:    cfg.TwitterBearerToken,
	}, logger)
	analyzer := watson.NewHTTPClient(cfg.WatsonURL, cfg.WatsonUsername, cfg.WatsonPassword, logger)

	analysisSvc := service.NewAnalysisService(fetcher, analyzer, analysisRepo, cache, cfg.Handles, service.AnalysisOptions{
		TimelineCount: cfg.TimelineCount,
		CacheTTL:      cfg.CacheTTL,
	}, logger)

	var jwtSvc *service.JWTService
	if cfg.JWTSecret != "" {
		jwtSvc = service.NewJWTServiceWithStore(cfg.JWTSecret, 0, tokenStore)
	} else {
		logger.Warn("jwt secret not configured, refresh endpoint disabled")
	}

	politicianHandler := apihttp.NewPoliticianHandler(logger, analysisSvc)
	router := apihttp.NewRouter(logger, politicianHandler, jwtSvc, limiter)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.Int("politicians", len(cfg.Handles)))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.Ping(ctx, pool); err != nil {
		return err
	}
	return db.Migrate(ctx, pool)
}
