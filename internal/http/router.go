package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"president-insights/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
// limiter y jwtSvc pueden ser nil: sin limite y con refresh deshabilitado.
func NewRouter(
	logger *zap.Logger,
	politicianH *PoliticianHandler,
	jwtSvc *service.JWTService,
	limiter service.RateLimiter,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	politicians := r.Group("/politicians")
	politicians.GET("", politicianH.ListPoliticians)
	politicians.GET("/:handle/personality", rateLimitMiddleware(limiter), politicianH.GetPersonality)
	politicians.GET("/:handle/traits", rateLimitMiddleware(limiter), politicianH.GetTraits)
	politicians.GET("/:handle/history", politicianH.GetHistory)
	politicians.GET("/:handle/similar", politicianH.GetSimilar)
	politicians.POST("/:handle/refresh", JWTAuthMiddleware(jwtSvc), politicianH.Refresh)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

// rateLimitMiddleware corta con 429 cuando la IP supera el limite de analisis.
func rateLimitMiddleware(limiter service.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many analysis requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
