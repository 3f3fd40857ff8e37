package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"careerpath/internal/service"
)

// HealthCheck verifica dependencias externas (ej. la base de datos).
type HealthCheck func(ctx context.Context) error

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	recH *RecommendationHandler,
	profileH *ProfileHandler,
	health HealthCheck,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging y recovery.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery())

	r.GET("/healthz", healthHandler(health))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/", jsonContentTypeMiddleware(), JWTAuthMiddleware(logger, jwtSvc))
	api.GET("/profile", profileH.GetProfile)
	api.PUT("/profile", profileH.UpdateProfile)

	api.POST("/questionnaires", recH.SubmitQuestionnaire)
	api.GET("/dashboard", recH.Dashboard)

	recs := api.Group("/recommendations")
	recs.POST("/preview", recH.Preview)
	recs.GET("/:id", recH.GetRecommendation)
	recs.DELETE("/:id", recH.DeleteRecommendation)
	recs.POST("/:id/restore", recH.RestoreRecommendation)

	return r
}

func healthHandler(check HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
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
