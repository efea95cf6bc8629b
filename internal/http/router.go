package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"workshare/internal/session"
)

// RouterOptions agrupa piezas opcionales del router.
type RouterOptions struct {
	// StaticDir sirve el build del frontend cuando no está vacío.
	StaticDir string
	// HealthCheck se invoca en GET /healthz; nil lo deja en ok fijo.
	HealthCheck func() error
}

// NewRouter configura el router de Gin con middlewares y rutas base.
func NewRouter(
	logger *zap.Logger,
	sessions session.Store,
	authH *AuthHandler,
	workH *WorkHandler,
	opts RouterOptions,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y sesión por cookie.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), SessionMiddleware(sessions))

	r.GET("/healthz", func(c *gin.Context) {
		if opts.HealthCheck != nil {
			if err := opts.HealthCheck(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"message": "unhealthy"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	api := r.Group("/api/v1")
	api.POST("/signup", authH.SignUp)
	api.POST("/login", authH.Login)
	api.GET("/logout", RequireSession(), authH.Logout)
	api.GET("/verification", RequireSession(), authH.VerifyEmail)
	api.POST("/password_reset_try", authH.RequestPasswordReset)
	api.GET("/password_reset", authH.CheckPasswordResetToken)
	api.POST("/password_reset", authH.CompletePasswordReset)

	works := api.Group("/works", RequireSession())
	works.POST("", workH.CreateWork)
	works.GET("/:id", workH.GetWork)
	works.PATCH("/:id", workH.UpdateWork)
	works.DELETE("/:id", workH.DeleteWork)

	if opts.StaticDir != "" {
		r.Static("/app", opts.StaticDir)
	}

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
