package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studyhub/internal/domain"
	"studyhub/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	userH *UserHandler,
	chatH *ChatHandler,
	courseH *CourseHandler,
	adminH *AdminHandler,
	noteH *NoteHandler,
	analyticsH *AnalyticsHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Study App API"})
	})

	auth := r.Group("/auth")
	auth.POST("/register", userH.Register)
	auth.POST("/login", userH.Login)
	auth.POST("/refresh", userH.Refresh)
	auth.POST("/logout", userH.Logout)
	auth.GET("/me", JWTAuthMiddleware(jwtSvc), userH.Me)

	// El catalogo es publico; comprar y ver contenido requieren login.
	r.GET("/courses", courseH.List)
	courses := r.Group("/courses", JWTAuthMiddleware(jwtSvc))
	courses.POST("/:id/buy", courseH.Buy)
	courses.GET("/my", courseH.My)
	courses.GET("/:id/content", courseH.Content)

	llm := r.Group("/llm", JWTAuthMiddleware(jwtSvc))
	llm.POST("/chat", chatH.Chat)
	llm.GET("/sessions", chatH.ListSessions)
	llm.GET("/sessions/:id/messages", chatH.ListMessages)

	notes := r.Group("/notes", JWTAuthMiddleware(jwtSvc))
	notes.GET("", noteH.List)
	notes.POST("", noteH.Create)
	notes.PUT("/:id", noteH.Update)
	notes.DELETE("/:id", noteH.Delete)

	admin := r.Group("/admin", JWTAuthMiddleware(jwtSvc), RequireRole(domain.UserRoleAdmin, domain.UserRoleOwner))
	admin.POST("/courses", adminH.CreateCourse)
	admin.POST("/courses/:id/content", adminH.AddContent)

	analytics := r.Group("/analytics", JWTAuthMiddleware(jwtSvc), RequireRole(domain.UserRoleOwner))
	analytics.GET("/dashboard", analyticsH.Dashboard)

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
