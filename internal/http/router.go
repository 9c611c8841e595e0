package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// NewRouter configura el router de Gin con middlewares y rutas.
// Las rutas de lectura quedan siempre abiertas; si auth no es nil se aplica
// a las rutas de escritura.
func NewRouter(
	logger *zap.Logger,
	personH *PersonHandler,
	traitH *TraitHandler,
	matchH *MatchHandler,
	health gin.HandlerFunc,
	auth gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: request id, logging, recovery y JSON content-type.
	r.Use(requestIDMiddleware(), zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", health)

	r.GET("/persons", personH.ListPersons)
	r.GET("/persons/:name", personH.GetPerson)
	r.GET("/traits", traitH.ListTraits)

	write := r.Group("")
	if auth != nil {
		write.Use(auth)
	}
	write.POST("/persons", personH.CreatePerson)
	write.POST("/persons/:name/description", personH.AddDescription)
	write.POST("/traits", traitH.CreateTrait)
	write.POST("/matches", matchH.FindMatches)

	return r
}

// requestIDMiddleware etiqueta cada request con un id propagado en el header.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
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
			zap.String("request_id", c.GetString("request_id")),
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
