package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/haxsysgit/coursework-backend/internal/config"
)

const (
	requestIDHeader = "X-Request-Id"
	requestIDKey    = "request_id"
	maxRequestIDLen = 128
)

// usePipeline собирает цепочку middleware по конфигурации.
// Порядок: request id, recovery, лог и метрики, заголовки безопасности, CORS, сжатие, общий лимит.
func (s *Server) usePipeline() {
	s.engine.Use(s.requestID(), s.recovery(), s.observe())
	if s.pipeline.SecurityHeaders {
		s.engine.Use(secure.New(secure.Config{
			FrameDeny:          true,
			ContentTypeNosniff: true,
			BrowserXssFilter:   true,
			ReferrerPolicy:     "no-referrer",
		}))
	}
	if len(s.pipeline.AllowedOrigins) > 0 {
		s.engine.Use(cors.New(cors.Config{
			AllowOrigins:  s.pipeline.AllowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
			ExposeHeaders: []string{requestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}
	if s.pipeline.Compression {
		s.engine.Use(gzip.Gzip(gzip.DefaultCompression))
	}
	s.engine.Use(s.rateLimit(config.RouteDefault))
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func (s *Server) entry(c *gin.Context) *log.Entry {
	return s.logger.WithField(requestIDKey, requestID(c))
}

func (s *Server) recovery() gin.HandlerFunc {
	// стек пишем сами через logrus, стандартный вывод gin не нужен
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		s.entry(c).WithField("panic", fmt.Sprint(recovered)).Error("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal Server Error",
			"requestId": requestID(c),
		})
	})
}

// observe пишет access-лог и метрики запроса
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		latency := time.Since(start)
		if s.metrics != nil {
			s.metrics.RecordRequest(c.Request.Method, route, status, latency)
		}

		e := s.entry(c).WithFields(log.Fields{
			"method":  c.Request.Method,
			"route":   route,
			"status":  status,
			"latency": latency.String(),
			"client":  c.ClientIP(),
		})
		switch {
		case status >= http.StatusInternalServerError:
			e.Warn("request")
		case status >= http.StatusBadRequest:
			e.Info("request")
		default:
			e.Debug("request")
		}
	}
}
