package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/bson/primitive"

	_ "github.com/haxsysgit/coursework-backend/docs"
	"github.com/haxsysgit/coursework-backend/internal/config"
	"github.com/haxsysgit/coursework-backend/internal/domain"
	"github.com/haxsysgit/coursework-backend/internal/metrics"
	"github.com/haxsysgit/coursework-backend/internal/query"
	"github.com/haxsysgit/coursework-backend/internal/repository"
	"github.com/haxsysgit/coursework-backend/internal/service"
)

const dbPingTimeout = 2 * time.Second

// Options зависимости и настройки HTTP-слоя
type Options struct {
	Logger    *log.Entry
	Metrics   *metrics.APIMetrics
	DB        repository.Pinger
	Pipeline  config.Pipeline
	ImagesDir string
	Version   string
}

type Server struct {
	engine    *gin.Engine
	lessons   *service.LessonService
	orders    *service.OrderService
	db        repository.Pinger
	logger    *log.Entry
	metrics   *metrics.APIMetrics
	pipeline  config.Pipeline
	version   string
	startedAt time.Time
}

func NewServer(lessons *service.LessonService, orders *service.OrderService, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.WithField("component", "http")
	}
	s := &Server{
		engine:    gin.New(),
		lessons:   lessons,
		orders:    orders,
		db:        opts.DB,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		pipeline:  opts.Pipeline,
		version:   opts.Version,
		startedAt: time.Now(),
	}
	s.usePipeline()
	s.registerRoutes(opts.ImagesDir)
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes(imagesDir string) {
	s.engine.GET("/", s.root)
	s.engine.GET("/health/db", s.dbHealth)
	if s.metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if imagesDir != "" {
		s.engine.Static("/imgs", imagesDir)
	}

	s.engine.GET("/lessons", s.listLessons)
	s.engine.GET("/search", s.rateLimit(config.RouteSearch), s.searchLessons)
	s.engine.GET("/lessons/:id", s.getLesson)
	s.engine.PUT("/lessons/:id", s.rateLimit(config.RouteLessonsWrite), s.updateLesson)
	s.engine.POST("/orders", s.rateLimit(config.RouteOrders), s.createOrder)

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found", "requestId": requestID(c)})
	})
}

// @Summary Service metadata
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]any
// @Router / [get]
func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":          "lessons-api",
		"status":        "ok",
		"version":       s.version,
		"uptimeSeconds": int64(time.Since(s.startedAt).Seconds()),
	})
}

// @Summary Storage reachability probe
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /health/db [get]
func (s *Server) dbHealth(c *gin.Context) {
	if s.db == nil {
		s.fail(c, errNoStorage)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbPingTimeout)
	defer cancel()
	if err := s.db.Ping(ctx); err != nil {
		s.entry(c).WithError(err).Error("database ping failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": 0, "error": "Database unreachable", "requestId": requestID(c)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": 1, "ping": "ok"})
}

// @Summary List lessons
// @Tags lessons
// @Produce json
// @Param limit query int false "Page size, clamped to [1,100], default 50"
// @Param skip query int false "Offset, default 0"
// @Param sort query string false "topic, location, price, space or _id"
// @Param order query string false "asc or desc"
// @Success 200 {array} domain.Lesson
// @Router /lessons [get]
func (s *Server) listLessons(c *gin.Context) {
	list, err := s.lessons.List(c.Request.Context(), query.ListingParams{
		Limit: c.Query("limit"),
		Skip:  c.Query("skip"),
		Sort:  c.Query("sort"),
		Order: c.Query("order"),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Search lessons
// @Tags lessons
// @Produce json
// @Param term query string false "Substring of topic, location, price or space"
// @Success 200 {array} domain.Lesson
// @Router /search [get]
func (s *Server) searchLessons(c *gin.Context) {
	list, err := s.lessons.Search(c.Request.Context(), c.Query("term"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get lesson by id
// @Tags lessons
// @Produce json
// @Param id path string true "Lesson ObjectID"
// @Success 200 {object} domain.Lesson
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /lessons/{id} [get]
func (s *Server) getLesson(c *gin.Context) {
	l, err := s.lessons.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// @Summary Update lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path string true "Lesson ObjectID"
// @Param input body service.LessonUpdate true "Fields to set"
// @Success 200 {object} domain.Lesson
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /lessons/{id} [put]
func (s *Server) updateLesson(c *gin.Context) {
	if _, ok := domain.ParseID(c.Param("id")); !ok {
		s.fail(c, service.ErrInvalidID)
		return
	}
	var req service.LessonUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, service.ErrInvalidJSON)
		return
	}
	l, err := s.lessons.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

type orderCreatedResponse struct {
	InsertedID primitive.ObjectID `json:"insertedId"`
	*domain.Order
}

// @Summary Create order
// @Tags orders
// @Accept json
// @Produce json
// @Param input body service.OrderPayload true "Itemized (items) or batch (lessonIDs + space) order"
// @Success 201 {object} orderCreatedResponse
// @Failure 400 {object} map[string]string
// @Router /orders [post]
func (s *Server) createOrder(c *gin.Context) {
	var req service.OrderPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, service.ErrInvalidJSON)
		return
	}
	o, err := s.orders.CreateOrder(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderCreatedResponse{InsertedID: o.ID, Order: o})
}
