package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/haxsysgit/coursework-backend/internal/config"
	httpapi "github.com/haxsysgit/coursework-backend/internal/http"
	"github.com/haxsysgit/coursework-backend/internal/metrics"
	"github.com/haxsysgit/coursework-backend/internal/repository"
	"github.com/haxsysgit/coursework-backend/internal/service"
	"github.com/haxsysgit/coursework-backend/internal/version"
)

// App владеет хранилищем и HTTP-сервером одного процесса
type App struct {
	cfg    config.Config
	logger *log.Entry
	store  repository.Store
	server *http.Server

	closeOnce sync.Once
	closeErr  error
}

// New собирает зависимости. Подключение к MongoDB откладывается до первого запроса.
func New(cfg config.Config, logger *log.Logger) (*App, error) {
	entry := logger.WithField("component", "app")
	store, err := newStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	srv := httpapi.NewServer(
		service.NewLessonService(store),
		service.NewOrderService(store, m),
		httpapi.Options{
			Logger:    logger.WithField("component", "http"),
			Metrics:   m,
			DB:        store,
			Pipeline:  cfg.Pipeline,
			ImagesDir: cfg.Static.ImagesDir,
			Version:   version.Version(),
		},
	)

	return &App{
		cfg:    cfg,
		logger: entry,
		store:  store,
		server: &http.Server{
			Addr:         cfg.HTTP.Addr,
			Handler:      srv.Engine(),
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		},
	}, nil
}

func newStore(cfg config.Config, logger *log.Logger) (repository.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return repository.NewMemoryStore(), nil
	case config.DriverMongo:
		return repository.NewMongoStore(repository.MongoConfig{
			URI:            cfg.Mongo.URI,
			Database:       cfg.Mongo.Database,
			ConnectTimeout: cfg.Mongo.ConnectTimeout,
		}, logger.WithField("component", "mongo")), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func (a *App) Handler() http.Handler { return a.server.Handler }

// Serve обслуживает lis до отмены ctx, затем дожидается текущих ответов
// в пределах ShutdownTimeout и закрывает хранилище.
func (a *App) Serve(ctx context.Context, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.WithField("addr", lis.Addr().String()).Info("HTTP server listening")
		errCh <- a.server.Serve(lis)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received, draining HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.logger.WithError(err).Warn("graceful shutdown timed out, closing connections")
			_ = a.server.Close()
		}
		<-errCh
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("http server: %w", err)
		}
	}

	if err := a.Close(context.Background()); err != nil {
		a.logger.WithError(err).Error("closing storage")
		if serveErr == nil {
			serveErr = err
		}
	}
	return serveErr
}

// Close закрывает хранилище ровно один раз
func (a *App) Close(ctx context.Context) error {
	a.closeOnce.Do(func() {
		closeCtx, cancel := context.WithTimeout(ctx, a.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		a.closeErr = a.store.Close(closeCtx)
	})
	return a.closeErr
}

// Run слушает cfg.HTTP.Addr и блокируется до отмены ctx
func Run(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	a, err := New(cfg, logger)
	if err != nil {
		return err
	}
	lis, err := net.Listen("tcp", cfg.HTTP.Addr)
	if err != nil {
		_ = a.Close(ctx)
		return fmt.Errorf("listen %s: %w", cfg.HTTP.Addr, err)
	}
	return a.Serve(ctx, lis)
}
