package cli

import (
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/haxsysgit/coursework-backend/internal/app"
	"github.com/haxsysgit/coursework-backend/internal/config"
	"github.com/haxsysgit/coursework-backend/internal/logging"
	"github.com/haxsysgit/coursework-backend/internal/version"
)

type serveFlags struct {
	configPath string
	storage    string
	addr       string
}

func newServeCmd() *cobra.Command {
	var f serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Example: `  lessons-api serve --config config.yaml
  lessons-api serve --storage memory --addr :8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}
			logger := logging.New(cfg.Log, cmd.ErrOrStderr())
			logger.WithField("version", version.String()).
				WithField("storage", cfg.Storage.Driver).
				Info("starting lessons-api")

			gin.SetMode(gin.ReleaseMode)
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx, cfg, logger)
		},
	}
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "path to YAML config file")
	cmd.Flags().StringVar(&f.storage, "storage", "", "storage driver override: mongo or memory")
	cmd.Flags().StringVar(&f.addr, "addr", "", "listen address override, e.g. :3000")
	return cmd
}

// loadConfig применяет флаги поверх файла и окружения
func loadConfig(f serveFlags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if f.storage != "" {
		cfg.Storage.Driver = f.storage
	}
	if f.addr != "" {
		cfg.HTTP.Addr = f.addr
	}
	return cfg, cfg.Validate()
}
