package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/haxsysgit/coursework-backend/internal/config"
)

// New создаёт logger по конфигурации; неизвестный уровень заменяется на info
func New(cfg config.Log, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stdout
	}
	logger := logrus.New()
	logger.SetOutput(out)
	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
