package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"Stowed/internal/config"
)

type LogService struct {
	Log *logrus.Logger
}

func NewLogService(configuration *config.Configuration) LogService {
	return NewLogServiceFrom(configuration.Server.LogConfig)
}

func NewLogServiceFrom(cfg config.LogConfig) LogService {
	log := logrus.New()
	setLogOutputType(cfg, log)
	setLogLevel(cfg, log)
	setLogFormatter(cfg, log)
	return LogService{Log: log}
}

func setLogFormatter(cfg config.LogConfig, log *logrus.Logger) {
	switch cfg.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		log.SetFormatter(&logrus.TextFormatter{})
	}
}

func setLogLevel(cfg config.LogConfig, log *logrus.Logger) {
	switch strings.ToLower(cfg.Level) {
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	case "fatal":
		log.SetLevel(logrus.FatalLevel)
	case "panic":
		log.SetLevel(logrus.PanicLevel)
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	}
}

func setLogOutputType(cfg config.LogConfig, log *logrus.Logger) {
	switch cfg.Output {
	case "file":
		if cfg.LogPath == "" {
			println("file output requires logPath to be set")
			return
		}
		logFolder := strings.TrimRight(cfg.LogPath, "/")
		logName := fmt.Sprintf("%s-%s.log", "stowed", time.Now().Format("2006-01-02"))
		logPath := filepath.Join(logFolder, logName)
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal(err)
		}
		log.Out = file
	default:
		log.SetOutput(os.Stdout)
	}
}
