// Package config loads the service configuration from the environment
package config

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// Config is the configuration of the edl service and tools
type Config struct {
	Server Server `ignored:"true"`
	Log    Log    `ignored:"true"`
	Redis  Redis  `ignored:"true"`
	Sentry Sentry `ignored:"true"`

	// FrameRate is used for timecodes in event lines
	FrameRate float64 `envconfig:"EDL_FRAME_RATE" default:"29.97"`

	// AWSRegion is the region of s3:// sources
	AWSRegion string `envconfig:"AWS_REGION" default:"us-east-1"`

	// SourceBuckets lists the S3 buckets the service may read lists
	// from. When empty the service accepts no sources.
	SourceBuckets []string `envconfig:"EDL_SOURCE_BUCKETS"`
}

// Server configures the HTTP listener
type Server struct {
	Addr       string `envconfig:"HTTP_ADDR" default:":8080"`
	MaxBodyLen int64  `envconfig:"HTTP_MAX_BODY_LEN" default:"1048576"`
}

// Log configures the logrus logger
type Log struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// Redis configures the edit list store
type Redis struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	DB       int           `envconfig:"REDIS_DB"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	TTL      time.Duration `envconfig:"REDIS_TTL"`
}

// Sentry configures exception reporting; an empty DSN disables it
type Sentry struct {
	DSN string `envconfig:"SENTRY_DSN"`
	Env string `envconfig:"ENV" default:"dev"`
}

// LoadConfig reads the configuration from the environment. Each section
// is processed on its own so its variables carry no section prefix.
func LoadConfig() (*Config, error) {
	var cfg Config
	for _, spec := range []interface{}{&cfg, &cfg.Server, &cfg.Log, &cfg.Redis, &cfg.Sentry} {
		if err := envconfig.Process("", spec); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// Logger builds the logger described by l
func (l Log) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.Out = os.Stderr
	logger.Level = level
	if l.Format == "text" {
		logger.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	} else {
		logger.Formatter = &logrus.JSONFormatter{}
	}
	return logger, nil
}
