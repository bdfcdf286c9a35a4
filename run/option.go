package run

import (
	"time"

	"github.com/viant/afs"
	"go.uber.org/zap"
)

// Option modifies a service instance before it is used.
type Option func(*Service)

// WithFS sets the storage service used for every read and existence check.
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithLogger replaces the service logger.  The service level then only
// affects loggers the service builds itself.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithDebounce sets how long Watch waits for writes to settle.
func WithDebounce(d time.Duration) Option {
	return func(s *Service) {
		s.debounce = d
	}
}

// WithLoggerConfig sets the config New builds its logger from.  The config
// level becomes the service level.
func WithLoggerConfig(cfg zap.Config) Option {
	return func(s *Service) {
		s.loggerConfig = &cfg
	}
}
