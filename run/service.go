package run

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/viant/afs"
	"github.com/viant/mcmcrun/internal/syncmap"
	"github.com/viant/mcmcrun/run/config"
	"github.com/viant/mcmcrun/run/parfile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

// Loaded is one parsed and validated parameter file.
type Loaded struct {
	URL    string
	ID     uuid.UUID
	Format config.Format
	// Config holds the values as written.
	Config *config.Config
	// Resolved has relative paths joined onto the file location.
	Resolved *config.Config
	Unknown  []string
	Warnings []config.Warning
}

// PathStatus reports whether a referenced file exists.
type PathStatus struct {
	Key    string
	Value  string
	URL    string
	Exists bool
	Err    error
}

// Service loads parameter files and caches them by URL.
type Service struct {
	fs           afs.Service
	logger       *zap.Logger
	level        zap.AtomicLevel
	loggerConfig *zap.Config
	baseLevel    zapcore.Level
	cache        *syncmap.Map[*Loaded]
	debounce     time.Duration
}

// New creates a service.  Without WithLogger it builds a logger from
// WithLoggerConfig, or a production config at info level.  Loading a file
// with Verbose = True lowers the level to debug; any other file restores it.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		level:    zap.NewAtomicLevelAt(zapcore.InfoLevel),
		cache:    syncmap.New[*Loaded](),
		debounce: 300 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.logger == nil {
		cfg := zap.NewProductionConfig()
		cfg.Level = s.level
		if s.loggerConfig != nil {
			cfg = *s.loggerConfig
			s.level = cfg.Level
		}
		logger, err := cfg.Build()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		s.logger = logger
	}
	s.baseLevel = s.level.Level()
	return s, nil
}

// FS returns the storage service.
func (s *Service) FS() afs.Service { return s.fs }

// Logger returns the service logger.
func (s *Service) Logger() *zap.Logger { return s.logger }

// Level returns the level of the logger built by New.
func (s *Service) Level() zap.AtomicLevel { return s.level }

// Load reads, parses, validates and caches the file at URL.  A later Load of
// the same URL reads the file again and replaces the cached entry.  The log
// level follows the file's Verbose key.
func (s *Service) Load(ctx context.Context, URL string) (*Loaded, error) {
	loaded, err := s.load(ctx, URL)
	if err != nil {
		return nil, err
	}
	s.followVerbose(loaded)
	return loaded, nil
}

// followVerbose lowers the level to debug when any of loaded is verbose and
// restores the base level otherwise.
func (s *Service) followVerbose(loaded ...*Loaded) {
	level := s.baseLevel
	for _, l := range loaded {
		if l != nil && l.Config.Verbose {
			level = zapcore.DebugLevel
		}
	}
	s.level.SetLevel(level)
}

func (s *Service) load(ctx context.Context, URL string) (*Loaded, error) {
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameter file %q: %w", URL, err)
	}
	loaded, err := decode(URL, data)
	if err != nil {
		s.logger.Debug("parameter file rejected", zap.String("url", URL), zap.Error(err))
		return nil, err
	}
	s.cache.Set(URL, loaded)
	s.logger.Info("loaded parameter file",
		zap.String("url", URL),
		zap.Stringer("id", loaded.ID),
		zap.Bool("simulating", loaded.Config.Simulating),
		zap.Int("warnings", len(loaded.Warnings)),
	)
	for _, key := range loaded.Unknown {
		s.logger.Debug("ignored key", zap.String("url", URL), zap.String("key", key))
	}
	for _, w := range loaded.Warnings {
		s.logger.Debug("check", zap.String("url", URL), zap.String("key", w.Key), zap.String("message", w.Message))
	}
	return loaded, nil
}

func decode(URL string, data []byte) (*Loaded, error) {
	loaded := &Loaded{URL: URL, ID: uuid.New(), Format: config.FormatOf(URL)}
	var err error
	switch loaded.Format {
	case config.FormatYAML:
		loaded.Config, err = config.FromYAML(data)
	default:
		var doc *parfile.Document
		if doc, err = parfile.Parse(data); err == nil {
			loaded.Config, err = config.Decode(doc)
			loaded.Unknown = config.UnknownKeys(doc)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse parameter file %q: %w", URL, err)
	}
	if err = loaded.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameter file %q: %w", URL, err)
	}
	loaded.Resolved = loaded.Config.Resolve(config.BaseURL(URL))
	loaded.Warnings = loaded.Config.Warnings()
	return loaded, nil
}

// LoadAll loads every URL concurrently.  The result keeps input order and has
// a nil entry for each file that failed; the error joins all failures.  The
// log level is set once all loads finish: debug if any file is verbose.
func (s *Service) LoadAll(ctx context.Context, URLs ...string) ([]*Loaded, error) {
	result := make([]*Loaded, len(URLs))
	errs := make([]error, len(URLs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, URL := range URLs {
		g.Go(func() error {
			result[i], errs[i] = s.load(gctx, URL)
			return nil
		})
	}
	_ = g.Wait()
	s.followVerbose(result...)
	return result, errors.Join(errs...)
}

// Cached returns the last successful load of URL.
func (s *Service) Cached(URL string) (*Loaded, bool) {
	return s.cache.Get(URL)
}

// CachedURLs lists the cached URLs in sorted order.
func (s *Service) CachedURLs() []string {
	return s.cache.Keys()
}

// Forget drops URL from the cache.
func (s *Service) Forget(URL string) {
	s.cache.Delete(URL)
}

// CheckPaths reports, for every path set in loaded, whether it exists.
func (s *Service) CheckPaths(ctx context.Context, loaded *Loaded) []PathStatus {
	raw := loaded.Config.Paths()
	resolved := loaded.Resolved.Paths()
	out := make([]PathStatus, len(resolved))
	for i, p := range resolved {
		status := PathStatus{Key: p.Key, Value: raw[i].Value, URL: p.Value}
		status.Exists, status.Err = s.fs.Exists(ctx, p.Value)
		if !status.Exists {
			s.logger.Debug("missing path", zap.String("key", p.Key), zap.String("url", p.Value))
		}
		out[i] = status
	}
	return out
}
