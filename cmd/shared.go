package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/viant/mcmcrun/run"
	"go.uber.org/zap"
)

var errNoParfile = errors.New("a parameter file must be given via -f/--parfile")

var (
	parfilePath string
	options     *Options

	stdout io.Writer = os.Stdout

	svcOnce sync.Once
	svcInst *run.Service
	svcErr  error
)

func setParfilePath(p string) { parfilePath = p }

func setOptions(o *Options) { options = o }

// serviceSingleton initialises the run service only once per CLI invocation.
func serviceSingleton() (*run.Service, error) {
	svcOnce.Do(func() {
		cfg := zap.NewProductionConfig()
		if options != nil && options.Debug {
			cfg = zap.NewDevelopmentConfig()
		}
		svcInst, svcErr = run.New(run.WithLoggerConfig(cfg))
	})
	return svcInst, svcErr
}

// loadParfile loads the -f/--parfile file through the service singleton.
func loadParfile(ctx context.Context) (*run.Service, *run.Loaded, error) {
	if parfilePath == "" {
		return nil, nil, errNoParfile
	}
	svc, err := serviceSingleton()
	if err != nil {
		return nil, nil, err
	}
	loaded, err := svc.Load(ctx, parfilePath)
	if err != nil {
		return nil, nil, err
	}
	if debug := os.Getenv("MCMCRUN_DEBUG_CONFIG"); debug == "1" {
		_ = json.NewEncoder(os.Stderr).Encode(loaded.Config)
	}
	return svc, loaded, nil
}
