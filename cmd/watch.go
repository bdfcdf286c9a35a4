package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/viant/mcmcrun/run"
)

// WatchCmd re-checks the parameter file on every save until interrupted.
type WatchCmd struct{}

func (c *WatchCmd) Execute(_ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, loaded, err := loadParfile(ctx)
	if err != nil {
		return err
	}
	check := &CheckCmd{}
	check.report(ctx, svc, loaded)
	return svc.Watch(ctx, parfilePath, func(loaded *run.Loaded, err error) {
		if err != nil {
			fmt.Fprintf(stdout, "%s: %v\n", parfilePath, err)
			return
		}
		check.report(ctx, svc, loaded)
	})
}
