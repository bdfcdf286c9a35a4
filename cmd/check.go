package cmd

import (
	"context"
	"fmt"

	"github.com/viant/mcmcrun/run"
)

// CheckCmd loads one or more parameter files and reports ignored keys,
// warnings and the status of every referenced path.
type CheckCmd struct {
	NoPaths bool `long:"no-paths" description:"skip the existence check of referenced files"`
}

func (c *CheckCmd) Execute(args []string) error {
	URLs := args
	if len(URLs) == 0 {
		if parfilePath == "" {
			return errNoParfile
		}
		URLs = []string{parfilePath}
	}
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	ctx := context.Background()
	result, err := svc.LoadAll(ctx, URLs...)
	for _, loaded := range result {
		if loaded != nil {
			c.report(ctx, svc, loaded)
		}
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	return nil
}

func (c *CheckCmd) report(ctx context.Context, svc *run.Service, loaded *run.Loaded) {
	fmt.Fprintf(stdout, "%s: ok (%s)\n", loaded.URL, loaded.ID)
	for _, key := range loaded.Unknown {
		fmt.Fprintf(stdout, "  ignored key: %s\n", key)
	}
	for _, w := range loaded.Warnings {
		fmt.Fprintf(stdout, "  warning: %s\n", w)
	}
	if c.NoPaths {
		return
	}
	for _, status := range svc.CheckPaths(ctx, loaded) {
		state := "ok"
		switch {
		case status.Err != nil:
			state = "error: " + status.Err.Error()
		case !status.Exists:
			state = "missing"
		}
		fmt.Fprintf(stdout, "  %-14s %s (%s)\n", status.Key, status.URL, state)
	}
}
