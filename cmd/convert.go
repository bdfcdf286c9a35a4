package cmd

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/mcmcrun/run/config"
)

// ConvertCmd writes the loaded record to another location, optionally in
// another format.
type ConvertCmd struct {
	Output string `short:"o" long:"output" description:"destination URL" required:"yes"`
	Format string `long:"format" description:"output format; inferred from the destination extension when empty" choice:"ini" choice:"yaml"`
}

func (c *ConvertCmd) Execute(_ []string) error {
	ctx := context.Background()
	svc, loaded, err := loadParfile(ctx)
	if err != nil {
		return err
	}
	format := config.FormatOf(c.Output)
	if c.Format != "" {
		format = config.Format(c.Format)
	}
	data, err := loaded.Config.Encode(format)
	if err != nil {
		return err
	}
	if err := svc.FS().Upload(ctx, c.Output, 0o644, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %q: %w", c.Output, err)
	}
	fmt.Fprintf(stdout, "wrote %s (%s)\n", c.Output, format)
	return nil
}
