package cmd

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/mcmcrun/run/config"
	"github.com/viant/mcmcrun/run/parfile"
)

// SetCmd rewrites one key of a parameter file.  Other keys, ignored ones
// included, keep their order and values, and comment lines stay in place.
type SetCmd struct {
	Key    string `short:"k" long:"key" description:"key to set" required:"yes"`
	Value  string `short:"v" long:"value" description:"new value; empty leaves the key blank"`
	Output string `short:"o" long:"output" description:"destination URL; defaults to the parameter file itself"`
	Force  bool   `long:"force" description:"allow keys the run does not read"`
}

func (c *SetCmd) Execute(_ []string) error {
	if parfilePath == "" {
		return errNoParfile
	}
	if config.FormatOf(parfilePath) != config.FormatINI {
		return fmt.Errorf("set edits parameter files only; use convert for %q", parfilePath)
	}
	if !c.Force && !config.IsKnown(c.Key) {
		return fmt.Errorf("unknown key %q (use --force to set it anyway)", c.Key)
	}
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	ctx := context.Background()
	data, err := svc.FS().DownloadWithURL(ctx, parfilePath)
	if err != nil {
		return fmt.Errorf("failed to read parameter file %q: %w", parfilePath, err)
	}
	doc, err := parfile.Parse(data)
	if err != nil {
		return err
	}
	section := doc.Section(config.SectionName)
	if section == nil {
		return config.ErrMissingSection
	}
	if err := section.Set(c.Key, c.Value); err != nil {
		return err
	}

	cfg, err := config.Decode(doc)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	dest := c.Output
	if dest == "" {
		dest = parfilePath
	}
	if err := svc.FS().Upload(ctx, dest, 0o644, bytes.NewReader(doc.Bytes())); err != nil {
		return fmt.Errorf("failed to write %q: %w", dest, err)
	}
	svc.Forget(dest)
	fmt.Fprintf(stdout, "%s: %s = %s\n", dest, c.Key, c.Value)
	for _, w := range cfg.Warnings() {
		fmt.Fprintf(stdout, "  warning: %s\n", w)
	}
	return nil
}
