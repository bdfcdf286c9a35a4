package cmd

import (
	"context"
	"encoding/json"
	"fmt"
)

// ShowCmd prints the typed record, as a parameter file by default.
type ShowCmd struct {
	JSON     bool `long:"json" description:"print as JSON"`
	YAML     bool `long:"yaml" description:"print as YAML"`
	Resolved bool `short:"r" long:"resolved" description:"show paths joined onto the file location"`
}

func (c *ShowCmd) Execute(_ []string) error {
	if c.JSON && c.YAML {
		return fmt.Errorf("--json and --yaml are mutually exclusive")
	}
	_, loaded, err := loadParfile(context.Background())
	if err != nil {
		return err
	}
	cfg := loaded.Config
	if c.Resolved {
		cfg = loaded.Resolved
	}
	var data []byte
	switch {
	case c.JSON:
		if data, err = json.MarshalIndent(cfg, "", "  "); err == nil {
			data = append(data, '\n')
		}
	case c.YAML:
		data, err = cfg.ToYAML()
	default:
		data, err = cfg.Marshal()
	}
	if err != nil {
		return err
	}
	_, err = stdout.Write(data)
	return err
}
