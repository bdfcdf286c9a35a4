package config

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
)

// Format identifies an on-disk encoding of the record.
type Format string

const (
	FormatINI  Format = "ini"
	FormatYAML Format = "yaml"
)

// FormatOf infers the encoding from the URL extension.  Anything that is not
// .yaml/.yml is treated as a parameter file.
func FormatOf(URL string) Format {
	switch strings.ToLower(path.Ext(URL)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatINI
}

// Load reads the record at URL using the default afs service.
func Load(ctx context.Context, URL string) (*Config, error) {
	return LoadWith(ctx, afs.New(), URL)
}

// LoadWith reads the record at URL through fs.
func LoadWith(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameter file %q: %w", URL, err)
	}
	cfg, err := Unmarshal(data, FormatOf(URL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse parameter file %q: %w", URL, err)
	}
	return cfg, nil
}

// Unmarshal decodes data in the given format.
func Unmarshal(data []byte, format Format) (*Config, error) {
	if format == FormatYAML {
		return FromYAML(data)
	}
	return Parse(data)
}

// Encode renders c in the given format.
func (c *Config) Encode(format Format) ([]byte, error) {
	if format == FormatYAML {
		return c.ToYAML()
	}
	return c.Marshal()
}

// Save writes c to URL through fs, choosing the format from the extension.
func Save(ctx context.Context, fs afs.Service, URL string, c *Config) error {
	data, err := c.Encode(FormatOf(URL))
	if err != nil {
		return err
	}
	if err := fs.Upload(ctx, URL, 0o644, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %q: %w", URL, err)
	}
	return nil
}
