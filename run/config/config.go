package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/viant/mcmcrun/internal/conv"
	"github.com/viant/mcmcrun/run/parfile"
	"gopkg.in/yaml.v3"
)

// SectionName is the section holding the run parameters.
const SectionName = "MCMCrun"

var (
	ErrMissingSection = errors.New("missing [" + SectionName + "] section")
	ErrInvalidValue   = errors.New("invalid value")
)

// Config is the typed [MCMCrun] record.  Optional paths are nil when the file
// leaves them blank.
type Config struct {
	ParfileSim   *string `parfile:"parfile_sim" yaml:"parfile_sim,omitempty" json:"parfile_sim,omitempty"`
	ParfileGuess string  `parfile:"parfile_guess" yaml:"parfile_guess" json:"parfile_guess"`
	PathPrior    *string `parfile:"pathprior" yaml:"pathprior,omitempty" json:"pathprior,omitempty"`
	PathJitter   *string `parfile:"pathjitter" yaml:"pathjitter,omitempty" json:"pathjitter,omitempty"`
	PathObs      string  `parfile:"path_obs" yaml:"path_obs" json:"path_obs"`
	PathTarg     string  `parfile:"path_targ" yaml:"path_targ" json:"path_targ"`
	PathTruth    *string `parfile:"path_truth" yaml:"path_truth,omitempty" json:"path_truth,omitempty"`

	IgnoreTruth        bool `parfile:"ignoretruth" yaml:"ignoretruth" json:"ignoretruth"`
	DoBootsPoly        bool `parfile:"doboots_poly" yaml:"doboots_poly" json:"doboots_poly"`
	LsqUnctyTrick      bool `parfile:"lsq_uncty_trick" yaml:"lsq_uncty_trick" json:"lsq_uncty_trick"`
	BootsIgnoreWeights bool `parfile:"boots_ignoreweights" yaml:"boots_ignoreweights" json:"boots_ignoreweights"`
	Simulating         bool `parfile:"simulating" yaml:"simulating" json:"simulating"`
	Verbose            bool `parfile:"Verbose" yaml:"verbose" json:"verbose"`

	ChainLen         int `parfile:"chainlen" yaml:"chainlen" json:"chainlen"`
	NPointsSim       int `parfile:"npoints_sim" yaml:"npoints_sim" json:"npoints_sim"`
	NBoots           int `parfile:"nboots" yaml:"nboots" json:"nboots"`
	MinimizerMaxIter int `parfile:"minimizer_maxiter" yaml:"minimizer_maxiter" json:"minimizer_maxiter"`
}

// Defaults returns the values used for keys that are absent or blank.
func Defaults() *Config {
	return &Config{
		ChainLen:         40000,
		NBoots:           10000,
		MinimizerMaxIter: 5000,
	}
}

// FieldError reports a value that could not be coerced to its field type.
type FieldError struct {
	Key   string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s = %q: %v", e.Key, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Keys lists the recognised keys in declaration order.
func Keys() []string {
	t := reflect.TypeOf(Config{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if key := t.Field(i).Tag.Get("parfile"); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// IsKnown reports whether key (case-insensitive) maps to a Config field.
func IsKnown(key string) bool {
	for _, k := range Keys() {
		if strings.EqualFold(k, strings.TrimSpace(key)) {
			return true
		}
	}
	return false
}

// Parse reads parameter-file bytes into a Config.
func Parse(data []byte) (*Config, error) {
	doc, err := parfile.Parse(data)
	if err != nil {
		return nil, err
	}
	return Decode(doc)
}

// Decode builds a Config from the [MCMCrun] section of doc.  Unknown keys are
// ignored; see UnknownKeys.
func Decode(doc *parfile.Document) (*Config, error) {
	section := doc.Section(SectionName)
	if section == nil {
		return nil, ErrMissingSection
	}
	cfg := Defaults()
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get("parfile")
		if key == "" {
			continue
		}
		raw, ok := section.Get(key)
		if !ok || raw == "" {
			continue
		}
		if err := setField(v.Field(i), raw); err != nil {
			return nil, &FieldError{Key: key, Value: raw, Err: err}
		}
	}
	return cfg, nil
}

func setField(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Pointer:
		field.Set(reflect.ValueOf(conv.Pointer(raw)))
	case reflect.Bool:
		b, err := ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: not an integer", ErrInvalidValue)
		}
		if n < 0 {
			return fmt.Errorf("%w: must not be negative", ErrInvalidValue)
		}
		field.SetInt(int64(n))
	default:
		return fmt.Errorf("unsupported field kind %v", field.Kind())
	}
	return nil
}

// ParseBool accepts True/False as written by the pipeline, plus the
// 1/yes/on and 0/no/off spellings, in any case.
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("%w: not a boolean", ErrInvalidValue)
}

// FormatBool renders b the way the pipeline writes it.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// UnknownKeys returns keys of the [MCMCrun] section that do not map to a
// Config field, in file order.
func UnknownKeys(doc *parfile.Document) []string {
	section := doc.Section(SectionName)
	if section == nil {
		return nil
	}
	var unknown []string
	for _, key := range section.Keys() {
		if !IsKnown(key) {
			unknown = append(unknown, key)
		}
	}
	return unknown
}

// Document renders c as a single-section parameter document.
func (c *Config) Document() (*parfile.Document, error) {
	doc := &parfile.Document{}
	if err := c.Apply(doc.AddSection(SectionName)); err != nil {
		return nil, err
	}
	return doc, nil
}

// Apply writes every field of c into section, keeping entries it does not own.
func (c *Config) Apply(section *parfile.Section) error {
	v := reflect.ValueOf(c).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get("parfile")
		if key == "" {
			continue
		}
		value := formatField(v.Field(i))
		if err := section.Set(key, value); err != nil {
			return &FieldError{Key: key, Value: value, Err: err}
		}
	}
	return nil
}

func formatField(field reflect.Value) string {
	switch field.Kind() {
	case reflect.String:
		return field.String()
	case reflect.Pointer:
		return conv.Dereference(field.Interface().(*string))
	case reflect.Bool:
		return FormatBool(field.Bool())
	case reflect.Int:
		return strconv.FormatInt(field.Int(), 10)
	}
	return ""
}

// Marshal encodes c in parameter-file syntax.
func (c *Config) Marshal() ([]byte, error) {
	doc, err := c.Document()
	if err != nil {
		return nil, err
	}
	return doc.Bytes(), nil
}

// ToYAML encodes c as YAML.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// FromYAML decodes a YAML rendition of the record on top of Defaults.
func FromYAML(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode yaml: %w", err)
	}
	for _, p := range []**string{&cfg.ParfileSim, &cfg.PathPrior, &cfg.PathJitter, &cfg.PathTruth} {
		if *p != nil && **p == "" {
			*p = nil
		}
	}
	return cfg, nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	clone := *c
	for _, p := range []**string{&clone.ParfileSim, &clone.PathPrior, &clone.PathJitter, &clone.PathTruth} {
		if *p != nil {
			*p = conv.Pointer(**p)
		}
	}
	return &clone
}
