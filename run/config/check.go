package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/mcmcrun/run/parfile"
)

// Warning flags a combination of values that parses but is unlikely to be
// what the run intends.
type Warning struct {
	Key     string
	Message string
}

func (w Warning) String() string {
	return w.Key + ": " + w.Message
}

// Path is a file reference taken from the record.
type Path struct {
	Key   string
	Value string
}

// Validate reports values no run can use.
func (c *Config) Validate() error {
	counts := []struct {
		key   string
		value int
	}{
		{"chainlen", c.ChainLen},
		{"npoints_sim", c.NPointsSim},
		{"nboots", c.NBoots},
		{"minimizer_maxiter", c.MinimizerMaxIter},
	}
	for _, count := range counts {
		if count.value < 0 {
			return &FieldError{Key: count.key, Value: fmt.Sprint(count.value), Err: fmt.Errorf("%w: must not be negative", ErrInvalidValue)}
		}
	}
	if c.ChainLen == 0 {
		return &FieldError{Key: "chainlen", Value: "0", Err: fmt.Errorf("%w: chain must have at least one step", ErrInvalidValue)}
	}
	for _, p := range c.Paths() {
		if err := parfile.CheckEntry(p.Key, p.Value); err != nil {
			return &FieldError{Key: p.Key, Value: p.Value, Err: fmt.Errorf("%w: %w", ErrInvalidValue, err)}
		}
	}
	return nil
}

// Warnings lists the cross-field relations the file format leaves unchecked.
func (c *Config) Warnings() []Warning {
	var out []Warning
	add := func(key, format string, args ...interface{}) {
		out = append(out, Warning{Key: key, Message: fmt.Sprintf(format, args...)})
	}
	if c.Simulating {
		if c.NPointsSim == 0 {
			add("npoints_sim", "simulating is True but no points will be simulated")
		}
		if c.ParfileSim == nil {
			add("parfile_sim", "simulating is True but no simulation parameters are given")
		}
	} else {
		if c.PathObs == "" {
			add("path_obs", "required when not simulating")
		}
		if c.PathTarg == "" {
			add("path_targ", "required when not simulating")
		}
	}
	if c.ParfileGuess == "" {
		add("parfile_guess", "no initial guess parameters given")
	}
	if c.DoBootsPoly && c.NBoots == 0 {
		add("nboots", "doboots_poly is True but nboots is 0")
	}
	if c.BootsIgnoreWeights && !c.DoBootsPoly {
		add("boots_ignoreweights", "has no effect without doboots_poly")
	}
	if c.IgnoreTruth && c.PathTruth == nil {
		add("ignoretruth", "has no effect without path_truth")
	}
	for _, p := range c.Paths() {
		if looksCommented(p.Value) {
			add(p.Key, "value %q looks like it carries a same-line comment", p.Value)
		}
	}
	return out
}

func looksCommented(value string) bool {
	for _, marker := range []string{" #", "\t#", " ;", "\t;"} {
		if strings.Contains(value, marker) {
			return true
		}
	}
	return false
}

// Paths returns the path fields that are set, in declaration order.  Absent
// optional paths are omitted.
func (c *Config) Paths() []Path {
	var out []Path
	add := func(key, value string) {
		if value != "" {
			out = append(out, Path{Key: key, Value: value})
		}
	}
	addOptional := func(key string, value *string) {
		if value != nil {
			add(key, *value)
		}
	}
	addOptional("parfile_sim", c.ParfileSim)
	add("parfile_guess", c.ParfileGuess)
	addOptional("pathprior", c.PathPrior)
	addOptional("pathjitter", c.PathJitter)
	add("path_obs", c.PathObs)
	add("path_targ", c.PathTarg)
	addOptional("path_truth", c.PathTruth)
	return out
}

// Resolve returns a copy of c with relative paths joined onto baseURL, the
// location of the directory holding the parameter file.
func (c *Config) Resolve(baseURL string) *Config {
	clone := c.Clone()
	if baseURL == "" {
		return clone
	}
	join := func(p string) string {
		if p == "" || isAbsolute(p) {
			return p
		}
		return url.Join(baseURL, p)
	}
	clone.ParfileGuess = join(clone.ParfileGuess)
	clone.PathObs = join(clone.PathObs)
	clone.PathTarg = join(clone.PathTarg)
	for _, p := range []*string{clone.ParfileSim, clone.PathPrior, clone.PathJitter, clone.PathTruth} {
		if p != nil {
			*p = join(*p)
		}
	}
	return clone
}

// BaseURL returns the parent location of a parameter file URL.  A relative
// local path is taken from the working directory.
func BaseURL(parfileURL string) string {
	if !strings.Contains(parfileURL, "://") && !filepath.IsAbs(parfileURL) {
		if abs, err := filepath.Abs(parfileURL); err == nil {
			parfileURL = abs
		}
	}
	parent, _ := url.Split(parfileURL, file.Scheme)
	return parent
}

func isAbsolute(p string) bool {
	return filepath.IsAbs(p) || strings.Contains(p, "://")
}
