// Package config maps the [MCMCrun] section of a parameter file onto a typed
// Config record, checks the relations between its fields and writes it back
// out, either in parameter-file syntax or as YAML.
package config
