// Package cmd implements the sub-commands of the mcmcrun command-line
// interface.  Each file registers a single sub-command (check, show, convert,
// set, watch, simulate).  Plumbing shared between commands, such as building
// the run service, lives in shared.go.
package cmd
