// Package parfile reads and writes the INI-style parameter files consumed by
// the fitting pipeline.  A file is a sequence of [Section] headers followed by
// key = value lines.  Values are kept as untyped strings; typing is left to
// the caller (see package config).
//
// Same-line comments are not recognised: everything after the first '=' or
// ':' is the value, so "chainlen = 100 # short" yields "100 # short".
package parfile
