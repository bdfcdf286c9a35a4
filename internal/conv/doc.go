// Package conv holds small generic helpers for optional values.
package conv
