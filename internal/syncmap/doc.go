// Package syncmap offers a small generic map keyed by string and guarded by a
// sync.RWMutex.  The run service uses it to cache parsed parameter files by
// URL.
package syncmap
