// Package run loads MCMCrun parameter files and keeps them at hand for the
// command line.  A Service reads files through afs, so the same code serves
// local paths, mem:// fixtures and remote storage, caches what it loaded by
// URL, checks that referenced paths exist, and can watch a local file for
// edits.
package run
