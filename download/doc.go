// Package download retrieves result artifacts for a completed job and
// hands them to a Saver.
//
// Each download is independent and re-entrant: a failure in one does
// not affect others, and concurrent downloads are allowed. The Saver
// abstracts where bytes end up, so the same manager works for a CLI
// writing files and for tests capturing saves in memory.
package download
