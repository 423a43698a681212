// Package jobs contains background processors started alongside the
// HTTP server. Each job owns a ticker goroutine with Start/Stop
// lifecycle methods and is shut down before the server exits.
package jobs
