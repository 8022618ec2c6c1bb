// Package server runs the application's HTTP server.
//
// It owns the server lifecycle: listening, signal handling and graceful
// shutdown that lets in-flight requests finish.
package server
