// Package server wires and runs the application's transport servers.
//
// It owns the HTTP server lifecycle: startup, signal handling and graceful
// shutdown that lets in-flight requests finish.
package server
