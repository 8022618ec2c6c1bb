package server

// Server defines the lifecycle contract of the application server.
//
// Implementations block in [RunServer] until shutdown is requested and
// release resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until the process
	// receives SIGTERM, SIGINT or SIGQUIT.
	RunServer()

	// Shutdown gracefully stops the server.
	Shutdown()
}
