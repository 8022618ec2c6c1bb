// Package http implements the HTTP transport layer of the feedback site.
//
// It exposes route wiring, request handlers, server-rendered pages and the
// middleware used by them. Request tracing, access logging, response
// compression, session identity and CSRF checks are handled in this package
// before requests are delegated to the service layer.
package http
