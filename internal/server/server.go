package server

import (
	"net/http"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, session resolution, panic recovery, etc.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers that own their routes.
// Implementations serve a fixed set of endpoints (static assets, OAuth callbacks).
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and serve the request tree.
type Router interface {
	// Use adds middleware to the router's middleware stack.
	Use(middleware ...Middleware)
	// Handle registers a handler for the specified method and path.
	Handle(method, path string, handler http.Handler)
	// HandleFunc registers an ordinary function for the specified method and path.
	HandleFunc(method, path string, handler func(http.ResponseWriter, *http.Request))
	// Handler registers a custom Handler implementation.
	Handler(handler Handler)
	// ServeHTTP implements http.Handler for the entire router.
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}
