// Package handler is the HTTP layer between the router and the services.
//
// Every endpoint is a typed function registered through Handle or
// HandleNoContent, which bind the path, query and body into a fresh request
// value, run its tag validation, call the function and write the result.
// Business rules and their error kinds live in the service package; errors
// are returned as-is and rendered by the global error handler.
package handler
