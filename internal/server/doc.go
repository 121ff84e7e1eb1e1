// Package server hosts the Fiber HTTP service that exposes the module
// resolution cache: request-id and access-log middleware, a JSON error
// handler, and the constructor that routes packages attach handlers to.
// Keep exports narrow and accept explicit dependencies.
package server
