// Package server holds the configuration of the local tracker HTTP API.
//
// The cmd package starts the Fiber application; this package only defines where it
// listens and which API key protects it.
package server
