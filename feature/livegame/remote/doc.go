// Package remote is the client for the remote authority that owns online games.
//
// Every call is a JSON request made with a fiber client agent and wrapped by the
// credential wrapper, so a rejected bearer token is refreshed and the call retried
// once. Failures are returned as apperror network errors carrying a fixed message.
package remote
