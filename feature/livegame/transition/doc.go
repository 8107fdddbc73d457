// Package transition moves a live game between points.
//
// Operations validate a transition against the stored game and delegate it to the
// Backend chosen for the game's mode: LocalBackend mutates the local store only,
// RemoteBackend asks the remote authority first and stores its answer. A failed remote
// call returns before any local transaction starts.
package transition
