// Package sync reconciles a live game with the remote authority at its boundaries.
//
// ReenterGame resumes a game in progress and reports where the wizard should pick up.
// PushOfflineGame uploads a game recorded entirely offline as one payload and, once
// accepted, removes it from the local store. Nothing here runs in the background;
// every call is triggered by the user.
package sync
