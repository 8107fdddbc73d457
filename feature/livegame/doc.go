// Package livegame exposes live game recording over the local HTTP API.
//
// The Service keeps one wizard per game and side and routes every request through it,
// so transitions are gated exactly as they are for any other caller. Errors are
// answered with the fixed user-facing message of the underlying apperror and a
// status derived from its kind.
//
// # Routes
//
//	POST   /games/:id/reenter        resume a game
//	GET    /games/:id/wizard         current state, point and actions
//	POST   /games/:id/points/first   start the game
//	PUT    /games/:id/players        commit the players for the point
//	PUT    /games/:id/pulling        change the pulling team
//	POST   /games/:id/actions        record an action
//	DELETE /games/:id/actions/last   undo the last action
//	POST   /games/:id/points/next    advance a scored point
//	POST   /games/:id/points/back    step back
//	POST   /games/:id/finish         finish the game
//	POST   /games/:id/push           upload an offline game (?dry_run=true to preview)
//
// Every route accepts ?team=one|two; the configured tracker team is the default.
package livegame
