// Package apperror defines the error taxonomy surfaced by the live game core.
//
// Every core operation catches the underlying failure and returns an *Error that
// carries a Kind and a fixed, user-facing message. The original cause stays
// reachable through errors.Is / errors.As for logging, but callers (the HTTP API,
// the CLI) only ever show Message.
//
// # Kinds
//
//   - Validation: a precondition was not met; nothing was mutated.
//   - NotFound: a referenced game, point or action does not exist locally.
//   - Network: the remote authority could not be reached or rejected the call.
//   - Internal: any other store or encoding failure.
//
// # Usage
//
//	if err != nil {
//	    return nil, apperror.Wrap("Unable to go to next point", err)
//	}
package apperror
