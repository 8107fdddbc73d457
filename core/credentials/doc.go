// Package credentials wraps remote calls with a bearer credential.
//
// The remote authority authenticates every request with a bearer token. The Wrapper
// fetches the token from an oauth2.TokenSource, hands it to the call, and on an
// ErrUnauthorized result refreshes the credential exactly once and retries the call
// exactly once. No other retrying happens here.
package credentials
