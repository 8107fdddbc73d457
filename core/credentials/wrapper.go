package credentials

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// ErrUnauthorized is returned by a wrapped call when the remote authority rejected
// the bearer credential.
var ErrUnauthorized = errors.New("unauthorized")

// Wrapper attaches a bearer credential to remote calls. When a call fails with
// ErrUnauthorized the credential is refreshed once and the call retried once.
type Wrapper struct {
	mu     sync.Mutex
	base   oauth2.TokenSource
	source oauth2.TokenSource
	logger *zap.Logger
}

// NewWrapper creates a wrapper seeded with initial (may be nil). base mints a fresh
// token every time it is asked.
func NewWrapper(initial *oauth2.Token, base oauth2.TokenSource, logger *zap.Logger) *Wrapper {
	return &Wrapper{
		base:   base,
		source: oauth2.ReuseTokenSource(initial, base),
		logger: logger,
	}
}

// FromConfig builds a wrapper from configuration. With a token URL and refresh
// token, refreshes go through the OAuth2 refresh grant; otherwise the access token
// is static.
func FromConfig(ctx context.Context, cfg Config, logger *zap.Logger) *Wrapper {
	initial := &oauth2.Token{AccessToken: cfg.AccessToken, TokenType: "Bearer"}
	if cfg.AccessToken == "" {
		initial = nil
	}

	if cfg.TokenURL == "" || cfg.RefreshToken == "" {
		return NewWrapper(initial, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken}), logger)
	}

	refresher := &refreshSource{
		ctx: ctx,
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: cfg.TokenURL},
		},
		refreshToken: cfg.RefreshToken,
	}
	return NewWrapper(initial, refresher, logger)
}

// Call runs fn with the current access token.
func (w *Wrapper) Call(ctx context.Context, fn func(ctx context.Context, token string) error) error {
	tok, err := w.token()
	if err != nil {
		return err
	}

	err = fn(ctx, tok)
	if !errors.Is(err, ErrUnauthorized) {
		return err
	}

	w.logger.Info("Credential rejected, refreshing")
	w.refresh()

	tok, err = w.token()
	if err != nil {
		return err
	}
	return fn(ctx, tok)
}

func (w *Wrapper) token() (string, error) {
	w.mu.Lock()
	src := w.source
	w.mu.Unlock()

	tok, err := src.Token()
	if err != nil {
		return "", fmt.Errorf("failed to obtain credential: %w", err)
	}
	return tok.AccessToken, nil
}

func (w *Wrapper) refresh() {
	w.mu.Lock()
	w.source = oauth2.ReuseTokenSource(nil, w.base)
	w.mu.Unlock()
}

// refreshSource runs the refresh grant on every Token call and keeps the rotated
// refresh token.
type refreshSource struct {
	mu           sync.Mutex
	ctx          context.Context
	conf         *oauth2.Config
	refreshToken string
}

func (r *refreshSource) Token() (*oauth2.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tok, err := r.conf.TokenSource(r.ctx, &oauth2.Token{RefreshToken: r.refreshToken}).Token()
	if err != nil {
		return nil, err
	}
	if tok.RefreshToken != "" {
		r.refreshToken = tok.RefreshToken
	}
	return tok, nil
}
