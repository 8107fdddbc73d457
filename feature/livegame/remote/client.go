package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"game-tracker/core/apperror"
	"game-tracker/core/credentials"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// Client is the remote authority for online games.
type Client interface {
	NextPoint(ctx context.Context, req NextPointRequest) (*PointResponse, error)
	BackPoint(ctx context.Context, req BackPointRequest) (*PointWithActionsResponse, error)
	ReenterGame(ctx context.Context, req GameRequest) (*ReenterResponse, error)
	GameStats(ctx context.Context, gameID string) (*GameStats, error)
	FinishGame(ctx context.Context, req GameRequest) (*GameResponse, error)
	PushFullGame(ctx context.Context, payload FullGamePayload) (*GameResponse, error)
	SetPlayers(ctx context.Context, req SetPlayersRequest) (*PointResponse, error)
	SetPullingTeam(ctx context.Context, req SetPullingTeamRequest) (*PointResponse, error)
}

// StatusError is returned when the remote authority answers with a non-2xx status.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote returned status %d: %s", e.Status, e.Message)
}

// HTTPClient calls the remote authority over JSON/HTTP.
type HTTPClient struct {
	baseURL     string
	timeout     time.Duration
	http        *fiber.Client
	credentials *credentials.Wrapper
	logger      *zap.Logger
}

// NewHTTPClient creates a client for cfg whose calls carry the wrapper's credential.
func NewHTTPClient(cfg Config, creds *credentials.Wrapper, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		http: &fiber.Client{
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		},
		credentials: creds,
		logger:      logger,
	}
}

// NextPoint implements Client.
func (c *HTTPClient) NextPoint(ctx context.Context, req NextPointRequest) (*PointResponse, error) {
	var resp PointResponse
	if err := c.do(ctx, fiber.MethodPost, "/api/v1/point/next", req, &resp); err != nil {
		return nil, apperror.Network("Unable to advance point", err)
	}
	return &resp, nil
}

// BackPoint implements Client.
func (c *HTTPClient) BackPoint(ctx context.Context, req BackPointRequest) (*PointWithActionsResponse, error) {
	var resp PointWithActionsResponse
	if err := c.do(ctx, fiber.MethodPut, "/api/v1/point/back", req, &resp); err != nil {
		return nil, apperror.Network("Unable to go back a point", err)
	}
	return &resp, nil
}

// ReenterGame implements Client.
func (c *HTTPClient) ReenterGame(ctx context.Context, req GameRequest) (*ReenterResponse, error) {
	var resp ReenterResponse
	if err := c.do(ctx, fiber.MethodPut, "/api/v1/game/reenter", req, &resp); err != nil {
		return nil, apperror.Network("Unable to reenter game", err)
	}
	return &resp, nil
}

// GameStats implements Client.
func (c *HTTPClient) GameStats(ctx context.Context, gameID string) (*GameStats, error) {
	var resp GameStats
	if err := c.do(ctx, fiber.MethodGet, "/api/v1/stats/game/"+gameID, nil, &resp); err != nil {
		return nil, apperror.Network("Unable to retrieve game statistics", err)
	}
	return &resp, nil
}

// FinishGame implements Client.
func (c *HTTPClient) FinishGame(ctx context.Context, req GameRequest) (*GameResponse, error) {
	var resp GameResponse
	if err := c.do(ctx, fiber.MethodPut, "/api/v1/game/finish", req, &resp); err != nil {
		return nil, apperror.Network("Unable to finish game", err)
	}
	return &resp, nil
}

// PushFullGame implements Client.
func (c *HTTPClient) PushFullGame(ctx context.Context, payload FullGamePayload) (*GameResponse, error) {
	var resp GameResponse
	if err := c.do(ctx, fiber.MethodPut, "/api/v1/game/full", payload, &resp); err != nil {
		return nil, apperror.Network("Unable to push game", err)
	}
	return &resp, nil
}

// SetPlayers implements Client.
func (c *HTTPClient) SetPlayers(ctx context.Context, req SetPlayersRequest) (*PointResponse, error) {
	var resp PointResponse
	if err := c.do(ctx, fiber.MethodPut, "/api/v1/point/players", req, &resp); err != nil {
		return nil, apperror.Network("Unable to set players", err)
	}
	return &resp, nil
}

// SetPullingTeam implements Client.
func (c *HTTPClient) SetPullingTeam(ctx context.Context, req SetPullingTeamRequest) (*PointResponse, error) {
	var resp PointResponse
	if err := c.do(ctx, fiber.MethodPut, "/api/v1/point/pulling", req, &resp); err != nil {
		return nil, apperror.Network("Unable to set pulling team", err)
	}
	return &resp, nil
}

// do sends body to path and decodes a 2xx answer into out. A 401 is reported as
// credentials.ErrUnauthorized so the wrapper refreshes and retries.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	start := time.Now()
	err := c.credentials.Call(ctx, func(ctx context.Context, token string) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		a := c.agent(method, c.baseURL+path)
		a.Timeout(c.timeout)
		a.Set(fiber.HeaderAuthorization, "Bearer "+token)
		if body != nil {
			a.JSON(body)
		}

		code, raw, errs := a.Bytes()
		if len(errs) > 0 {
			return errors.Join(errs...)
		}
		switch {
		case code == fiber.StatusUnauthorized:
			return credentials.ErrUnauthorized
		case code < 200 || code >= 300:
			return &StatusError{Status: code, Message: errorMessage(raw, code)}
		}
		if out == nil || len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	})

	l := c.logger.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.Duration("duration", time.Since(start)))
	if err != nil {
		l.Warn("Remote call failed", zap.Error(err))
		return err
	}
	l.Debug("Remote call succeeded")
	return nil
}

func (c *HTTPClient) agent(method, url string) *fiber.Agent {
	switch method {
	case fiber.MethodPost:
		return c.http.Post(url)
	case fiber.MethodPut:
		return c.http.Put(url)
	default:
		return c.http.Get(url)
	}
}

// errorMessage extracts the remote's {"message": ...} body, falling back to the status text.
func errorMessage(raw []byte, code int) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return utils.StatusMessage(code)
}
