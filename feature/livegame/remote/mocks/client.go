package mocks

import (
	"context"

	"game-tracker/feature/livegame/remote"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of remote.Client
type Client struct {
	mock.Mock
}

func (m *Client) NextPoint(ctx context.Context, req remote.NextPointRequest) (*remote.PointResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*remote.PointResponse), args.Error(1)
}

func (m *Client) BackPoint(ctx context.Context, req remote.BackPointRequest) (*remote.PointWithActionsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*remote.PointWithActionsResponse), args.Error(1)
}

func (m *Client) ReenterGame(ctx context.Context, req remote.GameRequest) (*remote.ReenterResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*remote.ReenterResponse), args.Error(1)
}

func (m *Client) GameStats(ctx context.Context, gameID string) (*remote.GameStats, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*remote.GameStats), args.Error(1)
}

func (m *Client) FinishGame(ctx context.Context, req remote.GameRequest) (*remote.GameResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*remote.GameResponse), args.Error(1)
}

func (m *Client) PushFullGame(ctx context.Context, payload remote.FullGamePayload) (*remote.GameResponse, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*remote.GameResponse), args.Error(1)
}

func (m *Client) SetPlayers(ctx context.Context, req remote.SetPlayersRequest) (*remote.PointResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*remote.PointResponse), args.Error(1)
}

func (m *Client) SetPullingTeam(ctx context.Context, req remote.SetPullingTeamRequest) (*remote.PointResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*remote.PointResponse), args.Error(1)
}
