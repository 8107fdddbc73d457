package transition_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"game-tracker/core/apperror"
	"game-tracker/core/store"
	"game-tracker/feature/livegame/actionlog"
	"game-tracker/feature/livegame/livegametest"
	"game-tracker/feature/livegame/models"
	"game-tracker/feature/livegame/remote"
	"game-tracker/feature/livegame/remote/mocks"
	"game-tracker/feature/livegame/repo"
	"game-tracker/feature/livegame/transition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newOnlineGame(t *testing.T) (*store.Session, *mocks.Client, *transition.Operations, *models.Game) {
	t.Helper()
	s := livegametest.OpenStore(t)
	g := livegametest.SeedGame(t, s, "g1", false, 7)
	client := new(mocks.Client)
	backend := transition.ForGame(g, s, client, zap.NewNop())
	require.IsType(t, &transition.RemoteBackend{}, backend)
	assert.IsType(t, actionlog.RemoteNumbering{}, backend.Numbering())
	return s, client, transition.NewOperations(s, backend, g.ID, models.TeamOne, zap.NewNop()), g
}

func TestRemote_FirstPoint(t *testing.T) {
	s, client, ops, g := newOnlineGame(t)
	ctx := context.Background()

	client.On("NextPoint", mock.Anything, remote.NextPointRequest{
		GameID: g.ID, Team: models.TeamOne, PointNumber: 0, PullingTeam: g.TeamOne,
	}).Return(&remote.PointResponse{Point: models.Point{ID: "r1", PointNumber: 1}}, nil)

	p, err := ops.FirstPoint(ctx, models.TeamOne)
	require.NoError(t, err)
	assert.Equal(t, "r1", p.ID)

	stored, err := repo.GetPoint(s.DB(ctx), "r1")
	require.NoError(t, err)
	assert.Equal(t, g.ID, stored.GameID)
	client.AssertExpectations(t)
}

func TestRemote_NextPointKeepsHistory(t *testing.T) {
	s, client, ops, g := newOnlineGame(t)
	ctx := context.Background()
	prev := livegametest.SeedPoint(t, s, g, 1, g.TeamOnePlayers[:7])

	client.On("NextPoint", mock.Anything, mock.MatchedBy(func(r remote.NextPointRequest) bool {
		return r.PointNumber == 1 && r.PullingTeam.Name == "Guests"
	})).Return(&remote.PointResponse{Point: models.Point{
		ID: "r2", GameID: g.ID, PointNumber: 2, TeamOneScore: 0, TeamTwoScore: 1,
	}}, nil)

	p, err := ops.NextPoint(ctx, models.TeamTwo)
	require.NoError(t, err)
	assert.Equal(t, 2, p.PointNumber)

	db := s.DB(ctx)
	old, err := repo.GetPoint(db, prev.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PointComplete, old.TeamOneStatus)
	assert.Equal(t, models.Score{TeamTwo: 1}, old.Score())

	game, err := repo.GetGame(db, g.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Score{TeamTwo: 1}, game.Score())
}

func TestRemote_FailureLeavesStoreUntouched(t *testing.T) {
	s, client, ops, g := newOnlineGame(t)
	ctx := context.Background()
	prev := livegametest.SeedPoint(t, s, g, 1, g.TeamOnePlayers[:7])

	client.On("NextPoint", mock.Anything, mock.Anything).
		Return(nil, apperror.Network("Unable to advance point", errors.New("timeout")))

	_, err := ops.NextPoint(ctx, models.TeamOne)
	assert.True(t, apperror.Is(err, apperror.KindNetwork))
	assert.Equal(t, "Unable to advance point", apperror.Message(err))

	db := s.DB(ctx)
	old, err := repo.GetPoint(db, prev.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PointActive, old.TeamOneStatus)
	points, err := repo.ListPoints(db, g.ID)
	require.NoError(t, err)
	assert.Len(t, points, 1)
}

func TestRemote_BackPointReplacesPrevious(t *testing.T) {
	s, client, ops, g := newOnlineGame(t)
	ctx := context.Background()
	db := s.DB(ctx)

	p1 := livegametest.SeedPoint(t, s, g, 1, g.TeamOnePlayers[:7])
	p2 := livegametest.SeedPoint(t, s, g, 2, g.TeamOnePlayers[:7])
	for _, a := range []models.Action{
		{ID: "old1", PointID: p1.ID, TeamNumber: models.TeamOne, ActionNumber: 1, ActionType: models.ActionTeamOneScore},
		{ID: "leaving", PointID: p2.ID, TeamNumber: models.TeamOne, ActionNumber: 1, ActionType: models.ActionPull},
	} {
		require.NoError(t, repo.CreateAction(db, &a))
	}

	client.On("BackPoint", mock.Anything, remote.BackPointRequest{GameID: g.ID, Team: models.TeamOne, PointNumber: 2}).
		Return(&remote.PointWithActionsResponse{
			Point: models.Point{ID: "new1", GameID: g.ID, PointNumber: 1, TeamOneStatus: models.PointActive},
			Actions: []models.Action{
				{ID: "new-a1", TeamNumber: models.TeamOne, ActionNumber: 1, ActionType: models.ActionPull},
				{ID: "new-a2", TeamNumber: models.TeamOne, ActionNumber: 2, ActionType: models.ActionTeamOneScore},
			},
		}, nil)

	prev, err := ops.BackPoint(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new1", prev.ID)

	points, err := repo.ListPoints(db, g.ID)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "new1", points[0].ID)

	for _, id := range []string{p1.ID, p2.ID} {
		left, err := repo.ListActions(db, id)
		require.NoError(t, err)
		assert.Empty(t, left)
	}
	actions, err := repo.ListActions(db, "new1")
	require.NoError(t, err)
	assert.Len(t, actions, 2)

	game, err := repo.GetGame(db, g.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Score{}, game.Score())
}

func TestRemote_PointNumberAfterNextAndBack(t *testing.T) {
	tests := []struct{ n, m int }{{0, 0}, {3, 0}, {3, 3}, {4, 2}, {5, 1}}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d m=%d", tt.n, tt.m), func(t *testing.T) {
			s, client, ops, g := newOnlineGame(t)
			ctx := context.Background()

			for k := 0; k <= tt.n; k++ {
				client.On("NextPoint", mock.Anything, mock.MatchedBy(func(r remote.NextPointRequest) bool {
					return r.PointNumber == k
				})).Return(&remote.PointResponse{Point: models.Point{
					ID: fmt.Sprintf("r%d", k+1), GameID: g.ID, PointNumber: k + 1, TeamOneScore: k,
				}}, nil).Once()
			}
			for k := tt.n + 1; k > tt.n+1-tt.m; k-- {
				client.On("BackPoint", mock.Anything, remote.BackPointRequest{GameID: g.ID, Team: models.TeamOne, PointNumber: k}).
					Return(&remote.PointWithActionsResponse{
						Point: models.Point{
							ID: fmt.Sprintf("back%d", k-1), GameID: g.ID, PointNumber: k - 1,
							TeamOneScore: k - 2, TeamOneStatus: models.PointActive,
						},
						Actions: []models.Action{{
							ID: fmt.Sprintf("a%d", k-1), TeamNumber: models.TeamOne,
							ActionNumber: 1, ActionType: models.ActionTeamOneScore,
						}},
					}, nil).Once()
			}

			_, err := ops.FirstPoint(ctx, models.TeamOne)
			require.NoError(t, err)
			for i := 0; i < tt.n; i++ {
				_, err := ops.NextPoint(ctx, models.TeamTwo)
				require.NoError(t, err)
			}
			for i := 0; i < tt.m; i++ {
				_, err := ops.BackPoint(ctx)
				require.NoError(t, err)
			}

			want := 1 + tt.n - tt.m
			current, err := ops.CurrentPoint(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, current.PointNumber)
			if tt.m > 0 {
				assert.Equal(t, fmt.Sprintf("back%d", want), current.ID)
			}

			// One row per point number, history below the current point kept
			db := s.DB(ctx)
			points, err := repo.ListPoints(db, g.ID)
			require.NoError(t, err)
			require.Len(t, points, want)
			for i, p := range points {
				assert.Equal(t, want-i, p.PointNumber)
			}

			actions, err := repo.ListActions(db, current.ID)
			require.NoError(t, err)
			if tt.m > 0 {
				assert.Len(t, actions, 1)
			} else {
				assert.Empty(t, actions)
			}
			client.AssertExpectations(t)
		})
	}
}

func TestRemote_FinishGamePurges(t *testing.T) {
	s, client, ops, g := newOnlineGame(t)
	ctx := context.Background()
	p := livegametest.SeedPoint(t, s, g, 1, g.TeamOnePlayers[:7])
	require.NoError(t, repo.CreateAction(s.DB(ctx), &models.Action{
		ID: "a1", PointID: p.ID, TeamNumber: models.TeamOne, ActionNumber: 1, ActionType: models.ActionPull,
	}))

	client.On("FinishGame", mock.Anything, remote.GameRequest{GameID: g.ID, Team: models.TeamOne}).
		Return(&remote.GameResponse{Game: *g}, nil)

	dest, err := ops.FinishGame(ctx)
	require.NoError(t, err)
	assert.Equal(t, transition.DestinationGameSummary, dest)

	db := s.DB(ctx)
	var games, points, actions int64
	require.NoError(t, db.Model(&models.Game{}).Count(&games).Error)
	require.NoError(t, db.Model(&models.Point{}).Count(&points).Error)
	require.NoError(t, db.Model(&models.Action{}).Count(&actions).Error)
	assert.Zero(t, games+points+actions)
}

func TestRemote_FinishFailureKeepsGame(t *testing.T) {
	s, client, ops, g := newOnlineGame(t)
	ctx := context.Background()
	livegametest.SeedPoint(t, s, g, 1, nil)

	client.On("FinishGame", mock.Anything, mock.Anything).
		Return(nil, apperror.Network("Unable to finish game", errors.New("offline")))

	_, err := ops.FinishGame(ctx)
	assert.True(t, apperror.Is(err, apperror.KindNetwork))

	_, err = repo.GetGame(s.DB(ctx), g.ID)
	assert.NoError(t, err)
}

func TestRemote_SetPlayersStoresReturnedPoint(t *testing.T) {
	s, client, ops, g := newOnlineGame(t)
	ctx := context.Background()
	p := livegametest.SeedPoint(t, s, g, 1, nil)
	line := g.TeamOnePlayers[:7]

	client.On("SetPlayers", mock.Anything, remote.SetPlayersRequest{
		GameID: g.ID, Team: models.TeamOne, PointNumber: 1, Players: line,
	}).Return(&remote.PointResponse{Point: models.Point{
		ID: p.ID, PointNumber: 1, TeamOneActivePlayers: line, TeamOneStatus: models.PointActive,
	}}, nil)

	got, err := ops.SetPlayers(ctx, line)
	require.NoError(t, err)
	assert.Equal(t, line, got.TeamOneActivePlayers)

	stored, err := repo.GetPoint(s.DB(ctx), p.ID)
	require.NoError(t, err)
	assert.Equal(t, line, stored.TeamOneActivePlayers)
	assert.Equal(t, g.ID, stored.GameID)
}

func TestRemote_SetPullingTeam(t *testing.T) {
	s, client, ops, g := newOnlineGame(t)
	ctx := context.Background()
	p := livegametest.SeedPoint(t, s, g, 1, nil)

	client.On("SetPullingTeam", mock.Anything, remote.SetPullingTeamRequest{
		GameID: g.ID, Team: models.TeamOne, PointNumber: 1, PullingTeam: g.TeamTwo,
	}).Return(&remote.PointResponse{Point: models.Point{
		ID: p.ID, PointNumber: 1, PullingTeam: g.TeamTwo, ReceivingTeam: g.TeamOne,
	}}, nil)

	got, err := ops.SetPullingTeam(ctx, models.TeamTwo)
	require.NoError(t, err)
	assert.Equal(t, "Guests", got.PullingTeam.Name)
	client.AssertExpectations(t)
}
