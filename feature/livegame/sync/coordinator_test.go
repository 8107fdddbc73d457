package sync_test

import (
	"context"
	"errors"
	"testing"

	"game-tracker/core/apperror"
	"game-tracker/core/store"
	"game-tracker/feature/livegame/livegametest"
	"game-tracker/feature/livegame/models"
	"game-tracker/feature/livegame/remote"
	"game-tracker/feature/livegame/remote/mocks"
	"game-tracker/feature/livegame/repo"
	gamesync "game-tracker/feature/livegame/sync"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockArchiver struct {
	mock.Mock
}

func (m *mockArchiver) Store(ctx context.Context, payload remote.FullGamePayload) (string, error) {
	args := m.Called(ctx, payload)
	return args.String(0), args.Error(1)
}

func addAction(t *testing.T, s *store.Session, p *models.Point, n int, typ models.ActionType) {
	t.Helper()
	require.NoError(t, repo.CreateAction(s.DB(context.Background()), &models.Action{
		ID:           p.ID + "-" + string(typ) + "-" + string(rune('0'+n)),
		PointID:      p.ID,
		TeamNumber:   models.TeamOne,
		ActionNumber: n,
		ActionType:   typ,
	}))
}

func count(t *testing.T, s *store.Session, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.DB(context.Background()).Model(model).Count(&n).Error)
	return n
}

func TestReenterOffline_NoPoints(t *testing.T) {
	s := livegametest.OpenStore(t)
	livegametest.SeedGame(t, s, "g1", true, 7)
	c := gamesync.New(s, new(mocks.Client), nil, zap.NewNop())

	res, err := c.ReenterGame(context.Background(), "g1", models.TeamOne)
	require.NoError(t, err)
	assert.Equal(t, gamesync.EntryFirstPoint, res.Entry)
	assert.Nil(t, res.Point)
	assert.Len(t, res.Roster, 10)
}

func TestReenterOffline_RoutesByActions(t *testing.T) {
	s := livegametest.OpenStore(t)
	g := livegametest.SeedGame(t, s, "g1", true, 7)
	c := gamesync.New(s, new(mocks.Client), nil, zap.NewNop())
	ctx := context.Background()

	p1 := livegametest.SeedPoint(t, s, g, 1, g.TeamOnePlayers[:7])
	res, err := c.ReenterGame(ctx, "g1", models.TeamOne)
	require.NoError(t, err)
	assert.Equal(t, gamesync.EntrySelectPlayers, res.Entry)
	assert.Equal(t, p1.ID, res.Point.ID)

	addAction(t, s, p1, 1, models.ActionPull)
	res, err = c.ReenterGame(ctx, "g1", models.TeamOne)
	require.NoError(t, err)
	assert.Equal(t, gamesync.EntryLogActions, res.Entry)
	assert.Len(t, res.Actions, 1)
}

func TestReenterOffline_UndoesFinish(t *testing.T) {
	s := livegametest.OpenStore(t)
	g := livegametest.Game("g1", true, 7)
	g.TeamOneStatus = models.GameComplete
	g.SetScore(models.Score{TeamOne: 3, TeamTwo: 2})
	ctx := context.Background()
	require.NoError(t, s.DB(ctx).Create(g).Error)

	for n := 1; n <= 3; n++ {
		livegametest.SeedPoint(t, s, g, n, g.TeamOnePlayers[:7])
	}
	db := s.DB(ctx)
	require.NoError(t, db.Model(&models.Point{}).Where("point_number = ?", 2).
		Updates(map[string]any{"team_one_score": 2, "team_two_score": 2}).Error)
	require.NoError(t, db.Model(&models.Point{}).Where("point_number = ?", 3).
		Updates(map[string]any{"team_one_score": 3, "team_two_score": 2, "team_one_status": models.PointComplete}).Error)
	p3, err := repo.GetPointByNumber(db, "g1", 3)
	require.NoError(t, err)
	addAction(t, s, p3, 1, models.ActionTeamOneScore)

	c := gamesync.New(s, new(mocks.Client), nil, zap.NewNop())
	res, err := c.ReenterGame(ctx, "g1", models.TeamOne)
	require.NoError(t, err)
	assert.Equal(t, gamesync.EntryLogActions, res.Entry)
	assert.Equal(t, 3, res.Point.PointNumber)
	assert.Equal(t, models.Score{TeamOne: 2, TeamTwo: 2}, res.Point.Score())

	game, err := repo.GetGame(db, "g1")
	require.NoError(t, err)
	assert.Equal(t, models.GameActive, game.TeamOneStatus)
	assert.Equal(t, models.Score{TeamOne: 2, TeamTwo: 2}, game.Score())

	point, err := repo.GetPointByNumber(db, "g1", 3)
	require.NoError(t, err)
	assert.Equal(t, models.PointActive, point.TeamOneStatus)
	assert.Equal(t, models.PointActive, point.TeamTwoStatus)
}

func TestReenterOffline_UndoesFinishOnOnlyPoint(t *testing.T) {
	s := livegametest.OpenStore(t)
	g := livegametest.Game("g1", true, 7)
	g.TeamOneStatus = models.GameComplete
	g.SetScore(models.Score{TeamOne: 1})
	ctx := context.Background()
	require.NoError(t, s.DB(ctx).Create(g).Error)
	livegametest.SeedPoint(t, s, g, 1, g.TeamOnePlayers[:7])

	c := gamesync.New(s, new(mocks.Client), nil, zap.NewNop())
	res, err := c.ReenterGame(ctx, "g1", models.TeamOne)
	require.NoError(t, err)
	assert.Equal(t, models.Score{}, res.Game.Score())
	assert.Equal(t, gamesync.EntrySelectPlayers, res.Entry)
}

func TestReenterOnline(t *testing.T) {
	s := livegametest.OpenStore(t)
	local := livegametest.SeedGame(t, s, "g1", false, 7)
	stale := livegametest.SeedPoint(t, s, local, 4, nil)
	addAction(t, s, stale, 1, models.ActionPull)
	ctx := context.Background()

	authoritative := *livegametest.Game("g1", false, 7)
	authoritative.SetScore(models.Score{TeamOne: 3, TeamTwo: 1})
	client := new(mocks.Client)
	client.On("ReenterGame", mock.Anything, remote.GameRequest{GameID: "g1", Team: models.TeamOne}).
		Return(&remote.ReenterResponse{
			Game:  authoritative,
			Point: &models.Point{ID: "remote-4", PointNumber: 4, TeamOneScore: 3, TeamTwoScore: 1},
			Actions: []models.Action{
				{ID: "r1", TeamNumber: models.TeamOne, ActionNumber: 1, ActionType: models.ActionPull},
				{ID: "r2", TeamNumber: models.TeamOne, ActionNumber: 2, ActionType: models.ActionBlock},
			},
		}, nil)
	client.On("GameStats", mock.Anything, "g1").Return(&remote.GameStats{
		GameID:  "g1",
		Players: []remote.PlayerStats{{PlayerID: "p1", Goals: 2, Assists: 1, PointsPlayed: 4}},
	}, nil)

	c := gamesync.New(s, client, nil, zap.NewNop())
	res, err := c.ReenterGame(ctx, "g1", models.TeamOne)
	require.NoError(t, err)
	assert.Equal(t, gamesync.EntryLogActions, res.Entry)
	assert.Equal(t, 2, res.Roster[0].Stats.Goals)
	assert.Equal(t, "p2", res.Roster[1].Stats.PlayerID)
	assert.Zero(t, res.Roster[1].Stats.Goals)

	db := s.DB(ctx)
	game, err := repo.GetGame(db, "g1")
	require.NoError(t, err)
	assert.Equal(t, models.Score{TeamOne: 3, TeamTwo: 1}, game.Score())

	point, err := repo.GetPointByNumber(db, "g1", 4)
	require.NoError(t, err)
	assert.Equal(t, "remote-4", point.ID)
	assert.Equal(t, int64(2), count(t, s, &models.Action{}), "stale actions replaced")
	assert.Equal(t, int64(10), count(t, s, &models.Player{}))
}

func TestReenterOnline_NoPoint(t *testing.T) {
	s := livegametest.OpenStore(t)
	client := new(mocks.Client)
	client.On("ReenterGame", mock.Anything, mock.Anything).
		Return(&remote.ReenterResponse{Game: *livegametest.Game("g9", false, 5)}, nil)
	client.On("GameStats", mock.Anything, "g9").Return(&remote.GameStats{GameID: "g9"}, nil)

	c := gamesync.New(s, client, nil, zap.NewNop())
	res, err := c.ReenterGame(context.Background(), "g9", models.TeamOne)
	require.NoError(t, err)
	assert.Equal(t, gamesync.EntryFirstPoint, res.Entry)

	_, err = repo.GetGame(s.DB(context.Background()), "g9")
	assert.NoError(t, err, "game cached locally")
}

func TestReenterOnline_RemoteFailure(t *testing.T) {
	s := livegametest.OpenStore(t)
	livegametest.SeedGame(t, s, "g1", false, 7)
	client := new(mocks.Client)
	client.On("ReenterGame", mock.Anything, mock.Anything).
		Return(nil, apperror.Network("Unable to reenter game", errors.New("offline")))
	client.On("GameStats", mock.Anything, mock.Anything).
		Return(&remote.GameStats{}, nil).Maybe()

	c := gamesync.New(s, client, nil, zap.NewNop())
	_, err := c.ReenterGame(context.Background(), "g1", models.TeamOne)
	assert.True(t, apperror.Is(err, apperror.KindNetwork))
}

func seedOfflineGame(t *testing.T, s *store.Session) *models.Game {
	t.Helper()
	g := livegametest.SeedGame(t, s, "g1", true, 7)
	p1 := livegametest.SeedPoint(t, s, g, 1, g.TeamOnePlayers[:7])
	addAction(t, s, p1, 1, models.ActionPull)
	addAction(t, s, p1, 2, models.ActionTeamOneScore)
	p2 := livegametest.SeedPoint(t, s, g, 2, g.TeamOnePlayers[:7])
	addAction(t, s, p2, 1, models.ActionPull)
	addAction(t, s, p2, 2, models.ActionBlock)
	addAction(t, s, p2, 3, models.ActionTeamTwoScore)
	livegametest.SeedPoint(t, s, g, 3, nil)
	return g
}

func TestPlanPush(t *testing.T) {
	s := livegametest.OpenStore(t)
	seedOfflineGame(t, s)
	c := gamesync.New(s, new(mocks.Client), nil, zap.NewNop())

	plan, err := c.PlanPush(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, 3, plan.Points)
	assert.Equal(t, 5, plan.Actions)
	assert.Equal(t, plan.Actions, plan.Payload.ActionCount())

	numbers := []int{}
	for _, p := range plan.Payload.Points {
		numbers = append(numbers, p.PointNumber)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, numbers); diff != "" {
		t.Errorf("point order mismatch (-want +got):\n%s", diff)
	}
	assert.NotNil(t, plan.Payload.Points[2].Actions, "empty action list is still a list")
}

func TestPushOfflineGame(t *testing.T) {
	s := livegametest.OpenStore(t)
	seedOfflineGame(t, s)
	ctx := context.Background()

	var sent remote.FullGamePayload
	client := new(mocks.Client)
	client.On("PushFullGame", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(remote.FullGamePayload) }).
		Return(&remote.GameResponse{Game: models.Game{ID: "g1"}}, nil).Once()
	archiver := new(mockArchiver)
	archiver.On("Store", mock.Anything, mock.Anything).Return("offline-games/g1/x.json", nil)

	c := gamesync.New(s, client, archiver, zap.NewNop())
	plan, err := c.PlanPush(ctx, "g1")
	require.NoError(t, err)

	res, err := c.PushOfflineGame(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "offline-games/g1/x.json", res.Archive)
	assert.Equal(t, 3, res.Points)
	assert.Equal(t, 5, res.Actions)

	if diff := cmp.Diff(plan.Payload, sent); diff != "" {
		t.Errorf("pushed payload mismatch (-plan +sent):\n%s", diff)
	}

	assert.Zero(t, count(t, s, &models.Game{}))
	assert.Zero(t, count(t, s, &models.Point{}))
	assert.Zero(t, count(t, s, &models.Action{}))
	client.AssertExpectations(t)
	archiver.AssertExpectations(t)
}

func TestPushOfflineGame_FailureKeepsState(t *testing.T) {
	s := livegametest.OpenStore(t)
	seedOfflineGame(t, s)
	ctx := context.Background()

	client := new(mocks.Client)
	client.On("PushFullGame", mock.Anything, mock.Anything).
		Return(nil, apperror.Network("Unable to push game", errors.New("503")))
	c := gamesync.New(s, client, nil, zap.NewNop())

	_, err := c.PushOfflineGame(ctx, "g1")
	assert.True(t, apperror.Is(err, apperror.KindNetwork))
	assert.Equal(t, int64(1), count(t, s, &models.Game{}))
	assert.Equal(t, int64(3), count(t, s, &models.Point{}))
	assert.Equal(t, int64(5), count(t, s, &models.Action{}))
}

func TestPushOfflineGame_ArchiveFailureDoesNotBlock(t *testing.T) {
	s := livegametest.OpenStore(t)
	seedOfflineGame(t, s)

	client := new(mocks.Client)
	client.On("PushFullGame", mock.Anything, mock.Anything).Return(&remote.GameResponse{}, nil)
	archiver := new(mockArchiver)
	archiver.On("Store", mock.Anything, mock.Anything).Return("", errors.New("bucket gone"))

	c := gamesync.New(s, client, archiver, zap.NewNop())
	res, err := c.PushOfflineGame(context.Background(), "g1")
	require.NoError(t, err)
	assert.Empty(t, res.Archive)
	assert.Zero(t, count(t, s, &models.Game{}))
}

func TestPushOfflineGame_RejectsOnlineGame(t *testing.T) {
	s := livegametest.OpenStore(t)
	livegametest.SeedGame(t, s, "g1", false, 7)
	client := new(mocks.Client)

	c := gamesync.New(s, client, nil, zap.NewNop())
	_, err := c.PushOfflineGame(context.Background(), "g1")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	client.AssertNotCalled(t, "PushFullGame", mock.Anything, mock.Anything)
}

func TestPushOfflineGame_UnknownGame(t *testing.T) {
	s := livegametest.OpenStore(t)
	c := gamesync.New(s, new(mocks.Client), nil, zap.NewNop())

	_, err := c.PushOfflineGame(context.Background(), "nope")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
