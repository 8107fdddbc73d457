package livegame_test

import (
	"context"
	"testing"

	"game-tracker/feature/livegame"
	"game-tracker/feature/livegame/livegametest"
	"game-tracker/feature/livegame/models"
	"game-tracker/feature/livegame/remote/mocks"
	gamesync "game-tracker/feature/livegame/sync"
	"game-tracker/feature/livegame/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) (*livegame.Service, *models.Game, *models.Point) {
	t.Helper()
	s := livegametest.OpenStore(t)
	g := livegametest.SeedGame(t, s, "g1", true, 7)
	p := livegametest.SeedPoint(t, s, g, 1, g.TeamOnePlayers[:7])
	client := new(mocks.Client)
	svc := livegame.NewService(s, client, gamesync.New(s, client, nil, zap.NewNop()), models.TeamOne, zap.NewNop())
	return svc, g, p
}

func TestServiceRestoresSelectPlayers(t *testing.T) {
	svc, _, p := newService(t)

	view, err := svc.View(context.Background(), "g1", models.TeamOne)
	require.NoError(t, err)
	assert.Equal(t, wizard.SelectPlayers, view.State)
	assert.Equal(t, p.ID, view.Point.ID)
	assert.Empty(t, view.Actions)
	assert.False(t, view.CanAdvance)
}

func TestServiceRestoresLogActions(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CommitPlayers(ctx, "g1", models.TeamOne, livegametest.Players("p", 7))
	require.NoError(t, err)
	_, err = svc.Record(ctx, "g1", models.TeamOne, models.Action{ActionType: models.ActionTeamOneScore})
	require.NoError(t, err)

	view, err := svc.View(ctx, "g1", models.TeamOne)
	require.NoError(t, err)
	assert.Equal(t, wizard.LogActions, view.State)
	assert.True(t, view.CanAdvance)
	require.Len(t, view.Actions, 1)
	assert.Equal(t, models.TeamOne, view.Actions[0].TeamNumber)
	assert.Equal(t, 1, view.Actions[0].ActionNumber)
}

func TestServiceSidesAreIndependent(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CommitPlayers(ctx, "g1", models.TeamOne, livegametest.Players("p", 7))
	require.NoError(t, err)

	view, err := svc.View(ctx, "g1", models.TeamTwo)
	require.NoError(t, err)
	assert.Equal(t, models.TeamTwo, view.Team)
	assert.Equal(t, wizard.SelectPlayers, view.State)

	_, err = svc.Record(ctx, "g1", models.TeamTwo, models.Action{ActionType: models.ActionPull})
	assert.Error(t, err)
}

func TestServiceDefaultTeam(t *testing.T) {
	svc := livegame.NewService(nil, nil, nil, "three", zap.NewNop())
	assert.Equal(t, models.TeamOne, svc.DefaultTeam())
}
