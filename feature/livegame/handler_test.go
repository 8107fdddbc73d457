package livegame_test

import (
	"bytes"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"game-tracker/core/apperror"
	"game-tracker/feature/livegame"
	"game-tracker/feature/livegame/livegametest"
	"game-tracker/feature/livegame/models"
	"game-tracker/feature/livegame/remote"
	"game-tracker/feature/livegame/remote/mocks"
	gamesync "game-tracker/feature/livegame/sync"
	"game-tracker/feature/livegame/wizard"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testApp struct {
	app    *fiber.App
	client *mocks.Client
	game   *models.Game
}

func newTestApp(t *testing.T, offline bool) *testApp {
	t.Helper()
	s := livegametest.OpenStore(t)
	g := livegametest.SeedGame(t, s, "g1", offline, 7)
	client := new(mocks.Client)
	logger := zap.NewNop()

	svc := livegame.NewService(s, client, gamesync.New(s, client, nil, logger), models.TeamOne, logger)
	app := fiber.New(fiber.Config{JSONEncoder: json.Marshal, JSONDecoder: json.Unmarshal})
	require.NoError(t, livegame.NewFeature(svc).Load(app))
	return &testApp{app: app, client: client, game: g}
}

func (a *testApp) do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out), string(raw))
	}
	return resp.StatusCode
}

func TestOfflineGameFlow(t *testing.T) {
	a := newTestApp(t, true)
	var view livegame.WizardView

	code := a.do(t, "POST", "/games/g1/points/first", fiber.Map{"pullingTeam": "one"}, &view)
	require.Equal(t, fiber.StatusCreated, code)
	assert.Equal(t, wizard.SelectPlayers, view.State)
	assert.Equal(t, 1, view.Point.PointNumber)

	var failure map[string]string
	code = a.do(t, "PUT", "/games/g1/players", fiber.Map{"players": a.game.TeamOnePlayers[:6]}, &failure)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Contains(t, failure["error"], "select exactly 7 players")

	code = a.do(t, "PUT", "/games/g1/players", fiber.Map{"players": a.game.TeamOnePlayers[:7]}, &view)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, wizard.LogActions, view.State)
	assert.True(t, view.CanGoBack)

	code = a.do(t, "POST", "/games/g1/actions", models.Action{ActionType: models.ActionPull}, &view)
	require.Equal(t, fiber.StatusCreated, code)
	assert.Len(t, view.Actions, 1)
	assert.False(t, view.CanGoBack)
	assert.False(t, view.CanAdvance)

	code = a.do(t, "POST", "/games/g1/points/next", fiber.Map{"pullingTeam": "two"}, &failure)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	code = a.do(t, "POST", "/games/g1/actions", models.Action{ActionType: models.ActionTeamOneScore}, &view)
	require.Equal(t, fiber.StatusCreated, code)
	assert.True(t, view.CanAdvance)

	code = a.do(t, "POST", "/games/g1/points/next", fiber.Map{"pullingTeam": "two"}, &view)
	require.Equal(t, fiber.StatusCreated, code)
	assert.Equal(t, 2, view.Point.PointNumber)
	assert.Equal(t, 1, view.Point.TeamOneScore)
	assert.Equal(t, wizard.SelectPlayers, view.State)

	code = a.do(t, "POST", "/games/g1/points/back", nil, &view)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, 1, view.Point.PointNumber)
	assert.Equal(t, wizard.LogActions, view.State)
	assert.Len(t, view.Actions, 2)

	code = a.do(t, "DELETE", "/games/g1/actions/last", nil, &view)
	require.Equal(t, fiber.StatusOK, code)
	assert.Len(t, view.Actions, 1)

	var plan gamesync.PushPlan
	code = a.do(t, "POST", "/games/g1/push?dry_run=true", nil, &plan)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, 1, plan.Points)
	assert.Equal(t, 1, plan.Actions)
	a.client.AssertNotCalled(t, "PushFullGame", mock.Anything, mock.Anything)

	var finished map[string]string
	code = a.do(t, "POST", "/games/g1/finish", nil, &finished)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "game_summary", finished["destination"])

	var reentered gamesync.ReenterResult
	code = a.do(t, "POST", "/games/g1/reenter", nil, &reentered)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, gamesync.EntryLogActions, reentered.Entry)

	code = a.do(t, "GET", "/games/g1/wizard", nil, &view)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, wizard.LogActions, view.State)

	a.client.On("PushFullGame", mock.Anything, mock.Anything).Return(&remote.GameResponse{}, nil)
	var pushed gamesync.PushResult
	code = a.do(t, "POST", "/games/g1/push", nil, &pushed)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "g1", pushed.GameID)

	code = a.do(t, "GET", "/games/g1/wizard", nil, &failure)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "Unable to retrieve game", failure["error"])
}

func TestOnlineFailureStatus(t *testing.T) {
	a := newTestApp(t, false)
	a.client.On("NextPoint", mock.Anything, mock.Anything).
		Return(nil, errors.New("unexpected"))

	var failure map[string]string
	code := a.do(t, "POST", "/games/g1/points/first", fiber.Map{"pullingTeam": "one"}, &failure)
	assert.Equal(t, fiber.StatusInternalServerError, code)
	assert.Equal(t, "Unable to start game", failure["error"])

	a.client.ExpectedCalls = nil
	a.client.On("NextPoint", mock.Anything, mock.Anything).
		Return(nil, apperror.Network("Unable to advance point", errors.New("connection refused")))
	code = a.do(t, "POST", "/games/g1/points/first", fiber.Map{"pullingTeam": "one"}, &failure)
	assert.Equal(t, fiber.StatusBadGateway, code)
	assert.Equal(t, "Unable to advance point", failure["error"])
}

func TestUnknownGame(t *testing.T) {
	a := newTestApp(t, true)
	var failure map[string]string
	code := a.do(t, "GET", "/games/missing/wizard", nil, &failure)
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestInvalidTeam(t *testing.T) {
	a := newTestApp(t, true)
	var failure map[string]string
	code := a.do(t, "GET", "/games/g1/wizard?team=three", nil, &failure)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
}

func TestInvalidBody(t *testing.T) {
	a := newTestApp(t, true)
	req := httptest.NewRequest("POST", "/games/g1/points/first", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
