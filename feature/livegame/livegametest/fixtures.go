package livegametest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"game-tracker/core/database"
	"game-tracker/core/store"
	"game-tracker/feature/livegame/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// OpenStore opens an isolated in-memory store with every live game schema migrated.
func OpenStore(t *testing.T) *store.Session {
	t.Helper()
	s, err := store.Open(context.Background(),
		database.Config{Driver: database.DriverSQLite, Name: ":memory:"},
		zap.NewNop(), models.Schemas()...)
	require.NoError(t, err)
	return s
}

// Players returns n players with ids prefix1..prefixN.
func Players(prefix string, n int) models.PlayerList {
	out := make(models.PlayerList, n)
	for i := range out {
		id := fmt.Sprintf("%s%d", prefix, i+1)
		out[i] = models.Player{ID: id, FirstName: "First " + id, LastName: "Last " + id, Username: id}
	}
	return out
}

// Game returns an unsaved game with a ten player roster for team one and a guest
// team two.
func Game(id string, offline bool, playersPerPoint int) *models.Game {
	return &models.Game{
		ID:              id,
		Creator:         models.Player{ID: "creator", Username: "creator"},
		TeamOne:         models.Team{ID: "t1", Place: "Pittsburgh", Name: "Temper", TeamName: "pghtemper"},
		TeamTwo:         models.Team{Name: "Guests"},
		TeamOnePlayers:  Players("p", 10),
		TeamTwoPlayers:  models.PlayerList{},
		TeamOneStatus:   models.GameActive,
		TeamTwoStatus:   models.GameDefined,
		TeamOneActive:   true,
		Offline:         offline,
		ScoreLimit:      15,
		HalfScore:       8,
		StartTime:       time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		SoftcapMins:     75,
		HardcapMins:     90,
		PlayersPerPoint: playersPerPoint,
		TimeoutPerHalf:  2,
		ResolveCode:     "123456",
	}
}

// SeedGame stores a game built by Game.
func SeedGame(t *testing.T, s *store.Session, id string, offline bool, playersPerPoint int) *models.Game {
	t.Helper()
	g := Game(id, offline, playersPerPoint)
	require.NoError(t, s.DB(context.Background()).Create(g).Error)
	return g
}

// SeedPoint stores point number n of game g with active players for team one.
func SeedPoint(t *testing.T, s *store.Session, g *models.Game, n int, active models.PlayerList) *models.Point {
	t.Helper()
	p := &models.Point{
		ID:                   fmt.Sprintf("%s-point-%d", g.ID, n),
		GameID:               g.ID,
		PointNumber:          n,
		TeamOnePlayers:       g.TeamOnePlayers.Clone(),
		TeamTwoPlayers:       g.TeamTwoPlayers.Clone(),
		TeamOneActivePlayers: active,
		TeamTwoActivePlayers: models.PlayerList{},
		PullingTeam:          g.TeamOne,
		ReceivingTeam:        g.TeamTwo,
		TeamOneStatus:        models.PointActive,
		TeamTwoStatus:        models.PointActive,
	}
	require.NoError(t, s.DB(context.Background()).Create(p).Error)
	return p
}
