package transition

import (
	"context"

	"game-tracker/core/store"
	"game-tracker/feature/livegame/actionlog"
	"game-tracker/feature/livegame/models"
	"game-tracker/feature/livegame/remote"

	"go.uber.org/zap"
)

// Backend carries out point transitions for one operating mode.
type Backend interface {
	// Numbering returns how actions appended in this mode are numbered.
	Numbering() actionlog.NumberStrategy
	// NextPoint completes current, if any, and creates the point after it.
	NextPoint(ctx context.Context, game *models.Game, current *models.Point, team, pulling models.TeamNumber) (*models.Point, error)
	// BackPoint removes current and reactivates the point before it.
	BackPoint(ctx context.Context, game *models.Game, current *models.Point, team models.TeamNumber) (*models.Point, error)
	// FinishGame ends the game after current.
	FinishGame(ctx context.Context, game *models.Game, current *models.Point, team models.TeamNumber) error
	// SetPlayers puts players on the field for team.
	SetPlayers(ctx context.Context, game *models.Game, point *models.Point, team models.TeamNumber, players models.PlayerList) (*models.Point, error)
	// SetPullingTeam makes pulling the pulling team of point.
	SetPullingTeam(ctx context.Context, game *models.Game, point *models.Point, team, pulling models.TeamNumber) (*models.Point, error)
}

// ForGame selects the backend for a game's operating mode.
func ForGame(game *models.Game, session *store.Session, client remote.Client, logger *zap.Logger) Backend {
	if game.Offline {
		return NewLocalBackend(session, logger)
	}
	return NewRemoteBackend(session, client, logger)
}
