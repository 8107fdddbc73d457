package transition

import (
	"context"

	"game-tracker/core/store"
	"game-tracker/feature/livegame/actionlog"
	"game-tracker/feature/livegame/models"
	"game-tracker/feature/livegame/remote"
	"game-tracker/feature/livegame/repo"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RemoteBackend runs transitions for online games. Every mutation is confirmed by the
// remote authority before the local store is touched.
type RemoteBackend struct {
	session *store.Session
	client  remote.Client
	logger  *zap.Logger
}

// NewRemoteBackend creates the online backend.
func NewRemoteBackend(session *store.Session, client remote.Client, logger *zap.Logger) *RemoteBackend {
	return &RemoteBackend{session: session, client: client, logger: logger}
}

// Numbering implements Backend.
func (b *RemoteBackend) Numbering() actionlog.NumberStrategy {
	return actionlog.RemoteNumbering{}
}

// NextPoint implements Backend. With a nil current it advances from point 0.
func (b *RemoteBackend) NextPoint(ctx context.Context, game *models.Game, current *models.Point, team, pulling models.TeamNumber) (*models.Point, error) {
	req := remote.NextPointRequest{GameID: game.ID, Team: team, PullingTeam: game.Team(pulling)}
	if current != nil {
		req.PointNumber = current.PointNumber
	}
	resp, err := b.client.NextPoint(ctx, req)
	if err != nil {
		return nil, err
	}

	next := resp.Point
	if next.GameID == "" {
		next.GameID = game.ID
	}
	err = b.session.Transaction(ctx, func(tx *gorm.DB) error {
		g, err := repo.GetGame(tx, game.ID)
		if err != nil {
			return err
		}
		if current != nil {
			prev, err := repo.GetPoint(tx, current.ID)
			if err != nil {
				return err
			}
			prev.SetScore(next.Score())
			prev.SetStatus(models.PointComplete)
			if err := repo.SavePoint(tx, prev); err != nil {
				return err
			}
		}
		g.SetScore(next.Score())
		if err := repo.SaveGame(tx, g); err != nil {
			return err
		}
		return repo.ReplacePoint(tx, &next, nil)
	})
	if err != nil {
		return nil, err
	}

	b.logger.Info("Point started",
		zap.String("game", game.ID),
		zap.Int("point", next.PointNumber),
		zap.Bool("offline", false))
	return &next, nil
}

// BackPoint implements Backend. The previous point is recreated from the response
// since its ids may change.
func (b *RemoteBackend) BackPoint(ctx context.Context, game *models.Game, current *models.Point, team models.TeamNumber) (*models.Point, error) {
	resp, err := b.client.BackPoint(ctx, remote.BackPointRequest{
		GameID:      game.ID,
		Team:        team,
		PointNumber: current.PointNumber,
	})
	if err != nil {
		return nil, err
	}

	prev := resp.Point
	if prev.GameID == "" {
		prev.GameID = game.ID
	}
	err = b.session.Transaction(ctx, func(tx *gorm.DB) error {
		if err := repo.DeletePoint(tx, current.ID); err != nil {
			return err
		}
		if err := repo.ReplacePoint(tx, &prev, resp.Actions); err != nil {
			return err
		}
		g, err := repo.GetGame(tx, game.ID)
		if err != nil {
			return err
		}
		g.SetScore(prev.Score())
		return repo.SaveGame(tx, g)
	})
	if err != nil {
		return nil, err
	}

	b.logger.Info("Point reverted",
		zap.String("game", game.ID),
		zap.Int("point", prev.PointNumber),
		zap.Bool("offline", false))
	return &prev, nil
}

// FinishGame implements Backend. Once the remote confirms, the game and everything it
// owns is purged locally.
func (b *RemoteBackend) FinishGame(ctx context.Context, game *models.Game, _ *models.Point, team models.TeamNumber) error {
	if _, err := b.client.FinishGame(ctx, remote.GameRequest{GameID: game.ID, Team: team}); err != nil {
		return err
	}
	return b.session.Transaction(ctx, func(tx *gorm.DB) error {
		return repo.DeleteGameTree(tx, game.ID)
	})
}

// SetPlayers implements Backend.
func (b *RemoteBackend) SetPlayers(ctx context.Context, game *models.Game, point *models.Point, team models.TeamNumber, players models.PlayerList) (*models.Point, error) {
	resp, err := b.client.SetPlayers(ctx, remote.SetPlayersRequest{
		GameID:      game.ID,
		Team:        team,
		PointNumber: point.PointNumber,
		Players:     players,
	})
	if err != nil {
		return nil, err
	}
	return b.storePoint(ctx, game, point, resp.Point)
}

// SetPullingTeam implements Backend.
func (b *RemoteBackend) SetPullingTeam(ctx context.Context, game *models.Game, point *models.Point, team, pulling models.TeamNumber) (*models.Point, error) {
	resp, err := b.client.SetPullingTeam(ctx, remote.SetPullingTeamRequest{
		GameID:      game.ID,
		Team:        team,
		PointNumber: point.PointNumber,
		PullingTeam: game.Team(pulling),
	})
	if err != nil {
		return nil, err
	}
	return b.storePoint(ctx, game, point, resp.Point)
}

// storePoint saves the point returned for local over the stored row. The local id
// is kept so the stored actions stay attached.
func (b *RemoteBackend) storePoint(ctx context.Context, game *models.Game, local *models.Point, returned models.Point) (*models.Point, error) {
	returned.ID = local.ID
	returned.GameID = game.ID
	err := b.session.Transaction(ctx, func(tx *gorm.DB) error {
		return repo.SavePoint(tx, &returned)
	})
	if err != nil {
		return nil, err
	}
	return &returned, nil
}
