package transition

import (
	"context"

	"game-tracker/core/store"
	"game-tracker/feature/livegame/actionlog"
	"game-tracker/feature/livegame/models"
	"game-tracker/feature/livegame/repo"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LocalBackend runs transitions for offline games against the local store only.
type LocalBackend struct {
	session *store.Session
	logger  *zap.Logger
}

// NewLocalBackend creates the offline backend.
func NewLocalBackend(session *store.Session, logger *zap.Logger) *LocalBackend {
	return &LocalBackend{session: session, logger: logger}
}

// Numbering implements Backend.
func (b *LocalBackend) Numbering() actionlog.NumberStrategy {
	return actionlog.LocalNumbering{}
}

// NextPoint implements Backend. With a nil current it builds point 1 at 0-0.
func (b *LocalBackend) NextPoint(ctx context.Context, game *models.Game, current *models.Point, team, pulling models.TeamNumber) (*models.Point, error) {
	var next *models.Point
	err := b.session.Transaction(ctx, func(tx *gorm.DB) error {
		g, err := repo.GetGame(tx, game.ID)
		if err != nil {
			return err
		}

		number := 1
		if current != nil {
			p, err := completePoint(tx, g, current.ID, team)
			if err != nil {
				return err
			}
			number = p.PointNumber + 1
		}

		next = &models.Point{
			ID:                   uuid.NewString(),
			GameID:               g.ID,
			PointNumber:          number,
			TeamOnePlayers:       g.TeamOnePlayers.Clone(),
			TeamTwoPlayers:       g.TeamTwoPlayers.Clone(),
			TeamOneActivePlayers: models.PlayerList{},
			TeamTwoActivePlayers: models.PlayerList{},
			PullingTeam:          g.Team(pulling),
			ReceivingTeam:        g.Team(pulling.Other()),
			TeamOneStatus:        models.PointActive,
			TeamTwoStatus:        models.PointActive,
		}
		next.SetScore(g.Score())
		if err := repo.SavePoint(tx, next); err != nil {
			return err
		}
		return repo.SaveGame(tx, g)
	})
	if err != nil {
		return nil, err
	}

	b.logger.Info("Point started",
		zap.String("game", game.ID),
		zap.Int("point", next.PointNumber),
		zap.Bool("offline", true))
	return next, nil
}

// BackPoint implements Backend.
func (b *LocalBackend) BackPoint(ctx context.Context, game *models.Game, current *models.Point, _ models.TeamNumber) (*models.Point, error) {
	var prev *models.Point
	err := b.session.Transaction(ctx, func(tx *gorm.DB) error {
		g, err := repo.GetGame(tx, game.ID)
		if err != nil {
			return err
		}
		if err := repo.DeletePoint(tx, current.ID); err != nil {
			return err
		}

		prev, err = repo.GetPointByNumber(tx, g.ID, current.PointNumber-1)
		if err != nil {
			return err
		}
		before, err := scoreBefore(tx, g.ID, prev.PointNumber)
		if err != nil {
			return err
		}

		prev.SetScore(before)
		prev.ScoringTeam = nil
		prev.SetStatus(models.PointActive)
		if err := repo.SavePoint(tx, prev); err != nil {
			return err
		}
		g.SetScore(before)
		return repo.SaveGame(tx, g)
	})
	if err != nil {
		return nil, err
	}

	b.logger.Info("Point reverted",
		zap.String("game", game.ID),
		zap.Int("point", prev.PointNumber),
		zap.Bool("offline", true))
	return prev, nil
}

// FinishGame implements Backend. Nothing is purged: the final point is completed and
// the side's game status set to complete, so the game can be reentered or pushed.
func (b *LocalBackend) FinishGame(ctx context.Context, game *models.Game, current *models.Point, team models.TeamNumber) error {
	return b.session.Transaction(ctx, func(tx *gorm.DB) error {
		g, err := repo.GetGame(tx, game.ID)
		if err != nil {
			return err
		}
		if current != nil {
			if _, err := completePoint(tx, g, current.ID, team); err != nil {
				return err
			}
		}
		g.SetStatus(team, models.GameComplete)
		return repo.SaveGame(tx, g)
	})
}

// SetPlayers implements Backend.
func (b *LocalBackend) SetPlayers(ctx context.Context, _ *models.Game, point *models.Point, team models.TeamNumber, players models.PlayerList) (*models.Point, error) {
	var p *models.Point
	err := b.session.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		if p, err = repo.GetPoint(tx, point.ID); err != nil {
			return err
		}
		p.SetActivePlayers(team, players.Clone())
		return repo.SavePoint(tx, p)
	})
	return p, err
}

// SetPullingTeam implements Backend.
func (b *LocalBackend) SetPullingTeam(ctx context.Context, game *models.Game, point *models.Point, _, pulling models.TeamNumber) (*models.Point, error) {
	var p *models.Point
	err := b.session.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		if p, err = repo.GetPoint(tx, point.ID); err != nil {
			return err
		}
		p.PullingTeam = game.Team(pulling)
		p.ReceivingTeam = game.Team(pulling.Other())
		return repo.SavePoint(tx, p)
	})
	return p, err
}

// completePoint applies the last scoring action team recorded on pointID to the
// point's snapshot, marks it complete and copies the snapshot onto g. g is not saved.
func completePoint(tx *gorm.DB, g *models.Game, pointID string, team models.TeamNumber) (*models.Point, error) {
	p, err := repo.GetPoint(tx, pointID)
	if err != nil {
		return nil, err
	}

	last, err := repo.LastAction(tx, p.ID, team)
	switch {
	case err == nil:
		if scorer, ok := last.ActionType.ScoringTeam(); ok {
			p.SetScore(p.Score().Add(scorer))
			t := g.Team(scorer)
			p.ScoringTeam = &t
		}
	case !isNotFound(err):
		return nil, err
	}

	p.SetStatus(models.PointComplete)
	if err := repo.SavePoint(tx, p); err != nil {
		return nil, err
	}
	g.SetScore(p.Score())
	return p, nil
}

// scoreBefore returns the snapshot of the point before number, or 0-0.
func scoreBefore(tx *gorm.DB, gameID string, number int) (models.Score, error) {
	if number <= 1 {
		return models.Score{}, nil
	}
	p, err := repo.GetPointByNumber(tx, gameID, number-1)
	if err != nil {
		return models.Score{}, err
	}
	return p.Score(), nil
}
