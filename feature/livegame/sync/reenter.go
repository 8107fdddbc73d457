package sync

import (
	"context"

	"game-tracker/feature/livegame/models"
	"game-tracker/feature/livegame/remote"
	"game-tracker/feature/livegame/repo"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// reenterOnline fetches the game state and statistics concurrently and replaces the
// stored game and current point with the remote's.
func (c *Coordinator) reenterOnline(ctx context.Context, gameID string, team models.TeamNumber) (*ReenterResult, error) {
	var (
		state *remote.ReenterResponse
		stats *remote.GameStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		state, err = c.client.ReenterGame(gctx, remote.GameRequest{GameID: gameID, Team: team})
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = c.client.GameStats(gctx, gameID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, normalize(msgReenter, err)
	}

	game := state.Game
	if game.ID == "" {
		game.ID = gameID
	}
	actions := state.Actions
	if actions == nil {
		actions = []models.Action{}
	}
	point := state.Point
	if point != nil && point.GameID == "" {
		point.GameID = game.ID
	}

	err := c.session.Transaction(ctx, func(tx *gorm.DB) error {
		if err := repo.SaveGame(tx, &game); err != nil {
			return err
		}
		if err := repo.SaveReferences(tx, &game); err != nil {
			return err
		}
		if point == nil {
			return nil
		}
		return repo.ReplacePoint(tx, point, actions)
	})
	if err != nil {
		return nil, normalize(msgReenter, err)
	}

	result := &ReenterResult{
		Game:    &game,
		Point:   point,
		Actions: actions,
		Roster:  roster(&game, team, stats.ByPlayer()),
		Entry:   entryFor(point, countFor(actions, team)),
	}
	c.logger.Info("Game reentered",
		zap.String("game", gameID),
		zap.String("team", string(team)),
		zap.String("entry", string(result.Entry)),
		zap.Bool("offline", false))
	return result, nil
}

// reenterOffline resumes from the local store. A side that had finished the game is
// put back on its last point with the score from before that point.
func (c *Coordinator) reenterOffline(ctx context.Context, game *models.Game, team models.TeamNumber) (*ReenterResult, error) {
	result := &ReenterResult{Game: game, Actions: []models.Action{}}

	err := c.session.Transaction(ctx, func(tx *gorm.DB) error {
		points, err := repo.ListPoints(tx, game.ID)
		if err != nil {
			return err
		}
		if len(points) == 0 {
			return nil
		}

		latest := points[0]
		if game.Status(team) == models.GameComplete {
			before := models.Score{}
			if len(points) > 1 {
				before = points[1].Score()
			}
			latest.SetScore(before)
			latest.ScoringTeam = nil
			latest.SetStatus(models.PointActive)
			if err := repo.SavePoint(tx, &latest); err != nil {
				return err
			}
			game.SetScore(before)
			game.SetStatus(team, models.GameActive)
			if err := repo.SaveGame(tx, game); err != nil {
				return err
			}
		}

		actions, err := repo.ListPointActions(tx, latest.ID, team)
		if err != nil {
			return err
		}
		result.Point = &latest
		result.Actions = actions
		return nil
	})
	if err != nil {
		return nil, normalize(msgReenter, err)
	}

	result.Roster = roster(game, team, nil)
	result.Entry = entryFor(result.Point, len(result.Actions))
	c.logger.Info("Game reentered",
		zap.String("game", game.ID),
		zap.String("team", string(team)),
		zap.String("entry", string(result.Entry)),
		zap.Bool("offline", true))
	return result, nil
}

func countFor(actions []models.Action, team models.TeamNumber) int {
	n := 0
	for _, a := range actions {
		if a.TeamNumber == team || a.TeamNumber == "" {
			n++
		}
	}
	return n
}
