package sync

import (
	"context"
	"sort"

	"game-tracker/core/apperror"
	"game-tracker/feature/livegame/models"
	"game-tracker/feature/livegame/remote"
	"game-tracker/feature/livegame/repo"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PlanPush builds the payload a push of gameID would upload without sending it.
func (c *Coordinator) PlanPush(ctx context.Context, gameID string) (*PushPlan, error) {
	db := c.session.DB(ctx)

	game, err := repo.GetGame(db, gameID)
	if err != nil {
		return nil, normalize(msgPush, err)
	}
	if !game.Offline {
		return nil, apperror.Validation(msgPush + ": game is not offline")
	}

	points, err := repo.ListPoints(db, gameID)
	if err != nil {
		return nil, normalize(msgPush, err)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].PointNumber < points[j].PointNumber })

	plan := &PushPlan{
		GameID:  gameID,
		Points:  len(points),
		Payload: remote.FullGamePayload{Game: *game, Points: make([]remote.PointPayload, 0, len(points))},
	}
	for _, p := range points {
		actions, err := repo.ListActions(db, p.ID)
		if err != nil {
			return nil, normalize(msgPush, err)
		}
		if actions == nil {
			actions = []models.Action{}
		}
		plan.Actions += len(actions)
		plan.Payload.Points = append(plan.Payload.Points, remote.PointPayload{Point: p, Actions: actions})
	}
	return plan, nil
}

// PushOfflineGame uploads an offline game in one remote call and removes it locally
// once the remote accepts it. Concurrent pushes of the same game share one upload.
func (c *Coordinator) PushOfflineGame(ctx context.Context, gameID string) (*PushResult, error) {
	v, err, shared := c.pushes.Do(gameID, func() (any, error) {
		return c.push(ctx, gameID)
	})
	if shared {
		c.logger.Debug("Push collapsed into one upload", zap.String("game", gameID))
	}
	if err != nil {
		return nil, err
	}
	return v.(*PushResult), nil
}

func (c *Coordinator) push(ctx context.Context, gameID string) (*PushResult, error) {
	plan, err := c.PlanPush(ctx, gameID)
	if err != nil {
		return nil, err
	}
	result := &PushResult{PushPlan: *plan}

	if c.archiver != nil {
		name, err := c.archiver.Store(ctx, plan.Payload)
		if err != nil {
			c.logger.Warn("Archive failed, pushing anyway", zap.String("game", gameID), zap.Error(err))
		} else {
			result.Archive = name
		}
	}

	if _, err := c.client.PushFullGame(ctx, plan.Payload); err != nil {
		return nil, normalize(msgPush, err)
	}

	err = c.session.Transaction(ctx, func(tx *gorm.DB) error {
		return repo.DeleteGameTree(tx, gameID)
	})
	if err != nil {
		return nil, normalize(msgPush, err)
	}

	c.logger.Info("Offline game pushed",
		zap.String("game", gameID),
		zap.Int("points", plan.Points),
		zap.Int("actions", plan.Actions))
	return result, nil
}
