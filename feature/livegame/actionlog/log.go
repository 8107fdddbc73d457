package actionlog

import (
	"context"
	"errors"
	"fmt"

	"game-tracker/core/apperror"
	"game-tracker/core/store"
	"game-tracker/feature/livegame/models"
	"game-tracker/feature/livegame/repo"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgAppend = "Unable to record action"
	msgUndo   = "Unable to undo action"
	msgList   = "Unable to retrieve actions"
)

// Log is the per-point action sequence of one game.
type Log struct {
	session   *store.Session
	numbering NumberStrategy
	logger    *zap.Logger
}

// New creates an action log numbering appended actions with numbering.
func New(session *store.Session, numbering NumberStrategy, logger *zap.Logger) *Log {
	return &Log{session: session, numbering: numbering, logger: logger}
}

// Append records action on pointID. A substitution naming both players swaps them in
// the point's active list for the recording side, and in the game roster when the
// point is the first one.
func (l *Log) Append(ctx context.Context, pointID string, action models.Action) (*models.Action, error) {
	if !action.TeamNumber.Valid() {
		return nil, apperror.Validation("Unable to record action: unknown team")
	}
	if !action.ActionType.Valid() {
		return nil, apperror.Validation("Unable to record action: unknown action type")
	}

	err := l.session.Transaction(ctx, func(tx *gorm.DB) error {
		point, err := repo.GetPoint(tx, pointID)
		if err != nil {
			return err
		}
		game, err := repo.GetGame(tx, point.GameID)
		if err != nil {
			return err
		}

		active := point.ActivePlayers(action.TeamNumber)
		if len(active) != game.PlayersPerPoint {
			return apperror.Validation(fmt.Sprintf(
				"Unable to record action: %d players on the field, %d required", len(active), game.PlayersPerPoint))
		}

		number, err := l.numbering.Next(tx, pointID, action.TeamNumber, action.ActionNumber)
		if err != nil {
			if errors.Is(err, ErrInvalidNumber) {
				return apperror.Validation("Unable to record action: missing action number")
			}
			return err
		}
		action.ActionNumber = number
		action.PointID = pointID
		if action.ID == "" {
			action.ID = uuid.NewString()
		}
		if action.Tags == nil {
			action.Tags = []string{}
		}
		if action.Comments == nil {
			action.Comments = []models.Comment{}
		}

		action.Swap = nil
		if action.IsCompleteSubstitution() {
			swap, err := substitute(tx, game, point, action.TeamNumber, action.PlayerOne.ID, *action.PlayerTwo)
			if err != nil {
				return err
			}
			action.Swap = &swap
		}
		return repo.CreateAction(tx, &action)
	})
	if err != nil {
		return nil, normalize(msgAppend, err)
	}

	l.logger.Debug("Action recorded",
		zap.String("point", pointID),
		zap.String("team", string(action.TeamNumber)),
		zap.Int("number", action.ActionNumber),
		zap.String("type", string(action.ActionType)))
	return &action, nil
}

// Undo removes the highest-numbered action team recorded on pointID and reverses its
// substitution side effect. It returns the removed action, or nil when the point
// has none.
func (l *Log) Undo(ctx context.Context, pointID string, team models.TeamNumber) (*models.Action, error) {
	var removed *models.Action
	err := l.session.Transaction(ctx, func(tx *gorm.DB) error {
		last, err := repo.LastAction(tx, pointID, team)
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if last.IsCompleteSubstitution() {
			point, err := repo.GetPoint(tx, pointID)
			if err != nil {
				return err
			}
			game, err := repo.GetGame(tx, point.GameID)
			if err != nil {
				return err
			}
			if err := reverse(tx, game, point, team, last); err != nil {
				return err
			}
		}

		if err := repo.DeleteAction(tx, last.ID); err != nil {
			return err
		}
		removed = last
		return nil
	})
	if err != nil {
		return nil, normalize(msgUndo, err)
	}

	if removed != nil {
		l.logger.Debug("Action undone",
			zap.String("point", pointID),
			zap.Int("number", removed.ActionNumber),
			zap.String("type", string(removed.ActionType)))
	}
	return removed, nil
}

// List returns the actions team recorded on pointID in number order.
func (l *Log) List(ctx context.Context, pointID string, team models.TeamNumber) ([]models.Action, error) {
	actions, err := repo.ListPointActions(l.session.DB(ctx), pointID, team)
	if err != nil {
		return nil, normalize(msgList, err)
	}
	return actions, nil
}

// Last returns the most recent action team recorded on pointID, or nil.
func (l *Log) Last(ctx context.Context, pointID string, team models.TeamNumber) (*models.Action, error) {
	action, err := repo.LastAction(l.session.DB(ctx), pointID, team)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, normalize(msgList, err)
	}
	return action, nil
}

// Count returns how many actions team recorded on pointID.
func (l *Log) Count(ctx context.Context, pointID string, team models.TeamNumber) (int64, error) {
	n, err := repo.CountActions(l.session.DB(ctx), pointID, team)
	if err != nil {
		return 0, normalize(msgList, err)
	}
	return n, nil
}

// substitute swaps outID for in on the point's active list and, on the first point,
// the game roster. Lists that do not hold outID, or already hold in, are left alone.
// The returned Swap reports which lists changed.
func substitute(tx *gorm.DB, game *models.Game, point *models.Point, team models.TeamNumber, outID string, in models.Player) (models.Swap, error) {
	var swap models.Swap
	if active, ok := point.ActivePlayers(team).Replace(outID, in); ok {
		point.SetActivePlayers(team, active)
		if err := repo.SavePoint(tx, point); err != nil {
			return swap, err
		}
		swap.Field = true
	}

	if point.PointNumber != 1 {
		return swap, nil
	}
	if roster, ok := game.Players(team).Replace(outID, in); ok {
		game.SetPlayers(team, roster)
		if err := repo.SaveGame(tx, game); err != nil {
			return swap, err
		}
		swap.Roster = true
	}
	return swap, nil
}

// reverse undoes the lists a substitution changed. Without a recorded Swap both
// lists are swapped back wherever the incoming player still stands.
func reverse(tx *gorm.DB, game *models.Game, point *models.Point, team models.TeamNumber, action *models.Action) error {
	outID, in := action.PlayerTwo.ID, *action.PlayerOne
	if action.Swap == nil {
		_, err := substitute(tx, game, point, team, outID, in)
		return err
	}

	if action.Swap.Field {
		if active, ok := point.ActivePlayers(team).Replace(outID, in); ok {
			point.SetActivePlayers(team, active)
			if err := repo.SavePoint(tx, point); err != nil {
				return err
			}
		}
	}
	if action.Swap.Roster {
		if roster, ok := game.Players(team).Replace(outID, in); ok {
			game.SetPlayers(team, roster)
			if err := repo.SaveGame(tx, game); err != nil {
				return err
			}
		}
	}
	return nil
}

func normalize(message string, err error) error {
	var ae *apperror.Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, repo.ErrNotFound) {
		return apperror.NotFound("Unable to retrieve point", err)
	}
	return apperror.Wrap(message, err)
}
