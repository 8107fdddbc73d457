package wizard

import (
	"context"
	"fmt"

	"game-tracker/core/apperror"
	"game-tracker/feature/livegame/models"
	"game-tracker/feature/livegame/transition"

	"go.uber.org/zap"
)

// State is a step of the per-point cycle.
type State string

const (
	// SelectPlayers is where the players for the point are chosen.
	SelectPlayers State = "select_players"
	// LogActions is where the point's events are recorded.
	LogActions State = "log_actions"
)

// Transitions are the point operations the wizard drives.
type Transitions interface {
	Game(ctx context.Context) (*models.Game, error)
	CurrentPoint(ctx context.Context) (*models.Point, error)
	FirstPoint(ctx context.Context, pulling models.TeamNumber) (*models.Point, error)
	NextPoint(ctx context.Context, pulling models.TeamNumber) (*models.Point, error)
	BackPoint(ctx context.Context) (*models.Point, error)
	FinishGame(ctx context.Context) (transition.Destination, error)
	SetPlayers(ctx context.Context, players models.PlayerList) (*models.Point, error)
	SetPullingTeam(ctx context.Context, pulling models.TeamNumber) (*models.Point, error)
}

// Actions is the action log the wizard records into.
type Actions interface {
	Append(ctx context.Context, pointID string, action models.Action) (*models.Action, error)
	Undo(ctx context.Context, pointID string, team models.TeamNumber) (*models.Action, error)
	Last(ctx context.Context, pointID string, team models.TeamNumber) (*models.Action, error)
	Count(ctx context.Context, pointID string, team models.TeamNumber) (int64, error)
}

// Wizard gates point transitions for one side of one game. It is not safe for
// concurrent use.
type Wizard struct {
	ops             Transitions
	actions         Actions
	team            models.TeamNumber
	playersPerPoint int
	state           State
	point           *models.Point
	logger          *zap.Logger
}

// New creates a wizard for team. Call Restore before use.
func New(ops Transitions, actions Actions, team models.TeamNumber, logger *zap.Logger) *Wizard {
	return &Wizard{
		ops:     ops,
		actions: actions,
		team:    team,
		state:   SelectPlayers,
		logger:  logger,
	}
}

// State returns the current step.
func (w *Wizard) State() State {
	return w.state
}

// Point returns the point being played, or nil before the first point.
func (w *Wizard) Point() *models.Point {
	return w.point
}

// Team returns the side the wizard records for.
func (w *Wizard) Team() models.TeamNumber {
	return w.team
}

// Restore reloads the game and its current point and enters state.
func (w *Wizard) Restore(ctx context.Context, state State) error {
	game, err := w.ops.Game(ctx)
	if err != nil {
		return err
	}
	point, err := w.ops.CurrentPoint(ctx)
	if err != nil {
		return err
	}
	if point == nil || state != LogActions {
		state = SelectPlayers
	}

	w.playersPerPoint = game.PlayersPerPoint
	w.point = point
	w.state = state
	return nil
}

// StartFirstPoint creates the first point of the game.
func (w *Wizard) StartFirstPoint(ctx context.Context, pulling models.TeamNumber) (*models.Point, error) {
	if w.point != nil {
		return nil, apperror.Validation("Unable to start game: game already started")
	}
	point, err := w.ops.FirstPoint(ctx, pulling)
	if err != nil {
		return nil, err
	}
	w.enter(SelectPlayers, point)
	return point, nil
}

// CanCommit reports whether players can be committed for the current point.
func (w *Wizard) CanCommit(players models.PlayerList) bool {
	return w.state == SelectPlayers && w.point != nil && len(players) == w.playersPerPoint
}

// CommitPlayers puts players on the field and moves to LogActions.
func (w *Wizard) CommitPlayers(ctx context.Context, players models.PlayerList) (*models.Point, error) {
	if !w.CanCommit(players) {
		if w.state == SelectPlayers && w.point != nil {
			return nil, apperror.Validation(fmt.Sprintf(
				"Unable to set players: select exactly %d players", w.playersPerPoint))
		}
		return nil, apperror.Validation("Unable to set players: players are already set")
	}
	point, err := w.ops.SetPlayers(ctx, players)
	if err != nil {
		return nil, err
	}
	w.enter(LogActions, point)
	return point, nil
}

// SetPullingTeam changes which team pulls the current point.
func (w *Wizard) SetPullingTeam(ctx context.Context, pulling models.TeamNumber) (*models.Point, error) {
	if w.point == nil {
		return nil, apperror.Validation("Unable to set pulling team: game not started")
	}
	point, err := w.ops.SetPullingTeam(ctx, pulling)
	if err != nil {
		return nil, err
	}
	w.point = point
	return point, nil
}

// Record appends action for the wizard's side on the current point.
func (w *Wizard) Record(ctx context.Context, action models.Action) (*models.Action, error) {
	if w.state != LogActions {
		return nil, apperror.Validation("Unable to record action: select players first")
	}
	action.TeamNumber = w.team
	recorded, err := w.actions.Append(ctx, w.point.ID, action)
	if err != nil {
		return nil, err
	}
	if err := w.refresh(ctx); err != nil {
		return nil, err
	}
	return recorded, nil
}

// Undo removes the last action the wizard's side recorded on the current point.
func (w *Wizard) Undo(ctx context.Context) (*models.Action, error) {
	if w.state != LogActions {
		return nil, apperror.Validation("Unable to undo action: select players first")
	}
	removed, err := w.actions.Undo(ctx, w.point.ID, w.team)
	if err != nil {
		return nil, err
	}
	if err := w.refresh(ctx); err != nil {
		return nil, err
	}
	return removed, nil
}

// CanAdvance reports whether the current point has been scored.
func (w *Wizard) CanAdvance(ctx context.Context) (bool, error) {
	if w.state != LogActions {
		return false, nil
	}
	last, err := w.actions.Last(ctx, w.point.ID, w.team)
	if err != nil {
		return false, err
	}
	return last != nil && last.ActionType.IsScore(), nil
}

// Advance completes the scored point and starts the next one.
func (w *Wizard) Advance(ctx context.Context, pulling models.TeamNumber) (*models.Point, error) {
	ok, err := w.CanAdvance(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Validation("Unable to advance point: point has not been scored")
	}
	point, err := w.ops.NextPoint(ctx, pulling)
	if err != nil {
		return nil, err
	}
	w.enter(SelectPlayers, point)
	return point, nil
}

// CanGoBack reports whether Back is permitted.
func (w *Wizard) CanGoBack(ctx context.Context) (bool, error) {
	if w.point == nil {
		return false, nil
	}
	if w.state == SelectPlayers {
		return w.point.PointNumber > 1, nil
	}
	n, err := w.actions.Count(ctx, w.point.ID, w.team)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// Back steps back one state. From SelectPlayers the previous point is restored; from
// LogActions the wizard returns to SelectPlayers without touching any data.
func (w *Wizard) Back(ctx context.Context) (*models.Point, error) {
	ok, err := w.CanGoBack(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		if w.state == LogActions {
			return nil, apperror.Validation("Unable to go back: undo recorded actions first")
		}
		return nil, apperror.Validation("Unable to go back a point: already on the first point")
	}

	if w.state == LogActions {
		w.state = SelectPlayers
		return w.point, nil
	}

	point, err := w.ops.BackPoint(ctx)
	if err != nil {
		return nil, err
	}
	w.enter(LogActions, point)
	return point, nil
}

// Finish ends the game.
func (w *Wizard) Finish(ctx context.Context) (transition.Destination, error) {
	if w.point == nil {
		return "", apperror.Validation("Unable to finish game: game not started")
	}
	dest, err := w.ops.FinishGame(ctx)
	if err != nil {
		return "", err
	}
	w.point = nil
	w.state = SelectPlayers
	return dest, nil
}

func (w *Wizard) enter(state State, point *models.Point) {
	w.logger.Debug("Wizard transition",
		zap.String("from", string(w.state)),
		zap.String("to", string(state)),
		zap.Int("point", point.PointNumber))
	w.state = state
	w.point = point
}

// refresh reloads the current point so roster changes made by substitutions show.
func (w *Wizard) refresh(ctx context.Context) error {
	point, err := w.ops.CurrentPoint(ctx)
	if err != nil {
		return err
	}
	if point != nil {
		w.point = point
	}
	return nil
}
