package transition

import (
	"context"
	"errors"

	"game-tracker/core/apperror"
	"game-tracker/core/store"
	"game-tracker/feature/livegame/models"
	"game-tracker/feature/livegame/repo"

	"go.uber.org/zap"
)

// Destination is where the caller goes once a game is finished.
type Destination string

// DestinationGameSummary is the post-game summary view.
const DestinationGameSummary Destination = "game_summary"

const (
	msgRetrieveGame  = "Unable to retrieve game"
	msgRetrievePoint = "Unable to retrieve point"
	msgFirstPoint    = "Unable to start game"
	msgNextPoint     = "Unable to advance point"
	msgBackPoint     = "Unable to go back a point"
	msgFinish        = "Unable to finish game"
	msgSetPlayers    = "Unable to set players"
	msgPulling       = "Unable to set pulling team"
)

// Operations are the point transitions of one game, as seen from one side.
type Operations struct {
	session *store.Session
	backend Backend
	gameID  string
	team    models.TeamNumber
	logger  *zap.Logger
}

// NewOperations creates the transitions of gameID for team, executed by backend.
func NewOperations(session *store.Session, backend Backend, gameID string, team models.TeamNumber, logger *zap.Logger) *Operations {
	return &Operations{
		session: session,
		backend: backend,
		gameID:  gameID,
		team:    team,
		logger:  logger.With(zap.String("game", gameID), zap.String("team", string(team))),
	}
}

// Team returns the side the operations act for.
func (o *Operations) Team() models.TeamNumber {
	return o.team
}

// Game loads the game.
func (o *Operations) Game(ctx context.Context) (*models.Game, error) {
	game, err := repo.GetGame(o.session.DB(ctx), o.gameID)
	if err != nil {
		return nil, normalize(msgRetrieveGame, err)
	}
	return game, nil
}

// CurrentPoint returns the highest-numbered point of the game, or nil before the
// first point.
func (o *Operations) CurrentPoint(ctx context.Context) (*models.Point, error) {
	point, err := repo.LatestPoint(o.session.DB(ctx), o.gameID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, normalize(msgRetrievePoint, err)
	}
	return point, nil
}

// FirstPoint starts the game with pulling as the pulling team.
func (o *Operations) FirstPoint(ctx context.Context, pulling models.TeamNumber) (*models.Point, error) {
	if !pulling.Valid() {
		return nil, apperror.Validation(msgFirstPoint + ": unknown pulling team")
	}
	game, current, err := o.load(ctx)
	if err != nil {
		return nil, err
	}
	if current != nil {
		return nil, apperror.Validation(msgFirstPoint + ": game already started")
	}

	point, err := o.backend.NextPoint(ctx, game, nil, o.team, pulling)
	if err != nil {
		return nil, normalize(msgFirstPoint, err)
	}
	return point, nil
}

// NextPoint completes the current point and starts the next one.
func (o *Operations) NextPoint(ctx context.Context, pulling models.TeamNumber) (*models.Point, error) {
	if !pulling.Valid() {
		return nil, apperror.Validation(msgNextPoint + ": unknown pulling team")
	}
	game, current, err := o.load(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperror.NotFound(msgRetrievePoint, repo.ErrNotFound)
	}

	point, err := o.backend.NextPoint(ctx, game, current, o.team, pulling)
	if err != nil {
		return nil, normalize(msgNextPoint, err)
	}
	return point, nil
}

// BackPoint removes the current point and reactivates the one before it.
func (o *Operations) BackPoint(ctx context.Context) (*models.Point, error) {
	game, current, err := o.load(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperror.NotFound(msgRetrievePoint, repo.ErrNotFound)
	}
	if current.PointNumber <= 1 {
		return nil, apperror.Validation(msgBackPoint + ": already on the first point")
	}

	point, err := o.backend.BackPoint(ctx, game, current, o.team)
	if err != nil {
		return nil, normalize(msgBackPoint, err)
	}
	return point, nil
}

// FinishGame ends the game and returns where the caller goes next.
func (o *Operations) FinishGame(ctx context.Context) (Destination, error) {
	game, current, err := o.load(ctx)
	if err != nil {
		return "", err
	}
	if err := o.backend.FinishGame(ctx, game, current, o.team); err != nil {
		return "", normalize(msgFinish, err)
	}
	o.logger.Info("Game finished", zap.Bool("offline", game.Offline))
	return DestinationGameSummary, nil
}

// SetPlayers puts players on the field for the current point.
func (o *Operations) SetPlayers(ctx context.Context, players models.PlayerList) (*models.Point, error) {
	game, current, err := o.load(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperror.NotFound(msgRetrievePoint, repo.ErrNotFound)
	}
	if len(players) != game.PlayersPerPoint {
		return nil, apperror.Validation(msgSetPlayers + ": wrong number of players")
	}
	if players.HasDuplicates() {
		return nil, apperror.Validation(msgSetPlayers + ": player listed twice")
	}

	point, err := o.backend.SetPlayers(ctx, game, current, o.team, players)
	if err != nil {
		return nil, normalize(msgSetPlayers, err)
	}
	return point, nil
}

// SetPullingTeam changes which team pulls the current point.
func (o *Operations) SetPullingTeam(ctx context.Context, pulling models.TeamNumber) (*models.Point, error) {
	if !pulling.Valid() {
		return nil, apperror.Validation(msgPulling + ": unknown pulling team")
	}
	game, current, err := o.load(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperror.NotFound(msgRetrievePoint, repo.ErrNotFound)
	}

	point, err := o.backend.SetPullingTeam(ctx, game, current, o.team, pulling)
	if err != nil {
		return nil, normalize(msgPulling, err)
	}
	return point, nil
}

func (o *Operations) load(ctx context.Context) (*models.Game, *models.Point, error) {
	game, err := o.Game(ctx)
	if err != nil {
		return nil, nil, err
	}
	current, err := o.CurrentPoint(ctx)
	if err != nil {
		return nil, nil, err
	}
	return game, current, nil
}

// normalize turns a store or remote failure into an apperror. Errors that are already
// normalized keep their message.
func normalize(message string, err error) error {
	var ae *apperror.Error
	if errors.As(err, &ae) {
		return err
	}
	if isNotFound(err) {
		return apperror.NotFound(msgRetrievePoint, err)
	}
	return apperror.Wrap(message, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, repo.ErrNotFound)
}
