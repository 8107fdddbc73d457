package sync

import (
	"context"
	"errors"

	"game-tracker/core/apperror"
	"game-tracker/core/store"
	"game-tracker/feature/livegame/models"
	"game-tracker/feature/livegame/remote"
	"game-tracker/feature/livegame/repo"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Entry is where the wizard resumes a reentered game.
type Entry string

const (
	EntryFirstPoint    Entry = "first_point"
	EntrySelectPlayers Entry = "select_players"
	EntryLogActions    Entry = "log_actions"
)

const (
	msgReenter = "Unable to reenter game"
	msgPush    = "Unable to push game"
	msgGame    = "Unable to retrieve game"
)

// Archiver stores a copy of a payload before it is pushed.
type Archiver interface {
	Store(ctx context.Context, payload remote.FullGamePayload) (string, error)
}

// RosterPlayer is a rostered player with the statistics accumulated so far.
type RosterPlayer struct {
	models.Player
	Stats remote.PlayerStats `json:"stats"`
}

// ReenterResult is the state a game resumes from.
type ReenterResult struct {
	Game    *models.Game    `json:"game"`
	Point   *models.Point   `json:"point,omitempty"`
	Actions []models.Action `json:"actions"`
	Roster  []RosterPlayer  `json:"roster"`
	Entry   Entry           `json:"entry"`
}

// PushPlan summarizes what a push would upload.
type PushPlan struct {
	GameID  string                 `json:"gameId"`
	Points  int                    `json:"points"`
	Actions int                    `json:"actions"`
	Payload remote.FullGamePayload `json:"-"`
}

// PushResult reports a completed push.
type PushResult struct {
	PushPlan
	Archive string `json:"archive,omitempty"`
}

// Coordinator reconciles the local store with the remote authority at game entry
// and exit.
type Coordinator struct {
	session  *store.Session
	client   remote.Client
	archiver Archiver
	logger   *zap.Logger
	pushes   singleflight.Group
}

// New creates a coordinator. archiver may be nil.
func New(session *store.Session, client remote.Client, archiver Archiver, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		session:  session,
		client:   client,
		archiver: archiver,
		logger:   logger,
	}
}

// ReenterGame resumes gameID for team from whichever side is authoritative: the
// local store for offline games, the remote otherwise. A game not stored locally is
// resumed from the remote.
func (c *Coordinator) ReenterGame(ctx context.Context, gameID string, team models.TeamNumber) (*ReenterResult, error) {
	if !team.Valid() {
		return nil, apperror.Validation(msgReenter + ": unknown team")
	}

	game, err := repo.GetGame(c.session.DB(ctx), gameID)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return c.reenterOnline(ctx, gameID, team)
	case err != nil:
		return nil, normalize(msgReenter, err)
	case game.Offline:
		return c.reenterOffline(ctx, game, team)
	default:
		return c.reenterOnline(ctx, gameID, team)
	}
}

func normalize(message string, err error) error {
	var ae *apperror.Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, repo.ErrNotFound) {
		return apperror.NotFound(msgGame, err)
	}
	return apperror.Wrap(message, err)
}

func entryFor(point *models.Point, actions int) Entry {
	switch {
	case point == nil:
		return EntryFirstPoint
	case actions == 0:
		return EntrySelectPlayers
	default:
		return EntryLogActions
	}
}

func roster(game *models.Game, team models.TeamNumber, stats map[string]remote.PlayerStats) []RosterPlayer {
	players := game.Players(team)
	out := make([]RosterPlayer, 0, len(players))
	for _, p := range players {
		s, ok := stats[p.ID]
		if !ok {
			s = remote.PlayerStats{PlayerID: p.ID}
		}
		out = append(out, RosterPlayer{Player: p, Stats: s})
	}
	return out
}
