package livegame

import (
	"context"
	"errors"
	"sync"

	"game-tracker/core/apperror"
	"game-tracker/core/store"
	"game-tracker/feature/livegame/actionlog"
	"game-tracker/feature/livegame/models"
	"game-tracker/feature/livegame/remote"
	"game-tracker/feature/livegame/repo"
	gamesync "game-tracker/feature/livegame/sync"
	"game-tracker/feature/livegame/transition"
	"game-tracker/feature/livegame/wizard"

	"go.uber.org/zap"
)

// WizardView is the state of a game's wizard as exposed to callers.
type WizardView struct {
	GameID     string            `json:"gameId"`
	Team       models.TeamNumber `json:"team"`
	State      wizard.State      `json:"state"`
	Point      *models.Point     `json:"point,omitempty"`
	Actions    []models.Action   `json:"actions"`
	CanAdvance bool              `json:"canAdvance"`
	CanGoBack  bool              `json:"canGoBack"`
}

type wizardKey struct {
	gameID string
	team   models.TeamNumber
}

type session struct {
	wizard *wizard.Wizard
	log    *actionlog.Log
}

// Service drives live games: one wizard per game and side.
type Service struct {
	store       *store.Session
	client      remote.Client
	coordinator *gamesync.Coordinator
	team        models.TeamNumber
	logger      *zap.Logger

	mu       sync.Mutex
	sessions map[wizardKey]*session
}

// NewService creates a live game service. team is the default side.
func NewService(st *store.Session, client remote.Client, coordinator *gamesync.Coordinator, team models.TeamNumber, logger *zap.Logger) *Service {
	if !team.Valid() {
		team = models.TeamOne
	}
	return &Service{
		store:       st,
		client:      client,
		coordinator: coordinator,
		team:        team,
		logger:      logger,
		sessions:    make(map[wizardKey]*session),
	}
}

// DefaultTeam returns the side used when a request names none.
func (s *Service) DefaultTeam() models.TeamNumber {
	return s.team
}

// Reenter resumes a game and positions its wizard where the game left off.
func (s *Service) Reenter(ctx context.Context, gameID string, team models.TeamNumber) (*gamesync.ReenterResult, error) {
	result, err := s.coordinator.ReenterGame(ctx, gameID, team)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.newSession(result.Game, team)
	state := wizard.SelectPlayers
	if result.Entry == gamesync.EntryLogActions {
		state = wizard.LogActions
	}
	if err := sess.wizard.Restore(ctx, state); err != nil {
		return nil, err
	}
	s.sessions[wizardKey{gameID, team}] = sess
	return result, nil
}

// View returns the wizard state of a game.
func (s *Service) View(ctx context.Context, gameID string, team models.TeamNumber) (*WizardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.open(ctx, gameID, team)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, gameID, sess)
}

// StartFirstPoint creates the first point of a game.
func (s *Service) StartFirstPoint(ctx context.Context, gameID string, team, pulling models.TeamNumber) (*WizardView, error) {
	return s.with(ctx, gameID, team, func(sess *session) error {
		_, err := sess.wizard.StartFirstPoint(ctx, pulling)
		return err
	})
}

// CommitPlayers puts players on the field for the current point.
func (s *Service) CommitPlayers(ctx context.Context, gameID string, team models.TeamNumber, players models.PlayerList) (*WizardView, error) {
	return s.with(ctx, gameID, team, func(sess *session) error {
		_, err := sess.wizard.CommitPlayers(ctx, players)
		return err
	})
}

// SetPullingTeam changes which team pulls the current point.
func (s *Service) SetPullingTeam(ctx context.Context, gameID string, team, pulling models.TeamNumber) (*WizardView, error) {
	return s.with(ctx, gameID, team, func(sess *session) error {
		_, err := sess.wizard.SetPullingTeam(ctx, pulling)
		return err
	})
}

// Record appends an action to the current point.
func (s *Service) Record(ctx context.Context, gameID string, team models.TeamNumber, action models.Action) (*WizardView, error) {
	return s.with(ctx, gameID, team, func(sess *session) error {
		_, err := sess.wizard.Record(ctx, action)
		return err
	})
}

// Undo removes the last action of the current point.
func (s *Service) Undo(ctx context.Context, gameID string, team models.TeamNumber) (*WizardView, error) {
	return s.with(ctx, gameID, team, func(sess *session) error {
		_, err := sess.wizard.Undo(ctx)
		return err
	})
}

// Advance moves a scored point on to the next one.
func (s *Service) Advance(ctx context.Context, gameID string, team, pulling models.TeamNumber) (*WizardView, error) {
	return s.with(ctx, gameID, team, func(sess *session) error {
		_, err := sess.wizard.Advance(ctx, pulling)
		return err
	})
}

// Back steps the wizard back.
func (s *Service) Back(ctx context.Context, gameID string, team models.TeamNumber) (*WizardView, error) {
	return s.with(ctx, gameID, team, func(sess *session) error {
		_, err := sess.wizard.Back(ctx)
		return err
	})
}

// Finish ends a game and forgets its wizard.
func (s *Service) Finish(ctx context.Context, gameID string, team models.TeamNumber) (transition.Destination, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.open(ctx, gameID, team)
	if err != nil {
		return "", err
	}
	dest, err := sess.wizard.Finish(ctx)
	if err != nil {
		return "", err
	}
	delete(s.sessions, wizardKey{gameID, team})
	return dest, nil
}

// PlanPush reports what pushing an offline game would upload.
func (s *Service) PlanPush(ctx context.Context, gameID string) (*gamesync.PushPlan, error) {
	return s.coordinator.PlanPush(ctx, gameID)
}

// Push uploads an offline game and forgets its wizards.
func (s *Service) Push(ctx context.Context, gameID string) (*gamesync.PushResult, error) {
	result, err := s.coordinator.PushOfflineGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.sessions, wizardKey{gameID, models.TeamOne})
	delete(s.sessions, wizardKey{gameID, models.TeamTwo})
	s.mu.Unlock()
	return result, nil
}

func (s *Service) with(ctx context.Context, gameID string, team models.TeamNumber, fn func(*session) error) (*WizardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.open(ctx, gameID, team)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	return s.view(ctx, gameID, sess)
}

// open returns the wizard of a stored game, restoring it from the store the first
// time it is asked for. Callers hold s.mu.
func (s *Service) open(ctx context.Context, gameID string, team models.TeamNumber) (*session, error) {
	if !team.Valid() {
		return nil, apperror.Validation("Unable to open game: unknown team")
	}
	key := wizardKey{gameID, team}
	if sess, ok := s.sessions[key]; ok {
		return sess, nil
	}

	game, err := repo.GetGame(s.store.DB(ctx), gameID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.NotFound("Unable to retrieve game", err)
	}
	if err != nil {
		return nil, apperror.Wrap("Unable to retrieve game", err)
	}

	sess := s.newSession(game, team)
	state := wizard.SelectPlayers
	if point, err := repo.LatestPoint(s.store.DB(ctx), gameID); err == nil {
		n, err := sess.log.Count(ctx, point.ID, team)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			state = wizard.LogActions
		}
	}
	if err := sess.wizard.Restore(ctx, state); err != nil {
		return nil, err
	}
	s.sessions[key] = sess
	return sess, nil
}

func (s *Service) newSession(game *models.Game, team models.TeamNumber) *session {
	backend := transition.ForGame(game, s.store, s.client, s.logger)
	ops := transition.NewOperations(s.store, backend, game.ID, team, s.logger)
	log := actionlog.New(s.store, backend.Numbering(), s.logger)
	return &session{
		wizard: wizard.New(ops, log, team, s.logger),
		log:    log,
	}
}

func (s *Service) view(ctx context.Context, gameID string, sess *session) (*WizardView, error) {
	w := sess.wizard
	v := &WizardView{
		GameID:  gameID,
		Team:    w.Team(),
		State:   w.State(),
		Point:   w.Point(),
		Actions: []models.Action{},
	}
	if v.Point == nil {
		return v, nil
	}

	actions, err := sess.log.List(ctx, v.Point.ID, w.Team())
	if err != nil {
		return nil, err
	}
	v.Actions = actions
	if v.CanAdvance, err = w.CanAdvance(ctx); err != nil {
		return nil, err
	}
	if v.CanGoBack, err = w.CanGoBack(ctx); err != nil {
		return nil, err
	}
	return v, nil
}
