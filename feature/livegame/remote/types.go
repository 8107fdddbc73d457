package remote

import "game-tracker/feature/livegame/models"

// NextPointRequest advances a game past PointNumber. PointNumber 0 starts the game.
type NextPointRequest struct {
	GameID      string            `json:"gameId"`
	Team        models.TeamNumber `json:"team"`
	PointNumber int               `json:"pointNumber"`
	PullingTeam models.Team       `json:"pullingTeam"`
}

// BackPointRequest reverts a game from PointNumber to the point before it.
type BackPointRequest struct {
	GameID      string            `json:"gameId"`
	Team        models.TeamNumber `json:"team"`
	PointNumber int               `json:"pointNumber"`
}

// PointResponse carries an authoritative point.
type PointResponse struct {
	Point models.Point `json:"point"`
}

// PointWithActionsResponse carries an authoritative point and its action log.
type PointWithActionsResponse struct {
	Point   models.Point    `json:"point"`
	Actions []models.Action `json:"actions"`
}

// GameRequest addresses a whole game from one side.
type GameRequest struct {
	GameID string            `json:"gameId"`
	Team   models.TeamNumber `json:"team"`
}

// ReenterResponse is the authoritative state of a game being resumed.
type ReenterResponse struct {
	Game    models.Game     `json:"game"`
	Team    models.Team     `json:"team"`
	Point   *models.Point   `json:"point,omitempty"`
	Actions []models.Action `json:"actions"`
}

// GameResponse carries an authoritative game.
type GameResponse struct {
	Game models.Game `json:"game"`
}

// SetPlayersRequest puts Players on the field for a side.
type SetPlayersRequest struct {
	GameID      string            `json:"gameId"`
	Team        models.TeamNumber `json:"team"`
	PointNumber int               `json:"pointNumber"`
	Players     models.PlayerList `json:"players"`
}

// SetPullingTeamRequest sets which team pulls a point.
type SetPullingTeamRequest struct {
	GameID      string            `json:"gameId"`
	Team        models.TeamNumber `json:"team"`
	PointNumber int               `json:"pointNumber"`
	PullingTeam models.Team       `json:"pullingTeam"`
}

// PointPayload is a point with its full action list, as uploaded by a push.
type PointPayload struct {
	models.Point
	Actions []models.Action `json:"actions"`
}

// FullGamePayload is an offline game with every point it owns.
type FullGamePayload struct {
	Game   models.Game    `json:"game"`
	Points []PointPayload `json:"points"`
}

// ActionCount returns the number of actions across every point.
func (p FullGamePayload) ActionCount() int {
	n := 0
	for _, pt := range p.Points {
		n += len(pt.Actions)
	}
	return n
}

// PlayerStats are the accumulated statistics of one player in a game.
type PlayerStats struct {
	PlayerID     string `json:"_id"`
	Goals        int    `json:"goals"`
	Assists      int    `json:"assists"`
	Blocks       int    `json:"blocks"`
	Drops        int    `json:"drops"`
	Throwaways   int    `json:"throwaways"`
	Stalls       int    `json:"stalls"`
	PlusMinus    int    `json:"plusMinus"`
	PointsPlayed int    `json:"pointsPlayed"`
}

// GameStats are the accumulated statistics of a game.
type GameStats struct {
	GameID  string        `json:"_id"`
	Players []PlayerStats `json:"players"`
}

// ByPlayer indexes the statistics by player id.
func (s *GameStats) ByPlayer() map[string]PlayerStats {
	if s == nil {
		return nil
	}
	out := make(map[string]PlayerStats, len(s.Players))
	for _, p := range s.Players {
		out[p.PlayerID] = p
	}
	return out
}
