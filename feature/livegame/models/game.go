package models

import "time"

// Game is a live game as held by the local store.
type Game struct {
	ID      string `gorm:"column:id;primaryKey" json:"_id"`
	Creator Player `gorm:"column:creator;type:text;serializer:json" json:"creator"`

	TeamOne        Team `gorm:"column:team_one;type:text;serializer:json" json:"teamOne"`
	TeamTwo        Team `gorm:"column:team_two;type:text;serializer:json" json:"teamTwo"`
	TeamTwoDefined bool `gorm:"column:team_two_defined" json:"teamTwoDefined"`

	TeamOnePlayers PlayerList `gorm:"column:team_one_players;type:text;serializer:json" json:"teamOnePlayers"`
	TeamTwoPlayers PlayerList `gorm:"column:team_two_players;type:text;serializer:json" json:"teamTwoPlayers"`

	TeamOneScore  int        `gorm:"column:team_one_score" json:"teamOneScore"`
	TeamTwoScore  int        `gorm:"column:team_two_score" json:"teamTwoScore"`
	TeamOneStatus GameStatus `gorm:"column:team_one_status" json:"teamOneStatus"`
	TeamTwoStatus GameStatus `gorm:"column:team_two_status" json:"teamTwoStatus"`
	TeamOneActive bool       `gorm:"column:team_one_active" json:"teamOneActive"`
	TeamTwoActive bool       `gorm:"column:team_two_active" json:"teamTwoActive"`

	Offline bool `gorm:"column:offline" json:"offline"`

	ScoreLimit      int       `gorm:"column:score_limit" json:"scoreLimit"`
	HalfScore       int       `gorm:"column:half_score" json:"halfScore"`
	StartTime       time.Time `gorm:"column:start_time" json:"startTime"`
	SoftcapMins     int       `gorm:"column:softcap_mins" json:"softcapMins"`
	HardcapMins     int       `gorm:"column:hardcap_mins" json:"hardcapMins"`
	PlayersPerPoint int       `gorm:"column:players_per_point" json:"playersPerPoint"`
	TimeoutPerHalf  int       `gorm:"column:timeout_per_half" json:"timeoutPerHalf"`
	FloaterTimeout  bool      `gorm:"column:floater_timeout" json:"floaterTimeout"`

	Tournament  *Tournament `gorm:"column:tournament;type:text;serializer:json" json:"tournament,omitempty"`
	ResolveCode string      `gorm:"column:resolve_code" json:"resolveCode"`
	TotalPoints int         `gorm:"column:total_points" json:"totalPoints"`
}

// TableName overrides the table name for games.
func (Game) TableName() string {
	return "games"
}

// Team returns the team reference for a side.
func (g *Game) Team(team TeamNumber) Team {
	if team == TeamTwo {
		return g.TeamTwo
	}
	return g.TeamOne
}

// Players returns the roster for a side.
func (g *Game) Players(team TeamNumber) PlayerList {
	if team == TeamTwo {
		return g.TeamTwoPlayers
	}
	return g.TeamOnePlayers
}

// SetPlayers replaces the roster for a side.
func (g *Game) SetPlayers(team TeamNumber, players PlayerList) {
	if team == TeamTwo {
		g.TeamTwoPlayers = players
		return
	}
	g.TeamOnePlayers = players
}

// Status returns a side's lifecycle status.
func (g *Game) Status(team TeamNumber) GameStatus {
	if team == TeamTwo {
		return g.TeamTwoStatus
	}
	return g.TeamOneStatus
}

// SetStatus sets a side's lifecycle status.
func (g *Game) SetStatus(team TeamNumber, status GameStatus) {
	if team == TeamTwo {
		g.TeamTwoStatus = status
		return
	}
	g.TeamOneStatus = status
}

// SetScore copies a score snapshot onto the running score.
func (g *Game) SetScore(s Score) {
	g.TeamOneScore = s.TeamOne
	g.TeamTwoScore = s.TeamTwo
}

// Score returns the running score.
func (g *Game) Score() Score {
	return Score{TeamOne: g.TeamOneScore, TeamTwo: g.TeamTwoScore}
}

// Score is a pair of team scores.
type Score struct {
	TeamOne int `json:"teamOneScore"`
	TeamTwo int `json:"teamTwoScore"`
}

// Add returns s with one goal credited to team.
func (s Score) Add(team TeamNumber) Score {
	if team == TeamTwo {
		s.TeamTwo++
	} else {
		s.TeamOne++
	}
	return s
}
