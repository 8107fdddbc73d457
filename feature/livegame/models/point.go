package models

// Point is one possession-to-possession unit of play.
type Point struct {
	ID          string `gorm:"column:id;primaryKey" json:"_id"`
	GameID      string `gorm:"column:game_id;uniqueIndex:idx_points_game_number" json:"gameId"`
	PointNumber int    `gorm:"column:point_number;uniqueIndex:idx_points_game_number" json:"pointNumber"`

	TeamOneScore int `gorm:"column:team_one_score" json:"teamOneScore"`
	TeamTwoScore int `gorm:"column:team_two_score" json:"teamTwoScore"`

	TeamOnePlayers       PlayerList `gorm:"column:team_one_players;type:text;serializer:json" json:"teamOnePlayers"`
	TeamTwoPlayers       PlayerList `gorm:"column:team_two_players;type:text;serializer:json" json:"teamTwoPlayers"`
	TeamOneActivePlayers PlayerList `gorm:"column:team_one_active_players;type:text;serializer:json" json:"teamOneActivePlayers"`
	TeamTwoActivePlayers PlayerList `gorm:"column:team_two_active_players;type:text;serializer:json" json:"teamTwoActivePlayers"`

	PullingTeam   Team  `gorm:"column:pulling_team;type:text;serializer:json" json:"pullingTeam"`
	ReceivingTeam Team  `gorm:"column:receiving_team;type:text;serializer:json" json:"receivingTeam"`
	ScoringTeam   *Team `gorm:"column:scoring_team;type:text;serializer:json" json:"scoringTeam,omitempty"`

	TeamOneStatus PointStatus `gorm:"column:team_one_status" json:"teamOneStatus"`
	TeamTwoStatus PointStatus `gorm:"column:team_two_status" json:"teamTwoStatus"`
}

// TableName overrides the table name for points.
func (Point) TableName() string {
	return "points"
}

// ActivePlayers returns the players on the field for a side.
func (p *Point) ActivePlayers(team TeamNumber) PlayerList {
	if team == TeamTwo {
		return p.TeamTwoActivePlayers
	}
	return p.TeamOneActivePlayers
}

// SetActivePlayers replaces the players on the field for a side.
func (p *Point) SetActivePlayers(team TeamNumber, players PlayerList) {
	if team == TeamTwo {
		p.TeamTwoActivePlayers = players
		return
	}
	p.TeamOneActivePlayers = players
}

// Status returns a side's lifecycle status.
func (p *Point) Status(team TeamNumber) PointStatus {
	if team == TeamTwo {
		return p.TeamTwoStatus
	}
	return p.TeamOneStatus
}

// SetStatus sets both sides' lifecycle status.
func (p *Point) SetStatus(status PointStatus) {
	p.TeamOneStatus = status
	p.TeamTwoStatus = status
}

// Score returns the point's score snapshot.
func (p *Point) Score() Score {
	return Score{TeamOne: p.TeamOneScore, TeamTwo: p.TeamTwoScore}
}

// SetScore replaces the point's score snapshot.
func (p *Point) SetScore(s Score) {
	p.TeamOneScore = s.TeamOne
	p.TeamTwoScore = s.TeamTwo
}
