package models

// Action is one recorded in-game event.
type Action struct {
	ID           string     `gorm:"column:id;primaryKey" json:"_id"`
	PointID      string     `gorm:"column:point_id;uniqueIndex:idx_actions_point_team_number" json:"pointId"`
	TeamNumber   TeamNumber `gorm:"column:team_number;uniqueIndex:idx_actions_point_team_number" json:"teamNumber"`
	ActionNumber int        `gorm:"column:action_number;uniqueIndex:idx_actions_point_team_number" json:"actionNumber"`
	ActionType   ActionType `gorm:"column:action_type" json:"actionType"`

	// PlayerOne is the acting player; for a substitution, the player leaving.
	PlayerOne *Player `gorm:"column:player_one;type:text;serializer:json" json:"playerOne,omitempty"`
	// PlayerTwo is the receiving player; for a substitution, the player coming on.
	PlayerTwo *Player `gorm:"column:player_two;type:text;serializer:json" json:"playerTwo,omitempty"`

	Tags     []string  `gorm:"column:tags;type:text;serializer:json" json:"tags"`
	Comments []Comment `gorm:"column:comments;type:text;serializer:json" json:"comments"`

	// Swap is set on substitutions appended locally. Actions restored from the
	// remote have none.
	Swap *Swap `gorm:"column:swap;type:text;serializer:json" json:"-"`
}

// Swap records which player lists a substitution changed when it was appended.
type Swap struct {
	Field  bool `json:"field"`
	Roster bool `json:"roster"`
}

// TableName overrides the table name for actions.
func (Action) TableName() string {
	return "actions"
}

// IsCompleteSubstitution reports whether a is a substitution naming both players.
func (a *Action) IsCompleteSubstitution() bool {
	return a.ActionType == ActionSubstitution && a.PlayerOne != nil && a.PlayerTwo != nil
}
