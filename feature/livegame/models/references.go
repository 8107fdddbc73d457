package models

// Player is a reference to a rostered user.
type Player struct {
	ID        string `gorm:"column:id;primaryKey" json:"_id"`
	FirstName string `gorm:"column:first_name" json:"firstName"`
	LastName  string `gorm:"column:last_name" json:"lastName"`
	Username  string `gorm:"column:username" json:"username"`
}

// TableName overrides the table name for players.
func (Player) TableName() string {
	return "players"
}

// Team is a reference to a team. A guest team has no ID.
type Team struct {
	ID          string `gorm:"column:id;primaryKey" json:"_id,omitempty"`
	Place       string `gorm:"column:place" json:"place,omitempty"`
	Name        string `gorm:"column:name" json:"name"`
	TeamName    string `gorm:"column:team_name" json:"teamname,omitempty"`
	SeasonStart string `gorm:"column:season_start" json:"seasonStart,omitempty"`
	SeasonEnd   string `gorm:"column:season_end" json:"seasonEnd,omitempty"`
}

// TableName overrides the table name for teams.
func (Team) TableName() string {
	return "teams"
}

// Tournament is a reference to the event a game belongs to.
type Tournament struct {
	ID        string `gorm:"column:id;primaryKey" json:"_id"`
	Name      string `gorm:"column:name" json:"name"`
	EventID   string `gorm:"column:event_id" json:"eventId"`
	StartDate string `gorm:"column:start_date" json:"startDate,omitempty"`
	EndDate   string `gorm:"column:end_date" json:"endDate,omitempty"`
}

// TableName overrides the table name for tournaments.
func (Tournament) TableName() string {
	return "tournaments"
}

// Comment is a note left on an action.
type Comment struct {
	User    Player `json:"user"`
	Comment string `json:"comment"`
}

// PlayerList is an ordered list of player references.
type PlayerList []Player

// Index returns the position of the player with id, or -1.
func (l PlayerList) Index(id string) int {
	for i, p := range l {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether the player with id is in the list.
func (l PlayerList) Contains(id string) bool {
	return l.Index(id) >= 0
}

// Replace returns a copy of l with the player outID swapped for in, keeping its
// position. ok is false, and l returned unchanged, when outID is absent or in is
// already present.
func (l PlayerList) Replace(outID string, in Player) (PlayerList, bool) {
	i := l.Index(outID)
	if i < 0 || l.Contains(in.ID) {
		return l, false
	}
	out := make(PlayerList, len(l))
	copy(out, l)
	out[i] = in
	return out, true
}

// Clone returns a copy of l that never aliases it.
func (l PlayerList) Clone() PlayerList {
	out := make(PlayerList, len(l))
	copy(out, l)
	return out
}

// HasDuplicates reports whether any player appears twice.
func (l PlayerList) HasDuplicates() bool {
	seen := make(map[string]struct{}, len(l))
	for _, p := range l {
		if _, ok := seen[p.ID]; ok {
			return true
		}
		seen[p.ID] = struct{}{}
	}
	return false
}
