package actionlog

import (
	"errors"

	"game-tracker/feature/livegame/models"
	"game-tracker/feature/livegame/repo"

	"gorm.io/gorm"
)

// ErrInvalidNumber is returned when a remote-assigned action number is not positive.
var ErrInvalidNumber = errors.New("action number must be positive")

// NumberStrategy assigns the number of an appended action.
type NumberStrategy interface {
	// Next returns the number to store for an action appended by team on pointID.
	// given is the number carried by the incoming action, if any.
	Next(tx *gorm.DB, pointID string, team models.TeamNumber, given int) (int, error)
}

// LocalNumbering numbers actions max+1 per point and side.
type LocalNumbering struct{}

// Next implements NumberStrategy.
func (LocalNumbering) Next(tx *gorm.DB, pointID string, team models.TeamNumber, _ int) (int, error) {
	highest, err := repo.MaxActionNumber(tx, pointID, team)
	if err != nil {
		return 0, err
	}
	return highest + 1, nil
}

// RemoteNumbering trusts the number assigned by the remote authority.
type RemoteNumbering struct{}

// Next implements NumberStrategy.
func (RemoteNumbering) Next(_ *gorm.DB, _ string, _ models.TeamNumber, given int) (int, error) {
	if given <= 0 {
		return 0, ErrInvalidNumber
	}
	return given, nil
}
