package repo

import (
	"fmt"

	"game-tracker/feature/livegame/models"

	"gorm.io/gorm"
)

// ListActions returns every action of a point ordered by side then number.
func ListActions(db *gorm.DB, pointID string) ([]models.Action, error) {
	var actions []models.Action
	err := db.Where("point_id = ?", pointID).
		Order("team_number ASC").Order("action_number ASC").
		Find(&actions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list actions of point %s: %w", pointID, err)
	}
	return actions, nil
}

// ListPointActions returns the actions one side recorded on a point, in order.
func ListPointActions(db *gorm.DB, pointID string, team models.TeamNumber) ([]models.Action, error) {
	var actions []models.Action
	err := db.Where("point_id = ? AND team_number = ?", pointID, team).
		Order("action_number ASC").
		Find(&actions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list actions of point %s: %w", pointID, err)
	}
	return actions, nil
}

// LastAction returns the highest-numbered action one side recorded on a point.
func LastAction(db *gorm.DB, pointID string, team models.TeamNumber) (*models.Action, error) {
	var action models.Action
	err := db.Where("point_id = ? AND team_number = ?", pointID, team).
		Order("action_number DESC").
		Take(&action).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load last action of point %s: %w", pointID, notFound(err))
	}
	return &action, nil
}

// MaxActionNumber returns the highest action number one side used on a point, 0 if none.
func MaxActionNumber(db *gorm.DB, pointID string, team models.TeamNumber) (int, error) {
	var highest int
	err := db.Model(&models.Action{}).
		Where("point_id = ? AND team_number = ?", pointID, team).
		Select("COALESCE(MAX(action_number), 0)").
		Scan(&highest).Error
	if err != nil {
		return 0, fmt.Errorf("failed to number action of point %s: %w", pointID, err)
	}
	return highest, nil
}

// CountActions counts the actions one side recorded on a point.
func CountActions(db *gorm.DB, pointID string, team models.TeamNumber) (int64, error) {
	var n int64
	err := db.Model(&models.Action{}).
		Where("point_id = ? AND team_number = ?", pointID, team).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count actions of point %s: %w", pointID, err)
	}
	return n, nil
}

// CreateAction inserts an action.
func CreateAction(db *gorm.DB, action *models.Action) error {
	if err := db.Create(action).Error; err != nil {
		return fmt.Errorf("failed to create action %d: %w", action.ActionNumber, err)
	}
	return nil
}

// DeleteAction removes a single action.
func DeleteAction(db *gorm.DB, id string) error {
	if err := db.Where("id = ?", id).Delete(&models.Action{}).Error; err != nil {
		return fmt.Errorf("failed to delete action %s: %w", id, err)
	}
	return nil
}

// DeleteActionsForPoint removes every action of a point.
func DeleteActionsForPoint(db *gorm.DB, pointID string) error {
	if err := db.Where("point_id = ?", pointID).Delete(&models.Action{}).Error; err != nil {
		return fmt.Errorf("failed to delete actions of point %s: %w", pointID, err)
	}
	return nil
}
