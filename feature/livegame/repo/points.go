package repo

import (
	"fmt"

	"game-tracker/feature/livegame/models"

	"gorm.io/gorm"
)

// GetPoint loads a point by id.
func GetPoint(db *gorm.DB, id string) (*models.Point, error) {
	var point models.Point
	if err := db.Where("id = ?", id).Take(&point).Error; err != nil {
		return nil, fmt.Errorf("failed to load point %s: %w", id, notFound(err))
	}
	return &point, nil
}

// GetPointByNumber loads the point of a game with the given number.
func GetPointByNumber(db *gorm.DB, gameID string, number int) (*models.Point, error) {
	var point models.Point
	err := db.Where("game_id = ? AND point_number = ?", gameID, number).Take(&point).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load point %d of game %s: %w", number, gameID, notFound(err))
	}
	return &point, nil
}

// ListPoints returns every point of a game, highest number first.
func ListPoints(db *gorm.DB, gameID string) ([]models.Point, error) {
	var points []models.Point
	if err := db.Where("game_id = ?", gameID).Order("point_number DESC").Find(&points).Error; err != nil {
		return nil, fmt.Errorf("failed to list points of game %s: %w", gameID, err)
	}
	return points, nil
}

// LatestPoint returns the highest-numbered point of a game.
func LatestPoint(db *gorm.DB, gameID string) (*models.Point, error) {
	var point models.Point
	err := db.Where("game_id = ?", gameID).Order("point_number DESC").Take(&point).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load latest point of game %s: %w", gameID, notFound(err))
	}
	return &point, nil
}

// SavePoint inserts or replaces a point. Its actions are untouched.
func SavePoint(db *gorm.DB, point *models.Point) error {
	if err := db.Save(point).Error; err != nil {
		return fmt.Errorf("failed to save point %s: %w", point.ID, err)
	}
	return nil
}

// DeletePoint removes a point and its actions.
func DeletePoint(db *gorm.DB, id string) error {
	if err := DeleteActionsForPoint(db, id); err != nil {
		return err
	}
	if err := db.Where("id = ?", id).Delete(&models.Point{}).Error; err != nil {
		return fmt.Errorf("failed to delete point %s: %w", id, err)
	}
	return nil
}

// ReplacePoint stores point and its action list wholesale: any stored row holding the
// same point number for the game, and every action of the point, is discarded first.
// Callers run it inside a transaction.
func ReplacePoint(db *gorm.DB, point *models.Point, actions []models.Action) error {
	var stale []string
	err := db.Model(&models.Point{}).
		Where("game_id = ? AND point_number = ?", point.GameID, point.PointNumber).
		Pluck("id", &stale).Error
	if err != nil {
		return fmt.Errorf("failed to look up point %d: %w", point.PointNumber, err)
	}
	for _, id := range append(stale, point.ID) {
		if err := DeletePoint(db, id); err != nil {
			return err
		}
	}

	if err := db.Create(point).Error; err != nil {
		return fmt.Errorf("failed to create point %s: %w", point.ID, err)
	}
	for i := range actions {
		actions[i].PointID = point.ID
	}
	if len(actions) > 0 {
		if err := db.Create(&actions).Error; err != nil {
			return fmt.Errorf("failed to create actions of point %s: %w", point.ID, err)
		}
	}
	return nil
}
