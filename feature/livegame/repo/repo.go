package repo

import (
	"errors"
	"fmt"

	"game-tracker/feature/livegame/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a requested record is absent.
var ErrNotFound = errors.New("record not found")

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// GetGame loads a game by id.
func GetGame(db *gorm.DB, id string) (*models.Game, error) {
	var game models.Game
	if err := db.Where("id = ?", id).Take(&game).Error; err != nil {
		return nil, fmt.Errorf("failed to load game %s: %w", id, notFound(err))
	}
	return &game, nil
}

// SaveGame inserts or replaces a game wholesale.
func SaveGame(db *gorm.DB, game *models.Game) error {
	if err := db.Save(game).Error; err != nil {
		return fmt.Errorf("failed to save game %s: %w", game.ID, err)
	}
	return nil
}

// SaveReferences upserts the teams, tournament and rostered players of a game.
func SaveReferences(db *gorm.DB, game *models.Game) error {
	upsert := clause.OnConflict{UpdateAll: true}

	teams := []models.Team{game.TeamOne}
	if game.TeamTwoDefined && game.TeamTwo.ID != "" {
		teams = append(teams, game.TeamTwo)
	}
	for _, t := range teams {
		if t.ID == "" {
			continue
		}
		if err := db.Clauses(upsert).Create(&t).Error; err != nil {
			return fmt.Errorf("failed to save team %s: %w", t.ID, err)
		}
	}

	if game.Tournament != nil && game.Tournament.ID != "" {
		if err := db.Clauses(upsert).Create(game.Tournament).Error; err != nil {
			return fmt.Errorf("failed to save tournament %s: %w", game.Tournament.ID, err)
		}
	}

	players := make([]models.Player, 0, len(game.TeamOnePlayers)+len(game.TeamTwoPlayers))
	seen := map[string]struct{}{}
	for _, p := range append(game.TeamOnePlayers.Clone(), game.TeamTwoPlayers...) {
		if _, ok := seen[p.ID]; ok || p.ID == "" {
			continue
		}
		seen[p.ID] = struct{}{}
		players = append(players, p)
	}
	if len(players) > 0 {
		if err := db.Clauses(upsert).Create(&players).Error; err != nil {
			return fmt.Errorf("failed to save players: %w", err)
		}
	}
	return nil
}

// DeleteGameTree removes a game together with every point and action it owns.
func DeleteGameTree(db *gorm.DB, gameID string) error {
	pointIDs := db.Model(&models.Point{}).Select("id").Where("game_id = ?", gameID)
	if err := db.Where("point_id IN (?)", pointIDs).Delete(&models.Action{}).Error; err != nil {
		return fmt.Errorf("failed to delete actions of game %s: %w", gameID, err)
	}
	if err := db.Where("game_id = ?", gameID).Delete(&models.Point{}).Error; err != nil {
		return fmt.Errorf("failed to delete points of game %s: %w", gameID, err)
	}
	if err := db.Where("id = ?", gameID).Delete(&models.Game{}).Error; err != nil {
		return fmt.Errorf("failed to delete game %s: %w", gameID, err)
	}
	return nil
}
