package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"betSheetImporter/models"
	"betSheetImporter/services/common"
	"betSheetImporter/services/extractService"
)

// RunStatsRebuildMigration re-derives every user's team/player/prop stats
// from their persisted bets and legs. One-shot: it exists because early
// imports bucketed "Won" results as pending, and runs only once per
// database.
func RunStatsRebuildMigration(db *gorm.DB) error {
	var existing models.Migration
	result := db.Where("name = ?", "rebuild_stats_from_bets").First(&existing)
	if result.Error == nil && existing.ID != 0 {
		log.Println("Stats rebuild migration has already been executed. Skipping.")
		return nil
	}

	log.Println("Starting stats rebuild migration...")

	var users []string
	if err := db.Model(&models.SingleBet{}).Distinct().Pluck("user_id", &users).Error; err != nil {
		return fmt.Errorf("error listing users with bets: %v", err)
	}
	var legUsers []string
	if err := db.Model(&models.ParlayLeg{}).Distinct().Pluck("user_id", &legUsers).Error; err != nil {
		return fmt.Errorf("error listing users with legs: %v", err)
	}
	for _, u := range legUsers {
		if !common.Contains(users, u) {
			users = append(users, u)
		}
	}

	rebuilt := 0
	for _, userID := range users {
		if err := rebuildUserStats(db, userID); err != nil {
			log.Printf("Error rebuilding stats for user %s: %v", userID, err)
			continue
		}
		rebuilt++
	}

	migration := models.Migration{
		Name:       "rebuild_stats_from_bets",
		ExecutedAt: time.Now(),
		Notes:      fmt.Sprintf("rebuilt stats for %d of %d users", rebuilt, len(users)),
	}
	if err := db.Create(&migration).Error; err != nil {
		return fmt.Errorf("error marking migration as complete: %v", err)
	}

	log.Printf("Stats rebuild migration completed. Updated %d users.", rebuilt)
	return nil
}

func rebuildUserStats(db *gorm.DB, userID string) error {
	var bets []models.SingleBet
	if err := db.Where("user_id = ?", userID).Order("id").Find(&bets).Error; err != nil {
		return fmt.Errorf("error fetching single bets: %v", err)
	}
	var legs []models.ParlayLeg
	if err := db.Where("user_id = ?", userID).Order("id").Find(&legs).Error; err != nil {
		return fmt.Errorf("error fetching parlay legs: %v", err)
	}

	teamStats, playerStats, propStats := extractService.RebuildStats(userID, bets, legs)

	if err := db.Where("user_id = ?", userID).Delete(&models.TeamStat{}).Error; err != nil {
		return fmt.Errorf("error clearing team stats: %v", err)
	}
	if err := db.Where("user_id = ?", userID).Delete(&models.PlayerStat{}).Error; err != nil {
		return fmt.Errorf("error clearing player stats: %v", err)
	}
	if err := db.Where("user_id = ?", userID).Delete(&models.PropStat{}).Error; err != nil {
		return fmt.Errorf("error clearing prop stats: %v", err)
	}

	for i := range teamStats {
		if err := db.Create(&teamStats[i]).Error; err != nil {
			log.Printf("Error saving team stat %s for user %s: %v", teamStats[i].Team, userID, err)
		}
	}
	for i := range playerStats {
		if err := db.Create(&playerStats[i]).Error; err != nil {
			log.Printf("Error saving player stat %s for user %s: %v", playerStats[i].Player, userID, err)
		}
	}
	for i := range propStats {
		if err := db.Create(&propStats[i]).Error; err != nil {
			log.Printf("Error saving prop stat %s for user %s: %v", propStats[i].PropType, userID, err)
		}
	}
	return nil
}
