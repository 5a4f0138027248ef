package importService

import (
	"log"

	"gorm.io/gorm"

	"betSheetImporter/services/extractService"
)

// persistExtraction writes the batch record by record so one bad row cannot
// take down its siblings. Parlay legs are remapped from the provisional
// slip id to the persisted header id before they are written.
func persistExtraction(db *gorm.DB, ex *extractService.Extraction) {
	for i := range ex.SingleBets {
		if err := db.Create(&ex.SingleBets[i]).Error; err != nil {
			log.Printf("Import: error saving single bet %s: %v", ex.SingleBets[i].BetSlipID, err)
		}
	}

	headerIDs := make(map[string]uint, len(ex.ParlayHeaders))
	for i := range ex.ParlayHeaders {
		header := &ex.ParlayHeaders[i]
		if err := db.Create(header).Error; err != nil {
			log.Printf("Import: error saving parlay %s: %v", header.BetSlipID, err)
			continue
		}
		headerIDs[header.BetSlipID] = header.ID
	}

	for i := range ex.ParlayLegs {
		leg := &ex.ParlayLegs[i]
		headerID, ok := headerIDs[leg.BetSlipID]
		if !ok {
			log.Printf("Import: skipping leg %d of %s: header was not persisted", leg.LegNumber, leg.BetSlipID)
			continue
		}
		leg.ParlayHeaderID = headerID
		if err := db.Create(leg).Error; err != nil {
			log.Printf("Import: error saving leg %d of %s: %v", leg.LegNumber, leg.BetSlipID, err)
		}
	}

	for i := range ex.TeamStats {
		if err := db.Create(&ex.TeamStats[i]).Error; err != nil {
			log.Printf("Import: error saving team stat %s: %v", ex.TeamStats[i].Team, err)
		}
	}
	for i := range ex.PlayerStats {
		if err := db.Create(&ex.PlayerStats[i]).Error; err != nil {
			log.Printf("Import: error saving player stat %s: %v", ex.PlayerStats[i].Player, err)
		}
	}
	for i := range ex.PropStats {
		if err := db.Create(&ex.PropStats[i]).Error; err != nil {
			log.Printf("Import: error saving prop stat %s: %v", ex.PropStats[i].PropType, err)
		}
	}
}
