package importService

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"betSheetImporter/models"
	"betSheetImporter/services/common"
	"betSheetImporter/services/extractService"
)

// ImportSummary is the structured outcome of one processed upload.
type ImportSummary struct {
	Success          bool
	SingleBetsCount  int
	ParlaysCount     int
	ParlayLegsCount  int
	TeamStatsCount   int
	PlayerStatsCount int
	PropStatsCount   int
	Error            string
}

var allowedExtensions = []string{".xls", ".xlsx", ".csv"}

// ProcessUpload runs extraction and persistence for one uploaded file and
// records the outcome in the import log. All failures come back as a failed
// summary; nothing escapes this boundary as a panic or error.
func ProcessUpload(db *gorm.DB, userID, filename string, data []byte) *ImportSummary {
	ext := strings.ToLower(filepath.Ext(filename))
	if !common.Contains(allowedExtensions, ext) {
		return failSummary(db, userID, filename, fmt.Sprintf("unsupported file type %q", ext))
	}
	if len(data) == 0 {
		return failSummary(db, userID, filename, "uploaded file is empty")
	}

	extraction, err := extractService.ExtractBets(userID, data)
	if err != nil {
		return failSummary(db, userID, filename, err.Error())
	}

	logParlayDiagnostics(extraction)
	persistExtraction(db, extraction)

	summary := &ImportSummary{
		Success:          true,
		SingleBetsCount:  len(extraction.SingleBets),
		ParlaysCount:     len(extraction.ParlayHeaders),
		ParlayLegsCount:  len(extraction.ParlayLegs),
		TeamStatsCount:   len(extraction.TeamStats),
		PlayerStatsCount: len(extraction.PlayerStats),
		PropStatsCount:   len(extraction.PropStats),
	}
	writeImportLog(db, userID, filename, summary)

	log.Printf("Import: %s for user %s: %d singles, %d parlays, %d legs",
		filename, userID, summary.SingleBetsCount, summary.ParlaysCount, summary.ParlayLegsCount)
	return summary
}

func failSummary(db *gorm.DB, userID, filename, msg string) *ImportSummary {
	log.Printf("Import: %s for user %s failed: %s", filename, userID, msg)

	errLog := models.ErrorLog{
		UserID:  userID,
		Stage:   "import",
		Message: msg,
	}
	db.Create(&errLog)

	summary := &ImportSummary{Error: msg}
	writeImportLog(db, userID, filename, summary)
	return summary
}

func writeImportLog(db *gorm.DB, userID, filename string, s *ImportSummary) {
	entry := models.ImportLog{
		UserID:           userID,
		Filename:         filename,
		Success:          s.Success,
		SingleBetsCount:  s.SingleBetsCount,
		ParlaysCount:     s.ParlaysCount,
		ParlayLegsCount:  s.ParlayLegsCount,
		TeamStatsCount:   s.TeamStatsCount,
		PlayerStatsCount: s.PlayerStatsCount,
		PropStatsCount:   s.PropStatsCount,
		Error:            s.Error,
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("Import: error writing import log: %v", err)
	}
}

// logParlayDiagnostics compares each header's parsed potential payout with
// the payout derived from its leg prices; a gap over a dollar usually means
// the export's columns were misaligned.
func logParlayDiagnostics(ex *extractService.Extraction) {
	legPrices := make(map[string][]float64)
	for _, leg := range ex.ParlayLegs {
		if leg.Price != nil {
			legPrices[leg.BetSlipID] = append(legPrices[leg.BetSlipID], *leg.Price)
		}
	}

	for _, h := range ex.ParlayHeaders {
		if h.Wager == nil || h.PotentialPayout == nil {
			continue
		}
		price := common.ParlayPrice(legPrices[h.BetSlipID])
		if price == 0 {
			continue
		}
		expected := common.PotentialPayout(*h.Wager, price)
		if diff := expected - *h.PotentialPayout; diff > 1 || diff < -1 {
			log.Printf("Import: parlay %s potential payout %s differs from leg-derived %s",
				h.BetSlipID, common.FormatPrice(*h.PotentialPayout), common.FormatPrice(expected))
		}
	}
}
