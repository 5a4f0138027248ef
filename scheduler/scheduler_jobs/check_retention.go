package scheduler_jobs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"betSheetImporter/models"
)

const defaultRetentionDays = 90

// PruneOldLogs deletes import and error log rows older than the retention
// window (RETENTION_DAYS, default 90 days).
func PruneOldLogs(db *gorm.DB) error {
	days := defaultRetentionDays
	if v := os.Getenv("RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	// Unscoped so the rows are actually removed instead of soft-deleted.
	res := db.Unscoped().Where("created_at < ?", cutoff).Delete(&models.ErrorLog{})
	if res.Error != nil {
		return fmt.Errorf("error pruning error logs: %v", res.Error)
	}
	pruned := res.RowsAffected

	res = db.Unscoped().Where("created_at < ?", cutoff).Delete(&models.ImportLog{})
	if res.Error != nil {
		return fmt.Errorf("error pruning import logs: %v", res.Error)
	}
	pruned += res.RowsAffected

	if pruned > 0 {
		log.Printf("Retention: pruned %d log rows older than %d days", pruned, days)
	}
	return nil
}
