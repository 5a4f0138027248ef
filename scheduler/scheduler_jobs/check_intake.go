package scheduler_jobs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"betSheetImporter/services/importService"
)

// SweepIntakeDir imports sportsbook export files dropped into INTAKE_DIR.
// Files are named <userID>_<anything>.<ext>; after processing they move to
// the processed/ or failed/ subdirectory so the next sweep skips them.
func SweepIntakeDir(db *gorm.DB) error {
	dir := os.Getenv("INTAKE_DIR")
	if dir == "" {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("error reading intake directory: %v", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		userID, ok := intakeUserID(name)
		if !ok {
			log.Printf("Intake: skipping %s: missing user prefix", name)
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Printf("Intake: error reading %s: %v", name, err)
			continue
		}

		summary := importService.ProcessUpload(db, userID, name, data)

		dest := "processed"
		if !summary.Success {
			dest = "failed"
		}
		if err := moveToSubdir(dir, name, dest); err != nil {
			log.Printf("Intake: error moving %s to %s: %v", name, dest, err)
		}
	}
	return nil
}

func intakeUserID(filename string) (string, bool) {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	idx := strings.Index(base, "_")
	if idx <= 0 {
		return "", false
	}
	return base[:idx], true
}

func moveToSubdir(dir, name, sub string) error {
	destDir := filepath.Join(dir, sub)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}
	return os.Rename(filepath.Join(dir, name), filepath.Join(destDir, name))
}
