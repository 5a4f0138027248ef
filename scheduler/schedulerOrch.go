package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"betSheetImporter/models"
	"betSheetImporter/scheduler/scheduler_jobs"
)

func SetupCron(db *gorm.DB) {
	cronService := cron.New(cron.WithSeconds())

	_, err := cronService.AddFunc("*/30 * * * * *", func() {
		// Every 30 seconds
		err := scheduler_jobs.SweepIntakeDir(db)
		if err != nil {
			fmt.Println(err)
		}
	})
	if err != nil {
		recordCronError(db, err)
	}

	_, err = cronService.AddFunc("0 0 3 * * *", func() {
		// At 3am every day
		err := scheduler_jobs.PruneOldLogs(db)
		if err != nil {
			fmt.Println(err)
		}
	})
	if err != nil {
		recordCronError(db, err)
	}

	cronService.Start()
}

func recordCronError(db *gorm.DB, err error) {
	errLog := models.ErrorLog{
		Stage:   "cron",
		Message: fmt.Sprintf("%v", err),
	}
	db.Create(&errLog)
}
