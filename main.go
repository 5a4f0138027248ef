package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/xo/dburl"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"betSheetImporter/models"
	"betSheetImporter/scheduler"
	"betSheetImporter/services"
	"betSheetImporter/services/importService"
)

var db *gorm.DB

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		log.Fatalf("DATABASE_URL not set in environment variables")
	}

	u, err := dburl.Parse(connString)
	if err != nil {
		log.Fatalf("Error parsing DATABASE_URL: %v", err)
	}

	var dialector gorm.Dialector
	switch u.Driver {
	case "mysql":
		dsn := u.DSN
		if strings.Contains(dsn, "?") {
			dsn += "&parseTime=True"
		} else {
			dsn += "?charset=utf8mb4&parseTime=True&loc=Local"
		}
		dialector = mysql.Open(dsn)
	case "sqlserver":
		dialector = sqlserver.Open(u.DSN)
	default:
		log.Fatalf("Unsupported database driver %q in DATABASE_URL", u.Driver)
	}

	db, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.SingleBet{},
		&models.ParlayHeader{},
		&models.ParlayLeg{},
		&models.TeamStat{},
		&models.PlayerStat{},
		&models.PropStat{},
		&models.ImportLog{},
		&models.ErrorLog{},
		&models.Migration{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func main() {
	filePath := flag.String("file", "", "path to a sportsbook export to import")
	userID := flag.String("user", "", "user id the imported bets belong to")
	daemon := flag.Bool("daemon", false, "watch the intake directory and run retention jobs")
	rebuildStats := flag.Bool("rebuild-stats", false, "run the one-shot stats rebuild migration")
	flag.Parse()

	if *rebuildStats {
		if err := services.RunStatsRebuildMigration(db); err != nil {
			log.Fatalf("Error running stats rebuild: %v", err)
		}
	}

	if *filePath != "" {
		if *userID == "" {
			log.Fatalf("-user is required with -file")
		}
		data, err := os.ReadFile(*filePath)
		if err != nil {
			log.Fatalf("Error reading %s: %v", *filePath, err)
		}

		summary := importService.ProcessUpload(db, *userID, filepath.Base(*filePath), data)
		printSummary(summary)
		if !summary.Success {
			os.Exit(1)
		}
		return
	}

	if *daemon {
		scheduler.SetupCron(db)
		log.Println("Importer is running. Press CTRL+C to exit.")
		select {}
	}

	if !*rebuildStats {
		flag.Usage()
	}
}

func printSummary(s *importService.ImportSummary) {
	if !s.Success {
		fmt.Printf("Import failed: %s\n", s.Error)
		return
	}
	fmt.Printf("Imported %d single bets, %d parlays, %d parlay legs\n",
		s.SingleBetsCount, s.ParlaysCount, s.ParlayLegsCount)
	fmt.Printf("Aggregated %d team stats, %d player stats, %d prop stats\n",
		s.TeamStatsCount, s.PlayerStatsCount, s.PropStatsCount)
}
