package models

import "gorm.io/gorm"

type ImportLog struct {
	gorm.Model
	ID               uint   `gorm:"primaryKey"`
	UserID           string `gorm:"index; size:64"`
	Filename         string
	Success          bool `gorm:"default:false"`
	SingleBetsCount  int
	ParlaysCount     int
	ParlayLegsCount  int
	TeamStatsCount   int
	PlayerStatsCount int
	PropStatsCount   int
	Error            string
}
