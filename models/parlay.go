package models

import (
	"gorm.io/gorm"
	"time"
)

type ParlayHeader struct {
	gorm.Model
	ID              uint   `gorm:"primaryKey"`
	UserID          string `gorm:"index; size:64"`
	PlacedAt        *time.Time
	Status          string `gorm:"size:64"`
	League          string `gorm:"size:128"`
	Match           string
	BetType         string `gorm:"size:64"`
	Market          string
	Selection       string
	Price           *float64
	Wager           *float64
	Winnings        *float64
	Payout          *float64
	PotentialPayout *float64
	Result          string      `gorm:"size:64"`
	BetSlipID       string      `gorm:"size:64"`
	Legs            []ParlayLeg `gorm:"foreignKey:ParlayHeaderID; constraint:OnDelete:CASCADE"`
}

type ParlayLeg struct {
	gorm.Model
	ID             uint   `gorm:"primaryKey"`
	ParlayHeaderID uint   `gorm:"index"`
	UserID         string `gorm:"index; size:64"`
	BetSlipID      string `gorm:"size:64"` // provisional join key until the header row is persisted
	LegNumber      int
	Status         string `gorm:"size:64"`
	League         string `gorm:"size:128"`
	Match          string
	Market         string
	Selection      string
	Price          *float64
	GameDate       *time.Time
}
