package models

import (
	"gorm.io/gorm"
	"time"
)

type SingleBet struct {
	gorm.Model
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"index; size:64"`
	PlacedAt  *time.Time
	Status    string `gorm:"size:64"`
	League    string `gorm:"size:128"`
	Match     string
	BetType   string `gorm:"size:64"`
	Market    string
	Selection string
	Price     *float64
	Wager     *float64
	Winnings  *float64
	Payout    *float64
	Result    string `gorm:"size:64"`
	BetSlipID string `gorm:"size:64"`
}
