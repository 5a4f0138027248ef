package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TeamStat struct {
	gorm.Model
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"index; size:64"`
	Team      string `gorm:"size:128"`
	League    string `gorm:"size:128"` // last seen league for this team
	TotalBets int
	Wins      int
	Losses    int
	Pushes    int
	Pending   int
}

type PlayerStat struct {
	gorm.Model
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"index; size:64"`
	Player    string `gorm:"size:128"`
	TotalBets int
	Wins      int
	Losses    int
	Pushes    int
	Pending   int
	PropTypes datatypes.JSON // distinct prop-type labels seen for this player
}

type PropStat struct {
	gorm.Model
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"index; size:64"`
	PropType  string `gorm:"size:128"`
	TotalBets int
	Wins      int
	Losses    int
	Pushes    int
	Pending   int
}
