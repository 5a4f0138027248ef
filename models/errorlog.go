package models

import (
	"gorm.io/gorm"
)

type ErrorLog struct {
	gorm.Model
	ID      uint   `gorm:"primaryKey"`
	UserID  string `gorm:"size:64"`
	Stage   string `gorm:"size:64"`
	Message string
}
