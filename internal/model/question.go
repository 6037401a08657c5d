package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Question struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	TestID uint   `json:"test_id" gorm:"not null;index"`
	Prompt string `json:"prompt" gorm:"type:text;not null"`
	// Options holds the answer choices as a JSON array of strings.
	Options       datatypes.JSON `json:"options" gorm:"not null"`
	CorrectOption int            `json:"correct_option" gorm:"not null"`
	OrderInTest   int            `json:"order_in_test" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
