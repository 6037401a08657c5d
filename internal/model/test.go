package model

import (
	"time"

	"gorm.io/gorm"
)

type Test struct {
	ID                uint   `gorm:"primarykey" json:"id"`
	CourseID          uint   `json:"course_id" gorm:"not null;index"`
	Title             string `json:"title" gorm:"not null"`
	Description       string `json:"description,omitempty" gorm:"type:text"`
	IsFinalAssessment bool   `json:"is_final_assessment" gorm:"not null;default:false"`
	// PassingScore is declared per test but scoring currently applies the
	// platform-wide threshold instead. Kept in the schema until the product
	// decides which one wins.
	PassingScore     int            `json:"passing_score" gorm:"not null;default:80"`
	MaxAttempts      int            `json:"max_attempts" gorm:"not null;default:3"`
	TimeLimitMinutes int            `json:"time_limit_minutes" gorm:"not null;default:0"`
	Questions        []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
