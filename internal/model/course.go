package model

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	ID             uint   `gorm:"primarykey" json:"id"`
	Title          string `json:"title" gorm:"not null;uniqueIndex"`
	Slug           string `json:"slug" gorm:"not null;uniqueIndex"`
	Description    string `json:"description,omitempty" gorm:"type:text"`
	HasCertificate bool   `json:"has_certificate" gorm:"not null;default:false"`
	// CompletedCount is incremented best-effort when a final assessment is
	// passed and never decremented, so it is a monotonic counter rather than
	// an authoritative completion count.
	CompletedCount int            `json:"completed_count" gorm:"not null;default:0"`
	Tests          []Test         `json:"tests,omitempty" gorm:"foreignKey:CourseID"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
