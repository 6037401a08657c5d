package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TestAttempt struct {
	ID           uint `gorm:"primarykey" json:"id"`
	UserID       uint `json:"user_id" gorm:"not null;index"`
	TestID       uint `json:"test_id" gorm:"not null;index"`
	CourseID     uint `json:"course_id" gorm:"not null;index"`
	EnrollmentID uint `json:"enrollment_id" gorm:"not null;index"`

	// Answers is a JSON array of selected option indices, positionally
	// aligned with the test's question order. Unattempted questions are null.
	Answers        datatypes.JSON `json:"answers" gorm:"not null"`
	Score          int            `json:"score" gorm:"not null"`
	TotalQuestions int            `json:"total_questions" gorm:"not null"`
	Percentage     int            `json:"percentage" gorm:"not null"`
	Passed         bool           `json:"passed" gorm:"not null"`

	Test        Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	SubmittedAt time.Time      `json:"submitted_at" gorm:"autoCreateTime"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
