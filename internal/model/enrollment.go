package model

import (
	"time"

	"gorm.io/gorm"
)

// Certificate workflow states. A rejected certificate is folded back into
// CertificateNotEligible, so a rejection is indistinguishable from never
// having been eligible and the student may request again once completed.
const (
	CertificateNotEligible = "not_eligible"
	CertificateEligible    = "eligible"
	CertificateRequested   = "requested"
	CertificateApproved    = "approved"
)

type Enrollment struct {
	ID       uint `gorm:"primarykey" json:"id"`
	UserID   uint `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_course"`
	CourseID uint `json:"course_id" gorm:"not null;index;uniqueIndex:idx_user_course"`

	Progress     int     `json:"progress" gorm:"not null;default:0"`
	Completed    bool    `json:"completed" gorm:"not null;default:false"`
	AverageScore float64 `json:"average_score" gorm:"not null;default:0"`

	CertificateStatus          string     `json:"certificate_status" gorm:"not null;default:'not_eligible'"`
	CertificateSerial          *string    `json:"certificate_serial,omitempty"`
	CertificateRequestedAt     *time.Time `json:"certificate_requested_at,omitempty"`
	CertificateApprovedAt      *time.Time `json:"certificate_approved_at,omitempty"`
	CertificateRejectedAt      *time.Time `json:"certificate_rejected_at,omitempty"`
	CertificateRejectionReason *string    `json:"certificate_rejection_reason,omitempty" gorm:"type:text"`

	Course     Course         `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	EnrolledAt time.Time      `json:"enrolled_at" gorm:"autoCreateTime"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
