package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type CourseResponse struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description,omitempty"`
	HasCertificate bool      `json:"has_certificate"`
	CompletedCount int       `json:"completed_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// QuestionResponseDTO is the user-facing question shape. The correct option
// index is deliberately absent.
type QuestionResponseDTO struct {
	ID          uint     `json:"id"`
	TestID      uint     `json:"test_id"`
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	OrderInTest int      `json:"order_in_test"`
}

type TestResponseDTO struct {
	ID                uint                  `json:"id"`
	CourseID          uint                  `json:"course_id"`
	Title             string                `json:"title"`
	Description       string                `json:"description,omitempty"`
	IsFinalAssessment bool                  `json:"is_final_assessment"`
	MaxAttempts       int                   `json:"max_attempts"`
	TimeLimitMinutes  int                   `json:"time_limit_minutes"`
	Questions         []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
}

// TestSummaryDTO is used for listing tests without their questions.
type TestSummaryDTO struct {
	ID                uint      `json:"id"`
	CourseID          uint      `json:"course_id"`
	Title             string    `json:"title"`
	IsFinalAssessment bool      `json:"is_final_assessment"`
	QuestionCount     int       `json:"question_count"`
	CreatedAt         time.Time `json:"created_at"`
}

type EnrollmentResponse struct {
	ID                         uint       `json:"id"`
	UserID                     uint       `json:"user_id"`
	CourseID                   uint       `json:"course_id"`
	CourseTitle                string     `json:"course_title,omitempty"`
	Progress                   int        `json:"progress"`
	Completed                  bool       `json:"completed"`
	AverageScore               float64    `json:"average_score"`
	CertificateStatus          string     `json:"certificate_status"`
	CertificateSerial          *string    `json:"certificate_serial,omitempty"`
	CertificateRequestedAt     *time.Time `json:"certificate_requested_at,omitempty"`
	CertificateApprovedAt      *time.Time `json:"certificate_approved_at,omitempty"`
	CertificateRejectedAt      *time.Time `json:"certificate_rejected_at,omitempty"`
	CertificateRejectionReason *string    `json:"certificate_rejection_reason,omitempty"`
	EnrolledAt                 time.Time  `json:"enrolled_at"`
}

// SubmitResultDTO is returned immediately after an attempt is recorded.
type SubmitResultDTO struct {
	AttemptID           uint `json:"attempt_id"`
	Score               int  `json:"score"`
	TotalQuestions      int  `json:"total_questions"`
	Percentage          int  `json:"percentage"`
	Passed              bool `json:"passed"`
	CertificateEligible bool `json:"certificate_eligible"`
}

type TestAttemptDTO struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	TestID         uint      `json:"test_id"`
	CourseID       uint      `json:"course_id"`
	EnrollmentID   uint      `json:"enrollment_id"`
	TestTitle      string    `json:"test_title,omitempty"`
	Answers        []*int    `json:"answers"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     int       `json:"percentage"`
	Passed         bool      `json:"passed"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// RetakeStatusDTO reports attempt usage against the configured cap. It is
// advisory only and never blocks a resubmission.
type RetakeStatusDTO struct {
	TestID       uint `json:"test_id"`
	AttemptsUsed int  `json:"attempts_used"`
	MaxAttempts  int  `json:"max_attempts"`
	CanRetake    bool `json:"can_retake"`
}
