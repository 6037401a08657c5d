package dto

// CreateCourseRequest is the admin payload for creating a course.
type CreateCourseRequest struct {
	Title          string `json:"title" binding:"required"`
	Slug           string `json:"slug" binding:"required"`
	Description    string `json:"description"`
	HasCertificate bool   `json:"has_certificate"`
}

// QuestionForTestRequest is used when creating questions as part of a new test.
type QuestionForTestRequest struct {
	Prompt        string   `json:"prompt" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectOption int      `json:"correct_option" binding:"min=0"`
	OrderInTest   int      `json:"order_in_test" binding:"required,min=1"`
}

// CreateTestRequest is the admin payload for creating a test under a course.
type CreateTestRequest struct {
	Title             string                   `json:"title" binding:"required"`
	Description       string                   `json:"description"`
	IsFinalAssessment bool                     `json:"is_final_assessment"`
	PassingScore      int                      `json:"passing_score" binding:"omitempty,min=0,max=100"`
	MaxAttempts       int                      `json:"max_attempts" binding:"omitempty,min=1"`
	TimeLimitMinutes  int                      `json:"time_limit_minutes" binding:"omitempty,min=0"`
	Questions         []QuestionForTestRequest `json:"questions" binding:"required,min=1,dive"`
}

// CreateEnrollmentRequest enrolls a user into a course.
type CreateEnrollmentRequest struct {
	UserID   uint `json:"user_id" binding:"required"`
	CourseID uint `json:"course_id" binding:"required"`
}

// AnswerDetailDTO carries per-question correctness precomputed by the caller.
// The recorder trusts this instead of re-grading against the question bank,
// matching how the submitting client grades locally today.
type AnswerDetailDTO struct {
	QuestionID     uint `json:"question_id" binding:"required"`
	SelectedOption *int `json:"selected_option"`
	IsCorrect      bool `json:"is_correct"`
}

// TestAttemptSubmitDTO is the payload for submitting a full test attempt.
// Answers is positionally aligned with the test's question order; a null
// entry marks an unattempted question.
type TestAttemptSubmitDTO struct {
	UserID        uint              `json:"user_id" binding:"required"`
	Answers       []*int            `json:"answers" binding:"required"`
	AnswerDetails []AnswerDetailDTO `json:"answer_details" binding:"required,min=1,dive"`
}

// RejectCertificateRequest optionally carries the admin's rejection reason.
type RejectCertificateRequest struct {
	Reason string `json:"reason"`
}
