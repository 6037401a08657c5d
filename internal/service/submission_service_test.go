package service

import (
	"testing"

	"github.com/hmngo/Coursea/internal/apperr"
	"github.com/hmngo/Coursea/internal/model"
	"github.com/hmngo/Coursea/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSubmissionService(db *gorm.DB) SubmissionService {
	return NewSubmissionService(
		repository.NewTestRepository(db),
		repository.NewCourseRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewTestAttemptRepository(db),
		NewScoringService(),
	)
}

func TestSubmitTestFinalAssessmentPass(t *testing.T) {
	db := testDB(t)
	course := seedCourse(t, db, "go-basics", true)
	test := seedTest(t, db, course.ID, true, 10)
	enrollment := seedEnrollment(t, db, 1, course.ID)

	svc := newSubmissionService(db)
	result, err := svc.SubmitTest(test.ID, submission(1, 8, 10))
	require.NoError(t, err)

	assert.Equal(t, 8, result.Score)
	assert.Equal(t, 10, result.TotalQuestions)
	assert.Equal(t, 80, result.Percentage)
	assert.True(t, result.Passed)
	assert.True(t, result.CertificateEligible)

	var updated model.Enrollment
	require.NoError(t, db.First(&updated, enrollment.ID).Error)
	assert.Equal(t, 100, updated.Progress)
	assert.True(t, updated.Completed)
	assert.Equal(t, float64(80), updated.AverageScore)
	assert.Equal(t, model.CertificateEligible, updated.CertificateStatus)

	var updatedCourse model.Course
	require.NoError(t, db.First(&updatedCourse, course.ID).Error)
	assert.Equal(t, 1, updatedCourse.CompletedCount)

	var attempt model.TestAttempt
	require.NoError(t, db.First(&attempt, result.AttemptID).Error)
	assert.Equal(t, enrollment.ID, attempt.EnrollmentID)
	assert.False(t, attempt.SubmittedAt.IsZero())
}

func TestSubmitTestFinalAssessmentFail(t *testing.T) {
	db := testDB(t)
	course := seedCourse(t, db, "go-basics", true)
	test := seedTest(t, db, course.ID, true, 10)
	enrollment := seedEnrollment(t, db, 1, course.ID)

	svc := newSubmissionService(db)
	result, err := svc.SubmitTest(test.ID, submission(1, 7, 10))
	require.NoError(t, err)

	assert.Equal(t, 70, result.Percentage)
	assert.False(t, result.Passed)
	assert.False(t, result.CertificateEligible)

	// A failed final assessment still completes the course; only the
	// certificate eligibility reflects the score.
	var updated model.Enrollment
	require.NoError(t, db.First(&updated, enrollment.ID).Error)
	assert.True(t, updated.Completed)
	assert.Equal(t, 100, updated.Progress)
	assert.Equal(t, model.CertificateNotEligible, updated.CertificateStatus)
}

func TestSubmitTestNonFinalLeavesEnrollmentAlone(t *testing.T) {
	db := testDB(t)
	course := seedCourse(t, db, "go-basics", true)
	test := seedTest(t, db, course.ID, false, 5)
	enrollment := seedEnrollment(t, db, 1, course.ID)

	svc := newSubmissionService(db)
	result, err := svc.SubmitTest(test.ID, submission(1, 5, 5))
	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.False(t, result.CertificateEligible)

	var updated model.Enrollment
	require.NoError(t, db.First(&updated, enrollment.ID).Error)
	assert.False(t, updated.Completed)
	assert.Equal(t, 0, updated.Progress)
	assert.Equal(t, model.CertificateNotEligible, updated.CertificateStatus)
}

func TestSubmitTestCourseWithoutCertificate(t *testing.T) {
	db := testDB(t)
	course := seedCourse(t, db, "no-cert", false)
	test := seedTest(t, db, course.ID, true, 4)
	enrollment := seedEnrollment(t, db, 1, course.ID)

	svc := newSubmissionService(db)
	result, err := svc.SubmitTest(test.ID, submission(1, 4, 4))
	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.False(t, result.CertificateEligible)

	var updated model.Enrollment
	require.NoError(t, db.First(&updated, enrollment.ID).Error)
	assert.True(t, updated.Completed)
	assert.Equal(t, model.CertificateNotEligible, updated.CertificateStatus)
}

func TestSubmitTestRequiresTestAndEnrollment(t *testing.T) {
	db := testDB(t)
	course := seedCourse(t, db, "go-basics", true)
	test := seedTest(t, db, course.ID, true, 5)

	svc := newSubmissionService(db)

	_, err := svc.SubmitTest(9999, submission(1, 3, 5))
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// Enrolled user missing entirely.
	_, err = svc.SubmitTest(test.ID, submission(42, 3, 5))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSubmitTestResubmissionLastWriteWins(t *testing.T) {
	db := testDB(t)
	course := seedCourse(t, db, "go-basics", true)
	test := seedTest(t, db, course.ID, true, 10)
	enrollment := seedEnrollment(t, db, 1, course.ID)

	svc := newSubmissionService(db)

	first, err := svc.SubmitTest(test.ID, submission(1, 9, 10))
	require.NoError(t, err)
	second, err := svc.SubmitTest(test.ID, submission(1, 5, 10))
	require.NoError(t, err)
	assert.NotEqual(t, first.AttemptID, second.AttemptID)

	// Each submission is its own attempt row; the enrollment carries only
	// whichever submission wrote last.
	var count int64
	require.NoError(t, db.Model(&model.TestAttempt{}).Where("enrollment_id = ?", enrollment.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	var updated model.Enrollment
	require.NoError(t, db.First(&updated, enrollment.ID).Error)
	assert.Equal(t, model.CertificateNotEligible, updated.CertificateStatus)
	assert.Equal(t, float64(50), updated.AverageScore)
}

func TestGetTestAttemptRoundTripsAnswers(t *testing.T) {
	db := testDB(t)
	course := seedCourse(t, db, "go-basics", false)
	test := seedTest(t, db, course.ID, false, 3)
	seedEnrollment(t, db, 7, course.ID)

	svc := newSubmissionService(db)

	req := submission(7, 2, 3)
	req.Answers[1] = nil // unattempted question stays null
	result, err := svc.SubmitTest(test.ID, req)
	require.NoError(t, err)

	attempt, err := svc.GetTestAttempt(result.AttemptID)
	require.NoError(t, err)
	require.Len(t, attempt.Answers, 3)
	assert.NotNil(t, attempt.Answers[0])
	assert.Nil(t, attempt.Answers[1])
	assert.Equal(t, "Assessment", attempt.TestTitle)

	_, err = svc.GetTestAttempt(9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetUserTestAttemptsFiltersAndOrders(t *testing.T) {
	db := testDB(t)
	courseA := seedCourse(t, db, "course-a", false)
	courseB := seedCourse(t, db, "course-b", false)
	testA := seedTest(t, db, courseA.ID, false, 2)
	testB := seedTest(t, db, courseB.ID, false, 2)
	seedEnrollment(t, db, 1, courseA.ID)
	seedEnrollment(t, db, 1, courseB.ID)

	svc := newSubmissionService(db)
	_, err := svc.SubmitTest(testA.ID, submission(1, 1, 2))
	require.NoError(t, err)
	_, err = svc.SubmitTest(testB.ID, submission(1, 2, 2))
	require.NoError(t, err)

	all, err := svc.GetUserTestAttempts(1, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyA, err := svc.GetUserTestAttempts(1, &courseA.ID)
	require.NoError(t, err)
	require.Len(t, onlyA, 1)
	assert.Equal(t, testA.ID, onlyA[0].TestID)
}

func TestRetakeStatusIsAdvisory(t *testing.T) {
	db := testDB(t)
	course := seedCourse(t, db, "go-basics", false)
	test := seedTest(t, db, course.ID, false, 2)
	seedEnrollment(t, db, 1, course.ID)

	svc := newSubmissionService(db)

	status, err := svc.RetakeStatus(test.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, status.AttemptsUsed)
	assert.Equal(t, 3, status.MaxAttempts)
	assert.True(t, status.CanRetake)

	for i := 0; i < 3; i++ {
		_, err = svc.SubmitTest(test.ID, submission(1, 1, 2))
		require.NoError(t, err)
	}

	status, err = svc.RetakeStatus(test.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, status.AttemptsUsed)
	assert.False(t, status.CanRetake)

	// The cap is advisory only: a fourth submission still succeeds.
	_, err = svc.SubmitTest(test.ID, submission(1, 1, 2))
	assert.NoError(t, err)

	_, err = svc.RetakeStatus(9999, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
