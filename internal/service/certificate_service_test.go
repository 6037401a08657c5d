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

func completeEnrollment(t *testing.T, db *gorm.DB, id uint, status string) {
	t.Helper()
	require.NoError(t, db.Model(&model.Enrollment{}).Where("id = ?", id).Updates(map[string]interface{}{
		"progress":           100,
		"completed":          true,
		"certificate_status": status,
	}).Error)
}

func TestRequestCertificateGuards(t *testing.T) {
	db := testDB(t)
	course := seedCourse(t, db, "go-basics", true)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	svc := NewCertificateService(repository.NewEnrollmentRepository(db))

	_, err := svc.RequestCertificate(9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// Incomplete course.
	_, err = svc.RequestCertificate(enrollment.ID)
	assert.ErrorIs(t, err, apperr.ErrPreconditionFailed)
	assert.Contains(t, err.Error(), "complete the course")

	completeEnrollment(t, db, enrollment.ID, model.CertificateEligible)

	resp, err := svc.RequestCertificate(enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CertificateRequested, resp.CertificateStatus)
	assert.NotNil(t, resp.CertificateRequestedAt)

	// Second request while one is pending.
	_, err = svc.RequestCertificate(enrollment.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRequestCertificateAllowsCompletedButNotEligible(t *testing.T) {
	db := testDB(t)
	course := seedCourse(t, db, "go-basics", true)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	svc := NewCertificateService(repository.NewEnrollmentRepository(db))

	// Completed with a failing score: status stays not_eligible, yet the
	// only request guard is the completion flag.
	completeEnrollment(t, db, enrollment.ID, model.CertificateNotEligible)

	resp, err := svc.RequestCertificate(enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CertificateRequested, resp.CertificateStatus)
}

func TestApproveCertificate(t *testing.T) {
	db := testDB(t)
	course := seedCourse(t, db, "go-basics", true)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	svc := NewCertificateService(repository.NewEnrollmentRepository(db))

	// Only a requested certificate can be approved.
	completeEnrollment(t, db, enrollment.ID, model.CertificateEligible)
	_, err := svc.ApproveCertificate(enrollment.ID)
	assert.ErrorIs(t, err, apperr.ErrPreconditionFailed)

	_, err = svc.RequestCertificate(enrollment.ID)
	require.NoError(t, err)

	resp, err := svc.ApproveCertificate(enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CertificateApproved, resp.CertificateStatus)
	assert.NotNil(t, resp.CertificateApprovedAt)
	require.NotNil(t, resp.CertificateSerial)
	assert.NotEmpty(t, *resp.CertificateSerial)

	// Approved is terminal for both student and admin actions.
	_, err = svc.RequestCertificate(enrollment.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	_, err = svc.RejectCertificate(enrollment.ID, "changed my mind")
	assert.ErrorIs(t, err, apperr.ErrPreconditionFailed)
}

func TestRejectCertificateAllowsImmediateReRequest(t *testing.T) {
	db := testDB(t)
	course := seedCourse(t, db, "go-basics", true)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	svc := NewCertificateService(repository.NewEnrollmentRepository(db))

	completeEnrollment(t, db, enrollment.ID, model.CertificateEligible)
	_, err := svc.RequestCertificate(enrollment.ID)
	require.NoError(t, err)

	resp, err := svc.RejectCertificate(enrollment.ID, "plagiarized final project")
	require.NoError(t, err)
	assert.Equal(t, model.CertificateNotEligible, resp.CertificateStatus)
	assert.NotNil(t, resp.CertificateRejectedAt)
	require.NotNil(t, resp.CertificateRejectionReason)
	assert.Equal(t, "plagiarized final project", *resp.CertificateRejectionReason)

	// A rejected enrollment is indistinguishable from a never-eligible one,
	// so the student can turn around and request again.
	resp, err = svc.RequestCertificate(enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CertificateRequested, resp.CertificateStatus)
}

func TestCertificateListings(t *testing.T) {
	db := testDB(t)
	course := seedCourse(t, db, "go-basics", true)
	e1 := seedEnrollment(t, db, 1, course.ID)
	e2 := seedEnrollment(t, db, 2, course.ID)
	e3 := seedEnrollment(t, db, 3, course.ID)
	svc := NewCertificateService(repository.NewEnrollmentRepository(db))

	for _, e := range []*model.Enrollment{e1, e2, e3} {
		completeEnrollment(t, db, e.ID, model.CertificateEligible)
		_, err := svc.RequestCertificate(e.ID)
		require.NoError(t, err)
	}

	requests, err := svc.GetCertificateRequests()
	require.NoError(t, err)
	assert.Len(t, requests, 3)
	assert.Equal(t, "go-basics", requests[0].CourseTitle)

	_, err = svc.ApproveCertificate(e1.ID)
	require.NoError(t, err)
	_, err = svc.ApproveCertificate(e2.ID)
	require.NoError(t, err)

	requests, err = svc.GetCertificateRequests()
	require.NoError(t, err)
	assert.Len(t, requests, 1)

	approved, err := svc.GetApprovedCertificates(nil)
	require.NoError(t, err)
	assert.Len(t, approved, 2)

	userID := uint(1)
	mine, err := svc.GetApprovedCertificates(&userID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, uint(1), mine[0].UserID)
}
