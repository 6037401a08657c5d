package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hmngo/Coursea/internal/apperr"
	"github.com/hmngo/Coursea/internal/dto"
	"github.com/hmngo/Coursea/internal/model"
	"github.com/hmngo/Coursea/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CertificateService drives the certificate status workflow on enrollments:
// students request once their course is completed, admins approve or reject.
// Each transition is a single UPDATE keyed by enrollment id with no version
// check, so racing admin actions resolve last-write-wins.
type CertificateService interface {
	RequestCertificate(enrollmentID uint) (*dto.EnrollmentResponse, error)
	ApproveCertificate(enrollmentID uint) (*dto.EnrollmentResponse, error)
	RejectCertificate(enrollmentID uint, reason string) (*dto.EnrollmentResponse, error)
	GetCertificateRequests() ([]dto.EnrollmentResponse, error)
	GetApprovedCertificates(userID *uint) ([]dto.EnrollmentResponse, error)
}

type certificateService struct {
	enrollmentRepo repository.EnrollmentRepository
}

func NewCertificateService(enrollmentRepo repository.EnrollmentRepository) CertificateService {
	return &certificateService{enrollmentRepo: enrollmentRepo}
}

// RequestCertificate moves an enrollment to "requested". The only domain
// guard is course completion; eligibility ("eligible" vs "not_eligible") is
// intentionally not checked, so a completed student whose final score fell
// short can still file a request for admin review.
func (s *certificateService) RequestCertificate(enrollmentID uint) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.findEnrollment(enrollmentID)
	if err != nil {
		return nil, err
	}

	if !enrollment.Completed {
		return nil, fmt.Errorf("%w: complete the course before requesting a certificate", apperr.ErrPreconditionFailed)
	}
	switch enrollment.CertificateStatus {
	case model.CertificateRequested:
		return nil, fmt.Errorf("%w: certificate already requested", apperr.ErrConflict)
	case model.CertificateApproved:
		return nil, fmt.Errorf("%w: certificate already approved", apperr.ErrConflict)
	}

	now := time.Now()
	values := map[string]interface{}{
		"certificate_status":       model.CertificateRequested,
		"certificate_requested_at": now,
	}
	if err := s.enrollmentRepo.UpdateColumns(enrollmentID, values); err != nil {
		log.Error().Err(err).Uint("enrollmentID", enrollmentID).Msg("RequestCertificate: update failed")
		return nil, fmt.Errorf("requesting certificate: %w", err)
	}

	enrollment.CertificateStatus = model.CertificateRequested
	enrollment.CertificateRequestedAt = &now
	log.Info().Uint("enrollmentID", enrollmentID).Msg("Certificate requested")
	return enrollmentToDTO(enrollment), nil
}

// ApproveCertificate is the terminal admin transition. A serial number is
// minted at approval time and identifies the issued certificate.
func (s *certificateService) ApproveCertificate(enrollmentID uint) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.findEnrollment(enrollmentID)
	if err != nil {
		return nil, err
	}

	if enrollment.CertificateStatus != model.CertificateRequested {
		return nil, fmt.Errorf("%w: only requested certificates can be approved (current status %q)",
			apperr.ErrPreconditionFailed, enrollment.CertificateStatus)
	}

	now := time.Now()
	serial := uuid.NewString()
	values := map[string]interface{}{
		"certificate_status":      model.CertificateApproved,
		"certificate_approved_at": now,
		"certificate_serial":      serial,
	}
	if err := s.enrollmentRepo.UpdateColumns(enrollmentID, values); err != nil {
		log.Error().Err(err).Uint("enrollmentID", enrollmentID).Msg("ApproveCertificate: update failed")
		return nil, fmt.Errorf("approving certificate: %w", err)
	}

	enrollment.CertificateStatus = model.CertificateApproved
	enrollment.CertificateApprovedAt = &now
	enrollment.CertificateSerial = &serial
	log.Info().Uint("enrollmentID", enrollmentID).Str("serial", serial).Msg("Certificate approved")
	return enrollmentToDTO(enrollment), nil
}

// RejectCertificate folds the enrollment back to "not_eligible". Only the
// rejection timestamp and reason distinguish it from never having been
// eligible, and nothing stops the student from requesting again.
func (s *certificateService) RejectCertificate(enrollmentID uint, reason string) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.findEnrollment(enrollmentID)
	if err != nil {
		return nil, err
	}

	if enrollment.CertificateStatus != model.CertificateRequested {
		return nil, fmt.Errorf("%w: only requested certificates can be rejected (current status %q)",
			apperr.ErrPreconditionFailed, enrollment.CertificateStatus)
	}

	now := time.Now()
	values := map[string]interface{}{
		"certificate_status":      model.CertificateNotEligible,
		"certificate_rejected_at": now,
	}
	if reason != "" {
		values["certificate_rejection_reason"] = reason
	}
	if err := s.enrollmentRepo.UpdateColumns(enrollmentID, values); err != nil {
		log.Error().Err(err).Uint("enrollmentID", enrollmentID).Msg("RejectCertificate: update failed")
		return nil, fmt.Errorf("rejecting certificate: %w", err)
	}

	enrollment.CertificateStatus = model.CertificateNotEligible
	enrollment.CertificateRejectedAt = &now
	if reason != "" {
		enrollment.CertificateRejectionReason = &reason
	}
	log.Info().Uint("enrollmentID", enrollmentID).Str("reason", reason).Msg("Certificate rejected")
	return enrollmentToDTO(enrollment), nil
}

func (s *certificateService) GetCertificateRequests() ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.enrollmentRepo.FindByCertificateStatus(model.CertificateRequested, nil)
	if err != nil {
		log.Error().Err(err).Msg("GetCertificateRequests: repository error")
		return nil, fmt.Errorf("fetching certificate requests: %w", err)
	}
	return enrollmentsToDTOs(enrollments), nil
}

func (s *certificateService) GetApprovedCertificates(userID *uint) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.enrollmentRepo.FindByCertificateStatus(model.CertificateApproved, userID)
	if err != nil {
		log.Error().Err(err).Msg("GetApprovedCertificates: repository error")
		return nil, fmt.Errorf("fetching approved certificates: %w", err)
	}
	return enrollmentsToDTOs(enrollments), nil
}

func (s *certificateService) findEnrollment(id uint) (*model.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.FindByIDWithCourse(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: enrollment %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("loading enrollment %d: %w", id, err)
	}
	return enrollment, nil
}
