package service

import (
	"errors"
	"fmt"

	"github.com/hmngo/Coursea/internal/apperr"
	"github.com/hmngo/Coursea/internal/dto"
	"github.com/hmngo/Coursea/internal/model"
	"github.com/hmngo/Coursea/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type EnrollmentService interface {
	Enroll(req dto.CreateEnrollmentRequest) (*dto.EnrollmentResponse, error)
	GetUserEnrollments(userID uint) ([]dto.EnrollmentResponse, error)
}

type enrollmentService struct {
	enrollmentRepo repository.EnrollmentRepository
	courseRepo     repository.CourseRepository
}

func NewEnrollmentService(enrollmentRepo repository.EnrollmentRepository, courseRepo repository.CourseRepository) EnrollmentService {
	return &enrollmentService{enrollmentRepo: enrollmentRepo, courseRepo: courseRepo}
}

// Enroll creates the (user, course) enrollment record. Progress starts at
// zero and the certificate status at "not_eligible" regardless of whether
// the course issues certificates.
func (s *enrollmentService) Enroll(req dto.CreateEnrollmentRequest) (*dto.EnrollmentResponse, error) {
	course, err := s.courseRepo.FindByID(req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course %d", apperr.ErrNotFound, req.CourseID)
		}
		return nil, fmt.Errorf("loading course %d: %w", req.CourseID, err)
	}

	if existing, findErr := s.enrollmentRepo.FindByUserAndCourse(req.UserID, req.CourseID); findErr == nil && existing != nil {
		return nil, fmt.Errorf("%w: user %d is already enrolled in course %d", apperr.ErrConflict, req.UserID, req.CourseID)
	}

	enrollment := model.Enrollment{
		UserID:            req.UserID,
		CourseID:          req.CourseID,
		CertificateStatus: model.CertificateNotEligible,
	}
	if err := s.enrollmentRepo.Create(&enrollment); err != nil {
		log.Error().Err(err).Uint("userID", req.UserID).Uint("courseID", req.CourseID).Msg("Enroll: create failed")
		return nil, fmt.Errorf("creating enrollment: %w", err)
	}
	enrollment.Course = *course

	log.Info().Uint("enrollmentID", enrollment.ID).Uint("userID", req.UserID).Uint("courseID", req.CourseID).Msg("User enrolled")
	return enrollmentToDTO(&enrollment), nil
}

func (s *enrollmentService) GetUserEnrollments(userID uint) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.enrollmentRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetUserEnrollments: repository error")
		return nil, fmt.Errorf("fetching enrollments for user %d: %w", userID, err)
	}
	return enrollmentsToDTOs(enrollments), nil
}

func enrollmentToDTO(enrollment *model.Enrollment) *dto.EnrollmentResponse {
	var resp dto.EnrollmentResponse
	if err := copier.Copy(&resp, enrollment); err != nil {
		log.Warn().Err(err).Uint("enrollmentID", enrollment.ID).Msg("Failed to copy enrollment to DTO")
	}
	if enrollment.Course.ID != 0 {
		resp.CourseTitle = enrollment.Course.Title
	}
	return &resp
}

func enrollmentsToDTOs(enrollments []model.Enrollment) []dto.EnrollmentResponse {
	dtos := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		dtos = append(dtos, *enrollmentToDTO(&enrollments[i]))
	}
	return dtos
}
