package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hmngo/Coursea/internal/apperr"
	"github.com/hmngo/Coursea/internal/dto"
	"github.com/hmngo/Coursea/internal/model"
	"github.com/hmngo/Coursea/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmissionService records test attempts and applies their side effects to
// the student's enrollment.
type SubmissionService interface {
	SubmitTest(testID uint, req dto.TestAttemptSubmitDTO) (*dto.SubmitResultDTO, error)
	GetTestAttempt(attemptID uint) (*dto.TestAttemptDTO, error)
	GetUserTestAttempts(userID uint, courseID *uint) ([]dto.TestAttemptDTO, error)
	RetakeStatus(testID, userID uint) (*dto.RetakeStatusDTO, error)
}

type submissionService struct {
	testRepo       repository.TestRepository
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
	attemptRepo    repository.TestAttemptRepository
	scoring        ScoringService
}

func NewSubmissionService(
	testRepo repository.TestRepository,
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
	attemptRepo repository.TestAttemptRepository,
	scoring ScoringService,
) SubmissionService {
	return &submissionService{
		testRepo:       testRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		attemptRepo:    attemptRepo,
		scoring:        scoring,
	}
}

// SubmitTest records one submission as an immutable attempt row, then updates
// the enrollment when the test is the course's final assessment. The writes
// are deliberately independent rather than transactional: once the attempt
// row exists, a failed enrollment update is logged and the submission still
// succeeds. Resubmitting creates a new attempt and the enrollment reflects
// whichever submission wrote last.
func (s *submissionService) SubmitTest(testID uint, req dto.TestAttemptSubmitDTO) (*dto.SubmitResultDTO, error) {
	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: test %d", apperr.ErrNotFound, testID)
		}
		return nil, fmt.Errorf("loading test %d: %w", testID, err)
	}

	enrollment, err := s.enrollmentRepo.FindByUserAndCourse(req.UserID, test.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d is not enrolled in course %d", apperr.ErrNotFound, req.UserID, test.CourseID)
		}
		return nil, fmt.Errorf("loading enrollment: %w", err)
	}

	outcome := s.scoring.Grade(req.AnswerDetails)

	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding answers: %v", apperr.ErrValidation, err)
	}

	attempt := model.TestAttempt{
		UserID:         req.UserID,
		TestID:         test.ID,
		CourseID:       test.CourseID,
		EnrollmentID:   enrollment.ID,
		Answers:        answersJSON,
		Score:          outcome.Score,
		TotalQuestions: outcome.TotalQuestions,
		Percentage:     outcome.Percentage,
		Passed:         outcome.Passed,
	}
	if err := s.attemptRepo.Create(&attempt); err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("userID", req.UserID).Msg("SubmitTest: failed to insert attempt")
		return nil, fmt.Errorf("recording attempt: %w", err)
	}

	certificateEligible := false
	if test.IsFinalAssessment {
		course, courseErr := s.courseRepo.FindByID(test.CourseID)
		if courseErr != nil {
			log.Error().Err(courseErr).Uint("courseID", test.CourseID).Msg("SubmitTest: attempt recorded but course lookup failed, enrollment left unchanged")
		} else {
			values := map[string]interface{}{
				"progress":      100,
				"completed":     true,
				"average_score": float64(outcome.Percentage),
			}
			if course.HasCertificate {
				status := model.CertificateNotEligible
				if outcome.Passed {
					status = model.CertificateEligible
					certificateEligible = true
				}
				values["certificate_status"] = status
			}
			if updErr := s.enrollmentRepo.UpdateColumns(enrollment.ID, values); updErr != nil {
				// Partial success: the attempt row exists but the enrollment
				// is stale until reconciled. Surfaced in logs only.
				log.Error().Err(updErr).Uint("enrollmentID", enrollment.ID).Uint("attemptID", attempt.ID).
					Msg("SubmitTest: attempt recorded but enrollment update failed")
			}
			if incErr := s.courseRepo.IncrementCompletedCount(course.ID); incErr != nil {
				log.Warn().Err(incErr).Uint("courseID", course.ID).Msg("SubmitTest: failed to increment course completed count")
			}
		}
	}

	log.Info().
		Uint("attemptID", attempt.ID).
		Uint("testID", testID).
		Uint("userID", req.UserID).
		Int("percentage", outcome.Percentage).
		Bool("passed", outcome.Passed).
		Msg("Test attempt recorded")

	return &dto.SubmitResultDTO{
		AttemptID:           attempt.ID,
		Score:               outcome.Score,
		TotalQuestions:      outcome.TotalQuestions,
		Percentage:          outcome.Percentage,
		Passed:              outcome.Passed,
		CertificateEligible: certificateEligible,
	}, nil
}

func (s *submissionService) GetTestAttempt(attemptID uint) (*dto.TestAttemptDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithTest(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: test attempt %d", apperr.ErrNotFound, attemptID)
		}
		return nil, fmt.Errorf("loading attempt %d: %w", attemptID, err)
	}
	return attemptToDTO(attempt)
}

func (s *submissionService) GetUserTestAttempts(userID uint, courseID *uint) ([]dto.TestAttemptDTO, error) {
	attempts, err := s.attemptRepo.FindAllByUser(userID, courseID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetUserTestAttempts: repository error")
		return nil, fmt.Errorf("fetching attempts for user %d: %w", userID, err)
	}

	dtos := make([]dto.TestAttemptDTO, 0, len(attempts))
	for i := range attempts {
		d, convErr := attemptToDTO(&attempts[i])
		if convErr != nil {
			log.Warn().Err(convErr).Uint("attemptID", attempts[i].ID).Msg("GetUserTestAttempts: skipping attempt with bad answer payload")
			continue
		}
		dtos = append(dtos, *d)
	}
	return dtos, nil
}

// RetakeStatus reports attempt usage against the test's configured cap. It
// is advisory only: SubmitTest never consults it, so a client that ignores
// the answer can still resubmit.
func (s *submissionService) RetakeStatus(testID, userID uint) (*dto.RetakeStatusDTO, error) {
	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: test %d", apperr.ErrNotFound, testID)
		}
		return nil, fmt.Errorf("loading test %d: %w", testID, err)
	}

	used, err := s.attemptRepo.CountByTestAndUser(testID, userID)
	if err != nil {
		return nil, fmt.Errorf("counting attempts: %w", err)
	}

	return &dto.RetakeStatusDTO{
		TestID:       testID,
		AttemptsUsed: int(used),
		MaxAttempts:  test.MaxAttempts,
		CanRetake:    int(used) < test.MaxAttempts,
	}, nil
}

func attemptToDTO(attempt *model.TestAttempt) (*dto.TestAttemptDTO, error) {
	d := dto.TestAttemptDTO{
		ID:             attempt.ID,
		UserID:         attempt.UserID,
		TestID:         attempt.TestID,
		CourseID:       attempt.CourseID,
		EnrollmentID:   attempt.EnrollmentID,
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		Percentage:     attempt.Percentage,
		Passed:         attempt.Passed,
		SubmittedAt:    attempt.SubmittedAt,
	}
	if len(attempt.Answers) > 0 {
		if err := json.Unmarshal(attempt.Answers, &d.Answers); err != nil {
			return nil, fmt.Errorf("decoding answers of attempt %d: %w", attempt.ID, err)
		}
	}
	if attempt.Test.ID != 0 {
		d.TestTitle = attempt.Test.Title
	}
	return &d, nil
}
