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

type TestService interface {
	CreateTest(courseID uint, req dto.CreateTestRequest) (*dto.TestResponseDTO, error)
	GetTestDetails(testID uint) (*dto.TestResponseDTO, error)
}

type testService struct {
	testRepo   repository.TestRepository
	courseRepo repository.CourseRepository
}

func NewTestService(testRepo repository.TestRepository, courseRepo repository.CourseRepository) TestService {
	return &testService{testRepo: testRepo, courseRepo: courseRepo}
}

// CreateTest creates a test with its questions under a course. Question
// order must be unique within the test and every correct option must point
// at one of the provided choices.
func (s *testService) CreateTest(courseID uint, req dto.CreateTestRequest) (*dto.TestResponseDTO, error) {
	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course %d", apperr.ErrNotFound, courseID)
		}
		return nil, fmt.Errorf("loading course %d: %w", courseID, err)
	}

	orders := make(map[int]bool)
	for _, q := range req.Questions {
		if orders[q.OrderInTest] {
			return nil, fmt.Errorf("%w: duplicate order_in_test %d", apperr.ErrValidation, q.OrderInTest)
		}
		orders[q.OrderInTest] = true
		if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
			return nil, fmt.Errorf("%w: correct_option %d out of range for question at order %d",
				apperr.ErrValidation, q.CorrectOption, q.OrderInTest)
		}
	}

	test := model.Test{
		CourseID:          courseID,
		Title:             req.Title,
		Description:       req.Description,
		IsFinalAssessment: req.IsFinalAssessment,
	}
	if req.PassingScore > 0 {
		test.PassingScore = req.PassingScore
	} else {
		test.PassingScore = PassingThreshold
	}
	if req.MaxAttempts > 0 {
		test.MaxAttempts = req.MaxAttempts
	} else {
		test.MaxAttempts = 3
	}
	test.TimeLimitMinutes = req.TimeLimitMinutes

	for _, q := range req.Questions {
		optionsJSON, err := json.Marshal(q.Options)
		if err != nil {
			return nil, fmt.Errorf("%w: encoding options: %v", apperr.ErrValidation, err)
		}
		test.Questions = append(test.Questions, model.Question{
			Prompt:        q.Prompt,
			Options:       optionsJSON,
			CorrectOption: q.CorrectOption,
			OrderInTest:   q.OrderInTest,
		})
	}

	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Uint("courseID", courseID).Msg("CreateTest: create failed")
		return nil, fmt.Errorf("creating test: %w", err)
	}

	log.Info().Uint("testID", test.ID).Uint("courseID", courseID).Int("questions", len(test.Questions)).Msg("Test created")
	return testToDTO(&test)
}

// GetTestDetails returns the test with its questions in order. The correct
// option index never leaves the service.
func (s *testService) GetTestDetails(testID uint) (*dto.TestResponseDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: test %d", apperr.ErrNotFound, testID)
		}
		return nil, fmt.Errorf("loading test %d: %w", testID, err)
	}
	return testToDTO(test)
}

func testToDTO(test *model.Test) (*dto.TestResponseDTO, error) {
	resp := dto.TestResponseDTO{
		ID:                test.ID,
		CourseID:          test.CourseID,
		Title:             test.Title,
		Description:       test.Description,
		IsFinalAssessment: test.IsFinalAssessment,
		MaxAttempts:       test.MaxAttempts,
		TimeLimitMinutes:  test.TimeLimitMinutes,
		CreatedAt:         test.CreatedAt,
	}
	for _, q := range test.Questions {
		var options []string
		if len(q.Options) > 0 {
			if err := json.Unmarshal(q.Options, &options); err != nil {
				return nil, fmt.Errorf("decoding options of question %d: %w", q.ID, err)
			}
		}
		resp.Questions = append(resp.Questions, dto.QuestionResponseDTO{
			ID:          q.ID,
			TestID:      q.TestID,
			Prompt:      q.Prompt,
			Options:     options,
			OrderInTest: q.OrderInTest,
		})
	}
	return &resp, nil
}
