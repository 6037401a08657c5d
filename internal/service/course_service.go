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

type CourseService interface {
	CreateCourse(req dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetAllCourses() ([]dto.CourseResponse, error)
	GetCourse(courseID uint) (*dto.CourseResponse, error)
	GetCourseTests(courseID uint) ([]dto.TestSummaryDTO, error)
}

type courseService struct {
	courseRepo repository.CourseRepository
	testRepo   repository.TestRepository
}

func NewCourseService(courseRepo repository.CourseRepository, testRepo repository.TestRepository) CourseService {
	return &courseService{courseRepo: courseRepo, testRepo: testRepo}
}

func (s *courseService) CreateCourse(req dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	course := model.Course{
		Title:          req.Title,
		Slug:           req.Slug,
		Description:    req.Description,
		HasCertificate: req.HasCertificate,
	}
	if err := s.courseRepo.Create(&course); err != nil {
		log.Error().Err(err).Str("slug", req.Slug).Msg("CreateCourse: create failed")
		return nil, fmt.Errorf("creating course: %w", err)
	}

	log.Info().Uint("courseID", course.ID).Str("slug", course.Slug).Msg("Course created")
	return courseToDTO(&course), nil
}

func (s *courseService) GetAllCourses() ([]dto.CourseResponse, error) {
	courses, err := s.courseRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("GetAllCourses: repository error")
		return nil, fmt.Errorf("fetching courses: %w", err)
	}

	dtos := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		dtos = append(dtos, *courseToDTO(&courses[i]))
	}
	return dtos, nil
}

func (s *courseService) GetCourse(courseID uint) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course %d", apperr.ErrNotFound, courseID)
		}
		return nil, fmt.Errorf("loading course %d: %w", courseID, err)
	}
	return courseToDTO(course), nil
}

func (s *courseService) GetCourseTests(courseID uint) ([]dto.TestSummaryDTO, error) {
	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course %d", apperr.ErrNotFound, courseID)
		}
		return nil, fmt.Errorf("loading course %d: %w", courseID, err)
	}

	testsWithCount, err := s.testRepo.FindAllByCourseWithQuestionCount(courseID)
	if err != nil {
		log.Error().Err(err).Uint("courseID", courseID).Msg("GetCourseTests: repository error")
		return nil, fmt.Errorf("fetching tests for course %d: %w", courseID, err)
	}

	dtos := make([]dto.TestSummaryDTO, 0, len(testsWithCount))
	for _, twc := range testsWithCount {
		dtos = append(dtos, dto.TestSummaryDTO{
			ID:                twc.Test.ID,
			CourseID:          twc.Test.CourseID,
			Title:             twc.Test.Title,
			IsFinalAssessment: twc.Test.IsFinalAssessment,
			QuestionCount:     twc.QuestionCount,
			CreatedAt:         twc.Test.CreatedAt,
		})
	}
	return dtos, nil
}

func courseToDTO(course *model.Course) *dto.CourseResponse {
	var resp dto.CourseResponse
	if err := copier.Copy(&resp, course); err != nil {
		log.Warn().Err(err).Uint("courseID", course.ID).Msg("Failed to copy course to DTO")
	}
	return &resp
}
