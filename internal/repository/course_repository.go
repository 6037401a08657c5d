package repository

import (
	"github.com/hmngo/Coursea/internal/model"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(course *model.Course) error
	FindByID(id uint) (*model.Course, error)
	FindAll() ([]model.Course, error)
	IncrementCompletedCount(id uint) error
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *model.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.Order("created_at desc").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// IncrementCompletedCount bumps the monotonic completion counter. Callers
// treat a failure here as non-fatal.
func (r *courseRepository) IncrementCompletedCount(id uint) error {
	return r.db.Model(&model.Course{}).
		Where("id = ?", id).
		UpdateColumn("completed_count", gorm.Expr("completed_count + 1")).Error
}
