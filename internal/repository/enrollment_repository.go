package repository

import (
	"github.com/hmngo/Coursea/internal/model"
	"gorm.io/gorm"
)

type EnrollmentRepository interface {
	Create(enrollment *model.Enrollment) error
	FindByID(id uint) (*model.Enrollment, error)
	FindByIDWithCourse(id uint) (*model.Enrollment, error)
	FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error)
	FindAllByUser(userID uint) ([]model.Enrollment, error)
	FindByCertificateStatus(status string, userID *uint) ([]model.Enrollment, error)
	UpdateColumns(id uint, values map[string]interface{}) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.db.Create(enrollment).Error
}

func (r *enrollmentRepository) FindByID(id uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	if err := r.db.First(&enrollment, id).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) FindByIDWithCourse(id uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	if err := r.db.Preload("Course").First(&enrollment, id).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) FindAllByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.db.Preload("Course").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *enrollmentRepository) FindByCertificateStatus(status string, userID *uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	query := r.db.Preload("Course").Where("certificate_status = ?", status)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	err := query.Order("certificate_requested_at DESC NULLS LAST").Find(&enrollments).Error
	return enrollments, err
}

// UpdateColumns performs a single unconditional UPDATE keyed by enrollment
// id. There is no version column, so concurrent writers are last-write-wins.
func (r *enrollmentRepository) UpdateColumns(id uint, values map[string]interface{}) error {
	return r.db.Model(&model.Enrollment{}).Where("id = ?", id).Updates(values).Error
}
