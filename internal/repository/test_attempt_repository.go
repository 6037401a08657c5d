package repository

import (
	"github.com/hmngo/Coursea/internal/model"
	"gorm.io/gorm"
)

type TestAttemptRepository interface {
	Create(attempt *model.TestAttempt) error
	FindByID(id uint) (*model.TestAttempt, error)
	FindByIDWithTest(id uint) (*model.TestAttempt, error)
	FindAllByUser(userID uint, courseID *uint) ([]model.TestAttempt, error)
	CountByTestAndUser(testID, userID uint) (int64, error)
}

type testAttemptRepository struct {
	db *gorm.DB
}

func NewTestAttemptRepository(db *gorm.DB) TestAttemptRepository {
	return &testAttemptRepository{db: db}
}

// Create inserts the attempt row. Attempts are immutable after insert; a
// retake inserts a new row instead of updating an existing one.
func (r *testAttemptRepository) Create(attempt *model.TestAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *testAttemptRepository) FindByID(id uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	if err := r.db.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindByIDWithTest(id uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	if err := r.db.Preload("Test").First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindAllByUser(userID uint, courseID *uint) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	query := r.db.Preload("Test").Where("user_id = ?", userID)
	if courseID != nil {
		query = query.Where("course_id = ?", *courseID)
	}
	err := query.Order("submitted_at DESC").Find(&attempts).Error
	return attempts, err
}

func (r *testAttemptRepository) CountByTestAndUser(testID, userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.TestAttempt{}).
		Where("test_id = ? AND user_id = ?", testID, userID).
		Count(&count).Error
	return count, err
}
