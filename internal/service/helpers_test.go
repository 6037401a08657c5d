package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/hmngo/Coursea/internal/dto"
	"github.com/hmngo/Coursea/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A uniquely named shared-cache memory database keeps each test isolated
	// while letting gorm's pool see the same data on every connection.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Course{},
		&model.Test{},
		&model.Question{},
		&model.Enrollment{},
		&model.TestAttempt{},
	))

	t.Cleanup(func() {
		sqlDB, dbErr := db.DB()
		if dbErr == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedCourse(t *testing.T, db *gorm.DB, title string, hasCertificate bool) *model.Course {
	t.Helper()
	course := &model.Course{
		Title:          title,
		Slug:           title,
		HasCertificate: hasCertificate,
	}
	require.NoError(t, db.Create(course).Error)
	return course
}

func seedTest(t *testing.T, db *gorm.DB, courseID uint, final bool, questions int) *model.Test {
	t.Helper()
	test := &model.Test{
		CourseID:          courseID,
		Title:             "Assessment",
		IsFinalAssessment: final,
		PassingScore:      80,
		MaxAttempts:       3,
	}
	for i := 0; i < questions; i++ {
		options, err := json.Marshal([]string{"a", "b", "c", "d"})
		require.NoError(t, err)
		test.Questions = append(test.Questions, model.Question{
			Prompt:        "q",
			Options:       options,
			CorrectOption: 0,
			OrderInTest:   i + 1,
		})
	}
	require.NoError(t, db.Create(test).Error)
	return test
}

func seedEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint) *model.Enrollment {
	t.Helper()
	enrollment := &model.Enrollment{
		UserID:            userID,
		CourseID:          courseID,
		CertificateStatus: model.CertificateNotEligible,
	}
	require.NoError(t, db.Create(enrollment).Error)
	return enrollment
}

// answerDetails builds a caller-graded detail list with the given number of
// correct entries out of total.
func answerDetails(correct, total int) []dto.AnswerDetailDTO {
	details := make([]dto.AnswerDetailDTO, 0, total)
	for i := 0; i < total; i++ {
		selected := i % 4
		details = append(details, dto.AnswerDetailDTO{
			QuestionID:     uint(i + 1),
			SelectedOption: &selected,
			IsCorrect:      i < correct,
		})
	}
	return details
}

func submission(userID uint, correct, total int) dto.TestAttemptSubmitDTO {
	answers := make([]*int, 0, total)
	for i := 0; i < total; i++ {
		selected := i % 4
		answers = append(answers, &selected)
	}
	return dto.TestAttemptSubmitDTO{
		UserID:        userID,
		Answers:       answers,
		AnswerDetails: answerDetails(correct, total),
	}
}
