package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoringServiceGrade(t *testing.T) {
	scoring := NewScoringService()

	tests := []struct {
		name           string
		correct        int
		total          int
		wantPercentage int
		wantPassed     bool
	}{
		{name: "exactly at threshold", correct: 8, total: 10, wantPercentage: 80, wantPassed: true},
		{name: "just below threshold", correct: 7, total: 10, wantPercentage: 70, wantPassed: false},
		{name: "perfect score", correct: 10, total: 10, wantPercentage: 100, wantPassed: true},
		{name: "zero correct", correct: 0, total: 10, wantPercentage: 0, wantPassed: false},
		{name: "no questions", correct: 0, total: 0, wantPercentage: 0, wantPassed: false},
		{name: "rounds down", correct: 1, total: 3, wantPercentage: 33, wantPassed: false},
		{name: "rounds up", correct: 2, total: 3, wantPercentage: 67, wantPassed: false},
		{name: "rounding can cross threshold", correct: 39, total: 49, wantPercentage: 80, wantPassed: true},
		{name: "single question pass", correct: 1, total: 1, wantPercentage: 100, wantPassed: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			outcome := scoring.Grade(answerDetails(tc.correct, tc.total))
			assert.Equal(t, tc.correct, outcome.Score)
			assert.Equal(t, tc.total, outcome.TotalQuestions)
			assert.Equal(t, tc.wantPercentage, outcome.Percentage)
			assert.Equal(t, tc.wantPassed, outcome.Passed)
		})
	}
}
