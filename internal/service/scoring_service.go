package service

import (
	"math"

	"github.com/hmngo/Coursea/internal/dto"
)

// PassingThreshold is the platform-wide pass mark in percent. Scoring applies
// it to every attempt; the per-test PassingScore column is currently not
// consulted.
const PassingThreshold = 80

// AttemptOutcome is the computed result of grading one submission.
type AttemptOutcome struct {
	Score          int
	TotalQuestions int
	Percentage     int
	Passed         bool
}

// ScoringService turns submitted answer details into an attempt outcome.
type ScoringService interface {
	Grade(details []dto.AnswerDetailDTO) AttemptOutcome
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

// Grade counts the entries the caller marked correct and derives the
// percentage and pass flag. A zero-question submission grades to 0 percent
// and a fail.
func (s *scoringService) Grade(details []dto.AnswerDetailDTO) AttemptOutcome {
	score := 0
	for _, d := range details {
		if d.IsCorrect {
			score++
		}
	}
	total := len(details)

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(score) / float64(total) * 100))
	}

	return AttemptOutcome{
		Score:          score,
		TotalQuestions: total,
		Percentage:     percentage,
		Passed:         percentage >= PassingThreshold,
	}
}
