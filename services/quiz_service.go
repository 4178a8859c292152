package services

import (
	"errors"
	"fmt"

	"github.com/smartstudy/smartstudy-backend/models"
)

var ErrInvalidQuiz = errors.New("invalid quiz")

// CalculateScore grades an ordered answer list against a quiz's question
// list. Answers pair positionally with questions; a missing trailing answer
// counts as incorrect. Returns 0 for an empty quiz or empty answer list,
// never an error.
func CalculateScore(questions []models.QuizQuestion, answers []int) float64 {
	if len(questions) == 0 || len(answers) == 0 {
		return 0.0
	}

	correct := 0
	for i, q := range questions {
		if i >= len(answers) {
			break
		}
		// A question missing correct_answer decodes to index 0, so grading
		// stays in bounds even for malformed data.
		if answers[i] == q.CorrectAnswer {
			correct++
		}
	}

	return float64(correct) / float64(len(questions)) * 100.0
}

// ValidateQuestions rejects malformed question sets at authoring time, so
// the tolerant scoring path never sees an out-of-range correct index.
func ValidateQuestions(questions []models.QuizQuestion) error {
	if len(questions) == 0 {
		return fmt.Errorf("%w: quiz must have at least one question", ErrInvalidQuiz)
	}
	for i, q := range questions {
		if q.Question == "" {
			return fmt.Errorf("%w: question %d has no text", ErrInvalidQuiz, i+1)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("%w: question %d needs at least two options", ErrInvalidQuiz, i+1)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("%w: question %d has correct_answer out of range", ErrInvalidQuiz, i+1)
		}
	}
	return nil
}
