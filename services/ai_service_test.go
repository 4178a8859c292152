package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/smartstudy/smartstudy-backend/models"
)

const validQuizJSON = `{
  "title": "Fractions Basics",
  "description": "Intro quiz",
  "questions": [
    {
      "question": "What is 1/2 + 1/2?",
      "options": ["1", "2", "1/4", "0"],
      "correct_answer": 0,
      "explanation": "Two halves make a whole."
    },
    {
      "question": "Which is larger?",
      "options": ["1/3", "1/2"],
      "correct_answer": 1,
      "explanation": "Halves are bigger than thirds."
    }
  ]
}`

func TestParseGeneratedQuiz(t *testing.T) {
	quiz, err := parseGeneratedQuiz(validQuizJSON)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if quiz.Title != "Fractions Basics" {
		t.Fatalf("title = %q", quiz.Title)
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(quiz.Questions))
	}
	if quiz.Questions[1].CorrectAnswer != 1 {
		t.Fatalf("correct_answer = %d, want 1", quiz.Questions[1].CorrectAnswer)
	}
}

func TestParseGeneratedQuizStripsFences(t *testing.T) {
	fenced := "```json\n" + validQuizJSON + "\n```"
	quiz, err := parseGeneratedQuiz(fenced)
	if err != nil {
		t.Fatalf("parse fenced: %v", err)
	}
	if quiz.Title != "Fractions Basics" {
		t.Fatalf("title = %q", quiz.Title)
	}

	bare := "```\n" + validQuizJSON + "\n```"
	if _, err := parseGeneratedQuiz(bare); err != nil {
		t.Fatalf("parse bare fence: %v", err)
	}
}

func TestParseGeneratedQuizRejectsBadResponses(t *testing.T) {
	bad := []struct {
		name string
		raw  string
	}{
		{"not json", "Sure! Here is your quiz: ..."},
		{"empty", ""},
		{"no title", `{"questions": [{"question": "q", "options": ["a", "b"], "correct_answer": 0}]}`},
		{"no questions", `{"title": "t", "questions": []}`},
		{"bad correct_answer", `{"title": "t", "questions": [{"question": "q", "options": ["a", "b"], "correct_answer": 5}]}`},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseGeneratedQuiz(tt.raw)
			if !errors.Is(err, ErrGenerationFailed) {
				t.Fatalf("expected ErrGenerationFailed, got %v", err)
			}
		})
	}
}

func TestTutorHistoryTrimsAndMapsRoles(t *testing.T) {
	var history []models.ChatMessage
	for i := 0; i < 14; i++ {
		role := models.RoleUserMessage
		if i%2 == 1 {
			role = models.RoleAssistantMessage
		}
		history = append(history, models.ChatMessage{Role: role, Content: fmt.Sprintf("msg-%d", i)})
	}

	contents := tutorHistory(history)
	if len(contents) != 10 {
		t.Fatalf("got %d turns, want 10", len(contents))
	}
	// Oldest four trimmed; the window starts at msg-4.
	if got := fmt.Sprintf("%v", contents[0].Parts[0]); got != "msg-4" {
		t.Fatalf("first kept turn = %q, want msg-4", got)
	}
	for i, c := range contents {
		wantRole := "user"
		if (i+4)%2 == 1 {
			wantRole = "model"
		}
		if c.Role != wantRole {
			t.Fatalf("turn %d role = %q, want %q", i, c.Role, wantRole)
		}
	}
}

func TestTutorHistoryShort(t *testing.T) {
	contents := tutorHistory([]models.ChatMessage{
		{Role: models.RoleUserMessage, Content: "hi"},
	})
	if len(contents) != 1 || contents[0].Role != "user" {
		t.Fatalf("contents = %+v", contents)
	}
	if contents := tutorHistory(nil); len(contents) != 0 {
		t.Fatalf("nil history produced %d turns", len(contents))
	}
}

func TestSuggestionsFor(t *testing.T) {
	math := SuggestionsFor("Mathematics")
	if len(math) == 0 || math[0] != "Can you show me the step-by-step solution?" {
		t.Fatalf("mathematics suggestions = %v", math)
	}
	if got := SuggestionsFor("SCIENCE"); got[0] != "What's the scientific explanation?" {
		t.Fatalf("case-insensitive lookup failed: %v", got)
	}
	if got := SuggestionsFor("Philosophy"); got[0] != genericSuggestions[0] {
		t.Fatalf("unknown subject should fall back to generic: %v", got)
	}
	if got := SuggestionsFor(""); got[0] != genericSuggestions[0] {
		t.Fatalf("empty subject should fall back to generic: %v", got)
	}
}
