package models

import "testing"

func TestQuestionList(t *testing.T) {
	quiz := Quiz{Questions: []byte(`[
		{"question": "2+2?", "options": ["3", "4"], "correct_answer": 1},
		{"question": "untagged", "options": ["a", "b"]}
	]`)}

	questions, err := quiz.QuestionList()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	if questions[0].CorrectAnswer != 1 {
		t.Fatalf("correct_answer = %d, want 1", questions[0].CorrectAnswer)
	}
	// Absent correct_answer decodes to the zero index.
	if questions[1].CorrectAnswer != 0 {
		t.Fatalf("missing correct_answer = %d, want 0", questions[1].CorrectAnswer)
	}
}

func TestQuestionListEmpty(t *testing.T) {
	var quiz Quiz
	questions, err := quiz.QuestionList()
	if err != nil {
		t.Fatalf("decode empty: %v", err)
	}
	if len(questions) != 0 {
		t.Fatalf("got %d questions from empty column", len(questions))
	}
}

func TestTranscriptRoundTrip(t *testing.T) {
	var session ChatSession
	turns := []ChatMessage{
		{Role: RoleUserMessage, Content: "hello"},
		{Role: RoleAssistantMessage, Content: "hi there"},
	}
	if err := session.SetTranscript(turns); err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := session.Transcript()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("got %d turns, want 2", len(decoded))
	}
	if decoded[0].Role != RoleUserMessage || decoded[1].Content != "hi there" {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}
