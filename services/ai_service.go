package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/smartstudy/smartstudy-backend/config"
	"github.com/smartstudy/smartstudy-backend/models"
)

// ErrGenerationFailed covers every upstream model failure: transport errors,
// empty candidates, and responses that do not parse into the expected shape.
// Callers surface it as a retryable service error, distinct from storage
// errors.
var ErrGenerationFailed = errors.New("ai generation failed")

const tutorSystemPrompt = `You are SmartStudy, an intelligent tutoring assistant. Your role is to:
1. Help students understand concepts clearly
2. Provide step-by-step explanations
3. Encourage critical thinking
4. Adapt to the student's learning level
5. Be supportive and patient

Always provide educational value and encourage learning.`

// AIService mediates between the platform and the Gemini API.
type AIService struct {
	apiKey  string
	model   string
	timeout time.Duration
}

func NewAIService(cfg *config.Config) *AIService {
	return &AIService{
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.GeminiModel,
		timeout: cfg.AITimeout,
	}
}

// GeneratedQuiz is the parsed shape of a quiz-generation response.
type GeneratedQuiz struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Questions   []models.QuizQuestion `json:"questions"`
}

// GenerateQuiz prompts the model for a structured quiz and validates the
// parsed response before handing it back for persistence.
func (s *AIService) GenerateQuiz(ctx context.Context, subject, topic, difficulty string, numQuestions int) (*GeneratedQuiz, error) {
	prompt := fmt.Sprintf(`
Create a %s level quiz about %s in %s.
Generate %d multiple choice questions.

Format the response as JSON with this structure:
{
  "title": "Quiz title",
  "description": "Brief description",
  "questions": [
    {
      "question": "Question text",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correct_answer": 0,
      "explanation": "Why this answer is correct"
    }
  ]
}

Only return valid JSON, no other text.
Make sure questions are educational and cover different aspects of the topic.
Difficulty level: %s (easy = basic concepts, medium = application, hard = analysis/synthesis)
`, difficulty, topic, subject, numQuestions, difficulty)

	raw, err := s.generateText(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseGeneratedQuiz(raw)
}

// parseGeneratedQuiz strips markdown fences the model tends to wrap JSON in,
// decodes it, and validates the question shape.
func parseGeneratedQuiz(raw string) (*GeneratedQuiz, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "`")
	clean = strings.TrimPrefix(clean, "json")
	clean = strings.TrimSpace(clean)

	var quiz GeneratedQuiz
	if err := json.Unmarshal([]byte(clean), &quiz); err != nil {
		return nil, fmt.Errorf("%w: response is not valid JSON: %v", ErrGenerationFailed, err)
	}
	if quiz.Title == "" {
		return nil, fmt.Errorf("%w: response has no title", ErrGenerationFailed)
	}
	if err := ValidateQuestions(quiz.Questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return &quiz, nil
}

// ChatWithTutor sends one tutoring turn to the model. The input context is
// the fixed system instruction plus at most the 10 most recent transcript
// turns, oldest first.
func (s *AIService) ChatWithTutor(ctx context.Context, message string, history []models.ChatMessage, subject string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("%w: create client: %v", ErrGenerationFailed, err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.model)
	system := tutorSystemPrompt
	if subject != "" {
		system += fmt.Sprintf("\n\nFocus on %s topics.", subject)
	}
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	chat := model.StartChat()
	chat.History = tutorHistory(history)

	resp, err := chat.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

// tutorHistory converts the trailing 10 transcript turns into model context.
func tutorHistory(history []models.ChatMessage) []*genai.Content {
	if len(history) > 10 {
		history = history[len(history)-10:]
	}
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		role := "user"
		if msg.Role == models.RoleAssistantMessage {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return contents
}

func (s *AIService) generateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("%w: create client: %v", ErrGenerationFailed, err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

var genericSuggestions = []string{
	"Can you explain this concept differently?",
	"Can you give me an example?",
	"What are the key points to remember?",
	"How does this relate to other topics?",
}

var subjectSuggestions = map[string][]string{
	"mathematics": {
		"Can you show me the step-by-step solution?",
		"What's the real-world application of this?",
		"Are there any shortcuts or tricks?",
	},
	"science": {
		"What's the scientific explanation?",
		"Can you describe the process?",
		"What experiments demonstrate this?",
	},
	"history": {
		"What were the causes and effects?",
		"How did this impact society?",
		"What were the key figures involved?",
	},
}

// SuggestionsFor returns follow-up question suggestions for a subject.
// The lookup is static and case-insensitive; unknown or absent subjects
// get the generic list.
func SuggestionsFor(subject string) []string {
	if subject == "" {
		return genericSuggestions
	}
	if suggestions, ok := subjectSuggestions[strings.ToLower(subject)]; ok {
		return suggestions
	}
	return genericSuggestions
}
