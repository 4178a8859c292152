package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartstudy/smartstudy-backend/models"
)

var ErrSessionNotFound = errors.New("chat session not found")

// TutorModel is the slice of AIService the tutor needs; tests swap in a
// fake to drive transcript handling without a network call.
type TutorModel interface {
	ChatWithTutor(ctx context.Context, message string, history []models.ChatMessage, subject string) (string, error)
}

// TutorService owns the per-session transcripts and mediates between stored
// history and the model call.
type TutorService struct {
	db *gorm.DB
	ai TutorModel
}

func NewTutorService(db *gorm.DB, ai TutorModel) *TutorService {
	return &TutorService{db: db, ai: ai}
}

type ChatResult struct {
	Response    string    `json:"response"`
	SessionID   uuid.UUID `json:"session_id"`
	Suggestions []string  `json:"suggestions"`
}

type SessionSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject,omitempty"`
	LastMessage string    `json:"last_message"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Chat runs one tutoring turn. The user's message is committed to the
// transcript before the model call, so a model failure never loses it; the
// assistant turn is appended only on success.
func (s *TutorService) Chat(ctx context.Context, userID uuid.UUID, sessionID *uuid.UUID, message, subject string) (*ChatResult, error) {
	session, err := s.resolveSession(userID, sessionID, subject)
	if err != nil {
		return nil, err
	}

	transcript, err := session.Transcript()
	if err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	history := transcript

	transcript = append(transcript, models.ChatMessage{
		Role:      models.RoleUserMessage,
		Content:   message,
		Timestamp: time.Now(),
	})
	if err := session.SetTranscript(transcript); err != nil {
		return nil, err
	}
	if err := s.db.Save(session).Error; err != nil {
		return nil, fmt.Errorf("persist user message: %w", err)
	}

	response, err := s.ai.ChatWithTutor(ctx, message, history, subject)
	if err != nil {
		return nil, err
	}

	transcript = append(transcript, models.ChatMessage{
		Role:      models.RoleAssistantMessage,
		Content:   response,
		Timestamp: time.Now(),
	})
	if err := session.SetTranscript(transcript); err != nil {
		return nil, err
	}
	if err := s.db.Save(session).Error; err != nil {
		return nil, fmt.Errorf("persist assistant message: %w", err)
	}

	return &ChatResult{
		Response:    response,
		SessionID:   session.ID,
		Suggestions: SuggestionsFor(subject),
	}, nil
}

// resolveSession looks up an existing session scoped to the requesting user
// or lazily creates a new one. A session id belonging to another user is
// indistinguishable from a missing one.
func (s *TutorService) resolveSession(userID uuid.UUID, sessionID *uuid.UUID, subject string) (*models.ChatSession, error) {
	if sessionID != nil {
		var session models.ChatSession
		err := s.db.Where("id = ? AND user_id = ?", *sessionID, userID).First(&session).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSessionNotFound
			}
			return nil, err
		}
		return &session, nil
	}

	title := "Chat about General"
	if subject != "" {
		title = "Chat about " + subject
	}
	session := models.ChatSession{
		UserID:   userID,
		Title:    title,
		Subject:  subject,
		Messages: []byte("[]"),
		IsActive: true,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &session, nil
}

// ListSessions returns the user's active sessions, most recently updated
// first.
func (s *TutorService) ListSessions(userID uuid.UUID) ([]SessionSummary, error) {
	var sessions []models.ChatSession
	err := s.db.
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("updated_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		last := ""
		if transcript, err := session.Transcript(); err == nil && len(transcript) > 0 {
			last = transcript[len(transcript)-1].Content
		}
		summaries = append(summaries, SessionSummary{
			ID:          session.ID,
			Title:       session.Title,
			Subject:     session.Subject,
			LastMessage: last,
			UpdatedAt:   session.UpdatedAt,
		})
	}
	return summaries, nil
}
