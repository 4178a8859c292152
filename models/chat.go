package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleUserMessage      = "user"
	RoleAssistantMessage = "assistant"
)

// ChatMessage is one transcript turn inside ChatSession.Messages.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatSession holds an append-only tutoring transcript. Sessions are
// deactivated rather than deleted.
type ChatSession struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Subject   string         `gorm:"size:100" json:"subject,omitempty"`
	Messages  datatypes.JSON `json:"messages"`
	IsActive  bool           `gorm:"default:true;not null" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (s *ChatSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Transcript decodes the JSON message column into typed turns.
func (s *ChatSession) Transcript() ([]ChatMessage, error) {
	var messages []ChatMessage
	if len(s.Messages) == 0 {
		return messages, nil
	}
	if err := json.Unmarshal(s.Messages, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SetTranscript re-encodes the transcript after appending turns.
func (s *ChatSession) SetTranscript(messages []ChatMessage) error {
	raw, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	s.Messages = raw
	return nil
}
