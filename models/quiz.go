package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizQuestion is the element shape of Quiz.Questions. The whole question
// list lives in a single JSON column, matching how quizzes are authored and
// served as one unit.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

type Quiz struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string         `gorm:"size:255;not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description,omitempty"`
	Subject       string         `gorm:"size:100;not null;index" json:"subject"`
	Difficulty    string         `gorm:"size:20;not null" json:"difficulty"` // easy, medium, hard
	Questions     datatypes.JSON `gorm:"not null" json:"questions"`
	TimeLimit     int            `json:"time_limit,omitempty"` // minutes, 0 = unlimited
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	IsAIGenerated bool           `gorm:"default:false" json:"is_ai_generated"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	User     User          `gorm:"foreignKey:UserID" json:"-"`
	Attempts []QuizAttempt `gorm:"foreignKey:QuizID" json:"-"`
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// QuestionList decodes the JSON question column into typed questions.
func (q *Quiz) QuestionList() ([]QuizQuestion, error) {
	var questions []QuizQuestion
	if len(q.Questions) == 0 {
		return questions, nil
	}
	if err := json.Unmarshal(q.Questions, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// QuizAttempt is one scored submission. Rows are created once and never
// updated; the score is derived server-side, never taken from the client.
type QuizAttempt struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	QuizID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Answers   datatypes.JSON `gorm:"not null" json:"answers"`
	Score     float64        `gorm:"type:numeric(5,2);not null" json:"score"`
	TimeTaken int            `gorm:"not null" json:"time_taken"` // seconds
	Completed bool           `gorm:"default:true" json:"completed"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Quiz Quiz `gorm:"foreignKey:QuizID" json:"-"`
}

func (a *QuizAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
