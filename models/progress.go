package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Progress tracks one learner's standing in a (subject, topic) pair.
// MasteryLevel is a normalized [0,1] estimate maintained by the learning flow.
type Progress struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Subject      string         `gorm:"size:100;not null;index" json:"subject"`
	Topic        string         `gorm:"size:150;not null" json:"topic"`
	MasteryLevel float64        `gorm:"default:0" json:"mastery_level"`
	StudyTime    int            `gorm:"default:0" json:"study_time"` // minutes
	QuizScores   datatypes.JSON `json:"quiz_scores,omitempty"`
	Strengths    datatypes.JSON `json:"strengths,omitempty"`
	Weaknesses   datatypes.JSON `json:"weaknesses,omitempty"`
	LastStudied  *time.Time     `gorm:"type:date" json:"last_studied,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (p *Progress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
