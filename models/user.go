package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserStatus string

const (
	UserActive      UserStatus = "active"
	UserDeactivated UserStatus = "deactivated"
)

// User accounts are never hard-deleted; deactivation flips Status so that
// historical attempts and progress rows stay referentially intact.
type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string     `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Username       string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	FirstName      string     `gorm:"size:100;not null" json:"first_name"`
	LastName       string     `gorm:"size:100;not null" json:"last_name"`
	HashedPassword string     `gorm:"type:text;not null" json:"-"`
	Status         UserStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	IsPremium      bool       `gorm:"default:false;not null" json:"is_premium"`
	ProfilePicture string     `gorm:"type:text" json:"profile_picture,omitempty"`
	Bio            string     `gorm:"type:text" json:"bio,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Quizzes         []Quiz        `gorm:"foreignKey:UserID" json:"-"`
	ProgressRecords []Progress    `gorm:"foreignKey:UserID" json:"-"`
	ChatSessions    []ChatSession `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsActive() bool {
	return u.Status == UserActive
}
