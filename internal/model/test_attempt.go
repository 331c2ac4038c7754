package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UserTest is one attempt of a user at a test.
type UserTest struct {
	ID           uint             `gorm:"primarykey" json:"id"`
	TestID       uint             `json:"test_id" gorm:"not null;index"`
	Test         Test             `json:"test,omitempty" gorm:"foreignKey:TestID"`
	UserID       uint             `json:"user_id" gorm:"not null;index"`
	User         User             `json:"user,omitempty" gorm:"foreignKey:UserID"`
	IsEnded      bool             `json:"is_ended"`
	EndedAt      *time.Time       `json:"ended_time,omitempty"`
	CorrectCount int              `json:"correct_count"`
	Score        decimal.Decimal  `json:"score" gorm:"type:decimal(10,2);not null;default:0"`
	Answers      []QuestionAnswer `json:"answers,omitempty" gorm:"foreignKey:UserTestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
}
