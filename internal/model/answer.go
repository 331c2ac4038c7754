package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	FlagUntagged    = 0
	FlagCorrect     = 1
	FlagSemiCorrect = 2
	FlagIncorrect   = 3
)

// QuestionAnswer is created for every question when an attempt starts and
// overwritten on each submission.
type QuestionAnswer struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	UserTestID     uint            `json:"user_test_id" gorm:"not null;index"`
	QuestionID     uint            `json:"question_id" gorm:"not null;index"`
	Question       Question        `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	UserID         uint            `json:"user_id" gorm:"not null;index"`
	Order          int             `json:"order" gorm:"column:sort_order;not null"`
	UserAnswer     string          `json:"user_answer" gorm:"type:text"`
	IsAnswered     bool            `json:"is_answered" gorm:"not null;default:false"`
	Flag           int             `json:"flag" gorm:"not null;default:0"`
	ScoreForAnswer decimal.Decimal `json:"score_for_answer" gorm:"type:decimal(8,2);not null;default:0"`
	Checked        bool            `json:"checked"`
	AIFeedback     string          `json:"ai_feedback,omitempty" gorm:"type:text"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}
