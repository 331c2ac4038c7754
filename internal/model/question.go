package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Question keeps its options and correct answer as the JSON documents the
// API sends, so they round-trip without a per-kind schema.
type Question struct {
	ID           uint            `gorm:"primarykey" json:"id"`
	TestID       uint            `json:"test_id" gorm:"not null;index"`
	Order        int             `json:"order" gorm:"column:sort_order;not null"`
	Text         string          `json:"text" gorm:"type:text"`
	Column1      string          `json:"column1,omitempty"`
	Column2      string          `json:"column2,omitempty"`
	Paragraph    string          `json:"paragraph,omitempty" gorm:"type:text"`
	MathText     string          `json:"math_text,omitempty"`
	QuestionType int             `json:"question_type" gorm:"not null"`
	Score        decimal.Decimal `json:"score" gorm:"type:decimal(8,2);not null"`
	Options      string          `json:"options" gorm:"type:text"`
	Answer       string          `json:"answer" gorm:"type:text"`
	Image        string          `json:"image,omitempty"`
	Video        string          `json:"video,omitempty"`
	IsMath       bool            `json:"is_math"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}
