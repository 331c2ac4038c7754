package dto

import (
	"encoding/json"

	"github.com/lshigami/edugress/internal/domain"
	"github.com/shopspring/decimal"
)

// CreateQuestionRequest is used within CreateTestRequest for admin test creation.
// Options and Answer use the same JSON shapes the question list returns.
type CreateQuestionRequest struct {
	Order        int                 `json:"order" binding:"min=0"`
	Description  DescriptionDTO      `json:"description"`
	QuestionType domain.QuestionType `json:"question_type" binding:"min=0,max=6"`
	Score        decimal.Decimal     `json:"score"`
	Options      json.RawMessage     `json:"options"`
	Answer       json.RawMessage     `json:"answer"`
	Image        string              `json:"image,omitempty"`
	IsMath       bool                `json:"is_math,omitempty"`
}

// CreateTestRequest is for admin to create a new test with all its questions.
type CreateTestRequest struct {
	Name      string                  `json:"name" binding:"required"`
	Questions []CreateQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

type CreateStoreProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" binding:"min=0"`
}
