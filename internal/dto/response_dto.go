package dto

import (
	"github.com/lshigami/edugress/internal/domain"
	"github.com/shopspring/decimal"
)

// Page is the paginated list envelope used by the backend's list endpoints.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// ErrorResponse is the error body. The backend puts the human readable message
// in "detail"; validation failures add per-field messages in "details".
type ErrorResponse struct {
	Detail  string   `json:"detail"`
	Details []string `json:"details,omitempty"`
}

type LoginResponse struct {
	Key  string      `json:"key"`
	User domain.User `json:"user"`
}

type LessonContentDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	IsCompleted bool   `json:"is_completed"`
}

type LessonDTO struct {
	ID       int                `json:"id"`
	Name     string             `json:"name"`
	Order    int                `json:"order"`
	Contents []LessonContentDTO `json:"contents,omitempty"`
}

type CourseDTO struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	Price       decimal.Decimal `json:"price"`
	IsBought    bool            `json:"is_bought"`
	Lessons     []LessonDTO     `json:"lessons,omitempty"`
}

type ProductDTO struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	ProductType string          `json:"product_type"`
	Price       decimal.Decimal `json:"price"`
	DiscountID  *int            `json:"discount,omitempty"`
}

type OrderResponse struct {
	OrderID    int    `json:"order_id"`
	PaymentURL string `json:"payment_url,omitempty"`
}

type QuizDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type UserQuizDTO struct {
	ID      int                 `json:"id"`
	Quiz    QuizDTO             `json:"quiz"`
	IsEnded bool                `json:"is_ended"`
	Score   decimal.NullDecimal `json:"score"`
}

type StartQuizResponse struct {
	UserQuizID int `json:"user_quiz_id"`
}

type QuizResultDTO struct {
	ID           int                 `json:"id"`
	CorrectCount decimal.Decimal     `json:"correct_count"`
	Total        int                 `json:"total"`
	IsEnded      bool                `json:"is_ended"`
	Score        decimal.NullDecimal `json:"score"`
}

type StoreProductDTO struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// CartLineDTO is one {id, amount} line as used by the cart and checkout bodies.
type CartLineDTO struct {
	ID     int `json:"id" binding:"required"`
	Amount int `json:"amount" binding:"required,min=1"`
}

type CartItemDTO struct {
	Product StoreProductDTO `json:"product"`
	Amount  int             `json:"amount"`
}

type CartDTO struct {
	Items []CartItemDTO   `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type CheckoutResponse struct {
	PurchaseID int                 `json:"id"`
	Total      decimal.Decimal     `json:"total"`
	Coins      decimal.NullDecimal `json:"coins"`
}

type PurchaseDTO struct {
	ID          int             `json:"id"`
	Items       []CartItemDTO   `json:"items"`
	Total       decimal.Decimal `json:"total"`
	UserAddress string          `json:"user_address"`
	CreatedAt   string          `json:"created_at"`
}

type ExamDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Date string `json:"date,omitempty"`
}

type SubjectProgressDTO struct {
	Name     string          `json:"name"`
	Score    decimal.Decimal `json:"score"`
	MaxScore decimal.Decimal `json:"max_score"`
}

type StudentProgressDTO struct {
	ExamID   int                  `json:"exam_id"`
	Subjects []SubjectProgressDTO `json:"subjects"`
}

type RoadmapStepDTO struct {
	ID          int    `json:"id"`
	Order       int    `json:"order"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"is_completed"`
}

type RoadmapDTO struct {
	Steps []RoadmapStepDTO `json:"steps"`
}
