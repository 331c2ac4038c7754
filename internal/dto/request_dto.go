package dto

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LessonContentRequest struct {
	LessonContentID int `json:"lesson_content_id" binding:"required"`
}

type BuyProductRequest struct {
	ProductID   int    `json:"product_id" binding:"required"`
	ProductType string `json:"product_type" binding:"required"`
	DiscountID  *int   `json:"discount_id,omitempty"`
}

type BuyQuizRequest struct {
	QuizID int `json:"quiz_id" binding:"required"`
}

type StartQuizRequest struct {
	QuizID int `json:"quiz_id" binding:"required"`
}

type EndQuizRequest struct {
	UserQuizID int `json:"user_quiz_id" binding:"required"`
}

type UpdateCartRequest struct {
	Items []CartLineDTO `json:"items" binding:"omitempty,dive"`
}

type CheckoutRequest struct {
	Items       []CartLineDTO `json:"items" binding:"required,min=1,dive"`
	UserAddress string        `json:"user_address"`
}
