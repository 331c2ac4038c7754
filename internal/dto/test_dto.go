package dto

import (
	"encoding/json"

	"github.com/lshigami/edugress/internal/domain"
	"github.com/shopspring/decimal"
)

// DescriptionDTO carries the question text plus the optional structured parts
// used by match, paragraph and quantitative questions.
type DescriptionDTO struct {
	Text      *string `json:"text"`
	Column1   *string `json:"column1,omitempty"`
	Column2   *string `json:"column2,omitempty"`
	Paragraph *string `json:"paragraph,omitempty"`
	MathText  *string `json:"mathText,omitempty"`
}

// QuestionDataDTO is the `test_question_data` object. OptionsRaw is decoded
// according to QuestionType.
type QuestionDataDTO struct {
	ID           int                 `json:"id,omitempty"`
	Order        int                 `json:"order"`
	Desc         DescriptionDTO      `json:"description"`
	QuestionType domain.QuestionType `json:"question_type"`
	Score        decimal.Decimal     `json:"score"`
	OptionsRaw   json.RawMessage     `json:"options,omitempty"`
	AnswerRaw    json.RawMessage     `json:"answer,omitempty"`
	Test         *int                `json:"test,omitempty"`
	Video        string              `json:"video,omitempty"`
	Image        string              `json:"image,omitempty"`
	IsMath       bool                `json:"is_math,omitempty"`
	CheckNeeded  bool                `json:"check_needed,omitempty"`
}

// ChoiceOptionsDTO is the options payload of single and multiple select.
type ChoiceOptionsDTO struct {
	Options []domain.Option `json:"options"`
}

// MatchOptionsDTO lists each column as single-key objects {"<index>": option}.
type MatchOptionsDTO struct {
	Left  []map[string]domain.Option `json:"left"`
	Right []map[string]domain.Option `json:"right"`
}

type DragDropOptionsDTO struct {
	Categories []string                   `json:"categories"`
	Options    []map[string]domain.Option `json:"options"`
}

type QuantitativeOptionsDTO struct {
	Options []string `json:"options"`
}

// QuestionAnswerDTO is one row of the attempt's question list and of a
// finished attempt's `user_answers`.
type QuestionAnswerDTO struct {
	ID               int                 `json:"id"`
	Order            int                 `json:"order"`
	TestQuestion     int                 `json:"test_question"`
	TestQuestionData QuestionDataDTO     `json:"test_question_data"`
	User             int                 `json:"user"`
	UserTest         int                 `json:"user_test"`
	Course           *int                `json:"course"`
	Answered         *bool               `json:"is_answered"`
	UserAnswerRaw    json.RawMessage     `json:"user_answer"`
	CorrectRaw       json.RawMessage     `json:"correct_answer"`
	Flag             domain.Flag         `json:"flag"`
	ScoreRaw         decimal.NullDecimal `json:"score_for_answer"`
	IsChecked        *bool               `json:"checked"`
}

type QuestionPageDTO = Page[QuestionAnswerDTO]

type TestDataDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type UserDataDTO struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
}

// TestResultDTO is the finished (or in-progress) attempt record returned by
// the results endpoint. correct_count and score arrive as numbers or strings.
type TestResultDTO struct {
	ID                   int                 `json:"id"`
	Order                int                 `json:"order"`
	CorrectCount         decimal.Decimal     `json:"correct_count"`
	EndedTime            *string             `json:"ended_time"`
	IsEnded              bool                `json:"is_ended"`
	Score                decimal.NullDecimal `json:"score"`
	TestData             TestDataDTO         `json:"test_data"`
	UserData             UserDataDTO         `json:"user_data"`
	UserAnswers          []QuestionAnswerDTO `json:"user_answers"`
	Total                *int                `json:"total,omitempty"`
	Amount               *int                `json:"amount,omitempty"`
	CompletionPercentage *float64            `json:"completion_percentage,omitempty"`
}

// EndTestResponse is the summary returned when an attempt is closed.
type EndTestResponse struct {
	Total                int     `json:"total"`
	Amount               int     `json:"amount"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

type StartTestRequest struct {
	TestID int `json:"test_id" binding:"required"`
}

type StartTestResponse struct {
	UserTestID int `json:"user_test_id"`
}

type SubmitAnswerRequest struct {
	QuestionAnswerID int             `json:"question_answer_id" binding:"required"`
	UserAnswer       json.RawMessage `json:"user_answer" binding:"required"`
}

type EndTestRequest struct {
	UserTestID int `json:"user_test_id" binding:"required"`
}

type ScoreOverrideRequest struct {
	ScoreForAnswer decimal.Decimal `json:"score_for_answer"`
}

type TestSummaryDTO struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	QuestionCount int    `json:"question_count"`
}

// TestDetailDTO is the admin view of a test, answer keys included.
type TestDetailDTO struct {
	ID        int               `json:"id"`
	Name      string            `json:"name"`
	Questions []QuestionDataDTO `json:"questions"`
}
