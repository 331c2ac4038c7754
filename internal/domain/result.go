package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Flag is the server-assigned correctness classification of an answer.
type Flag int

const (
	FlagUntagged Flag = iota
	FlagCorrect
	FlagSemiCorrect
	FlagIncorrect
)

func (f Flag) String() string {
	switch f {
	case FlagCorrect:
		return "correct"
	case FlagSemiCorrect:
		return "semi-correct"
	case FlagIncorrect:
		return "incorrect"
	default:
		return "untagged"
	}
}

type TestAttempt struct {
	ID        int
	TestID    int
	StartedAt time.Time
	EndedAt   *time.Time
	IsEnded   bool
}

type TestMeta struct {
	ID   int
	Name string
}

// AnsweredQuestion is a server-confirmed answer row of a finished attempt.
type AnsweredQuestion struct {
	ID             int
	Order          int
	Question       Question
	UserAnswer     UserAnswer
	CorrectAnswer  UserAnswer
	Flag           Flag
	ScoreForAnswer decimal.Decimal
	Checked        bool
}

type TestResult struct {
	AttemptID         int
	CorrectCount      int
	TotalQuestions    int
	Score             decimal.Decimal
	IsEnded           bool
	EndedAt           *time.Time
	Test              TestMeta
	StudentName       string
	AnsweredQuestions []AnsweredQuestion
}

// EndSummary is what the backend reports when an attempt is closed.
type EndSummary struct {
	Total                int
	Amount               int
	CompletionPercentage float64
}
