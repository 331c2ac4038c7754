package service

import (
	"context"
	"testing"

	"github.com/lshigami/edugress/internal/domain"
	"github.com/lshigami/edugress/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	opt := func(s string) domain.Option { return domain.Option{Text: s} }

	cases := []struct {
		name        string
		correct     domain.UserAnswer
		given       domain.UserAnswer
		hits, parts int
	}{
		{"single right", domain.SingleAnswer{Option: opt("4")}, domain.SingleAnswer{Option: opt("4")}, 1, 1},
		{"single wrong", domain.SingleAnswer{Option: opt("4")}, domain.SingleAnswer{Option: opt("5")}, 0, 1},
		{"multiple partial", domain.MultipleAnswer{Options: []domain.Option{opt("2"), opt("7")}}, domain.MultipleAnswer{Options: []domain.Option{opt("7")}}, 1, 2},
		{"multiple wrong pick voids", domain.MultipleAnswer{Options: []domain.Option{opt("2"), opt("7")}}, domain.MultipleAnswer{Options: []domain.Option{opt("2"), opt("7"), opt("9")}}, 0, 2},
		{"match two of three", domain.MatchAnswer{Pairs: map[int]int{0: 1, 1: 2, 2: 0}}, domain.MatchAnswer{Pairs: map[int]int{0: 1, 1: 2, 2: 2}}, 2, 3},
		{"short open ignores case and spacing", domain.ShortOpenAnswer{Text: "Au"}, domain.ShortOpenAnswer{Text: "  au "}, 1, 1},
		{"quantitative", domain.QuantitativeAnswer{Choice: "A"}, domain.QuantitativeAnswer{Choice: "a"}, 1, 1},
		{
			"drag drop per item",
			domain.DragDropAnswer{Buckets: map[string][]string{"Mammals": {"0", "2"}, "Birds": {"1", "3"}}},
			domain.DragDropAnswer{Buckets: map[string][]string{"Mammals": {"0", "3"}, "Birds": {"1", "2"}}},
			2, 4,
		},
		{"wrong kind given", domain.ShortOpenAnswer{Text: "Au"}, domain.SingleAnswer{Option: opt("Au")}, 0, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hits, parts := compare(tc.correct, tc.given)
			assert.Equal(t, tc.hits, hits)
			assert.Equal(t, tc.parts, parts)
		})
	}
}

func TestConvertToScore(t *testing.T) {
	sc := NewScoreConverterService()
	three := decimal.NewFromInt(3)

	flag, score := sc.ConvertToScore(3, 3, three)
	assert.Equal(t, model.FlagCorrect, flag)
	assert.True(t, score.Equal(three))

	flag, score = sc.ConvertToScore(2, 3, three)
	assert.Equal(t, model.FlagSemiCorrect, flag)
	assert.Equal(t, "2", score.String())

	flag, score = sc.ConvertToScore(1, 3, decimal.NewFromInt(1))
	assert.Equal(t, model.FlagSemiCorrect, flag)
	assert.Equal(t, "0.33", score.String())

	flag, score = sc.ConvertToScore(0, 3, three)
	assert.Equal(t, model.FlagIncorrect, flag)
	assert.True(t, score.IsZero())

	assert.Equal(t, 50.0, sc.CompletionPercentage(1, 2))
	assert.Equal(t, 0.0, sc.CompletionPercentage(0, 0))
}

type stubLLM struct {
	available bool
	feedback  string
	score     decimal.Decimal
	err       error
}

func (s stubLLM) Available() bool { return s.available }

func (s stubLLM) ScoreAndFeedbackAnswer(context.Context, *model.Question, string) (string, decimal.Decimal, error) {
	return s.feedback, s.score, s.err
}

func TestGrade_Paragraph(t *testing.T) {
	q := &model.Question{QuestionType: int(domain.OpenParagraph), Score: decimal.NewFromInt(5)}
	answer := domain.OpenParagraphAnswer{Text: "Lower air pressure."}

	g, err := NewGradingService(NewScoreConverterService(), stubLLM{}).Grade(context.Background(), q, answer)
	require.NoError(t, err)
	assert.Equal(t, model.FlagUntagged, g.Flag)
	assert.False(t, g.Checked)

	llm := stubLLM{available: true, feedback: "Mostly right.", score: decimal.NewFromInt(3)}
	g, err = NewGradingService(NewScoreConverterService(), llm).Grade(context.Background(), q, answer)
	require.NoError(t, err)
	assert.Equal(t, model.FlagSemiCorrect, g.Flag)
	assert.True(t, g.Checked)
	assert.Equal(t, "Mostly right.", g.Feedback)
}

func TestGrade_ClosedKind(t *testing.T) {
	q := &model.Question{
		QuestionType: int(domain.SingleSelect),
		Score:        decimal.NewFromInt(2),
		Answer:       `{"answer":{"text":"4"}}`,
	}
	g, err := NewGradingService(NewScoreConverterService(), nil).Grade(context.Background(), q, domain.SingleAnswer{Option: domain.Option{Text: "4"}})
	require.NoError(t, err)
	assert.Equal(t, model.FlagCorrect, g.Flag)
	assert.Equal(t, "2", g.Score.String())
	assert.True(t, g.Checked)
}

func TestParseScoreAndFeedback(t *testing.T) {
	score, feedback, err := parseScoreAndFeedback("Score: 4\nFeedback: Clear and complete.\n")
	require.NoError(t, err)
	assert.Equal(t, "4", score.String())
	assert.Equal(t, "Clear and complete.", feedback)

	score, feedback, err = parseScoreAndFeedback("Here you go.\nScore: 2.5 out of 5\nNeeds an example.")
	require.NoError(t, err)
	assert.Equal(t, "2.5", score.String())
	assert.Equal(t, "Needs an example.", feedback)

	_, _, err = parseScoreAndFeedback("I cannot grade this.")
	assert.Error(t, err)

	_, _, err = parseScoreAndFeedback("Score: high")
	assert.Error(t, err)
}
