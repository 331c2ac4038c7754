package renderer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/lshigami/edugress/internal/answer"
	"github.com/lshigami/edugress/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionOf(kind domain.QuestionType) domain.Question {
	return domain.Question{
		ID:           int(kind) + 100,
		QuestionType: kind,
		Description:  domain.Description{Text: "Question " + kind.String(), Column1: "x", Column2: "y"},
		Options:      []domain.Option{{Text: "one"}, {Text: "two"}},
		Left:         []domain.KeyedOption{{Key: "0", Option: domain.Option{Text: "L1"}}, {Key: "1", Option: domain.Option{Text: "L2"}}},
		Right:        []domain.KeyedOption{{Key: "0", Option: domain.Option{Text: "R1"}}, {Key: "1", Option: domain.Option{Text: "R2"}}},
		Categories:   []string{"fruit", "veg"},
		Items:        []domain.KeyedOption{{Key: "0", Option: domain.Option{Text: "apple"}}, {Key: "1", Option: domain.Option{Text: "leek"}}},
		Comparisons:  []string{"A", "B", "C", "D"},
	}
}

// validInput is one line that produces a submittable answer for each kind.
var validInput = map[domain.QuestionType]string{
	domain.SingleSelect:                "2",
	domain.MultipleSelect:              "1, 2",
	domain.Match:                       "1b",
	domain.ShortOpen:                   "hello",
	domain.DragDrop:                    "2b",
	domain.OpenParagraph:               "a line",
	domain.QuantitativeCharacteristics: "C",
}

func TestEveryQuestionTypeIsDispatched(t *testing.T) {
	for _, kind := range domain.QuestionTypes() {
		t.Run(kind.String(), func(t *testing.T) {
			r := New()
			d, err := r.Open(domain.AttemptQuestion{ID: 1, Question: questionOf(kind)})
			require.NoError(t, err)
			assert.Equal(t, kind, d.Component.Kind())

			var buf bytes.Buffer
			require.NoError(t, d.Render(&buf))
			assert.Contains(t, buf.String(), "Question "+kind.String())

			in, ok := validInput[kind]
			require.True(t, ok)
			require.NoError(t, d.Handle(in))

			var got domain.UserAnswer
			require.NoError(t, d.Submit(func(id int, a domain.UserAnswer) error {
				assert.Equal(t, 1, id)
				got = a
				return nil
			}))
			require.NotNil(t, got)
			assert.Equal(t, kind, got.Kind())
		})
	}
}

func TestUnknownTypeIsRejected(t *testing.T) {
	_, err := New().Open(domain.AttemptQuestion{ID: 1, Question: domain.Question{QuestionType: domain.QuestionType(99)}})
	require.Error(t, err)
}

func TestSubmitWithoutAnswerNeverCallsBack(t *testing.T) {
	for _, kind := range domain.QuestionTypes() {
		d, err := New().Open(domain.AttemptQuestion{ID: 1, Question: questionOf(kind)})
		require.NoError(t, err)

		called := false
		err = d.Submit(func(int, domain.UserAnswer) error {
			called = true
			return nil
		})
		var ve *answer.ValidationError
		assert.True(t, errors.As(err, &ve), kind.String())
		assert.False(t, called, kind.String())
	}
}

func TestDraftSurvivesNavigation(t *testing.T) {
	r := New()
	aq := domain.AttemptQuestion{ID: 5, Question: questionOf(domain.ShortOpen)}
	d, err := r.Open(aq)
	require.NoError(t, err)
	require.NoError(t, d.Handle("half typed"))

	other, err := r.Open(domain.AttemptQuestion{ID: 6, Question: questionOf(domain.SingleSelect)})
	require.NoError(t, err)
	require.NotSame(t, d, other)

	again, err := r.Open(aq)
	require.NoError(t, err)
	draft, ok := again.Component.Draft()
	require.True(t, ok)
	assert.Equal(t, domain.ShortOpenAnswer{Text: "half typed"}, draft)

	r.Forget(5)
	fresh, err := r.Open(aq)
	require.NoError(t, err)
	_, ok = fresh.Component.Draft()
	assert.False(t, ok)
}

func TestOpenSeedsPreviousAnswer(t *testing.T) {
	aq := domain.AttemptQuestion{
		ID:         2,
		Question:   questionOf(domain.SingleSelect),
		IsAnswered: true,
		UserAnswer: domain.SingleAnswer{Option: domain.Option{Text: "two"}},
	}
	d, err := New().Open(aq)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, d.Render(&buf))
	assert.Contains(t, buf.String(), "(*) 2. two")
}

func TestQuantitativeScenario(t *testing.T) {
	d, err := New().Open(domain.AttemptQuestion{ID: 3, Question: questionOf(domain.QuantitativeCharacteristics)})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, d.Render(&buf))
	for _, l := range []string{"A (>)", "B (<)", "C (=)", "D (?)"} {
		assert.Contains(t, buf.String(), l)
	}
	assert.Contains(t, buf.String(), "Column A: x")

	calls := 0
	require.Error(t, d.Submit(func(int, domain.UserAnswer) error { calls++; return nil }))
	require.Error(t, d.Handle("E"))
	require.NoError(t, d.Handle("C"))
	require.NoError(t, d.Submit(func(_ int, a domain.UserAnswer) error {
		calls++
		assert.Equal(t, domain.QuantitativeAnswer{Choice: "C"}, a)
		return nil
	}))
	assert.Equal(t, 1, calls)
}

func TestMatchInput(t *testing.T) {
	d, err := New().Open(domain.AttemptQuestion{ID: 1, Question: questionOf(domain.Match)})
	require.NoError(t, err)
	require.NoError(t, d.Handle("1 b"))
	require.NoError(t, d.Handle("2b"))
	require.Error(t, d.Handle("a"))
	require.Error(t, d.Handle("3a"))

	a, err := d.Component.Answer()
	require.NoError(t, err)
	assert.Equal(t, domain.MatchAnswer{Pairs: map[int]int{1: 1}}, a)
}

func TestDragDropInput(t *testing.T) {
	d, err := New().Open(domain.AttemptQuestion{ID: 1, Question: questionOf(domain.DragDrop)})
	require.NoError(t, err)
	require.NoError(t, d.Handle("1a 2a"))
	require.NoError(t, d.Handle("1-"))

	var buf bytes.Buffer
	require.NoError(t, d.Render(&buf))
	assert.Contains(t, buf.String(), "a. fruit:\n    2. leek")

	a, err := d.Component.Answer()
	require.NoError(t, err)
	assert.Equal(t, domain.DragDropAnswer{Buckets: map[string][]string{"fruit": {"1"}, "veg": {}}}, a)
	require.Error(t, d.Handle("5a"))
	require.Error(t, d.Handle("1c"))
}

func TestParagraphClear(t *testing.T) {
	d, err := New().Open(domain.AttemptQuestion{ID: 1, Question: questionOf(domain.OpenParagraph)})
	require.NoError(t, err)
	require.NoError(t, d.Handle("one"))
	require.NoError(t, d.Handle("two"))
	a, err := d.Component.Answer()
	require.NoError(t, err)
	assert.Equal(t, domain.OpenParagraphAnswer{Text: "one\ntwo"}, a)

	require.NoError(t, d.Handle(":clear"))
	_, err = d.Component.Answer()
	require.Error(t, err)
}
