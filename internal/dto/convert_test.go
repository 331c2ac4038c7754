package dto

import (
	"encoding/json"
	"testing"

	"github.com/lshigami/edugress/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const questionPage = `{
  "count": 2, "next": null, "previous": null,
  "results": [
    {"id": 12, "order": 2, "test_question": 5, "user": 1, "user_test": 9, "course": null,
     "is_answered": true, "user_answer": {"answer": {"0": "1", "1": "0"}},
     "test_question_data": {"id": 5, "order": 2, "question_type": 2, "score": "2.00",
       "description": {"text": "Match capitals", "column1": "Country", "column2": "City"},
       "options": {"left": [{"0": {"text": "France"}}, {"1": {"text": "Spain"}}],
                   "right": [{"0": {"text": "Madrid"}}, {"1": {"text": "Paris"}}]}}},
    {"id": 11, "order": 1, "test_question": 4, "user": 1, "user_test": 9, "course": null,
     "is_answered": false, "user_answer": null,
     "test_question_data": {"id": 4, "order": 1, "question_type": 0, "score": "1.00",
       "description": {"text": "2 + 2 = ?"},
       "options": {"options": [{"text": "3"}, {"text": "4"}]}}}
  ]
}`

func TestToAttemptQuestions(t *testing.T) {
	var page QuestionPageDTO
	require.NoError(t, json.Unmarshal([]byte(questionPage), &page))

	qs, err := ToAttemptQuestions(page.Results)
	require.NoError(t, err)
	require.Len(t, qs, 2)

	first := qs[0]
	assert.Equal(t, 11, first.ID)
	assert.Equal(t, 1, first.Order)
	assert.False(t, first.IsAnswered)
	assert.Nil(t, first.UserAnswer)
	assert.Equal(t, domain.SingleSelect, first.Question.QuestionType)
	assert.Equal(t, "2 + 2 = ?", first.Question.Description.Text)
	assert.Equal(t, []domain.Option{{Text: "3"}, {Text: "4"}}, first.Question.Options)
	assert.True(t, decimal.NewFromInt(1).Equal(first.Question.Score))

	second := qs[1]
	assert.True(t, second.IsAnswered)
	assert.Equal(t, domain.MatchAnswer{Pairs: map[int]int{0: 1, 1: 0}}, second.UserAnswer)
	assert.Equal(t, "Country", second.Question.Description.Column1)
	require.Len(t, second.Question.Left, 2)
	assert.Equal(t, "1", second.Question.Left[1].Key)
	assert.Equal(t, "Paris", second.Question.Right[1].Text)
}

func TestQuestionDataDTO_ToDomain_UnknownType(t *testing.T) {
	_, err := QuestionDataDTO{ID: 1, QuestionType: domain.QuestionType(9)}.ToDomain()
	require.Error(t, err)
}

func TestQuestionDataDTO_ToDomain_Payloads(t *testing.T) {
	dd := QuestionDataDTO{
		ID:           3,
		QuestionType: domain.DragDrop,
		OptionsRaw:   json.RawMessage(`{"categories":["fruit","veg"],"options":[{"0":{"text":"apple"}},{"1":{"text":"leek"}}]}`),
	}
	q, err := dd.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, []string{"fruit", "veg"}, q.Categories)
	assert.Equal(t, []domain.KeyedOption{
		{Key: "0", Option: domain.Option{Text: "apple"}},
		{Key: "1", Option: domain.Option{Text: "leek"}},
	}, q.Items)

	qc := QuestionDataDTO{
		ID:           4,
		QuestionType: domain.QuantitativeCharacteristics,
		Desc:         DescriptionDTO{Text: ptr("Compare"), Column1: ptr("x"), Column2: ptr("y")},
		OptionsRaw:   json.RawMessage(`{"options":["A","B","C","D"]}`),
	}
	q, err = qc.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, q.Comparisons)
	assert.Equal(t, "y", q.Description.Column2)
}

func TestTestResultDTO_ToDomain(t *testing.T) {
	body := `{
	  "id": 9, "order": 0, "correct_count": "1", "ended_time": "2024-05-01T10:00:00.123456+05:00",
	  "is_ended": true, "score": "3.50",
	  "test_data": {"id": 2, "name": "Algebra"},
	  "user_data": {"id": 1, "full_name": "Aru Sadykova"},
	  "user_answers": [
	    {"id": 21, "order": 1, "is_answered": true, "flag": 3, "checked": false,
	     "score_for_answer": "0.00",
	     "user_answer": {"answer": "B"}, "correct_answer": {"answer": "A"},
	     "test_question_data": {"id": 7, "order": 1, "question_type": 6, "score": "1.00",
	       "description": {"text": "Compare"}, "options": {"options": ["A","B","C","D"]}}},
	    {"id": 20, "order": 0, "is_answered": true, "flag": 1, "checked": true,
	     "score_for_answer": "1.00",
	     "user_answer": {"answer": "x"}, "correct_answer": {"answer": "x"},
	     "test_question_data": {"id": 6, "order": 0, "question_type": 3, "score": "1.00",
	       "description": {"text": "Type x"}}}
	  ]
	}`
	var raw TestResultDTO
	require.NoError(t, json.Unmarshal([]byte(body), &raw))

	res, err := raw.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, 9, res.AttemptID)
	assert.Equal(t, 1, res.CorrectCount)
	assert.Equal(t, 2, res.TotalQuestions)
	assert.True(t, res.IsEnded)
	require.NotNil(t, res.EndedAt)
	assert.Equal(t, "Algebra", res.Test.Name)
	assert.Equal(t, "Aru Sadykova", res.StudentName)
	assert.True(t, decimal.RequireFromString("3.5").Equal(res.Score))

	require.Len(t, res.AnsweredQuestions, 2)
	assert.Equal(t, 20, res.AnsweredQuestions[0].ID)
	assert.Equal(t, domain.FlagCorrect, res.AnsweredQuestions[0].Flag)
	assert.True(t, res.AnsweredQuestions[0].Checked)
	assert.Equal(t, domain.QuantitativeAnswer{Choice: "B"}, res.AnsweredQuestions[1].UserAnswer)
	assert.Equal(t, domain.QuantitativeAnswer{Choice: "A"}, res.AnsweredQuestions[1].CorrectAnswer)
	assert.Equal(t, domain.FlagIncorrect, res.AnsweredQuestions[1].Flag)
}

func TestTestResultDTO_ToDomain_TotalOverridesRows(t *testing.T) {
	total := 5
	res, err := TestResultDTO{ID: 1, Total: &total}.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, 5, res.TotalQuestions)
	assert.Empty(t, res.AnsweredQuestions)
}
