package dto

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/edugress/internal/domain"
)

// ToDomain maps the wire question onto domain.Question, decoding the
// type-specific options payload.
func (q QuestionDataDTO) ToDomain() (domain.Question, error) {
	var out domain.Question
	if err := copier.Copy(&out, &q); err != nil {
		return domain.Question{}, fmt.Errorf("copy question %d: %w", q.ID, err)
	}
	out.Description = domain.Description{
		Text:      deref(q.Desc.Text),
		Column1:   deref(q.Desc.Column1),
		Column2:   deref(q.Desc.Column2),
		Paragraph: deref(q.Desc.Paragraph),
		MathText:  deref(q.Desc.MathText),
	}
	if !q.QuestionType.Valid() {
		return domain.Question{}, fmt.Errorf("question %d: unknown question_type %d", q.ID, int(q.QuestionType))
	}
	if isEmptyPayload(q.OptionsRaw) {
		return out, nil
	}

	switch q.QuestionType {
	case domain.SingleSelect, domain.MultipleSelect:
		var opts ChoiceOptionsDTO
		if err := json.Unmarshal(q.OptionsRaw, &opts); err != nil {
			return domain.Question{}, fmt.Errorf("question %d options: %w", q.ID, err)
		}
		out.Options = opts.Options
	case domain.Match:
		var opts MatchOptionsDTO
		if err := json.Unmarshal(q.OptionsRaw, &opts); err != nil {
			return domain.Question{}, fmt.Errorf("question %d options: %w", q.ID, err)
		}
		out.Left = flattenKeyed(opts.Left)
		out.Right = flattenKeyed(opts.Right)
	case domain.DragDrop:
		var opts DragDropOptionsDTO
		if err := json.Unmarshal(q.OptionsRaw, &opts); err != nil {
			return domain.Question{}, fmt.Errorf("question %d options: %w", q.ID, err)
		}
		out.Categories = opts.Categories
		out.Items = flattenKeyed(opts.Options)
	case domain.QuantitativeCharacteristics:
		var opts QuantitativeOptionsDTO
		if err := json.Unmarshal(q.OptionsRaw, &opts); err != nil {
			return domain.Question{}, fmt.Errorf("question %d options: %w", q.ID, err)
		}
		out.Comparisons = opts.Options
	}
	return out, nil
}

// ToAttemptQuestion maps one question-list row. Rows come back from the
// backend in display order; ordering by Order is left to the caller.
func (r QuestionAnswerDTO) ToAttemptQuestion() (domain.AttemptQuestion, error) {
	var out domain.AttemptQuestion
	if err := copier.Copy(&out, &r); err != nil {
		return domain.AttemptQuestion{}, fmt.Errorf("copy question answer %d: %w", r.ID, err)
	}
	q, err := r.TestQuestionData.ToDomain()
	if err != nil {
		return domain.AttemptQuestion{}, err
	}
	out.Question = q
	ans, err := DecodeUserAnswer(q.QuestionType, r.UserAnswerRaw)
	if err != nil {
		return domain.AttemptQuestion{}, fmt.Errorf("question answer %d: %w", r.ID, err)
	}
	out.UserAnswer = ans
	out.IsAnswered = r.Answered != nil && *r.Answered
	return out, nil
}

func (r QuestionAnswerDTO) ToAnsweredQuestion() (domain.AnsweredQuestion, error) {
	var out domain.AnsweredQuestion
	if err := copier.Copy(&out, &r); err != nil {
		return domain.AnsweredQuestion{}, fmt.Errorf("copy answered question %d: %w", r.ID, err)
	}
	q, err := r.TestQuestionData.ToDomain()
	if err != nil {
		return domain.AnsweredQuestion{}, err
	}
	out.Question = q
	if out.UserAnswer, err = DecodeUserAnswer(q.QuestionType, r.UserAnswerRaw); err != nil {
		return domain.AnsweredQuestion{}, fmt.Errorf("answered question %d user_answer: %w", r.ID, err)
	}
	if out.CorrectAnswer, err = DecodeUserAnswer(q.QuestionType, r.CorrectRaw); err != nil {
		return domain.AnsweredQuestion{}, fmt.Errorf("answered question %d correct_answer: %w", r.ID, err)
	}
	if r.ScoreRaw.Valid {
		out.ScoreForAnswer = r.ScoreRaw.Decimal
	}
	out.Checked = r.IsChecked != nil && *r.IsChecked
	return out, nil
}

// ToAttemptQuestions converts a whole question page, ordered by Order.
func ToAttemptQuestions(rows []QuestionAnswerDTO) ([]domain.AttemptQuestion, error) {
	out := make([]domain.AttemptQuestion, 0, len(rows))
	for _, row := range rows {
		aq, err := row.ToAttemptQuestion()
		if err != nil {
			return nil, err
		}
		out = append(out, aq)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r TestResultDTO) ToDomain() (*domain.TestResult, error) {
	res := &domain.TestResult{
		AttemptID:    r.ID,
		CorrectCount: int(r.CorrectCount.IntPart()),
		IsEnded:      r.IsEnded,
		Test:         domain.TestMeta{ID: r.TestData.ID, Name: r.TestData.Name},
		StudentName:  r.UserData.FullName,
	}
	if r.Score.Valid {
		res.Score = r.Score.Decimal
	}
	if r.EndedTime != nil && *r.EndedTime != "" {
		if t, err := time.Parse(time.RFC3339Nano, *r.EndedTime); err == nil {
			res.EndedAt = &t
		}
	}
	res.AnsweredQuestions = make([]domain.AnsweredQuestion, 0, len(r.UserAnswers))
	for _, row := range r.UserAnswers {
		aq, err := row.ToAnsweredQuestion()
		if err != nil {
			return nil, err
		}
		res.AnsweredQuestions = append(res.AnsweredQuestions, aq)
	}
	sort.SliceStable(res.AnsweredQuestions, func(i, j int) bool {
		return res.AnsweredQuestions[i].Order < res.AnsweredQuestions[j].Order
	})
	res.TotalQuestions = len(res.AnsweredQuestions)
	if r.Total != nil && *r.Total > 0 {
		res.TotalQuestions = *r.Total
	}
	return res, nil
}

func (r EndTestResponse) ToDomain() domain.EndSummary {
	return domain.EndSummary{
		Total:                r.Total,
		Amount:               r.Amount,
		CompletionPercentage: r.CompletionPercentage,
	}
}

// flattenKeyed turns [{"0": a}, {"1": b}] into keyed options ordered by
// list position, then by numeric key inside one object.
func flattenKeyed(groups []map[string]domain.Option) []domain.KeyedOption {
	var out []domain.KeyedOption
	for _, group := range groups {
		keys := make([]string, 0, len(group))
		for k := range group {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return lessKey(keys[i], keys[j]) })
		for _, k := range keys {
			out = append(out, domain.KeyedOption{Key: k, Option: group[k]})
		}
	}
	return out
}

func lessKey(a, b string) bool {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return ai < bi
	}
	return a < b
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptr[T any](v T) *T {
	return &v
}
