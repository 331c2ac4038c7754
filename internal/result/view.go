// Package result presents a finished attempt: aggregate score, per-question
// correctness with a reveal toggle, and score overrides for graders.
package result

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lshigami/edugress/internal/answer"
	"github.com/lshigami/edugress/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrNotGrader       = errors.New("only curators and admins can change scores")
	ErrScoreOutOfRange = errors.New("score must be between 0 and the question's maximum")
	ErrNoSuchQuestion  = errors.New("no such question in this result")
)

// ScoreOverrider is the gateway call used by OverrideScore.
type ScoreOverrider interface {
	OverrideScore(ctx context.Context, token string, questionAnswerID int, score decimal.Decimal) error
}

// View holds a result plus which questions have their correct answer shown.
type View struct {
	result   *domain.TestResult
	revealed map[int]bool
}

func NewView(res *domain.TestResult) *View {
	return &View{result: res, revealed: make(map[int]bool)}
}

func (v *View) Result() *domain.TestResult { return v.result }

func (v *View) Percentage() string {
	return Percentage(v.result.CorrectCount, v.result.TotalQuestions)
}

// ToggleReveal flips the correct-answer display of question i and returns the
// new state.
func (v *View) ToggleReveal(i int) (bool, error) {
	if i < 0 || i >= len(v.result.AnsweredQuestions) {
		return false, ErrNoSuchQuestion
	}
	v.revealed[i] = !v.revealed[i]
	return v.revealed[i], nil
}

func (v *View) Revealed(i int) bool { return v.revealed[i] }

// FlagStrip is one mark per question: + correct, ~ semi-correct, x incorrect,
// . not graded yet.
func (v *View) FlagStrip() string {
	var b strings.Builder
	for _, aq := range v.result.AnsweredQuestions {
		b.WriteString(flagMark(aq.Flag))
	}
	return b.String()
}

func flagMark(f domain.Flag) string {
	switch f {
	case domain.FlagCorrect:
		return "+"
	case domain.FlagSemiCorrect:
		return "~"
	case domain.FlagIncorrect:
		return "x"
	default:
		return "."
	}
}

// OverrideScore lets a grader set the score of question i. The bound is
// checked locally; the backend still has the final word.
func (v *View) OverrideScore(ctx context.Context, gw ScoreOverrider, sess domain.Session, i int, score decimal.Decimal) error {
	if !sess.User.Role.CanGrade() {
		return ErrNotGrader
	}
	if i < 0 || i >= len(v.result.AnsweredQuestions) {
		return ErrNoSuchQuestion
	}
	aq := &v.result.AnsweredQuestions[i]
	if score.IsNegative() || score.GreaterThan(aq.Question.Score) {
		return fmt.Errorf("%w (max %s)", ErrScoreOutOfRange, aq.Question.Score.String())
	}
	if err := gw.OverrideScore(ctx, sess.Token, aq.ID, score); err != nil {
		return err
	}
	aq.ScoreForAnswer = score
	aq.Checked = true
	return nil
}

// Render writes the summary followed by every question.
func (v *View) Render(w io.Writer) error {
	var b strings.Builder
	res := v.result
	if res.Test.Name != "" {
		fmt.Fprintf(&b, "%s\n", res.Test.Name)
	}
	if res.StudentName != "" {
		fmt.Fprintf(&b, "Student: %s\n", res.StudentName)
	}
	fmt.Fprintf(&b, "Result: %s (%s correct)\n", v.Percentage(), Fraction(res.CorrectCount, res.TotalQuestions))
	if !res.Score.IsZero() {
		fmt.Fprintf(&b, "Score: %s\n", res.Score.String())
	}
	if strip := v.FlagStrip(); strip != "" {
		fmt.Fprintf(&b, "[%s]\n", strip)
	}
	for i := range res.AnsweredQuestions {
		b.WriteString("\n")
		v.renderQuestion(&b, i)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (v *View) renderQuestion(b *strings.Builder, i int) {
	aq := v.result.AnsweredQuestions[i]
	q := aq.Question
	fmt.Fprintf(b, "%d. [%s] %s\n", i+1, aq.Flag, q.Description.Text)
	if !writeLayout(b, aq, v.revealed[i]) {
		fmt.Fprintf(b, "   Your answer: %s\n", DescribeAnswer(q, aq.UserAnswer))
	}
	if v.revealed[i] {
		fmt.Fprintf(b, "   Correct answer: %s\n", DescribeAnswer(q, aq.CorrectAnswer))
	}
	status := "not checked"
	if aq.Checked {
		status = "checked"
	}
	fmt.Fprintf(b, "   Score: %s / %s (%s)\n", aq.ScoreForAnswer.String(), q.Score.String(), status)
}

// DescribeAnswer renders an answer in the terms of its question's options.
func DescribeAnswer(q domain.Question, a domain.UserAnswer) string {
	if a == nil {
		return "-"
	}
	switch ans := a.(type) {
	case domain.SingleAnswer:
		return optionLabel(ans.Option)
	case domain.MultipleAnswer:
		parts := make([]string, len(ans.Options))
		for i, o := range ans.Options {
			parts[i] = optionLabel(o)
		}
		return strings.Join(parts, ", ")
	case domain.MatchAnswer:
		parts := make([]string, 0, len(ans.Pairs))
		for _, l := range ans.SortedLefts() {
			parts = append(parts, keyedLabel(q.Left, l)+" => "+keyedLabel(q.Right, ans.Pairs[l]))
		}
		return strings.Join(parts, "; ")
	case domain.ShortOpenAnswer:
		return ans.Text
	case domain.OpenParagraphAnswer:
		return "\n      " + strings.ReplaceAll(ans.Text, "\n", "\n      ")
	case domain.QuantitativeAnswer:
		for _, cmp := range answer.Comparisons {
			if cmp.Letter == ans.Choice {
				return cmp.Letter + " (" + cmp.Symbol + ")"
			}
		}
		return ans.Choice
	case domain.DragDropAnswer:
		return describeBuckets(q, ans)
	default:
		return fmt.Sprintf("%v", a)
	}
}

func describeBuckets(q domain.Question, a domain.DragDropAnswer) string {
	names := make(map[string]string, len(q.Items))
	for _, it := range q.Items {
		names[it.Key] = optionLabel(it.Option)
	}
	cats := q.Categories
	if len(cats) == 0 {
		for c := range a.Buckets {
			cats = append(cats, c)
		}
		sort.Strings(cats)
	}
	parts := make([]string, 0, len(cats))
	for _, c := range cats {
		items := a.Buckets[c]
		labels := make([]string, len(items))
		for i, k := range items {
			if n, ok := names[k]; ok {
				labels[i] = n
			} else {
				labels[i] = k
			}
		}
		if len(labels) == 0 {
			labels = []string{"-"}
		}
		parts = append(parts, c+": "+strings.Join(labels, ", "))
	}
	return strings.Join(parts, "; ")
}

// keyedLabel resolves a positional index of a match column.
func keyedLabel(col []domain.KeyedOption, i int) string {
	if i >= 0 && i < len(col) {
		return optionLabel(col[i].Option)
	}
	return fmt.Sprintf("#%d", i+1)
}

func optionLabel(o domain.Option) string {
	if o.Text == "" && o.Img != "" {
		return "[image]"
	}
	return o.Text
}
