// Package renderer picks the answer component for a question, keeps one
// draft per question while the user moves around an attempt, and draws
// questions as text.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/lshigami/edugress/internal/answer"
	"github.com/lshigami/edugress/internal/domain"
)

// OnAnswer receives a validated answer for the question-answer row id.
type OnAnswer func(questionAnswerID int, a domain.UserAnswer) error

// NewComponent returns the empty answer component for q's kind.
func NewComponent(q domain.Question) (answer.Component, error) {
	switch q.QuestionType {
	case domain.SingleSelect:
		return answer.NewSingle(q.Options), nil
	case domain.MultipleSelect:
		return answer.NewMultiple(q.Options), nil
	case domain.Match:
		return answer.NewMatch(q.Left, q.Right), nil
	case domain.ShortOpen:
		return answer.NewShortOpen(), nil
	case domain.OpenParagraph:
		return answer.NewOpenParagraph(), nil
	case domain.QuantitativeCharacteristics:
		return answer.NewQuantitative(), nil
	case domain.DragDrop:
		return answer.NewDragDrop(q.Categories, q.Items), nil
	default:
		return nil, fmt.Errorf("no answer component for %s", q.QuestionType)
	}
}

// Renderer owns the drafts of one attempt.
type Renderer struct {
	drafts map[int]*Draft
}

func New() *Renderer {
	return &Renderer{drafts: make(map[int]*Draft)}
}

// Open returns the draft for aq, creating it seeded with the previously
// submitted answer the first time the question is shown.
func (r *Renderer) Open(aq domain.AttemptQuestion) (*Draft, error) {
	if d, ok := r.drafts[aq.ID]; ok {
		return d, nil
	}
	comp, err := NewComponent(aq.Question)
	if err != nil {
		return nil, err
	}
	comp.Reset(aq.UserAnswer)
	d := &Draft{Question: aq, Component: comp}
	r.drafts[aq.ID] = d
	return d, nil
}

// Forget drops a question's draft so the next Open starts from aq.UserAnswer.
func (r *Renderer) Forget(questionAnswerID int) {
	delete(r.drafts, questionAnswerID)
}

// Draft is one question plus the user's in-progress input.
type Draft struct {
	Question  domain.AttemptQuestion
	Component answer.Component
}

// Submit validates the input and hands the answer to onAnswer. A
// *answer.ValidationError is returned without calling onAnswer.
func (d *Draft) Submit(onAnswer OnAnswer) error {
	a, err := d.Component.Answer()
	if err != nil {
		return err
	}
	return onAnswer(d.Question.ID, a)
}

// Handle applies one line of user input to the component.
func (d *Draft) Handle(input string) error {
	switch c := d.Component.(type) {
	case *answer.Single:
		n, err := parseIndex(strings.TrimSpace(input))
		if err != nil {
			return err
		}
		return c.Select(n)
	case *answer.Multiple:
		for _, tok := range fields(input) {
			n, err := parseIndex(tok)
			if err != nil {
				return err
			}
			if err := c.Toggle(n); err != nil {
				return err
			}
		}
		return nil
	case *answer.Match:
		return handleMatch(c, input)
	case *answer.Text:
		if strings.TrimSpace(input) == ":clear" {
			c.SetText("")
			return nil
		}
		c.AppendLine(input)
		return nil
	case *answer.Quantitative:
		return c.Choose(input)
	case *answer.DragDrop:
		return handleDragDrop(c, input)
	default:
		return fmt.Errorf("unsupported component %T", d.Component)
	}
}

// Render writes the question and the current state of its answer.
func (d *Draft) Render(w io.Writer) error {
	var b strings.Builder
	writeDescription(&b, d.Question.Question)

	switch c := d.Component.(type) {
	case *answer.Single:
		for i, o := range c.Options() {
			fmt.Fprintf(&b, "  %s %d. %s\n", radio(c.Selected() == i), i+1, optionText(o))
		}
		b.WriteString("Type the option number.\n")
	case *answer.Multiple:
		for i, o := range c.Options() {
			fmt.Fprintf(&b, "  %s %d. %s\n", check(c.IsSelected(i)), i+1, optionText(o))
		}
		b.WriteString("Type option numbers to toggle them.\n")
	case *answer.Match:
		renderMatch(&b, d.Question.Question, c)
	case *answer.Text:
		if c.Text() != "" {
			fmt.Fprintf(&b, "Your answer:\n%s\n", indent(c.Text()))
		}
		if c.Multiline() {
			b.WriteString("Each line is added to your answer; :clear starts over.\n")
		} else {
			b.WriteString("Type your answer.\n")
		}
	case *answer.Quantitative:
		for _, cmp := range answer.Comparisons {
			fmt.Fprintf(&b, "  %s %s (%s)\n", radio(c.Choice() == cmp.Letter), cmp.Letter, cmp.Symbol)
		}
		b.WriteString(Legend())
	case *answer.DragDrop:
		renderDragDrop(&b, c)
	default:
		return fmt.Errorf("unsupported component %T", d.Component)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Legend explains the four comparison outcomes.
func Legend() string {
	var b strings.Builder
	for _, cmp := range answer.Comparisons {
		fmt.Fprintf(&b, "  %s: %s\n", cmp.Letter, cmp.Legend)
	}
	return b.String()
}

func writeDescription(b *strings.Builder, q domain.Question) {
	desc := q.Description
	if desc.Text != "" {
		b.WriteString(desc.Text + "\n")
	}
	if q.IsMath && desc.MathText != "" {
		b.WriteString(indent(desc.MathText) + "\n")
	}
	if desc.Paragraph != "" {
		b.WriteString("\n" + indent(desc.Paragraph) + "\n\n")
	}
	if q.QuestionType == domain.QuantitativeCharacteristics && (desc.Column1 != "" || desc.Column2 != "") {
		fmt.Fprintf(b, "  Column A: %s\n  Column B: %s\n", desc.Column1, desc.Column2)
	}
	if q.Image != "" {
		fmt.Fprintf(b, "  [image] %s\n", q.Image)
	}
	if q.Video != "" {
		fmt.Fprintf(b, "  [video] %s\n", q.Video)
	}
}
