package answer

import "github.com/lshigami/edugress/internal/domain"

// Multiple toggles options in and out of the selected set.
type Multiple struct {
	options  []domain.Option
	selected map[int]bool
}

func NewMultiple(options []domain.Option) *Multiple {
	return &Multiple{options: options, selected: make(map[int]bool)}
}

func (c *Multiple) Kind() domain.QuestionType { return domain.MultipleSelect }

func (c *Multiple) Options() []domain.Option { return c.options }

func (c *Multiple) IsSelected(i int) bool { return c.selected[i] }

func (c *Multiple) Toggle(i int) error {
	if i < 0 || i >= len(c.options) {
		return outOfRange("option", i, len(c.options))
	}
	if c.selected[i] {
		delete(c.selected, i)
	} else {
		c.selected[i] = true
	}
	return nil
}

// Draft lists the selected options in display order.
func (c *Multiple) Draft() (domain.UserAnswer, bool) {
	if len(c.selected) == 0 {
		return nil, false
	}
	out := make([]domain.Option, 0, len(c.selected))
	for i, opt := range c.options {
		if c.selected[i] {
			out = append(out, opt)
		}
	}
	return domain.MultipleAnswer{Options: out}, true
}

func (c *Multiple) Answer() (domain.UserAnswer, error) {
	return answerFromDraft(c, "Select at least one option before submitting.")
}

func (c *Multiple) Reset(prev domain.UserAnswer) {
	c.selected = make(map[int]bool)
	a, ok := prev.(domain.MultipleAnswer)
	if !ok {
		return
	}
	for _, o := range a.Options {
		if i := indexOf(c.options, o); i >= 0 {
			c.selected[i] = true
		}
	}
}
