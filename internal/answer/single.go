package answer

import "github.com/lshigami/edugress/internal/domain"

// Single allows exactly one option; selecting again replaces the choice.
type Single struct {
	options  []domain.Option
	selected int
}

func NewSingle(options []domain.Option) *Single {
	return &Single{options: options, selected: -1}
}

func (c *Single) Kind() domain.QuestionType { return domain.SingleSelect }

func (c *Single) Options() []domain.Option { return c.options }

// Selected returns the chosen index or -1.
func (c *Single) Selected() int { return c.selected }

func (c *Single) Select(i int) error {
	if i < 0 || i >= len(c.options) {
		return outOfRange("option", i, len(c.options))
	}
	c.selected = i
	return nil
}

func (c *Single) Draft() (domain.UserAnswer, bool) {
	if c.selected < 0 {
		return nil, false
	}
	return domain.SingleAnswer{Option: c.options[c.selected]}, true
}

func (c *Single) Answer() (domain.UserAnswer, error) {
	return answerFromDraft(c, "Choose an option before submitting.")
}

func (c *Single) Reset(prev domain.UserAnswer) {
	c.selected = -1
	if a, ok := prev.(domain.SingleAnswer); ok {
		c.selected = indexOf(c.options, a.Option)
	}
}

// indexOf matches on text, then image, since options carry no id.
func indexOf(options []domain.Option, o domain.Option) int {
	for i, opt := range options {
		if opt.Text == o.Text && opt.Img == o.Img {
			return i
		}
	}
	for i, opt := range options {
		if opt.Text == o.Text {
			return i
		}
	}
	return -1
}
