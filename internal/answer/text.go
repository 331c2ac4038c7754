package answer

import (
	"strings"

	"github.com/lshigami/edugress/internal/domain"
)

// Text captures free text for ShortOpen and OpenParagraph questions. Every
// edit updates the draft immediately.
type Text struct {
	kind domain.QuestionType
	text string
}

func NewShortOpen() *Text { return &Text{kind: domain.ShortOpen} }

func NewOpenParagraph() *Text { return &Text{kind: domain.OpenParagraph} }

func (c *Text) Kind() domain.QuestionType { return c.kind }

func (c *Text) Multiline() bool { return c.kind == domain.OpenParagraph }

func (c *Text) Text() string { return c.text }

func (c *Text) SetText(s string) {
	if !c.Multiline() {
		s = strings.ReplaceAll(s, "\n", " ")
	}
	c.text = s
}

// AppendLine adds a line to a paragraph; for short answers it replaces the text.
func (c *Text) AppendLine(line string) {
	if !c.Multiline() || c.text == "" {
		c.SetText(line)
		return
	}
	c.text += "\n" + line
}

func (c *Text) Draft() (domain.UserAnswer, bool) {
	if strings.TrimSpace(c.text) == "" {
		return nil, false
	}
	if c.kind == domain.OpenParagraph {
		return domain.OpenParagraphAnswer{Text: c.text}, true
	}
	return domain.ShortOpenAnswer{Text: c.text}, true
}

func (c *Text) Answer() (domain.UserAnswer, error) {
	return answerFromDraft(c, "Type an answer before submitting.")
}

func (c *Text) Reset(prev domain.UserAnswer) {
	c.text = ""
	switch a := prev.(type) {
	case domain.ShortOpenAnswer:
		c.text = a.Text
	case domain.OpenParagraphAnswer:
		c.text = a.Text
	}
}
