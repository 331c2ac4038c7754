package answer

import (
	"fmt"
	"strings"

	"github.com/lshigami/edugress/internal/domain"
)

// Comparison is one of the four fixed outcomes of a quantitative comparison.
type Comparison struct {
	Letter string
	Symbol string
	Legend string
}

var Comparisons = []Comparison{
	{Letter: "A", Symbol: ">", Legend: "the quantity in column A is greater"},
	{Letter: "B", Symbol: "<", Legend: "the quantity in column B is greater"},
	{Letter: "C", Symbol: "=", Legend: "the two quantities are equal"},
	{Letter: "D", Symbol: "?", Legend: "the relationship cannot be determined from the information given"},
}

type Quantitative struct {
	choice string
}

func NewQuantitative() *Quantitative { return &Quantitative{} }

func (c *Quantitative) Kind() domain.QuestionType { return domain.QuantitativeCharacteristics }

func (c *Quantitative) Choice() string { return c.choice }

// Choose accepts a letter A-D (case-insensitive) or its symbol.
func (c *Quantitative) Choose(s string) error {
	s = strings.TrimSpace(s)
	for _, cmp := range Comparisons {
		if strings.EqualFold(s, cmp.Letter) || s == cmp.Symbol {
			c.choice = cmp.Letter
			return nil
		}
	}
	return fmt.Errorf("unknown comparison %q: use A, B, C or D", s)
}

func (c *Quantitative) Draft() (domain.UserAnswer, bool) {
	if c.choice == "" {
		return nil, false
	}
	return domain.QuantitativeAnswer{Choice: c.choice}, true
}

func (c *Quantitative) Answer() (domain.UserAnswer, error) {
	return answerFromDraft(c, "Choose A, B, C or D before submitting.")
}

func (c *Quantitative) Reset(prev domain.UserAnswer) {
	c.choice = ""
	if a, ok := prev.(domain.QuantitativeAnswer); ok {
		_ = c.Choose(a.Choice)
	}
}
