package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// QuestionType is the backend's numeric question kind.
type QuestionType int

const (
	SingleSelect QuestionType = iota
	MultipleSelect
	Match
	ShortOpen
	DragDrop
	OpenParagraph
	QuantitativeCharacteristics
)

// QuestionTypes lists every kind the client knows how to answer and display.
func QuestionTypes() []QuestionType {
	return []QuestionType{
		SingleSelect,
		MultipleSelect,
		Match,
		ShortOpen,
		DragDrop,
		OpenParagraph,
		QuantitativeCharacteristics,
	}
}

func (t QuestionType) Valid() bool {
	return t >= SingleSelect && t <= QuantitativeCharacteristics
}

func (t QuestionType) String() string {
	switch t {
	case SingleSelect:
		return "single_select"
	case MultipleSelect:
		return "multiple_select"
	case Match:
		return "match"
	case ShortOpen:
		return "short_open"
	case DragDrop:
		return "drag_drop"
	case OpenParagraph:
		return "open_paragraph"
	case QuantitativeCharacteristics:
		return "quantitative_characteristics"
	default:
		return fmt.Sprintf("question_type(%d)", int(t))
	}
}

// Option is a selectable answer choice, optionally illustrated.
type Option struct {
	Text string `json:"text"`
	Img  string `json:"img,omitempty"`
}

// KeyedOption is an option addressed by the backend's string index
// (match columns and drag-drop items).
type KeyedOption struct {
	Key string
	Option
}

type Description struct {
	Text      string
	Column1   string
	Column2   string
	Paragraph string
	MathText  string
}

// Question is immutable once fetched for an attempt. Only the payload fields
// belonging to QuestionType are populated.
type Question struct {
	ID           int
	Order        int
	Description  Description
	QuestionType QuestionType
	Score        decimal.Decimal
	Image        string
	Video        string
	IsMath       bool

	// SingleSelect, MultipleSelect
	Options []Option
	// Match
	Left  []KeyedOption
	Right []KeyedOption
	// DragDrop
	Categories []string
	Items      []KeyedOption
	// QuantitativeCharacteristics
	Comparisons []string
}

// AttemptQuestion is one row of an attempt's question list: the question plus
// whatever the user already submitted for it.
type AttemptQuestion struct {
	ID         int // question_answer_id used when submitting
	Order      int
	Question   Question
	IsAnswered bool
	UserAnswer UserAnswer
}
