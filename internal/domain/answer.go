package domain

import "sort"

// UserAnswer is the closed set of answer shapes, one per QuestionType.
// Only types in this package can satisfy it.
type UserAnswer interface {
	Kind() QuestionType
	isUserAnswer()
}

type SingleAnswer struct {
	Option Option
}

type MultipleAnswer struct {
	Options []Option
}

// MatchAnswer maps a left-column position to a right-column position.
type MatchAnswer struct {
	Pairs map[int]int
}

type ShortOpenAnswer struct {
	Text string
}

type OpenParagraphAnswer struct {
	Text string
}

// QuantitativeAnswer holds one of the comparison letters A-D.
type QuantitativeAnswer struct {
	Choice string
}

// DragDropAnswer maps a category to the keys of the items placed in it.
type DragDropAnswer struct {
	Buckets map[string][]string
}

func (SingleAnswer) Kind() QuestionType        { return SingleSelect }
func (MultipleAnswer) Kind() QuestionType      { return MultipleSelect }
func (MatchAnswer) Kind() QuestionType         { return Match }
func (ShortOpenAnswer) Kind() QuestionType     { return ShortOpen }
func (OpenParagraphAnswer) Kind() QuestionType { return OpenParagraph }
func (QuantitativeAnswer) Kind() QuestionType  { return QuantitativeCharacteristics }
func (DragDropAnswer) Kind() QuestionType      { return DragDrop }

func (SingleAnswer) isUserAnswer()        {}
func (MultipleAnswer) isUserAnswer()      {}
func (MatchAnswer) isUserAnswer()         {}
func (ShortOpenAnswer) isUserAnswer()     {}
func (OpenParagraphAnswer) isUserAnswer() {}
func (QuantitativeAnswer) isUserAnswer()  {}
func (DragDropAnswer) isUserAnswer()      {}

// SortedLefts returns the paired left positions in ascending order.
func (a MatchAnswer) SortedLefts() []int {
	out := make([]int, 0, len(a.Pairs))
	for l := range a.Pairs {
		out = append(out, l)
	}
	sort.Ints(out)
	return out
}

// Placed reports how many items sit in any bucket.
func (a DragDropAnswer) Placed() int {
	n := 0
	for _, items := range a.Buckets {
		n += len(items)
	}
	return n
}
