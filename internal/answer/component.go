// Package answer holds the per-kind answer components: local selection state
// for one question and its normalisation into a domain.UserAnswer.
package answer

import (
	"fmt"

	"github.com/lshigami/edugress/internal/domain"
)

// Component is the draft state of one question's answer.
type Component interface {
	Kind() domain.QuestionType
	// Draft returns the current input as an answer; ok is false when nothing
	// has been entered yet.
	Draft() (a domain.UserAnswer, ok bool)
	// Answer returns the answer to submit or a *ValidationError.
	Answer() (domain.UserAnswer, error)
	// Reset replaces the draft with a previously submitted answer; nil clears it.
	Reset(prev domain.UserAnswer)
}

// ValidationError blocks a submit locally. It never reaches the network.
type ValidationError struct {
	Kind    domain.QuestionType
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func required(kind domain.QuestionType, msg string) error {
	return &ValidationError{Kind: kind, Message: msg}
}

func outOfRange(what string, i, n int) error {
	return fmt.Errorf("%s %d out of range (have %d)", what, i+1, n)
}

func answerFromDraft(c Component, msg string) (domain.UserAnswer, error) {
	a, ok := c.Draft()
	if !ok {
		return nil, required(c.Kind(), msg)
	}
	return a, nil
}
