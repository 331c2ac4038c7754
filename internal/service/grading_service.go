package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lshigami/edugress/internal/domain"
	"github.com/lshigami/edugress/internal/dto"
	"github.com/lshigami/edugress/internal/model"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Grade struct {
	Flag     int
	Score    decimal.Decimal
	Checked  bool
	Feedback string
}

// GradingService grades one submitted answer against the stored correct
// answer. Closed kinds are graded immediately; open paragraphs go to the
// language model when one is configured and stay unchecked otherwise.
type GradingService interface {
	Grade(ctx context.Context, q *model.Question, answer domain.UserAnswer) (Grade, error)
}

type gradingService struct {
	scoreConverter ScoreConverterService
	llm            GeminiLLMService
}

func NewGradingService(sc ScoreConverterService, llm GeminiLLMService) GradingService {
	return &gradingService{scoreConverter: sc, llm: llm}
}

func (s *gradingService) Grade(ctx context.Context, q *model.Question, answer domain.UserAnswer) (Grade, error) {
	kind := domain.QuestionType(q.QuestionType)
	if kind == domain.OpenParagraph {
		return s.gradeParagraph(ctx, q, answer)
	}

	correct, err := dto.DecodeUserAnswer(kind, json.RawMessage(q.Answer))
	if err != nil {
		return Grade{}, fmt.Errorf("question %d has an unreadable answer key: %w", q.ID, err)
	}
	if correct == nil {
		return Grade{Flag: model.FlagUntagged}, nil
	}

	hits, parts := compare(correct, answer)
	flag, score := s.scoreConverter.ConvertToScore(hits, parts, q.Score)
	return Grade{Flag: flag, Score: score, Checked: true}, nil
}

func (s *gradingService) gradeParagraph(ctx context.Context, q *model.Question, answer domain.UserAnswer) (Grade, error) {
	text := ""
	if p, ok := answer.(domain.OpenParagraphAnswer); ok {
		text = p.Text
	}
	if s.llm == nil || !s.llm.Available() {
		return Grade{Flag: model.FlagUntagged}, nil
	}
	feedback, score, err := s.llm.ScoreAndFeedbackAnswer(ctx, q, text)
	if err != nil {
		// Left for a curator to grade by hand.
		log.Warn().Err(err).Uint("questionID", q.ID).Msg("Model grading failed")
		return Grade{Flag: model.FlagUntagged, Feedback: feedback}, nil
	}
	return Grade{
		Flag:     s.scoreConverter.FlagForScore(score, q.Score),
		Score:    score,
		Checked:  true,
		Feedback: feedback,
	}, nil
}

// compare counts how many parts of the correct answer the user got right.
func compare(correct, given domain.UserAnswer) (hits, parts int) {
	switch c := correct.(type) {
	case domain.SingleAnswer:
		g, ok := given.(domain.SingleAnswer)
		if ok && g.Option == c.Option {
			return 1, 1
		}
		return 0, 1
	case domain.MultipleAnswer:
		g, _ := given.(domain.MultipleAnswer)
		want := make(map[domain.Option]bool, len(c.Options))
		for _, o := range c.Options {
			want[o] = true
		}
		for _, o := range g.Options {
			if !want[o] {
				// Any wrong pick voids the question.
				return 0, len(c.Options)
			}
			hits++
		}
		return hits, len(c.Options)
	case domain.MatchAnswer:
		g, _ := given.(domain.MatchAnswer)
		for l, r := range c.Pairs {
			if gr, ok := g.Pairs[l]; ok && gr == r {
				hits++
			}
		}
		return hits, len(c.Pairs)
	case domain.ShortOpenAnswer:
		g, _ := given.(domain.ShortOpenAnswer)
		if normalize(g.Text) == normalize(c.Text) {
			return 1, 1
		}
		return 0, 1
	case domain.QuantitativeAnswer:
		g, _ := given.(domain.QuantitativeAnswer)
		if strings.EqualFold(g.Choice, c.Choice) {
			return 1, 1
		}
		return 0, 1
	case domain.DragDropAnswer:
		g, _ := given.(domain.DragDropAnswer)
		placed := make(map[string]string)
		for cat, items := range g.Buckets {
			for _, it := range items {
				placed[it] = cat
			}
		}
		for cat, items := range c.Buckets {
			for _, it := range items {
				parts++
				if placed[it] == cat {
					hits++
				}
			}
		}
		return hits, parts
	default:
		return 0, 0
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
