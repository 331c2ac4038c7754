package service

import (
	"github.com/lshigami/edugress/internal/model"
	"github.com/shopspring/decimal"
)

type ScoreConverterService interface {
	// ConvertToScore turns hits correct parts out of parts into a flag and a
	// score on the question's 0..max scale.
	ConvertToScore(hits, parts int, max decimal.Decimal) (flag int, score decimal.Decimal)
	// FlagForScore classifies a manually assigned score.
	FlagForScore(score, max decimal.Decimal) int
	CompletionPercentage(answered, total int) float64
}

type scoreConverterServiceImpl struct{}

func NewScoreConverterService() ScoreConverterService {
	return &scoreConverterServiceImpl{}
}

func (s *scoreConverterServiceImpl) ConvertToScore(hits, parts int, max decimal.Decimal) (int, decimal.Decimal) {
	if parts <= 0 || hits <= 0 {
		return model.FlagIncorrect, decimal.Zero
	}
	if hits >= parts {
		return model.FlagCorrect, max
	}
	score := max.Mul(decimal.NewFromInt(int64(hits))).DivRound(decimal.NewFromInt(int64(parts)), 2)
	return model.FlagSemiCorrect, score
}

func (s *scoreConverterServiceImpl) FlagForScore(score, max decimal.Decimal) int {
	switch {
	case !score.IsPositive():
		return model.FlagIncorrect
	case score.GreaterThanOrEqual(max):
		return model.FlagCorrect
	default:
		return model.FlagSemiCorrect
	}
}

func (s *scoreConverterServiceImpl) CompletionPercentage(answered, total int) float64 {
	if total <= 0 {
		return 0
	}
	pct, _ := decimal.NewFromInt(int64(answered)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(total)), 2).
		Float64()
	return pct
}
