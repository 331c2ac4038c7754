package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lshigami/edugress/internal/domain"
	"github.com/lshigami/edugress/internal/dto"
	"github.com/lshigami/edugress/internal/model"
	"github.com/lshigami/edugress/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TestSubmissionService stores answers as they are submitted, one question
// at a time, and lets graders override the resulting score.
type TestSubmissionService interface {
	SubmitAnswer(ctx context.Context, user *model.User, questionAnswerID uint, raw json.RawMessage) (*dto.QuestionAnswerDTO, error)
	OverrideScore(grader *model.User, questionAnswerID uint, score decimal.Decimal) (*dto.QuestionAnswerDTO, error)
}

type testSubmissionService struct {
	userTestRepo   repository.UserTestRepository
	answerRepo     repository.AnswerRepository
	grading        GradingService
	scoreConverter ScoreConverterService
	db             *gorm.DB
}

func NewTestSubmissionService(
	userTestRepo repository.UserTestRepository,
	answerRepo repository.AnswerRepository,
	grading GradingService,
	scoreConverter ScoreConverterService,
	db *gorm.DB,
) TestSubmissionService {
	return &testSubmissionService{
		userTestRepo:   userTestRepo,
		answerRepo:     answerRepo,
		grading:        grading,
		scoreConverter: scoreConverter,
		db:             db,
	}
}

// SubmitAnswer overwrites any previous answer to the question. The payload
// must decode as the question's own kind.
func (s *testSubmissionService) SubmitAnswer(ctx context.Context, user *model.User, questionAnswerID uint, raw json.RawMessage) (*dto.QuestionAnswerDTO, error) {
	row, err := s.answerRepo.FindByID(questionAnswerID)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("question answer %d", questionAnswerID))
	}
	if row.UserID != user.ID {
		return nil, fmt.Errorf("%w: question answer %d", ErrNotFound, questionAnswerID)
	}
	ut, err := s.userTestRepo.FindByID(row.UserTestID)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("attempt %d", row.UserTestID))
	}
	if ut.IsEnded {
		return nil, invalid("attempt %d has already ended", ut.ID)
	}

	kind := domain.QuestionType(row.Question.QuestionType)
	answer, err := dto.DecodeUserAnswer(kind, raw)
	if err != nil {
		return nil, invalid("%v", err)
	}
	if answer == nil {
		return nil, invalid("an answer is required")
	}
	// Store the canonical encoding rather than whatever form was sent.
	canonical, err := dto.EncodeUserAnswer(answer)
	if err != nil {
		return nil, invalid("%v", err)
	}

	grade, err := s.grading.Grade(ctx, &row.Question, answer)
	if err != nil {
		log.Error().Err(err).Uint("questionAnswerID", row.ID).Msg("SubmitAnswer: Grading failed, storing ungraded")
		grade = Grade{Flag: model.FlagUntagged}
	}

	row.UserAnswer = string(canonical)
	row.IsAnswered = true
	row.Flag = grade.Flag
	row.ScoreForAnswer = grade.Score
	row.Checked = grade.Checked
	row.AIFeedback = grade.Feedback
	if err := s.answerRepo.Update(row); err != nil {
		return nil, fmt.Errorf("save answer %d: %w", row.ID, err)
	}
	log.Info().Uint("questionAnswerID", row.ID).Str("kind", kind.String()).Int("flag", row.Flag).Msg("SubmitAnswer: Answer stored")

	out := toQuestionAnswerDTO(*row, false)
	return &out, nil
}

// OverrideScore sets a score by hand and refreshes the attempt totals when
// the attempt has already ended.
func (s *testSubmissionService) OverrideScore(grader *model.User, questionAnswerID uint, score decimal.Decimal) (*dto.QuestionAnswerDTO, error) {
	if !grader.CanGrade() {
		return nil, ErrForbidden
	}
	row, err := s.answerRepo.FindByID(questionAnswerID)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("question answer %d", questionAnswerID))
	}
	if score.IsNegative() || score.GreaterThan(row.Question.Score) {
		return nil, invalid("score must be between 0 and %s", row.Question.Score.String())
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		row.ScoreForAnswer = score
		row.Flag = s.scoreConverter.FlagForScore(score, row.Question.Score)
		row.Checked = true
		if err := repository.NewAnswerRepository(tx).Update(row); err != nil {
			return err
		}
		utRepo := repository.NewUserTestRepository(tx)
		ut, err := utRepo.FindByIDWithDetails(row.UserTestID)
		if err != nil {
			return err
		}
		if !ut.IsEnded {
			return nil
		}
		totalAttempt(ut)
		return utRepo.Update(ut)
	})
	if err != nil {
		return nil, fmt.Errorf("override score of %d: %w", questionAnswerID, err)
	}
	log.Info().Uint("questionAnswerID", row.ID).Uint("graderID", grader.ID).Str("score", score.String()).Msg("OverrideScore: Score updated")

	out := toQuestionAnswerDTO(*row, true)
	return &out, nil
}

// totalAttempt recomputes the correct count and score from the answer rows.
func totalAttempt(ut *model.UserTest) {
	ut.CorrectCount = 0
	ut.Score = decimal.Zero
	for _, a := range ut.Answers {
		if a.Flag == model.FlagCorrect {
			ut.CorrectCount++
		}
		ut.Score = ut.Score.Add(a.ScoreForAnswer)
	}
}
