package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/edugress/internal/dto"
	"github.com/lshigami/edugress/internal/model"
	"github.com/lshigami/edugress/internal/repository"
	"github.com/rs/zerolog/log"
)

// UserTestService runs a user's attempts: start, list questions, end and
// read the result.
type UserTestService interface {
	StartTest(user *model.User, testID uint) (*dto.StartTestResponse, error)
	GetQuestions(user *model.User, userTestID uint, answered *bool, limit int) (*dto.QuestionPageDTO, error)
	EndTest(user *model.User, userTestID uint) (*dto.EndTestResponse, error)
	GetResult(user *model.User, userTestID uint) (*dto.TestResultDTO, error)
}

type userTestService struct {
	testRepo       repository.TestRepository
	userTestRepo   repository.UserTestRepository
	answerRepo     repository.AnswerRepository
	scoreConverter ScoreConverterService
}

func NewUserTestService(testRepo repository.TestRepository, userTestRepo repository.UserTestRepository, answerRepo repository.AnswerRepository, sc ScoreConverterService) UserTestService {
	return &userTestService{testRepo: testRepo, userTestRepo: userTestRepo, answerRepo: answerRepo, scoreConverter: sc}
}

// StartTest hands back the user's unfinished attempt at the test if there is
// one, otherwise creates a new attempt with one answer row per question.
func (s *userTestService) StartTest(user *model.User, testID uint) (*dto.StartTestResponse, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("test %d", testID))
	}
	if len(test.Questions) == 0 {
		return nil, invalid("test %d has no questions", testID)
	}

	previous, err := s.userTestRepo.FindAllByTestAndUser(testID, user.ID)
	if err != nil {
		return nil, err
	}
	for _, ut := range previous {
		if !ut.IsEnded {
			log.Info().Uint("userTestID", ut.ID).Uint("userID", user.ID).Msg("StartTest: Reusing unfinished attempt")
			return &dto.StartTestResponse{UserTestID: int(ut.ID)}, nil
		}
	}

	attempt := model.UserTest{TestID: test.ID, UserID: user.ID}
	for _, q := range test.Questions {
		attempt.Answers = append(attempt.Answers, model.QuestionAnswer{
			QuestionID: q.ID,
			UserID:     user.ID,
			Order:      q.Order,
		})
	}
	if err := s.userTestRepo.Create(&attempt); err != nil {
		return nil, fmt.Errorf("create attempt: %w", err)
	}
	log.Info().Uint("userTestID", attempt.ID).Uint("testID", testID).Uint("userID", user.ID).Msg("StartTest: Attempt created")
	return &dto.StartTestResponse{UserTestID: int(attempt.ID)}, nil
}

// owned loads the attempt and hides it from everyone but its owner and
// graders.
func (s *userTestService) owned(user *model.User, userTestID uint) (*model.UserTest, error) {
	ut, err := s.userTestRepo.FindByID(userTestID)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("attempt %d", userTestID))
	}
	if ut.UserID != user.ID && !user.CanGrade() {
		return nil, fmt.Errorf("%w: attempt %d", ErrNotFound, userTestID)
	}
	return ut, nil
}

func (s *userTestService) GetQuestions(user *model.User, userTestID uint, answered *bool, limit int) (*dto.QuestionPageDTO, error) {
	ut, err := s.owned(user, userTestID)
	if err != nil {
		return nil, err
	}
	rows, total, err := s.answerRepo.ListByUserTest(ut.ID, answered, limit)
	if err != nil {
		return nil, err
	}
	page := &dto.QuestionPageDTO{Count: int(total), Results: make([]dto.QuestionAnswerDTO, 0, len(rows))}
	for _, row := range rows {
		page.Results = append(page.Results, toQuestionAnswerDTO(row, ut.IsEnded))
	}
	return page, nil
}

// EndTest closes the attempt and totals its score. Ending an ended attempt
// returns the same summary again.
func (s *userTestService) EndTest(user *model.User, userTestID uint) (*dto.EndTestResponse, error) {
	if _, err := s.owned(user, userTestID); err != nil {
		return nil, err
	}
	ut, err := s.userTestRepo.FindByIDWithDetails(userTestID)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("attempt %d", userTestID))
	}

	answered := 0
	for _, a := range ut.Answers {
		if a.IsAnswered {
			answered++
		}
	}
	summary := &dto.EndTestResponse{
		Total:                len(ut.Answers),
		Amount:               answered,
		CompletionPercentage: s.scoreConverter.CompletionPercentage(answered, len(ut.Answers)),
	}
	if ut.IsEnded {
		return summary, nil
	}

	totalAttempt(ut)
	ended := time.Now()
	ut.EndedAt = &ended
	ut.IsEnded = true
	if err := s.userTestRepo.Update(ut); err != nil {
		return nil, fmt.Errorf("end attempt %d: %w", ut.ID, err)
	}
	log.Info().Uint("userTestID", ut.ID).Int("correct", ut.CorrectCount).Str("score", ut.Score.String()).Msg("EndTest: Attempt ended")
	return summary, nil
}

func (s *userTestService) GetResult(user *model.User, userTestID uint) (*dto.TestResultDTO, error) {
	if _, err := s.owned(user, userTestID); err != nil {
		return nil, err
	}
	ut, err := s.userTestRepo.FindByIDWithDetails(userTestID)
	if err != nil {
		if errors.Is(notFound(err, ""), ErrNotFound) {
			return nil, fmt.Errorf("%w: attempt %d", ErrNotFound, userTestID)
		}
		return nil, err
	}
	return toTestResultDTO(ut), nil
}
