package service

import (
	"github.com/lshigami/edugress/internal/dto"
	"github.com/lshigami/edugress/internal/repository"
)

type TestService interface {
	GetAllTests() ([]dto.TestSummaryDTO, error)
}

type testService struct {
	testRepo repository.TestRepository
}

func NewTestService(testRepo repository.TestRepository) TestService {
	return &testService{testRepo: testRepo}
}

func (s *testService) GetAllTests() ([]dto.TestSummaryDTO, error) {
	rows, err := s.testRepo.FindAllWithQuestionCount()
	if err != nil {
		return nil, err
	}
	out := make([]dto.TestSummaryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TestSummaryDTO{ID: int(r.ID), Name: r.Name, QuestionCount: r.QuestionCount})
	}
	return out, nil
}
