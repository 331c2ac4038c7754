package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lshigami/edugress/internal/domain"
	"github.com/lshigami/edugress/internal/dto"
	"github.com/lshigami/edugress/internal/model"
	"github.com/lshigami/edugress/internal/repository"
	"github.com/rs/zerolog/log"
)

type AdminTestService interface {
	CreateTest(req dto.CreateTestRequest) (*dto.TestDetailDTO, error)
	GetTest(id uint) (*dto.TestDetailDTO, error)
}

type adminTestService struct {
	testRepo repository.TestRepository
}

func NewAdminTestService(testRepo repository.TestRepository) AdminTestService {
	return &adminTestService{testRepo: testRepo}
}

// CreateTest checks every question's options and answer key against its kind
// before anything is written.
func (s *adminTestService) CreateTest(req dto.CreateTestRequest) (*dto.TestDetailDTO, error) {
	if len(req.Questions) == 0 {
		return nil, invalid("a test needs at least one question")
	}
	orders := make(map[int]bool, len(req.Questions))
	test := model.Test{Name: req.Name}
	for i, q := range req.Questions {
		if orders[q.Order] {
			return nil, invalid("duplicate order %d", q.Order)
		}
		orders[q.Order] = true
		m, err := questionModel(q)
		if err != nil {
			return nil, invalid("question %d: %v", i+1, err)
		}
		test.Questions = append(test.Questions, m)
	}

	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Msg("Failed to create test in database")
		return nil, fmt.Errorf("database error creating test: %w", err)
	}
	log.Info().Uint("testID", test.ID).Int("questions", len(test.Questions)).Msg("Test created")
	return s.GetTest(test.ID)
}

func (s *adminTestService) GetTest(id uint) (*dto.TestDetailDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(id)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("test %d", id))
	}
	out := &dto.TestDetailDTO{ID: int(test.ID), Name: test.Name}
	for _, q := range test.Questions {
		out.Questions = append(out.Questions, toQuestionDataDTO(q, true))
	}
	return out, nil
}

func questionModel(q dto.CreateQuestionRequest) (model.Question, error) {
	if !q.QuestionType.Valid() {
		return model.Question{}, fmt.Errorf("unknown question_type %d", int(q.QuestionType))
	}
	if !q.Score.IsPositive() {
		return model.Question{}, fmt.Errorf("score must be positive")
	}
	// Options must parse the way the client will parse them.
	probe := dto.QuestionDataDTO{QuestionType: q.QuestionType, OptionsRaw: q.Options}
	parsed, err := probe.ToDomain()
	if err != nil {
		return model.Question{}, err
	}
	if err := requireOptions(parsed); err != nil {
		return model.Question{}, err
	}

	key, err := dto.DecodeUserAnswer(q.QuestionType, q.Answer)
	if err != nil {
		return model.Question{}, fmt.Errorf("answer: %w", err)
	}
	answer := ""
	if key != nil {
		canonical, err := dto.EncodeUserAnswer(key)
		if err != nil {
			return model.Question{}, fmt.Errorf("answer: %w", err)
		}
		answer = string(canonical)
	} else if q.QuestionType != domain.OpenParagraph {
		return model.Question{}, fmt.Errorf("%s questions need an answer key", q.QuestionType)
	}

	return model.Question{
		Order:        q.Order,
		Text:         deref(q.Description.Text),
		Column1:      deref(q.Description.Column1),
		Column2:      deref(q.Description.Column2),
		Paragraph:    deref(q.Description.Paragraph),
		MathText:     deref(q.Description.MathText),
		QuestionType: int(q.QuestionType),
		Score:        q.Score,
		Options:      compact(q.Options),
		Answer:       answer,
		Image:        q.Image,
		IsMath:       q.IsMath,
	}, nil
}

func requireOptions(q domain.Question) error {
	switch q.QuestionType {
	case domain.SingleSelect, domain.MultipleSelect:
		if len(q.Options) < 2 {
			return fmt.Errorf("%s questions need at least two options", q.QuestionType)
		}
	case domain.Match:
		if len(q.Left) == 0 || len(q.Right) == 0 {
			return fmt.Errorf("match questions need both columns")
		}
	case domain.DragDrop:
		if len(q.Categories) == 0 || len(q.Items) == 0 {
			return fmt.Errorf("drag and drop questions need categories and items")
		}
	}
	return nil
}

func compact(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var b bytes.Buffer
	if err := json.Compact(&b, raw); err != nil {
		return string(raw)
	}
	return b.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
