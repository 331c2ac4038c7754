package repository

import (
	"github.com/lshigami/edugress/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	FindByID(id uint) (*model.QuestionAnswer, error)
	// ListByUserTest returns the attempt's rows in order; answered filters on
	// is_answered when set.
	ListByUserTest(userTestID uint, answered *bool, limit int) ([]model.QuestionAnswer, int64, error)
	Update(answer *model.QuestionAnswer) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) FindByID(id uint) (*model.QuestionAnswer, error) {
	var answer model.QuestionAnswer
	err := r.db.Preload("Question").First(&answer, id).Error
	return &answer, err
}

func (r *answerRepository) ListByUserTest(userTestID uint, answered *bool, limit int) ([]model.QuestionAnswer, int64, error) {
	query := r.db.Model(&model.QuestionAnswer{}).Where("user_test_id = ?", userTestID)
	if answered != nil {
		query = query.Where("is_answered = ?", *answered)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var answers []model.QuestionAnswer
	q := query.Preload("Question").Order("sort_order ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&answers).Error
	return answers, total, err
}

func (r *answerRepository) Update(answer *model.QuestionAnswer) error {
	return r.db.Omit("Question").Save(answer).Error
}
