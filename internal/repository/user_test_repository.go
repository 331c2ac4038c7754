package repository

import (
	"github.com/lshigami/edugress/internal/model"
	"gorm.io/gorm"
)

type UserTestRepository interface {
	Create(attempt *model.UserTest) error
	Update(attempt *model.UserTest) error
	FindByID(id uint) (*model.UserTest, error)
	FindByIDWithDetails(id uint) (*model.UserTest, error)
	FindAllByTestAndUser(testID, userID uint) ([]model.UserTest, error)
}

type userTestRepository struct {
	db *gorm.DB
}

func NewUserTestRepository(db *gorm.DB) UserTestRepository {
	return &userTestRepository{db: db}
}

// Create inserts the attempt and its prepared answer rows.
func (r *userTestRepository) Create(attempt *model.UserTest) error {
	return r.db.Create(attempt).Error
}

// Update saves the attempt's own columns only.
func (r *userTestRepository) Update(attempt *model.UserTest) error {
	return r.db.Omit("Answers", "Test", "User").Save(attempt).Error
}

func (r *userTestRepository) FindByID(id uint) (*model.UserTest, error) {
	var attempt model.UserTest
	err := r.db.First(&attempt, id).Error
	return &attempt, err
}

func (r *userTestRepository) FindByIDWithDetails(id uint) (*model.UserTest, error) {
	var attempt model.UserTest
	err := r.db.
		Preload("Test").
		Preload("User").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_answers.sort_order ASC")
		}).
		Preload("Answers.Question").
		First(&attempt, id).Error
	return &attempt, err
}

func (r *userTestRepository) FindAllByTestAndUser(testID, userID uint) ([]model.UserTest, error) {
	var attempts []model.UserTest
	err := r.db.Where("test_id = ? AND user_id = ?", testID, userID).
		Order("created_at DESC").
		Find(&attempts).Error
	return attempts, err
}
