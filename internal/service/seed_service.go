package service

import (
	"encoding/json"
	"fmt"

	"github.com/lshigami/edugress/internal/domain"
	"github.com/lshigami/edugress/internal/dto"
	"github.com/lshigami/edugress/internal/model"
	"github.com/lshigami/edugress/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// SeedService fills an empty database with demo accounts, a test that uses
// every question kind and a few store products.
type SeedService interface {
	Seed() error
}

type seedService struct {
	auth      AuthService
	admin     AdminTestService
	store     StoreService
	userRepo  repository.UserRepository
	testRepo  repository.TestRepository
	storeRepo repository.StoreRepository
}

func NewSeedService(auth AuthService, admin AdminTestService, store StoreService, userRepo repository.UserRepository, testRepo repository.TestRepository, storeRepo repository.StoreRepository) SeedService {
	return &seedService{auth: auth, admin: admin, store: store, userRepo: userRepo, testRepo: testRepo, storeRepo: storeRepo}
}

// DemoPassword is shared by every seeded account.
const DemoPassword = "edugress"

func (s *seedService) Seed() error {
	if n, err := s.userRepo.Count(); err != nil {
		return err
	} else if n == 0 {
		for _, u := range []RegisterUser{
			{Username: "student", FirstName: "Demo", LastName: "Student", Role: model.RoleStudent, Coins: decimal.NewFromInt(100)},
			{Username: "curator", FirstName: "Demo", LastName: "Curator", Role: model.RoleCurator},
		} {
			u.Password = DemoPassword
			if _, err := s.auth.Register(u); err != nil {
				return err
			}
		}
		log.Info().Msg("Seeded demo users")
	}

	if n, err := s.testRepo.Count(); err != nil {
		return err
	} else if n == 0 {
		test, err := s.admin.CreateTest(DemoTest())
		if err != nil {
			return fmt.Errorf("seed demo test: %w", err)
		}
		log.Info().Int("testID", test.ID).Msg("Seeded demo test")
	}

	if n, err := s.storeRepo.CountProducts(); err != nil {
		return err
	} else if n == 0 {
		for _, p := range []dto.CreateStoreProductRequest{
			{Name: "Notebook", Description: "A5 squared notebook", Price: decimal.NewFromInt(15), Stock: 50},
			{Name: "Pen set", Description: "Four gel pens", Price: decimal.NewFromInt(25), Stock: 20},
			{Name: "Hoodie", Description: "Edugress hoodie", Price: decimal.NewFromInt(120), Stock: 5},
		} {
			if _, err := s.store.CreateProduct(p); err != nil {
				return err
			}
		}
		log.Info().Msg("Seeded store products")
	}
	return nil
}

func mustJSON(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}

func plainText(s string) dto.DescriptionDTO { return dto.DescriptionDTO{Text: &s} }

// DemoTest has one question of every kind.
func DemoTest() dto.CreateTestRequest {
	one := decimal.NewFromInt(1)
	paragraph := "Water boils at 100 degrees Celsius at sea level. At altitude the boiling point drops."
	return dto.CreateTestRequest{
		Name: "Demo test",
		Questions: []dto.CreateQuestionRequest{
			{
				Order:        0,
				Description:  plainText("How much is 2 + 2?"),
				QuestionType: domain.SingleSelect,
				Score:        one,
				Options:      mustJSON(map[string]any{"options": []domain.Option{{Text: "3"}, {Text: "4"}, {Text: "5"}}}),
				Answer:       mustJSON(map[string]any{"answer": domain.Option{Text: "4"}}),
			},
			{
				Order:        1,
				Description:  plainText("Which of these are prime numbers?"),
				QuestionType: domain.MultipleSelect,
				Score:        decimal.NewFromInt(2),
				Options:      mustJSON(map[string]any{"options": []domain.Option{{Text: "2"}, {Text: "4"}, {Text: "7"}, {Text: "9"}}}),
				Answer:       mustJSON(map[string]any{"answer": []domain.Option{{Text: "2"}, {Text: "7"}}}),
			},
			{
				Order:        2,
				Description:  dto.DescriptionDTO{Text: strPtr("Match each country to its capital."), Column1: strPtr("Country"), Column2: strPtr("Capital")},
				QuestionType: domain.Match,
				Score:        decimal.NewFromInt(3),
				Options: mustJSON(map[string]any{
					"left":  []map[string]domain.Option{{"0": {Text: "France"}}, {"1": {Text: "Japan"}}, {"2": {Text: "Kenya"}}},
					"right": []map[string]domain.Option{{"0": {Text: "Nairobi"}}, {"1": {Text: "Paris"}}, {"2": {Text: "Tokyo"}}},
				}),
				Answer: mustJSON(map[string]any{"answer": map[string]string{"0": "1", "1": "2", "2": "0"}}),
			},
			{
				Order:        3,
				Description:  plainText("What is the chemical symbol of gold?"),
				QuestionType: domain.ShortOpen,
				Score:        one,
				Answer:       mustJSON(map[string]any{"answer": "Au"}),
			},
			{
				Order:        4,
				Description:  plainText("Sort the animals."),
				QuestionType: domain.DragDrop,
				Score:        decimal.NewFromInt(4),
				Options: mustJSON(map[string]any{
					"categories": []string{"Mammals", "Birds"},
					"options": []map[string]domain.Option{
						{"0": {Text: "Dolphin"}}, {"1": {Text: "Eagle"}}, {"2": {Text: "Bat"}}, {"3": {Text: "Penguin"}},
					},
				}),
				Answer: mustJSON(map[string][]string{"Mammals": {"0", "2"}, "Birds": {"1", "3"}}),
			},
			{
				Order:        5,
				Description:  dto.DescriptionDTO{Text: strPtr("Explain why water boils at a lower temperature in the mountains."), Paragraph: &paragraph},
				QuestionType: domain.OpenParagraph,
				Score:        decimal.NewFromInt(5),
			},
			{
				Order:        6,
				Description:  dto.DescriptionDTO{Text: strPtr("Compare the two quantities."), MathText: strPtr("A = 2^10, B = 10^3")},
				QuestionType: domain.QuantitativeCharacteristics,
				Score:        one,
				Options:      mustJSON(map[string]any{"options": []string{"A", "B", "C", "D"}}),
				Answer:       mustJSON(map[string]any{"answer": "A"}),
				IsMath:       true,
			},
		},
	}
}
