package service

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/edugress/internal/domain"
	"github.com/lshigami/edugress/internal/dto"
	"github.com/lshigami/edugress/internal/model"
	"github.com/shopspring/decimal"
)

func toDomainUser(u *model.User) domain.User {
	var out domain.User
	_ = copier.Copy(&out, u)
	out.IsOfflineEligible = u.IsOffline
	return out
}

func toQuestionDataDTO(q model.Question, withAnswer bool) dto.QuestionDataDTO {
	var out dto.QuestionDataDTO
	_ = copier.Copy(&out, &q)
	out.Desc = dto.DescriptionDTO{
		Text:      strPtr(q.Text),
		Column1:   optional(q.Column1),
		Column2:   optional(q.Column2),
		Paragraph: optional(q.Paragraph),
		MathText:  optional(q.MathText),
	}
	out.OptionsRaw = rawOrNil(q.Options)
	if withAnswer {
		out.AnswerRaw = rawOrNil(q.Answer)
	}
	testID := int(q.TestID)
	out.Test = &testID
	out.CheckNeeded = q.QuestionType == int(domain.OpenParagraph)
	return out
}

// toQuestionAnswerDTO renders one attempt row. The correct answer is only
// disclosed once the attempt has ended.
func toQuestionAnswerDTO(a model.QuestionAnswer, userTestEnded bool) dto.QuestionAnswerDTO {
	answered := a.IsAnswered
	checked := a.Checked
	out := dto.QuestionAnswerDTO{
		ID:               int(a.ID),
		Order:            a.Order,
		TestQuestion:     int(a.QuestionID),
		TestQuestionData: toQuestionDataDTO(a.Question, false),
		User:             int(a.UserID),
		UserTest:         int(a.UserTestID),
		Answered:         &answered,
		UserAnswerRaw:    rawOrNull(a.UserAnswer),
		CorrectRaw:       json.RawMessage("null"),
		Flag:             domain.Flag(a.Flag),
		ScoreRaw:         decimal.NullDecimal{Decimal: a.ScoreForAnswer, Valid: a.IsAnswered},
		IsChecked:        &checked,
	}
	if userTestEnded {
		out.CorrectRaw = rawOrNull(a.Question.Answer)
	}
	return out
}

func toTestResultDTO(ut *model.UserTest) *dto.TestResultDTO {
	total := len(ut.Answers)
	out := &dto.TestResultDTO{
		ID:           int(ut.ID),
		CorrectCount: decimal.NewFromInt(int64(ut.CorrectCount)),
		IsEnded:      ut.IsEnded,
		Score:        decimal.NullDecimal{Decimal: ut.Score, Valid: ut.IsEnded},
		TestData:     dto.TestDataDTO{ID: int(ut.Test.ID), Name: ut.Test.Name},
		UserData: dto.UserDataDTO{
			ID:       int(ut.User.ID),
			FullName: strings.TrimSpace(ut.User.FirstName + " " + ut.User.LastName),
		},
		Total:       &total,
		UserAnswers: make([]dto.QuestionAnswerDTO, 0, len(ut.Answers)),
	}
	if ut.EndedAt != nil {
		ended := ut.EndedAt.UTC().Format(time.RFC3339Nano)
		out.EndedTime = &ended
	}
	for _, a := range ut.Answers {
		out.UserAnswers = append(out.UserAnswers, toQuestionAnswerDTO(a, ut.IsEnded))
	}
	return out
}

func toStoreProductDTO(p model.StoreProduct) dto.StoreProductDTO {
	var out dto.StoreProductDTO
	_ = copier.Copy(&out, &p)
	return out
}

func strPtr(s string) *string { return &s }

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func rawOrNil(s string) json.RawMessage {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return json.RawMessage(s)
}

func rawOrNull(s string) json.RawMessage {
	if strings.TrimSpace(s) == "" {
		return json.RawMessage("null")
	}
	return json.RawMessage(s)
}
