package support

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
	"gorm.io/gorm"
)

type SupportService struct {
	DB     *gorm.DB
	Client *genai.Client
	// FAQ is the marketplace knowledge base the model answers from.
	FAQ string
}

// generateAnswerHook is swapped out in tests; real deployments hit Gemini.
var generateAnswerHook = generateAnswer

// Ask answers a support question from the FAQ and records the exchange.
func (ss *SupportService) Ask(userID int64, text string) (*Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("question text is required")
	}

	prompt := "Вопрос пользователя: " + text +
		"\n\nОтветь на вопрос, опираясь только на справку сервиса ниже. Отвечай кратко и по-русски. Если ответа в справке нет, посоветуй обратиться к администратору.\n\nСправка:\n" + ss.FAQ

	answer, err := generateAnswerHook(ss.Client, prompt)
	if err != nil {
		return nil, err
	}

	row := Question{
		UserID: userID,
		Text:   text,
		Answer: answer,
	}
	if err := ss.DB.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

var ErrNotFound = errors.New("question not found")

// Get resolves one exchange, scoped to its owner.
func (ss *SupportService) Get(id, userID int64) (*Question, error) {
	var row Question
	err := ss.DB.Where("id = ? AND user_id = ?", id, userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// History returns the user's past exchanges, newest first.
func (ss *SupportService) History(userID int64, limit int) ([]Question, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var rows []Question
	err := ss.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func generateAnswer(client *genai.Client, prompt string) (string, error) {
	ctx := context.Background()

	genResp, err := client.Models.GenerateContent(ctx, "gemini-2.5-flash", []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}, nil)
	if err != nil {
		return "", fmt.Errorf("generation error: %w", err)
	}

	var response string
	if len(genResp.Candidates) > 0 {
		for _, candidate := range genResp.Candidates {
			if candidate.Content != nil {
				for _, part := range candidate.Content.Parts {
					if part.Text != "" {
						response = part.Text
						break
					}
				}
			}
		}
	}

	if response == "" {
		return "", fmt.Errorf("no response from Gemini")
	}
	return response, nil
}
