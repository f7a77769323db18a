package geminiclient

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/genai"
	llmclient "promptsync-backend/lib/ai/llm-client"
	"promptsync-backend/models"
	dbmodels "promptsync-backend/models/db"
)

type impl struct {
	client        *genai.Client
	standardModel string
	advancedModel string
}

func NewClient(ctx context.Context, apiKey, standardModel, advancedModel string) (llmclient.Provider, error) {
	if apiKey == "" {
		return nil, errors.New("не указан ключ API для Gemini")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания клиента Gemini")
	}
	return &impl{
		client:        client,
		standardModel: standardModel,
		advancedModel: advancedModel,
	}, nil
}

func (i impl) Name() dbmodels.AiName {
	return dbmodels.AiGeminiType
}

func (i impl) ModelName(variant models.BackendVariant) string {
	return llmclient.PickModel(variant, i.standardModel, i.advancedModel)
}

func (i impl) Generate(ctx context.Context, req llmclient.Request) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
		TopP:        genai.Ptr[float32](0.95),
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.JSONAnswer {
		cfg.ResponseMIMEType = "application/json"
	}
	resp, err := i.client.Models.GenerateContent(ctx, i.ModelName(req.Variant), genai.Text(req.User), cfg)
	if err != nil {
		return "", errors.Wrap(err, "ошибка запроса к Gemini API")
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("Gemini вернул пустой ответ")
	}
	return text, nil
}
