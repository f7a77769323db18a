package yagptclient

import (
	"context"

	"github.com/pkg/errors"
	yandexgptclient "github.com/sheeiavellie/go-yandexgpt"
	llmclient "promptsync-backend/lib/ai/llm-client"
	"promptsync-backend/models"
	dbmodels "promptsync-backend/models/db"
)

type impl struct {
	client    *yandexgptclient.YandexGPTClient
	catalogID string
}

func NewClient(token, catalog string) (llmclient.Provider, error) {
	if token == "" || catalog == "" {
		return nil, errors.New("не указаны токен или каталог YandexGPT")
	}
	return impl{
		client:    yandexgptclient.NewYandexGPTClientWithIAMToken(token),
		catalogID: catalog,
	}, nil
}

func (i impl) Name() dbmodels.AiName {
	return dbmodels.AiYaGptType
}

// ModelName у YandexGPT один вариант модели, тариф влияет только на лимит токенов
func (i impl) ModelName(variant models.BackendVariant) string {
	return yandexgptclient.MakeModelURI(i.catalogID, yandexgptclient.YandexGPTModelLite)
}

func (i impl) Generate(ctx context.Context, req llmclient.Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2000
	}
	if req.Variant == models.VariantAdvanced {
		maxTokens *= 2
	}
	messages := []yandexgptclient.YandexGPTMessage{}
	if req.System != "" {
		messages = append(messages, yandexgptclient.YandexGPTMessage{
			Role: yandexgptclient.YandexGPTMessageRoleSystem,
			Text: req.System,
		})
	}
	messages = append(messages, yandexgptclient.YandexGPTMessage{
		Role: yandexgptclient.YandexGPTMessageRoleUser,
		Text: req.User,
	})
	request := yandexgptclient.YandexGPTRequest{
		ModelURI: i.ModelName(req.Variant),
		CompletionOptions: yandexgptclient.YandexGPTCompletionOptions{
			Stream:      false,
			Temperature: req.Temperature,
			MaxTokens:   maxTokens,
		},
		Messages: messages,
	}

	response, err := i.client.CreateRequest(ctx, request)
	if err != nil {
		return "", errors.Wrap(err, "Ошибка при отправке запроса на генерацию в API YandexGPT")
	}
	if len(response.Result.Alternatives) == 0 {
		return "", errors.New("YandexGPT не вернул ни одного варианта ответа")
	}
	return response.Result.Alternatives[0].Message.Text, nil
}
