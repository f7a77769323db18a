package ollamaclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	llmclient "promptsync-backend/lib/ai/llm-client"
	"promptsync-backend/models"
	dbmodels "promptsync-backend/models/db"
)

// Структуры для работы с Ollama API
type ollamaRequest struct {
	Model   string  `json:"model"`
	System  string  `json:"system,omitempty"`
	Prompt  string  `json:"prompt"`
	Stream  bool    `json:"stream"`
	Format  string  `json:"format,omitempty"`
	Options options `json:"options"`
}

type options struct {
	Temperature   float32 `json:"temperature,omitempty"`
	TopP          float64 `json:"top_p,omitempty"`
	TopK          int     `json:"top_k,omitempty"`
	NumPredict    int     `json:"num_predict,omitempty"` // Аналог MaxTokens
	RepeatPenalty float64 `json:"repeat_penalty,omitempty"`
}

type ollamaResponse struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
}

type impl struct {
	ollamaURL     string
	standardModel string
	advancedModel string
	httpClient    *http.Client
}

func NewClient(ollamaURL, standardModel, advancedModel string) (llmclient.Provider, error) {
	if ollamaURL == "" {
		return nil, errors.New("не указан url для ollama")
	}
	if standardModel == "" {
		return nil, errors.New("не указана модель для ollama")
	}
	return &impl{
		ollamaURL:     ollamaURL,
		standardModel: standardModel,
		advancedModel: advancedModel,
		httpClient:    &http.Client{},
	}, nil
}

func (i impl) Name() dbmodels.AiName {
	return dbmodels.AiOllamaType
}

func (i impl) ModelName(variant models.BackendVariant) string {
	return llmclient.PickModel(variant, i.standardModel, i.advancedModel)
}

func (i impl) Generate(ctx context.Context, req llmclient.Request) (string, error) {
	request := ollamaRequest{
		Model:  i.ModelName(req.Variant),
		System: req.System,
		Prompt: req.User,
		Stream: false,
		Options: options{
			Temperature:   req.Temperature,
			TopP:          0.9,
			TopK:          40,
			NumPredict:    req.MaxTokens,
			RepeatPenalty: 1.1,
		},
	}
	if req.JSONAnswer {
		request.Format = "json"
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, i.ollamaURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := i.httpClient.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(err, "ошибка запроса к Ollama API")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("ошибка Ollama API: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var answer ollamaResponse
	if err = json.Unmarshal(body, &answer); err != nil {
		return "", errors.Wrap(err, "ошибка разбора ответа Ollama API")
	}
	return answer.Response, nil
}
