package llmclient

import (
	"context"

	"promptsync-backend/models"
	dbmodels "promptsync-backend/models/db"
)

// Request один вызов генеративной модели
type Request struct {
	System      string
	User        string
	Variant     models.BackendVariant
	Temperature float32
	MaxTokens   int
	// JSONAnswer просим модель вернуть только JSON
	JSONAnswer bool
}

type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
	Name() dbmodels.AiName
	ModelName(variant models.BackendVariant) string
}

// PickModel выбирает модель для варианта, при пустой продвинутой берётся стандартная
func PickModel(variant models.BackendVariant, standard, advanced string) string {
	if variant == models.VariantAdvanced && advanced != "" {
		return advanced
	}
	return standard
}
