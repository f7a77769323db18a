package models

// PromptAnalysis оценка сложности промта и рекомендации по его улучшению
type PromptAnalysis struct {
	Complexity      Complexity    `json:"complexity"`
	SuggestedModels []TargetModel `json:"suggested_models"`
	EstimatedTokens int           `json:"estimated_tokens"`
	Confidence      float64       `json:"confidence"`
	Sentiment       string        `json:"sentiment"`
	Suggestions     []string      `json:"suggestions"`
}
