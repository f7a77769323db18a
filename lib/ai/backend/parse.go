package backend

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"promptsync-backend/models"
)

// MaxQuestions сколько вопросов принимаем из ответа модели
const MaxQuestions = models.QuestionSetSize

type classifyAnswer struct {
	CorrectedPrompt    string                     `json:"correctedPrompt"`
	Domain             string                     `json:"domain"`
	Intent             string                     `json:"intent"`
	Complexity         string                     `json:"complexity"`
	SuggestedSections  []string                   `json:"suggestedSections"`
	GrammarCorrections []models.GrammarCorrection `json:"grammarCorrections"`
	VisualIndicators   struct {
		SectionReasons map[string]string `json:"sectionReasons"`
	} `json:"visualIndicators"`
}

// AnalyzeAnswer ответ модели на запрос анализа промта
type AnalyzeAnswer struct {
	Complexity      models.Complexity `json:"complexity"`
	SuggestedModels []string          `json:"suggestedModels"`
	EstimatedTokens int               `json:"estimatedTokens"`
	Sentiment       string            `json:"sentiment"`
	Suggestions     []string          `json:"suggestions"`
}

// ExtractAnswer убирает блок рассуждений и markdown-обёртку вокруг ответа
func ExtractAnswer(response string) string {
	if idx := strings.LastIndex(response, "</think>"); idx >= 0 {
		response = response[idx+len("</think>"):]
	}
	answer := strings.TrimSpace(response)
	if strings.HasPrefix(answer, "```") {
		answer = strings.TrimPrefix(answer, "```json")
		answer = strings.TrimPrefix(answer, "```")
		answer = strings.TrimSuffix(strings.TrimSpace(answer), "```")
	}
	return strings.TrimSpace(answer)
}

// ParseClassifyAnswer разбирает ответ классификации. Нормализацию разделов выполняет препроцессор.
func ParseClassifyAnswer(response string) (models.PreprocessResult, error) {
	answer := ExtractAnswer(response)
	data := classifyAnswer{}
	if err := json.Unmarshal([]byte(answer), &data); err != nil {
		return models.PreprocessResult{}, errors.Wrap(err, "ответ классификации не является JSON")
	}
	complexity := models.Complexity(strings.ToLower(strings.TrimSpace(data.Complexity)))
	if !complexity.IsValid() {
		return models.PreprocessResult{}, errors.Errorf("неизвестная сложность в ответе классификации: %q", data.Complexity)
	}
	corrected := strings.TrimSpace(data.CorrectedPrompt)
	if corrected == "" {
		return models.PreprocessResult{}, errors.New("в ответе классификации нет исправленного промта")
	}
	rationale := map[string]string{}
	for k, v := range data.VisualIndicators.SectionReasons {
		if strings.TrimSpace(k) != "" && strings.TrimSpace(v) != "" {
			rationale[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	sections := make([]string, 0, len(data.SuggestedSections))
	for _, s := range data.SuggestedSections {
		if s = strings.TrimSpace(s); s != "" {
			sections = append(sections, s)
		}
	}
	return models.PreprocessResult{
		CorrectedPrompt:    corrected,
		Domain:             models.ParseDomain(data.Domain),
		DomainLabel:        strings.TrimSpace(data.Domain),
		Intent:             strings.ToLower(strings.TrimSpace(data.Intent)),
		Complexity:         complexity,
		SuggestedSections:  sections,
		GrammarCorrections: data.GrammarCorrections,
		SectionRationale:   rationale,
	}, nil
}

var listMarker = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*`)

// ParseQuestionsAnswer принимает JSON-массив строк, иначе строки, заканчивающиеся на "?".
// Возвращает не больше MaxQuestions вопросов.
func ParseQuestionsAnswer(response string) ([]string, error) {
	answer := ExtractAnswer(response)
	questions := []string{}
	list := []string{}
	wrapped := struct {
		Questions []string `json:"questions"`
	}{}
	if err := json.Unmarshal([]byte(answer), &wrapped); err == nil && len(wrapped.Questions) > 0 {
		list = wrapped.Questions
	}
	if len(list) > 0 || json.Unmarshal([]byte(answer), &list) == nil {
		for _, q := range list {
			if q = strings.TrimSpace(q); q != "" {
				questions = append(questions, q)
			}
		}
	} else {
		for _, line := range strings.Split(answer, "\n") {
			line = strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
			line = strings.Trim(line, `"`)
			if strings.HasSuffix(line, "?") {
				questions = append(questions, line)
			}
		}
	}
	if len(questions) == 0 {
		return nil, errors.New("в ответе модели не найдено ни одного вопроса")
	}
	if len(questions) > MaxQuestions {
		questions = questions[:MaxQuestions]
	}
	return questions, nil
}

func ParseAnalyzeAnswer(response string) (AnalyzeAnswer, error) {
	answer := ExtractAnswer(response)
	data := AnalyzeAnswer{}
	if err := json.Unmarshal([]byte(answer), &data); err != nil {
		return AnalyzeAnswer{}, errors.Wrap(err, "ответ анализа не является JSON")
	}
	data.Complexity = models.Complexity(strings.ToLower(string(data.Complexity)))
	if !data.Complexity.IsValid() {
		return AnalyzeAnswer{}, errors.Errorf("неизвестная сложность в ответе анализа: %q", data.Complexity)
	}
	if data.EstimatedTokens < 0 {
		data.EstimatedTokens = 0
	}
	return data, nil
}
