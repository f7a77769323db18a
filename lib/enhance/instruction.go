package enhance

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"promptsync-backend/models"
)

type instructionData struct {
	Pre         models.PreprocessResult
	Purpose     string
	Target      string
	Guidance    string
	Sections    []sectionLine
	Improvement []models.QuestionAnswer
}

type sectionLine struct {
	Name      string
	Rationale string
}

var instructionTpl = template.Must(template.New("enhance_instruction").Parse(
	`You are an expert prompt engineer. Turn the request below into a complete, structured "super prompt" for {{.Target}}.

REQUEST:
{{.Pre.CorrectedPrompt}}

ANALYSIS:
Domain: {{.Pre.DomainLabel}}
Intent: {{.Pre.Intent}}
Complexity: {{.Pre.Complexity}}

REQUIRED SECTIONS:
{{range .Sections}}- {{.Name}}{{if .Rationale}}: {{.Rationale}}{{end}}
{{end}}
USER CONTEXT:
Purpose: {{.Purpose}}
Target model: {{.Target}}
Model guidance: {{.Guidance}}
{{if .Improvement}}
ADDITIONAL CONTEXT FROM THE USER:
{{range .Improvement}}- Q: {{.Question}}
  A: {{.Answer}}
{{end}}{{end}}
OUTPUT REQUIREMENTS:
1. Use every required section above as a markdown "##" heading, in the given order.
2. Under each heading, write concrete instructions for the target model, not placeholders.
3. Apply the vocabulary and best practices of the {{.Pre.DomainLabel}} domain.
4. Keep the user's intent unchanged and do not add unrelated tasks.
5. Return only the super prompt text.`))

// BuildInstruction собирает инструкцию для бэкенда из результата препроцессинга и контекста пользователя
func BuildInstruction(pre models.PreprocessResult, purpose models.Purpose, target models.TargetModel, improvement *models.ImprovementContext) (string, error) {
	data := instructionData{
		Pre:      pre,
		Purpose:  string(purpose) + " (" + purpose.Description() + ")",
		Target:   target.ToHuman(),
		Guidance: GuidanceFor(target, purpose),
	}
	if data.Pre.DomainLabel == "" {
		data.Pre.DomainLabel = string(pre.Domain)
	}
	for _, s := range pre.SuggestedSections {
		data.Sections = append(data.Sections, sectionLine{Name: s, Rationale: pre.SectionRationale[s]})
	}
	if !improvement.IsEmpty() {
		for _, qa := range improvement.Answers {
			if strings.TrimSpace(qa.Answer) == "" {
				continue
			}
			data.Improvement = append(data.Improvement, qa)
		}
	}
	buf := new(bytes.Buffer)
	if err := instructionTpl.Execute(buf, data); err != nil {
		return "", errors.Wrap(err, "ошибка сборки инструкции для улучшения промта")
	}
	return buf.String(), nil
}
