package enhance

import (
	"strings"

	"promptsync-backend/lib/preprocess"
	"promptsync-backend/models"
)

const defaultSectionEmoji = "📌"

var sectionEmoji = map[string]string{
	"Objective":                  "🎯",
	"Key Requirements":           "📋",
	"Quality Checklist":          "✅",
	"Technical Architecture":     "🏗️",
	"Implementation Steps":       "📝",
	"Code Examples":              "💻",
	"Testing Strategy":           "🧪",
	"Performance Considerations": "⚡",
	"Target Audience":            "👥",
	"Content Structure":          "📑",
	"Key Messages":               "💡",
	"Style Guidelines":           "🎨",
	"Research Requirements":      "📚",
	"Research Methodology":       "🔬",
	"Data Requirements":          "📊",
	"Analysis Framework":         "🔍",
	"Expected Outcomes":          "🏁",
	"Validation Methods":         "✔️",
}

// domainChecklist таблица полная по доменам, DomainGeneral содержит общий список из 5 пунктов
var domainChecklist = map[models.Domain][]string{
	models.DomainSoftware: {
		"Code follows established patterns and conventions",
		"Error handling covers the failure cases",
		"Performance limits are addressed",
		"Security measures are included",
		"Documentation is clear and complete",
	},
	models.DomainContent: {
		"Target audience is clearly defined",
		"Key messages are compelling",
		"Structure is logical and flows well",
		"Style is consistent and appropriate",
		"SEO considerations are addressed",
	},
	models.DomainResearch: {
		"Methodology is sound and justified",
		"Data requirements are clearly specified",
		"Analysis framework is appropriate",
		"Validation methods are robust",
		"Limitations are acknowledged",
	},
	models.DomainGeneral: {
		"Objectives are clearly defined",
		"Requirements are specific and measurable",
		"Instructions are clear and actionable",
		"Quality criteria are established",
		"Success metrics are defined",
	},
}

func ChecklistFor(domain models.Domain) []string {
	if list, ok := domainChecklist[domain]; ok {
		return list
	}
	return domainChecklist[models.DomainGeneral]
}

func emojiFor(section string) string {
	if e, ok := sectionEmoji[section]; ok {
		return e
	}
	return defaultSectionEmoji
}

// Synthesize детерминированно собирает супер-промт только из результата препроцессинга.
// Одинаковый вход даёт побайтно одинаковый результат.
func Synthesize(pre models.PreprocessResult) string {
	sections := pre.SuggestedSections
	if len(sections) == 0 {
		sections = preprocess.SectionsFor(pre.Domain)
	}
	b := strings.Builder{}
	b.WriteString("# ")
	b.WriteString(pre.Domain.Title())
	b.WriteString(" Super Prompt\n\n")
	if pre.CorrectedPrompt != "" {
		b.WriteString("**Request:** ")
		b.WriteString(pre.CorrectedPrompt)
		b.WriteString("\n")
	}

	hasChecklist := false
	for _, section := range sections {
		b.WriteString("\n## ")
		b.WriteString(section)
		b.WriteString(" ")
		b.WriteString(emojiFor(section))
		b.WriteString("\n")
		if reason := strings.TrimSpace(pre.SectionRationale[section]); reason != "" {
			b.WriteString("> ")
			b.WriteString(reason)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		switch section {
		case preprocess.SectionQualityChecklist:
			hasChecklist = true
			writeChecklist(&b, pre.Domain)
		case preprocess.SectionObjective:
			b.WriteString(objectiveBody(pre))
			b.WriteString("\n")
		default:
			b.WriteString("[Content for ")
			b.WriteString(section)
			b.WriteString("]\n")
		}
	}
	if !hasChecklist {
		b.WriteString("\n## ")
		b.WriteString(preprocess.SectionQualityChecklist)
		b.WriteString(" ")
		b.WriteString(emojiFor(preprocess.SectionQualityChecklist))
		b.WriteString("\n\n")
		writeChecklist(&b, pre.Domain)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func objectiveBody(pre models.PreprocessResult) string {
	if pre.CorrectedPrompt == "" {
		return "[Content for " + preprocess.SectionObjective + "]"
	}
	return "Deliver the following: " + pre.CorrectedPrompt
}

func writeChecklist(b *strings.Builder, domain models.Domain) {
	for _, item := range ChecklistFor(domain) {
		b.WriteString("- [ ] ")
		b.WriteString(item)
		b.WriteString("\n")
	}
}
