package preprocess

import "promptsync-backend/models"

const (
	SectionObjective        = "Objective"
	SectionKeyRequirements  = "Key Requirements"
	SectionQualityChecklist = "Quality Checklist"
)

// BaselineSections общие разделы для любого домена
var BaselineSections = []string{SectionObjective, SectionKeyRequirements, SectionQualityChecklist}

// domainSections таблица полная по всем доменам, включая DomainGeneral
var domainSections = map[models.Domain][]string{
	models.DomainSoftware: {
		"Technical Architecture",
		"Implementation Steps",
		"Code Examples",
		"Testing Strategy",
		"Performance Considerations",
	},
	models.DomainContent: {
		"Target Audience",
		"Content Structure",
		"Key Messages",
		"Style Guidelines",
		"Research Requirements",
	},
	models.DomainResearch: {
		"Research Methodology",
		"Data Requirements",
		"Analysis Framework",
		"Expected Outcomes",
		"Validation Methods",
	},
	models.DomainGeneral: {},
}

var sectionRationale = map[string]string{
	SectionObjective:             "States the single outcome the response has to deliver.",
	SectionKeyRequirements:       "Lists the constraints the answer must satisfy.",
	SectionQualityChecklist:      "Gives a checklist to verify the result before it is accepted.",
	"Technical Architecture":     "Fixes the components and how they interact before any code is written.",
	"Implementation Steps":       "Breaks the work into an ordered sequence of steps.",
	"Code Examples":              "Shows the expected shape of the code.",
	"Testing Strategy":           "Defines how correctness will be checked.",
	"Performance Considerations": "Names the limits on latency, memory and scale.",
	"Target Audience":            "Identifies who the content is written for.",
	"Content Structure":          "Sets the outline and the order of the parts.",
	"Key Messages":               "Lists the points the reader must take away.",
	"Style Guidelines":           "Fixes tone, voice and format.",
	"Research Requirements":      "Lists the facts and sources the content relies on.",
	"Research Methodology":       "Describes how the question will be investigated.",
	"Data Requirements":          "Lists the data needed and where it comes from.",
	"Analysis Framework":         "Defines how the findings will be interpreted.",
	"Expected Outcomes":          "States what a successful result looks like.",
	"Validation Methods":         "Explains how the conclusions will be checked.",
}

// SectionsFor базовые разделы плюс разделы домена, без повторов, в фиксированном порядке
func SectionsFor(domain models.Domain) []string {
	specific, ok := domainSections[domain]
	if !ok {
		specific = domainSections[models.DomainGeneral]
	}
	return UnionSections(BaselineSections, specific)
}

// RationaleFor обоснование раздела из фиксированной таблицы
func RationaleFor(section string) (string, bool) {
	r, ok := sectionRationale[section]
	return r, ok
}

// UnionSections объединяет списки, сохраняя порядок первого появления
func UnionSections(lists ...[]string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, list := range lists {
		for _, s := range list {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
