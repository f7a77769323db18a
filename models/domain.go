package models

import "strings"

type Domain string

const (
	DomainSoftware Domain = "software_development"
	DomainContent  Domain = "content_creation"
	DomainResearch Domain = "research"
	// DomainGeneral запись для любых нераспознанных меток классификатора
	DomainGeneral Domain = "general"
)

var domainTitle = map[Domain]string{
	DomainSoftware: "Software Development",
	DomainContent:  "Content Creation",
	DomainResearch: "Research",
	DomainGeneral:  "General",
}

var domainAliases = map[string]Domain{
	"software_development": DomainSoftware,
	"software":             DomainSoftware,
	"development":          DomainSoftware,
	"programming":          DomainSoftware,
	"coding":               DomainSoftware,
	"engineering":          DomainSoftware,
	"content_creation":     DomainContent,
	"content":              DomainContent,
	"writing":              DomainContent,
	"marketing":            DomainContent,
	"copywriting":          DomainContent,
	"research":             DomainResearch,
	"science":              DomainResearch,
	"analysis":             DomainResearch,
	"academic":             DomainResearch,
}

// ParseDomain сводит произвольную метку к известному домену, иначе DomainGeneral
func ParseDomain(label string) Domain {
	key := strings.ToLower(strings.TrimSpace(label))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if d, ok := domainAliases[key]; ok {
		return d
	}
	return DomainGeneral
}

func (d Domain) Title() string {
	if t, ok := domainTitle[d]; ok {
		return t
	}
	return domainTitle[DomainGeneral]
}

func (d Domain) IsKnown() bool {
	_, ok := domainTitle[d]
	return ok && d != DomainGeneral
}

type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

func (c Complexity) IsValid() bool {
	switch c {
	case ComplexitySimple, ComplexityModerate, ComplexityComplex:
		return true
	}
	return false
}

type Intent string

const (
	IntentInstruct Intent = "instruct"
	IntentExplain  Intent = "explain"
	IntentInform   Intent = "inform"
)
