package preprocess

import (
	"regexp"
	"strings"
	"unicode"

	"promptsync-backend/lib/utils/helpers"
	"promptsync-backend/models"
)

var domainVocabulary = []struct {
	domain   models.Domain
	keywords map[string]struct{}
}{
	{models.DomainSoftware, wordSet("code", "coding", "app", "application", "develop", "developer", "development",
		"software", "api", "bug", "debug", "function", "program", "programming", "script", "database", "deploy", "backend", "frontend")},
	{models.DomainContent, wordSet("write", "writing", "blog", "article", "post", "essay", "story", "copy", "newsletter",
		"content", "caption", "headline", "email", "script", "tweet")},
	{models.DomainResearch, wordSet("research", "analyze", "analyse", "analysis", "study", "investigate", "survey",
		"compare", "literature", "paper", "hypothesis", "evidence", "data")},
}

var (
	instructWords = wordSet("how", "create", "make", "write", "build", "generate", "draft", "design", "develop", "help", "give", "list")
	explainWords  = wordSet("why", "explain", "understand", "describe", "what", "clarify")
)

var complexTerms = regexp.MustCompile(`(?i)\b(integrat\w*|analy[sz]\w*|optimi[sz]\w*|architecture|framework|machine learning|distributed system\w*|microservice\w*|data pipeline\w*)\b`)

const (
	complexWordCount  = 100
	moderateWordCount = 20
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Heuristic локальная классификация без сетевых вызовов
func Heuristic(prompt string) models.PreprocessResult {
	corrected := NormalizeGrammar(prompt)
	words := helpers.Words(prompt)
	domain := DetectDomain(words)

	corrections := []models.GrammarCorrection{}
	if corrected != prompt {
		corrections = append(corrections, models.GrammarCorrection{Original: prompt, Corrected: corrected})
	}
	sections := SectionsFor(domain)
	rationale := make(map[string]string, len(sections))
	for _, s := range sections {
		if r, ok := RationaleFor(s); ok {
			rationale[s] = r
		}
	}
	return models.PreprocessResult{
		CorrectedPrompt:    corrected,
		Domain:             domain,
		DomainLabel:        string(domain),
		Intent:             string(DetectIntent(words)),
		Complexity:         DetectComplexity(prompt, words),
		SuggestedSections:  sections,
		GrammarCorrections: corrections,
		SectionRationale:   rationale,
	}
}

// DetectDomain домен с наибольшим числом совпадений, при равенстве побеждает раньше объявленный
func DetectDomain(words []string) models.Domain {
	best := models.DomainGeneral
	bestHits := 0
	for _, v := range domainVocabulary {
		hits := 0
		for _, w := range words {
			if _, ok := v.keywords[w]; ok {
				hits++
			}
		}
		if hits > bestHits {
			best = v.domain
			bestHits = hits
		}
	}
	return best
}

func DetectIntent(words []string) models.Intent {
	for _, w := range words {
		if _, ok := instructWords[w]; ok {
			return models.IntentInstruct
		}
	}
	for _, w := range words {
		if _, ok := explainWords[w]; ok {
			return models.IntentExplain
		}
	}
	return models.IntentInform
}

func DetectComplexity(prompt string, words []string) models.Complexity {
	switch {
	case len(words) > complexWordCount || complexTerms.MatchString(prompt):
		return models.ComplexityComplex
	case len(words) > moderateWordCount:
		return models.ComplexityModerate
	default:
		return models.ComplexitySimple
	}
}

// NormalizeGrammar сжимает пробелы и ставит заглавную букву в начале каждого предложения.
// Слова не заменяются.
func NormalizeGrammar(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	capitalize := true
	sentenceEnd := false
	for idx, r := range runes {
		switch {
		case r == '.' || r == '!' || r == '?':
			sentenceEnd = true
		case r == ' ':
			if sentenceEnd {
				capitalize = true
			}
			sentenceEnd = false
		case unicode.IsLetter(r):
			if capitalize {
				runes[idx] = unicode.ToUpper(r)
			}
			capitalize = false
			sentenceEnd = false
		default:
			if unicode.IsDigit(r) {
				capitalize = false
			}
			sentenceEnd = false
		}
	}
	return string(runes)
}
