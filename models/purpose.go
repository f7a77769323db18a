package models

import "github.com/pkg/errors"

type Purpose string

const (
	PurposeStandard      Purpose = "standard"
	PurposeReasoning     Purpose = "reasoning"
	PurposeResearch      Purpose = "research"
	PurposeBrainstorming Purpose = "brainstorming"
	PurposeDrafting      Purpose = "drafting"
	PurposeCode          Purpose = "code"
)

var purposeDescription = map[Purpose]string{
	PurposeStandard:      "general-purpose answer",
	PurposeReasoning:     "step-by-step reasoning and logical analysis",
	PurposeResearch:      "research with sources and evidence",
	PurposeBrainstorming: "divergent idea generation",
	PurposeDrafting:      "drafting polished written content",
	PurposeCode:          "writing and reviewing source code",
}

func (p Purpose) Description() string {
	if d, ok := purposeDescription[p]; ok {
		return d
	}
	return string(p)
}

func (p Purpose) Validate() error {
	if _, ok := purposeDescription[p]; !ok {
		return errors.Errorf("неизвестное назначение промта: %q", string(p))
	}
	return nil
}

// LazyPrompt исходная краткая инструкция пользователя
type LazyPrompt struct {
	Text    string  `json:"text"`
	Purpose Purpose `json:"purpose"`
}
