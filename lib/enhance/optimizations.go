package enhance

import "promptsync-backend/models"

const defaultGuidance = "Give a complete, well-organized answer."

// modelGuidance подсказки по стилю ответа для пары (целевая модель, назначение)
var modelGuidance = map[models.TargetModel]map[models.Purpose]string{
	models.TargetChatGPT: {
		models.PurposeStandard:      "Organize the answer into clear sections and reason step by step. Prefer numbered lists and bullets. Stay complete but concise.",
		models.PurposeReasoning:     "Split the problem into parts and show the reasoning for each one. Weigh alternatives and counterarguments before concluding.",
		models.PurposeResearch:      "Support claims with credible sources and concrete examples. Use headings and subheadings. Add statistics or case studies where they help.",
		models.PurposeBrainstorming: "Produce many distinct ideas, from practical to ambitious. Note how feasible each one is.",
		models.PurposeDrafting:      "Write an engaging opening, a detailed body and a firm conclusion. Use active voice and vary sentence length.",
		models.PurposeCode:          "Write clean, commented code with explicit error handling. Explain the non-obvious parts and show how to use the result.",
	},
	models.TargetClaude: {
		models.PurposeStandard:      "Answer thoughtfully and acknowledge nuance. Consider more than one point of view.",
		models.PurposeReasoning:     "Work through the problem carefully, including edge cases and counterarguments, and end with a balanced conclusion.",
		models.PurposeResearch:      "Cite sources with context, evaluate them critically, and state caveats and limits of the findings.",
		models.PurposeBrainstorming: "Explore creative options systematically and think about the practical obstacles of each.",
		models.PurposeDrafting:      "Write precise, well-argued prose with a clear structure and room for nuance.",
		models.PurposeCode:          "Write maintainable, documented code. Call out security, scalability and misuse risks.",
	},
	models.TargetGrok: {
		models.PurposeStandard:      "Be direct and conversational. Explain plainly and tie points to real-world use.",
		models.PurposeReasoning:     "Use simple logic and clear evidence. Keep the analysis thorough but uncluttered and end with actionable conclusions.",
		models.PurposeResearch:      "Present the information in an accessible format with practical examples and key takeaways.",
		models.PurposeBrainstorming: "Offer bold ideas that are still grounded in what can actually be built.",
		models.PurposeDrafting:      "Write with personality and a conversational tone while staying professional.",
		models.PurposeCode:          "Write robust, working code focused on performance. Keep comments practical and include examples.",
	},
	models.TargetGemini: {
		models.PurposeStandard:      "Combine several kinds of information into one answer with a clear visual hierarchy.",
		models.PurposeReasoning:     "Reason across different sources and formats, including visual and contextual cues.",
		models.PurposeResearch:      "Merge findings from diverse sources and formats into well-organized results.",
		models.PurposeBrainstorming: "Propose varied solutions across approaches and media formats.",
		models.PurposeDrafting:      "Write rich content structured for clarity, with ideas for visual or interactive elements.",
		models.PurposeCode:          "Write versatile code that handles varied inputs, with tests and documentation.",
	},
}

// GuidanceFor подсказка для модели и назначения, при отсутствии берётся standard
func GuidanceFor(target models.TargetModel, purpose models.Purpose) string {
	byPurpose, ok := modelGuidance[target]
	if !ok {
		return defaultGuidance
	}
	if g, ok := byPurpose[purpose]; ok {
		return g
	}
	if g, ok := byPurpose[models.PurposeStandard]; ok {
		return g
	}
	return defaultGuidance
}
