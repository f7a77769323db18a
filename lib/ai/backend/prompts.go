package backend

const classifyPattern = `You analyze short, underspecified prompts ("lazy prompts") before they are expanded into structured instructions.

LAZY PROMPT:
%s

Return a single JSON object and nothing else:
{
  "correctedPrompt": "the prompt with grammar and spelling fixed, meaning unchanged",
  "domain": "software_development | content_creation | research | general",
  "intent": "instruct | explain | inform",
  "complexity": "simple | moderate | complex",
  "suggestedSections": ["section names for the final prompt"],
  "grammarCorrections": [{"original": "...", "corrected": "..."}],
  "visualIndicators": {
    "domainReason": "why this domain",
    "intentReason": "why this intent",
    "sectionReasons": {"section name": "why this section is useful"}
  }
}

Rules:
- never change what the user asks for, only how it is written;
- always include the sections Objective, Key Requirements and Quality Checklist;
- keep section names short, in Title Case.`

const analyzePattern = `Analyze the prompt below and answer with a single JSON object:
{
  "complexity": "simple | moderate | complex",
  "suggestedModels": ["chatgpt", "claude", "grok", "gemini"],
  "estimatedTokens": 0,
  "sentiment": "positive | neutral | negative",
  "suggestions": ["concrete ways to improve the prompt"]
}

Take into account word count and sentence structure, the domain expertise required, the number of separate tasks, and how specific the prompt is.

PROMPT TO ANALYZE: "%s"

Answer with the JSON object only.`

const questionsPattern = `ORIGINAL PROMPT:
%s

CURRENT SUPER PROMPT:
%s

Ask exactly 3 open questions that would let you make this super prompt more precise.
Each question must be relevant to the domain, must not be answered by the text above, and must not be a yes/no question.
Answer with a JSON array of 3 strings and nothing else.`
