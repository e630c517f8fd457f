package prompt

import "fmt"

// GetSentimentSystemPrompt provides strict directions and schema for JSON output.
func GetSentimentSystemPrompt() string {
	return `You are a sentiment classifier for employee engagement survey answers. You must produce one valid JSON object only (no markdown, no commentary). Do not include code fences.

Requirements:
- Output must be a single JSON object.
- label must be exactly one of: POSITIVE, NEGATIVE, NEUTRAL.
- score is your confidence between 0 and 1.
- Classify the overall sentiment of the answer text; mixed or unclear answers are NEUTRAL.

Schema (example with empty values):
{
  "label": "<POSITIVE|NEGATIVE|NEUTRAL>",
  "score": 0.0
}`
}

// GetSentimentUserPrompt builds a compact user message around one answer.
func GetSentimentUserPrompt(text string) string {
	return fmt.Sprintf("Classify the sentiment of this survey answer and respond with the JSON per schema. Answer: %s", text)
}

// Classification matches the schema used by the sentiment system prompt.
type Classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
