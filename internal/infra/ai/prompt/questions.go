package prompt

import "fmt"

// GetQuestionSystemPrompt provides directions and schema for question generation.
func GetQuestionSystemPrompt() string {
	return `You are an HR survey designer. You must produce one valid JSON object only (no markdown, no commentary) that follows the schema below. Do not include code fences.

Requirements:
- Output must be a single JSON object.
- questions is an array of plain question strings, nothing else.
- Return exactly the requested number of questions.

Schema (example with empty values):
{
  "questions": ["<string>"]
}`
}

// GetQuestionUserPrompt builds the generation request for a company.
// The example list seeds the register and topics the questions should cover.
func GetQuestionUserPrompt(company string, count int) string {
	return fmt.Sprintf(`Generate %d employee engagement questions. The questions should focus on employee Engagement Surveys, Manager/Team lead Feedback, Culture Assessment, Goal Alignment for the company named %s.

Examples of Questions:

How likely is it that you would recommend %[2]s as a place to work?
My direct manager/supervisor/leader cares about my opinions.
I am inspired by the purpose and mission of our organization.
The overall business goals and strategies set by %[2]s are taking us in the right direction.
The demands of my workload are manageable.
I understand how my work supports the goals and objectives of my team.
People from all backgrounds are treated fairly at %[2]s.
A diverse workforce is a clear priority at %[2]s (for example, in terms of gender, ethnicity, disability).
Team member health and wellbeing is a priority at %[2]s.
I understand how %[2]s sustainability efforts contribute to positive outcomes for the environment, our communities, and stakeholders.
%[2]s provides AI-upskilling to enhance my productivity
I am satisfied with the steps %[2]s is taking to reduce its environmental impact`, count, company)
}

// QuestionSet matches the schema used by the question system prompt.
type QuestionSet struct {
	Questions []string `json:"questions"`
}
