package ai

import (
	"context"

	"github.com/sainiharshit322/personnel-empowerment/internal/domain/surveys"
)

// SentimentAnalyzer classifies one free-text answer. Must be treated as
// fallible; callers fall back to NEUTRAL on error.
type SentimentAnalyzer interface {
	Classify(ctx context.Context, text string) (surveys.SentiAnalysis, error)
}

// QuestionGenerator produces an ordered list of engagement questions
// for a named company.
type QuestionGenerator interface {
	Generate(ctx context.Context, company string, count int) ([]string, error)
}
