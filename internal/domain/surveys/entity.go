package surveys

import (
	"time"
)

// SurveyID tipe untuk Survey
type SurveyID string

// Sentiment label enum
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
)

// Normalize maps any label outside the three-way set to NEUTRAL.
func (s Sentiment) Normalize() Sentiment {
	switch s {
	case SentimentPositive, SentimentNegative:
		return s
	default:
		return SentimentNeutral
	}
}

// SentiAnalysis value object attached to a response at ingestion time
type SentiAnalysis struct {
	Label Sentiment `json:"label" bson:"label"`
	Score float64   `json:"score,omitempty" bson:"score,omitempty"`
}

// Response is one answered question. Answer may be empty; a persisted
// response always carries a SentiAnalysis label.
type Response struct {
	Question      string         `json:"question" bson:"question"`
	Answer        string         `json:"answer" bson:"answer"`
	SentiAnalysis *SentiAnalysis `json:"SentiAnalysis,omitempty" bson:"SentiAnalysis,omitempty"`
}

// Aggregate Root: Survey
type Survey struct {
	SurveyID    SurveyID   `json:"surveyId" bson:"surveyId"`
	CompletedAt time.Time  `json:"completedAt" bson:"completedAt"`
	Responses   []Response `json:"responses" bson:"responses"`
}
