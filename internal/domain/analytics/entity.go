package analytics

import (
	"github.com/sainiharshit322/personnel-empowerment/internal/domain/surveys"
)

// Data source markers reported in Stats.DataSource
const (
	SourceLive       = "MongoDB"
	SourceStoreError = "MongoDB (error)"
	SourceError      = "error"
)

// SentimentCounts value object: overall three-way breakdown
type SentimentCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// QuestionTally per-question four-field tally
type QuestionTally struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
	Total    int `json:"total"`
}

// QuestionData chart labels/values arrays, capped to the first ten
// distinct questions in order of first encounter
type QuestionData struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// Stats summary statistics for the analytics page
type Stats struct {
	TotalResponses     int             `json:"totalResponses"`
	TotalAnswers       int             `json:"totalAnswers"`
	PositiveSentiment  int             `json:"positiveSentiment"`
	CompletionRate     int             `json:"completionRate"`
	SentimentBreakdown SentimentCounts `json:"sentimentBreakdown"`
	DataSource         string          `json:"dataSource"`
}

// ChartData chart-ready projections
type ChartData struct {
	SentimentData         SentimentCounts           `json:"sentimentData"`
	QuestionData          QuestionData              `json:"questionData"`
	QuestionSentimentData map[string]*QuestionTally `json:"questionSentimentData"`
}

// Snapshot is the full analytics payload. Derived, never persisted:
// built fresh from the survey collection on every request.
type Snapshot struct {
	Surveys   []*surveys.Survey `json:"surveys"`
	Stats     Stats             `json:"stats"`
	ChartData ChartData         `json:"chartData"`
	Error     string            `json:"error,omitempty"`
}

// Zero returns an all-zero snapshot with the given data source marker.
// Collections are initialized so the JSON carries [] / {} instead of null.
func Zero(dataSource string) *Snapshot {
	return &Snapshot{
		Surveys: []*surveys.Survey{},
		Stats: Stats{
			DataSource: dataSource,
		},
		ChartData: ChartData{
			QuestionData: QuestionData{
				Labels: []string{},
				Values: []int{},
			},
			QuestionSentimentData: map[string]*QuestionTally{},
		},
	}
}
