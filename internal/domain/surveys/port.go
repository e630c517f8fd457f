package surveys

import "context"

// SaveResult reports what the upsert did
type SaveResult struct {
	SurveyID SurveyID `json:"surveyId"`
	Upserted bool     `json:"upserted"`
	Modified bool     `json:"modified"`
}

// Repository port (interface untuk persistence)
type Repository interface {
	// Save upserts the whole document keyed by surveyId (replace, not merge)
	Save(ctx context.Context, s *Survey) (SaveResult, error)
	Get(ctx context.Context, id SurveyID) (*Survey, error)
	// All returns every survey, newest completedAt first
	All(ctx context.Context) ([]*Survey, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id SurveyID) (bool, error)
	Ping(ctx context.Context) error
}
