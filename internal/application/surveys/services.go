package surveys

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sainiharshit322/personnel-empowerment/internal/application"
	appai "github.com/sainiharshit322/personnel-empowerment/internal/application/ai"
	domain "github.com/sainiharshit322/personnel-empowerment/internal/domain/surveys"
)

// Service implements use-cases untuk Survey ingestion.
// Annotation failure is never fatal: a response whose classification
// fails is stored with a NEUTRAL label.
type Service struct {
	Repo      domain.Repository
	Annotator *appai.Service
	Clock     application.Clock
}

// IngestResult mirrors the save-survey response payload
type IngestResult struct {
	Success           bool            `json:"success"`
	Database          string          `json:"database"`
	TotalSurveys      int64           `json:"totalSurveys"`
	SentimentAnalyzed bool            `json:"sentimentAnalyzed"`
	SurveyID          domain.SurveyID `json:"surveyId"`
	Upserted          bool            `json:"upserted"`
	Modified          bool            `json:"modified"`
}

// Ingest annotates each answered question, then upserts the whole
// document keyed by surveyId. Empty or whitespace-only answers get
// NEUTRAL without calling the annotator.
func (s *Service) Ingest(ctx context.Context, survey *domain.Survey) (IngestResult, error) {
	if survey.SurveyID == "" {
		survey.SurveyID = domain.SurveyID(uuid.New().String())
	}
	if survey.CompletedAt.IsZero() {
		survey.CompletedAt = s.Clock.Now()
	}

	// collect non-empty answers, keeping their response index
	var texts []string
	var indices []int
	for i, resp := range survey.Responses {
		if strings.TrimSpace(resp.Answer) != "" {
			texts = append(texts, resp.Answer)
			indices = append(indices, i)
		} else {
			survey.Responses[i].SentiAnalysis = &domain.SentiAnalysis{Label: domain.SentimentNeutral}
		}
	}

	if len(texts) > 0 {
		// failed slots come back NEUTRAL already; the batch error is
		// deliberately swallowed here
		results, _ := s.Annotator.ClassifyBatch(ctx, texts)
		for j, idx := range indices {
			res := results[j]
			survey.Responses[idx].SentiAnalysis = &res
		}
	}

	saved, err := s.Repo.Save(ctx, survey)
	if err != nil {
		return IngestResult{}, fmt.Errorf("failed to save survey to MongoDB: %w", err)
	}

	// count failure is non-fatal, report 0 like the status endpoint does
	total, err := s.Repo.Count(ctx)
	if err != nil {
		total = 0
	}

	return IngestResult{
		Success:           true,
		Database:          "MongoDB",
		TotalSurveys:      total,
		SentimentAnalyzed: true,
		SurveyID:          saved.SurveyID,
		Upserted:          saved.Upserted,
		Modified:          saved.Modified,
	}, nil
}

// Get ambil 1 survey by id
func (s *Service) Get(ctx context.Context, id domain.SurveyID) (*domain.Survey, error) {
	return s.Repo.Get(ctx, id)
}

// Delete removes a survey by id, reporting whether anything was removed
func (s *Service) Delete(ctx context.Context, id domain.SurveyID) (bool, error) {
	return s.Repo.Delete(ctx, id)
}

// Count total surveys in the store
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.Repo.Count(ctx)
}
