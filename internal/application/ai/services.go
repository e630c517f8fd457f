package ai

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sainiharshit322/personnel-empowerment/internal/domain/ai"
	"github.com/sainiharshit322/personnel-empowerment/internal/domain/surveys"
	"github.com/sainiharshit322/personnel-empowerment/internal/middleware"
)

const defaultWorkers = 4

// Service wraps a SentimentAnalyzer with batch classification.
// Calls run concurrently but results keep the order of the input texts.
type Service struct {
	Analyzer ai.SentimentAnalyzer
	// Workers caps in-flight Classify calls; <=0 uses the default
	Workers int
}

func NewService(analyzer ai.SentimentAnalyzer, workers int) *Service {
	return &Service{Analyzer: analyzer, Workers: workers}
}

func (s *Service) Classify(ctx context.Context, text string) (surveys.SentiAnalysis, error) {
	return s.Analyzer.Classify(ctx, text)
}

// ClassifyBatch classifies every text and returns one result per input,
// index-aligned. A failed call yields NEUTRAL in its slot; the first
// failure is also returned so callers can tell a clean batch from a
// degraded one. The returned slice always has len(texts) entries.
func (s *Service) ClassifyBatch(ctx context.Context, texts []string) ([]surveys.SentiAnalysis, error) {
	results := make([]surveys.SentiAnalysis, len(texts))
	if len(texts) == 0 {
		return results, nil
	}

	workers := s.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	// plain group, no shared cancellation: one failed answer must not
	// poison the siblings
	var g errgroup.Group
	g.SetLimit(workers)

	for i, text := range texts {
		g.Go(func() error {
			middleware.IncrementAnnotations()
			res, err := s.Analyzer.Classify(ctx, text)
			if err != nil {
				middleware.IncrementAnnotationsFailed()
				results[i] = surveys.SentiAnalysis{Label: surveys.SentimentNeutral}
				return err
			}
			res.Label = res.Label.Normalize()
			results[i] = res
			return nil
		})
	}

	return results, g.Wait()
}
