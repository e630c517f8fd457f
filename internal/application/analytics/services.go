package analytics

import (
	"context"
	"fmt"
	"math"

	appai "github.com/sainiharshit322/personnel-empowerment/internal/application/ai"
	domain "github.com/sainiharshit322/personnel-empowerment/internal/domain/analytics"
	"github.com/sainiharshit322/personnel-empowerment/internal/domain/surveys"
)

// maxChartQuestions caps the questionData labels/values arrays.
// The cap truncates in first-encounter order, not by frequency.
const maxChartQuestions = 10

// unknownQuestion groups responses that carry no question text
const unknownQuestion = "Unknown"

// Service computes the analytics snapshot. It owns no state: every call
// is a fresh linear pass over the current store contents.
type Service struct {
	Repo      surveys.Repository
	Annotator *appai.Service
}

// Snapshot builds the full analytics payload. On a store failure it
// returns a zeroed snapshot together with the error; the caller decides
// the HTTP status, the body is already complete.
func (s *Service) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	all, err := s.Repo.All(ctx)
	if err != nil {
		snap := domain.Zero(domain.SourceStoreError)
		snap.Error = fmt.Sprintf("Failed to load surveys from MongoDB: %v", err)
		return snap, err
	}
	if all == nil {
		all = []*surveys.Survey{}
	}

	var counts domain.SentimentCounts
	labeled := 0      // responses carrying a pre-computed SentiAnalysis
	totalAnswers := 0 // every response seen in the pass

	questionOrder := []string{}
	questionCounts := map[string]int{}
	questionSentiment := map[string]*domain.QuestionTally{}

	for _, sv := range all {
		for _, resp := range sv.Responses {
			q := resp.Question
			if q == "" {
				q = unknownQuestion
			}
			if _, seen := questionCounts[q]; !seen {
				questionOrder = append(questionOrder, q)
				questionSentiment[q] = &domain.QuestionTally{}
			}
			questionCounts[q]++

			label := surveys.SentimentNeutral
			if resp.SentiAnalysis != nil {
				labeled++
				label = resp.SentiAnalysis.Label.Normalize()
			}

			tally := questionSentiment[q]
			switch label {
			case surveys.SentimentPositive:
				counts.Positive++
				tally.Positive++
			case surveys.SentimentNegative:
				counts.Negative++
				tally.Negative++
			default:
				counts.Neutral++
				tally.Neutral++
			}
			tally.Total++
			totalAnswers++
		}
	}

	// Real-time fallback: only when not a single response carried
	// pre-computed sentiment (strict zero, never "mostly missing").
	if labeled == 0 && totalAnswers > 0 {
		counts, totalAnswers = s.reannotate(ctx, all)
	}

	positivePct := 0
	if totalAnswers > 0 {
		positivePct = int(math.Round(float64(counts.Positive) / float64(totalAnswers) * 100))
	}

	labels := questionOrder
	if len(labels) > maxChartQuestions {
		labels = labels[:maxChartQuestions]
	}
	values := make([]int, len(labels))
	for i, q := range labels {
		values[i] = questionCounts[q]
	}

	return &domain.Snapshot{
		Surveys: all,
		Stats: domain.Stats{
			TotalResponses:     len(all),
			TotalAnswers:       totalAnswers,
			PositiveSentiment:  positivePct,
			CompletionRate:     100, // only completed surveys are ever stored
			SentimentBreakdown: counts,
			DataSource:         domain.SourceLive,
		},
		ChartData: domain.ChartData{
			SentimentData: counts,
			QuestionData: domain.QuestionData{
				Labels: labels,
				Values: values,
			},
			QuestionSentimentData: questionSentiment,
		},
	}, nil
}

// reannotate runs the all-or-nothing fallback: classify every answer
// across all surveys and rebuild the global counters from that batch.
// If the batch fails, everything counts as neutral.
func (s *Service) reannotate(ctx context.Context, all []*surveys.Survey) (domain.SentimentCounts, int) {
	var answers []string
	for _, sv := range all {
		for _, resp := range sv.Responses {
			answers = append(answers, resp.Answer)
		}
	}

	var counts domain.SentimentCounts
	results, err := s.Annotator.ClassifyBatch(ctx, answers)
	if err != nil {
		counts.Neutral = len(answers)
		return counts, len(answers)
	}
	for _, res := range results {
		switch res.Label {
		case surveys.SentimentPositive:
			counts.Positive++
		case surveys.SentimentNegative:
			counts.Negative++
		default:
			counts.Neutral++
		}
	}
	return counts, len(results)
}
