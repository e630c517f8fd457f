package analytics

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appai "github.com/sainiharshit322/personnel-empowerment/internal/application/ai"
	domain "github.com/sainiharshit322/personnel-empowerment/internal/domain/analytics"
	"github.com/sainiharshit322/personnel-empowerment/internal/domain/surveys"
)

type fakeRepo struct {
	all []*surveys.Survey
	err error
}

func (f *fakeRepo) Save(ctx context.Context, s *surveys.Survey) (surveys.SaveResult, error) {
	return surveys.SaveResult{}, errors.New("not implemented")
}

func (f *fakeRepo) Get(ctx context.Context, id surveys.SurveyID) (*surveys.Survey, error) {
	return nil, surveys.ErrNotFound
}

func (f *fakeRepo) All(ctx context.Context) ([]*surveys.Survey, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.all, nil
}

func (f *fakeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.all)), f.err
}

func (f *fakeRepo) Delete(ctx context.Context, id surveys.SurveyID) (bool, error) {
	return false, nil
}

func (f *fakeRepo) Ping(ctx context.Context) error { return f.err }

type fakeAnalyzer struct {
	calls    atomic.Int64
	classify func(text string) (surveys.SentiAnalysis, error)
}

func (f *fakeAnalyzer) Classify(ctx context.Context, text string) (surveys.SentiAnalysis, error) {
	f.calls.Add(1)
	if f.classify != nil {
		return f.classify(text)
	}
	return surveys.SentiAnalysis{Label: surveys.SentimentNeutral}, nil
}

func labeled(question, answer string, label surveys.Sentiment) surveys.Response {
	return surveys.Response{
		Question:      question,
		Answer:        answer,
		SentiAnalysis: &surveys.SentiAnalysis{Label: label},
	}
}

func unlabeled(question, answer string) surveys.Response {
	return surveys.Response{Question: question, Answer: answer}
}

func newService(repo *fakeRepo, analyzer *fakeAnalyzer) *Service {
	return &Service{
		Repo:      repo,
		Annotator: appai.NewService(analyzer, 2),
	}
}

func survey(id string, responses ...surveys.Response) *surveys.Survey {
	return &surveys.Survey{
		SurveyID:    surveys.SurveyID(id),
		CompletedAt: time.Now(),
		Responses:   responses,
	}
}

func TestSnapshot_TwoSurveysSameQuestion(t *testing.T) {
	repo := &fakeRepo{all: []*surveys.Survey{
		survey("s1", labeled("Q1", "great place", surveys.SentimentPositive)),
		survey("s2", labeled("Q1", "awful place", surveys.SentimentNegative)),
	}}
	analyzer := &fakeAnalyzer{}

	snap, err := newService(repo, analyzer).Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 50, snap.Stats.PositiveSentiment)
	assert.Equal(t, domain.SentimentCounts{Positive: 1, Negative: 1, Neutral: 0}, snap.Stats.SentimentBreakdown)
	assert.Equal(t, 2, snap.Stats.TotalAnswers)
	assert.Equal(t, 2, snap.Stats.TotalResponses)
	assert.Equal(t, 100, snap.Stats.CompletionRate)
	assert.Equal(t, domain.SourceLive, snap.Stats.DataSource)

	require.Contains(t, snap.ChartData.QuestionSentimentData, "Q1")
	assert.Equal(t, &domain.QuestionTally{Positive: 1, Negative: 1, Neutral: 0, Total: 2}, snap.ChartData.QuestionSentimentData["Q1"])
	assert.Equal(t, []string{"Q1"}, snap.ChartData.QuestionData.Labels)
	assert.Equal(t, []int{2}, snap.ChartData.QuestionData.Values)

	// pre-computed labels present, fallback must stay cold
	assert.Zero(t, analyzer.calls.Load())
}

func TestSnapshot_CounterConservation(t *testing.T) {
	repo := &fakeRepo{all: []*surveys.Survey{
		survey("s1",
			labeled("Q1", "love it", surveys.SentimentPositive),
			labeled("Q2", "hate it", surveys.SentimentNegative),
			labeled("Q3", "", surveys.SentimentNeutral),
		),
		survey("s2",
			labeled("Q1", "fine", surveys.SentimentNeutral),
			labeled("Q2", "good", surveys.SentimentPositive),
		),
	}}

	snap, err := newService(repo, &fakeAnalyzer{}).Snapshot(context.Background())
	require.NoError(t, err)

	b := snap.Stats.SentimentBreakdown
	assert.Equal(t, 5, b.Positive+b.Negative+b.Neutral)
	assert.Equal(t, 5, snap.Stats.TotalAnswers)
}

func TestSnapshot_MissingLabelCountsNeutralWithoutFallback(t *testing.T) {
	// one labeled response is enough to keep the fallback off, even
	// though most responses lack labels
	repo := &fakeRepo{all: []*surveys.Survey{
		survey("s1",
			labeled("Q1", "love it", surveys.SentimentPositive),
			unlabeled("Q2", "no label here"),
			unlabeled("Q3", "or here"),
		),
	}}
	analyzer := &fakeAnalyzer{}

	snap, err := newService(repo, analyzer).Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.SentimentCounts{Positive: 1, Negative: 0, Neutral: 2}, snap.Stats.SentimentBreakdown)
	assert.Zero(t, analyzer.calls.Load())
}

func TestSnapshot_FallbackWhenZeroLabeled(t *testing.T) {
	repo := &fakeRepo{all: []*surveys.Survey{
		survey("s1", unlabeled("Q1", "love it"), unlabeled("Q2", "meh")),
		survey("s2", unlabeled("Q1", "hate it")),
	}}
	analyzer := &fakeAnalyzer{classify: func(text string) (surveys.SentiAnalysis, error) {
		if text == "hate it" {
			return surveys.SentiAnalysis{Label: surveys.SentimentNegative}, nil
		}
		return surveys.SentiAnalysis{Label: surveys.SentimentPositive}, nil
	}}

	snap, err := newService(repo, analyzer).Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), analyzer.calls.Load())
	assert.Equal(t, domain.SentimentCounts{Positive: 2, Negative: 1, Neutral: 0}, snap.Stats.SentimentBreakdown)
	assert.Equal(t, 3, snap.Stats.TotalAnswers)
	assert.Equal(t, 67, snap.Stats.PositiveSentiment)
}

func TestSnapshot_FallbackAnalyzerFailureCountsNeutral(t *testing.T) {
	repo := &fakeRepo{all: []*surveys.Survey{
		survey("s1", unlabeled("Q1", "love it"), unlabeled("Q2", "meh")),
	}}
	analyzer := &fakeAnalyzer{classify: func(text string) (surveys.SentiAnalysis, error) {
		return surveys.SentiAnalysis{}, errors.New("annotator down")
	}}

	snap, err := newService(repo, analyzer).Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.SentimentCounts{Positive: 0, Negative: 0, Neutral: 2}, snap.Stats.SentimentBreakdown)
	assert.Equal(t, 2, snap.Stats.TotalAnswers)
	assert.Equal(t, 0, snap.Stats.PositiveSentiment)
}

func TestSnapshot_QuestionCapKeepsFirstTenSeen(t *testing.T) {
	var responses []surveys.Response
	for i := 1; i <= 12; i++ {
		responses = append(responses, labeled(fmt.Sprintf("Q%02d", i), "answer", surveys.SentimentNeutral))
	}
	// repeat an early question often; frequency must not promote it
	for i := 0; i < 5; i++ {
		responses = append(responses, labeled("Q12", "answer", surveys.SentimentNeutral))
	}
	repo := &fakeRepo{all: []*surveys.Survey{survey("s1", responses...)}}

	snap, err := newService(repo, &fakeAnalyzer{}).Snapshot(context.Background())
	require.NoError(t, err)

	want := []string{"Q01", "Q02", "Q03", "Q04", "Q05", "Q06", "Q07", "Q08", "Q09", "Q10"}
	assert.Equal(t, want, snap.ChartData.QuestionData.Labels)
	assert.Equal(t, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, snap.ChartData.QuestionData.Values)

	// the per-question tally mapping stays uncapped
	assert.Len(t, snap.ChartData.QuestionSentimentData, 12)
}

func TestSnapshot_EmptyQuestionGroupsAsUnknown(t *testing.T) {
	repo := &fakeRepo{all: []*surveys.Survey{
		survey("s1", labeled("", "something", surveys.SentimentPositive)),
	}}

	snap, err := newService(repo, &fakeAnalyzer{}).Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Unknown"}, snap.ChartData.QuestionData.Labels)
	require.Contains(t, snap.ChartData.QuestionSentimentData, "Unknown")
}

func TestSnapshot_EmptyStore(t *testing.T) {
	repo := &fakeRepo{}
	analyzer := &fakeAnalyzer{}

	snap, err := newService(repo, analyzer).Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, snap.Stats.TotalResponses)
	assert.Equal(t, 0, snap.Stats.TotalAnswers)
	assert.Equal(t, 0, snap.Stats.PositiveSentiment)
	assert.Equal(t, 100, snap.Stats.CompletionRate)
	assert.Empty(t, snap.ChartData.QuestionData.Labels)
	assert.Zero(t, analyzer.calls.Load())
}

func TestSnapshot_StoreErrorReturnsZeroedSnapshot(t *testing.T) {
	repo := &fakeRepo{err: errors.New("server selection timeout")}

	snap, err := newService(repo, &fakeAnalyzer{}).Snapshot(context.Background())
	require.Error(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, domain.SourceStoreError, snap.Stats.DataSource)
	assert.Contains(t, snap.Error, "server selection timeout")
	assert.Equal(t, domain.SentimentCounts{}, snap.Stats.SentimentBreakdown)
	assert.Equal(t, 0, snap.Stats.CompletionRate)
	assert.NotNil(t, snap.Surveys)
	assert.Empty(t, snap.Surveys)
	assert.NotNil(t, snap.ChartData.QuestionSentimentData)
}
