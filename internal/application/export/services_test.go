package export

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appai "github.com/sainiharshit322/personnel-empowerment/internal/application/ai"
	appanalytics "github.com/sainiharshit322/personnel-empowerment/internal/application/analytics"
	domain "github.com/sainiharshit322/personnel-empowerment/internal/domain/analytics"
	"github.com/sainiharshit322/personnel-empowerment/internal/domain/surveys"
)

type fakeRepo struct {
	all []*surveys.Survey
	err error
}

func (f *fakeRepo) Save(ctx context.Context, s *surveys.Survey) (surveys.SaveResult, error) {
	return surveys.SaveResult{}, nil
}
func (f *fakeRepo) Get(ctx context.Context, id surveys.SurveyID) (*surveys.Survey, error) {
	return nil, surveys.ErrNotFound
}
func (f *fakeRepo) All(ctx context.Context) ([]*surveys.Survey, error) { return f.all, f.err }
func (f *fakeRepo) Count(ctx context.Context) (int64, error)           { return int64(len(f.all)), nil }
func (f *fakeRepo) Delete(ctx context.Context, id surveys.SurveyID) (bool, error) {
	return false, nil
}
func (f *fakeRepo) Ping(ctx context.Context) error { return nil }

type neutralAnalyzer struct{}

func (neutralAnalyzer) Classify(ctx context.Context, text string) (surveys.SentiAnalysis, error) {
	return surveys.SentiAnalysis{Label: surveys.SentimentNeutral}, nil
}

type fakeStore struct {
	key  string
	data []byte
	err  error
}

func (f *fakeStore) UploadJSON(ctx context.Context, key string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.key = key
	f.data = data
	return "http://minio.local/exports/" + key, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newService(repo *fakeRepo, store *fakeStore) *Service {
	return &Service{
		Analytics: &appanalytics.Service{
			Repo:      repo,
			Annotator: appai.NewService(neutralAnalyzer{}, 1),
		},
		Store: store,
		Clock: fixedClock{t: time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)},
	}
}

func TestRun_UploadsSnapshot(t *testing.T) {
	repo := &fakeRepo{all: []*surveys.Survey{
		{
			SurveyID: "s1",
			Responses: []surveys.Response{
				{Question: "Q1", Answer: "fine", SentiAnalysis: &surveys.SentiAnalysis{Label: surveys.SentimentPositive}},
			},
		},
	}}
	store := &fakeStore{}

	res, err := newService(repo, store).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "exports/analytics-20250102T150405Z.json", res.Key)
	assert.Equal(t, "http://minio.local/exports/"+res.Key, res.URL)

	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal(store.data, &snap))
	assert.Equal(t, 1, snap.Stats.TotalAnswers)
	assert.Equal(t, domain.SourceLive, snap.Stats.DataSource)
}

func TestRun_StoreFetchFailureAborts(t *testing.T) {
	repo := &fakeRepo{err: errors.New("mongodb unreachable")}
	store := &fakeStore{}

	_, err := newService(repo, store).Run(context.Background())
	require.Error(t, err)
	assert.Empty(t, store.key)
}

func TestRun_UploadFailure(t *testing.T) {
	repo := &fakeRepo{}
	store := &fakeStore{err: errors.New("bucket gone")}

	_, err := newService(repo, store).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uploading snapshot")
}
