package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sainiharshit322/personnel-empowerment/internal/domain/surveys"
)

type mapAnalyzer struct {
	labels map[string]surveys.Sentiment
	fail   map[string]bool
}

func (m *mapAnalyzer) Classify(ctx context.Context, text string) (surveys.SentiAnalysis, error) {
	if m.fail[text] {
		return surveys.SentiAnalysis{}, errors.New("classify failed")
	}
	if label, ok := m.labels[text]; ok {
		return surveys.SentiAnalysis{Label: label}, nil
	}
	return surveys.SentiAnalysis{Label: surveys.SentimentNeutral}, nil
}

func TestClassifyBatch_OrderPreserved(t *testing.T) {
	analyzer := &mapAnalyzer{labels: map[string]surveys.Sentiment{
		"a": surveys.SentimentPositive,
		"b": surveys.SentimentNegative,
		"c": surveys.SentimentNeutral,
		"d": surveys.SentimentPositive,
		"e": surveys.SentimentNegative,
	}}
	svc := NewService(analyzer, 3)

	texts := strings.Split("a b c d e a b", " ")
	results, err := svc.ClassifyBatch(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, results, len(texts))

	for i, text := range texts {
		assert.Equal(t, analyzer.labels[text], results[i].Label, "slot %d", i)
	}
}

func TestClassifyBatch_FailedSlotIsNeutral(t *testing.T) {
	analyzer := &mapAnalyzer{
		labels: map[string]surveys.Sentiment{
			"good": surveys.SentimentPositive,
		},
		fail: map[string]bool{"bad": true},
	}
	svc := NewService(analyzer, 2)

	results, err := svc.ClassifyBatch(context.Background(), []string{"good", "bad", "good"})
	require.Error(t, err)
	require.Len(t, results, 3)

	// one failed answer must not poison its siblings
	assert.Equal(t, surveys.SentimentPositive, results[0].Label)
	assert.Equal(t, surveys.SentimentNeutral, results[1].Label)
	assert.Equal(t, surveys.SentimentPositive, results[2].Label)
}

func TestClassifyBatch_Empty(t *testing.T) {
	svc := NewService(&mapAnalyzer{}, 0)

	results, err := svc.ClassifyBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
