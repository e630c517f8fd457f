package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	domai "github.com/sainiharshit322/personnel-empowerment/internal/domain/ai"
	"github.com/sainiharshit322/personnel-empowerment/internal/domain/surveys"
	"github.com/sainiharshit322/personnel-empowerment/internal/infra/ai/prompt"
)

const maxTokens = 1024

// Client implements both AI ports (sentiment classification and
// question generation) on top of the OpenAI chat completions API.
type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model}
}

// Classify labels one survey answer as POSITIVE/NEGATIVE/NEUTRAL.
func (c *Client) Classify(ctx context.Context, text string) (surveys.SentiAnalysis, error) {
	content, err := c.complete(ctx,
		prompt.GetSentimentSystemPrompt(),
		prompt.GetSentimentUserPrompt(text),
	)
	if err != nil {
		return surveys.SentiAnalysis{}, err
	}

	var parsed prompt.Classification
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return surveys.SentiAnalysis{}, fmt.Errorf("failed to parse classification: %w", err)
	}
	label := surveys.Sentiment(strings.ToUpper(strings.TrimSpace(parsed.Label)))
	return surveys.SentiAnalysis{Label: label.Normalize(), Score: parsed.Score}, nil
}

// Generate produces an ordered list of engagement questions.
func (c *Client) Generate(ctx context.Context, company string, count int) ([]string, error) {
	content, err := c.complete(ctx,
		prompt.GetQuestionSystemPrompt(),
		prompt.GetQuestionUserPrompt(company, count),
	)
	if err != nil {
		return nil, err
	}

	var parsed prompt.QuestionSet
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse question set: %w", err)
	}
	if len(parsed.Questions) == 0 {
		return nil, fmt.Errorf("model returned no questions")
	}
	return parsed.Questions, nil
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	model := c.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
			return "", fmt.Errorf("%w: %v", domai.ErrQuotaExceeded, err)
		}
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
