package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"betledger/models"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	defaultPredictionModel   = "gemini-2.5-pro"
	defaultPredictionTimeout = 60 * time.Second
)

var ErrEmptyPrediction = errors.New("prediction service returned no content")

const systemPrompt = `You are a football analyst pricing live second-half betting markets.
Reply with a single JSON object and nothing else, using exactly these fields:
homeWin, draw, awayWin, doubleChance1X, doubleChanceX2, over05, over15 (probabilities between 0 and 1),
reasoning (short text on momentum and goal likelihood), confidence (0 to 100).`

// PredictionClientOptions configures an OpenAIPredictionClient
type PredictionClientOptions struct {
	APIKey string
	// BaseURL selects an OpenAI-compatible endpoint; empty uses the OpenAI default
	BaseURL           string
	Model             string
	Timeout           time.Duration
	RequestsPerMinute int
}

// OpenAIPredictionClient asks an OpenAI-compatible chat completion endpoint for
// match probabilities
type OpenAIPredictionClient struct {
	client  *openai.Client
	limiter *rate.Limiter
	model   string
	timeout time.Duration
}

// NewOpenAIPredictionClient creates a client. A non-positive RequestsPerMinute disables throttling.
func NewOpenAIPredictionClient(opts PredictionClientOptions) *OpenAIPredictionClient {
	if opts.Model == "" {
		opts.Model = defaultPredictionModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultPredictionTimeout
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}

	limit := rate.Inf
	if opts.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(opts.RequestsPerMinute))
	}

	return &OpenAIPredictionClient{
		client:  openai.NewClientWithConfig(cfg),
		limiter: rate.NewLimiter(limit, 1),
		model:   opts.Model,
		timeout: opts.Timeout,
	}
}

// Predict sends the match to the model and decodes its JSON estimate
func (c *OpenAIPredictionClient) Predict(ctx context.Context, match models.MatchContext) (*models.PredictionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("prediction rate limit: %w", err)
	}

	logger := log.WithFields(log.Fields{
		"model": c.model,
		"home":  match.HomeTeam,
		"away":  match.AwayTeam,
	})
	logger.Debug("Requesting match prediction")

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: matchPrompt(match)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request prediction: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyPrediction
	}

	result, err := decodePrediction(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	logger.WithField("confidence", result.Confidence).Debug("Received match prediction")
	return result, nil
}

func matchPrompt(match models.MatchContext) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Match: %s vs %s", match.HomeTeam, match.AwayTeam)
	if match.League != "" {
		fmt.Fprintf(&sb, " (%s)", match.League)
	}
	fmt.Fprintf(&sb, ".\nCurrent state: minute %s, score %s.\n", match.CurrentMinute, match.CurrentScore)
	if match.Context != "" {
		fmt.Fprintf(&sb, "Context: %s\n", match.Context)
	}
	sb.WriteString("Estimate the double chance, over 0.5 goals and over 1.5 goals outcomes for the full match.")
	return sb.String()
}

// decodePrediction parses the model reply, tolerating a markdown code fence around the JSON
func decodePrediction(content string) (*models.PredictionResult, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}
	if content == "" {
		return nil, ErrEmptyPrediction
	}

	var result models.PredictionResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to decode prediction: %w", err)
	}
	result.Fallback = false
	return &result, nil
}
