package completion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	Temperature = 0.7
	MaxTokens   = 1000

	contextInstruction = "Use the following context to answer the question:\n\n"
	errorPrefix        = "Error generating response: "
)

var (
	ErrMissingAPIKey = errors.New("OpenAI API key not found in environment variables")
	ErrNoChoices     = errors.New("no choices returned")
)

type Config struct {
	APIKey string
	Model  string
	// BaseURL points at any OpenAI compatible endpoint; empty means OpenAI.
	BaseURL    string
	HTTPClient *http.Client
}

// Answer is the outcome of one completion call. Text is always renderable:
// on failure it carries the "Error generating response: ..." message and Err
// holds the cause.
type Answer struct {
	Text    string
	Err     error
	Latency time.Duration
}

func (a Answer) Failed() bool { return a.Err != nil }

// Failure builds the in-band answer for err.
func Failure(err error, latency time.Duration) Answer {
	return Answer{Text: errorPrefix + err.Error(), Err: err, Latency: latency}
}

type Client struct {
	api   *openai.Client
	model string
	log   *slog.Logger
}

// New validates cfg before anything touches the network.
func New(cfg Config, log *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		return nil, errors.New("completion model must not be empty")
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		oc.HTTPClient = cfg.HTTPClient
	}

	return &Client{
		api:   openai.NewClientWithConfig(oc),
		model: cfg.Model,
		log:   log,
	}, nil
}

func (c *Client) Model() string { return c.model }

// BuildMessages returns the chat payload: an optional system message carrying
// context, then the user's question.
func BuildMessages(question, contextText string) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, 2)
	if contextText != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: contextInstruction + contextText,
		})
	}
	return append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: question,
	})
}

// Generate never returns an error out of band; check Answer.Err.
func (c *Client) Generate(ctx context.Context, question, contextText string) Answer {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    BuildMessages(question, contextText),
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	}

	start := time.Now()
	res, err := c.api.CreateChatCompletion(ctx, req)
	latency := time.Since(start)
	if err != nil {
		c.log.Error("completion call", "model", c.model, "err", err)
		return Failure(err, latency)
	}
	if len(res.Choices) == 0 {
		c.log.Error("completion call", "model", c.model, "err", ErrNoChoices)
		return Failure(ErrNoChoices, latency)
	}

	c.log.Debug("completion finished",
		"model", c.model,
		"prompt_tokens", res.Usage.PromptTokens,
		"completion_tokens", res.Usage.CompletionTokens,
		"duration_ms", latency.Milliseconds(),
	)
	return Answer{Text: res.Choices[0].Message.Content, Latency: latency}
}

// GenerateResponse returns the answer text, or the rendered error message
// when the call failed.
func (c *Client) GenerateResponse(ctx context.Context, question, contextText string) string {
	return c.Generate(ctx, question, contextText).Text
}

func (c *Client) String() string {
	return fmt.Sprintf("openai(%s)", c.model)
}
