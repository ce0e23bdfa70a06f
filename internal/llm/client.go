package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// DefaultTimeout bounds a single completion call. The service degrades
// gracefully on timeout, so this stays deliberately short.
const DefaultTimeout = 15 * time.Second

// DefaultModel is the chat model used when none is configured.
var DefaultModel = shared.ChatModelGPT4oMini

// Completer produces a free-text completion for a natural-language prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client is a Completer backed by the OpenAI chat completions API.
type Client struct {
	api         openai.Client
	model       shared.ChatModel
	timeout     time.Duration
	temperature float64
}

// Option configures a Client.
type Option func(*Client)

// WithModel sets the chat model to use.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = shared.ChatModel(model)
		}
	}
}

// WithTimeout sets the per-call deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewClient creates a Client authenticated with the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		api:         openai.NewClient(option.WithAPIKey(apiKey)),
		model:       DefaultModel,
		timeout:     DefaultTimeout,
		temperature: 0.3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete sends the prompt to the chat completions API and returns the
// trimmed response text. Failures are returned as *Error values with a
// typed reason.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Model:       c.model,
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		reason := ReasonRequest
		if errors.Is(err, context.DeadlineExceeded) {
			reason = ReasonTimeout
		}
		return "", &Error{Reason: reason, Err: err}
	}

	if len(completion.Choices) == 0 {
		return "", &Error{Reason: ReasonEmptyResponse}
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", &Error{Reason: ReasonEmptyResponse}
	}

	return text, nil
}
