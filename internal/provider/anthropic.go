package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicMaxTokens caps output size; the Messages API requires an
// explicit limit on every request.
const anthropicMaxTokens = 4096

// Anthropic speaks the Messages protocol. The system prompt travels as the
// top-level system field, not as a message.
type Anthropic struct {
	client anthropic.Client
}

func NewAnthropic(baseURL, apiKey string) *Anthropic {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Anthropic{client: anthropic.NewClient(opts...)}
}

func (a *Anthropic) Call(ctx context.Context, req Request) (string, error) {
	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   anthropicMaxTokens,
		Temperature: anthropic.Float(requestTemperature),
		System:      []anthropic.TextBlockParam{{Text: req.System}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
	})
	if err != nil {
		var apierr *anthropic.Error
		if errors.As(err, &apierr) {
			body := apierr.RawJSON()
			if body == "" {
				body = apierr.Error()
			}
			return "", &HTTPError{Name: "Anthropic", StatusCode: apierr.StatusCode, Body: truncate(body, maxErrorBody)}
		}
		return "", err
	}

	var texts []string
	for _, block := range msg.Content {
		if t, ok := block.AsAny().(anthropic.TextBlock); ok {
			texts = append(texts, t.Text)
		}
	}
	if len(texts) > 0 {
		return strings.Join(texts, "\n"), nil
	}
	// No text blocks at all: hand the serialized response to the JSON
	// extraction stage instead of failing here.
	return msg.RawJSON(), nil
}
