package provider

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI speaks the chat-completions protocol against any compatible
// endpoint: OpenAI itself, OpenRouter, or a self-hosted gateway.
type OpenAI struct {
	client openai.Client
}

// NewOpenAI builds an adapter for baseURL. The attribution headers are
// attached to every request only when non-empty; an empty header stays off
// the wire entirely rather than being sent blank.
func NewOpenAI(baseURL, apiKey, httpReferer, xTitle string) *OpenAI {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if httpReferer != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", httpReferer))
	}
	if xTitle != "" {
		opts = append(opts, option.WithHeader("X-Title", xTitle))
	}
	return &OpenAI{client: openai.NewClient(opts...)}
}

func (o *OpenAI) Call(ctx context.Context, req Request) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.Model),
		Temperature: openai.Float(requestTemperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
	})
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			body := apierr.RawJSON()
			if body == "" {
				body = apierr.Message
			}
			return "", &HTTPError{Name: "OpenAI", StatusCode: apierr.StatusCode, Body: truncate(body, maxErrorBody)}
		}
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
