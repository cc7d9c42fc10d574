package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"woofy-api/internal/ports/completion"

	goopenai "github.com/sashabaranov/go-openai"
)

const DefaultModel = "gpt-4o-mini"

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // opcional (proxies compatibles / tests)
}

// Client implementa completion.Completer sobre la API de chat completions.
// Sin APIKey todas las llamadas devuelven completion.ErrNotConfigured.
type Client struct {
	api   *goopenai.Client
	model string
}

func New(cfg Config) *Client {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return &Client{model: model}
	}

	oc := goopenai.DefaultConfig(key)
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		oc.BaseURL = strings.TrimRight(base, "/")
	}
	return &Client{api: goopenai.NewClientWithConfig(oc), model: model}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.api != nil
}

func (c *Client) Complete(ctx context.Context, req completion.Request) (string, error) {
	if !c.IsConfigured() {
		return "", completion.ErrNotConfigured
	}

	resp, err := c.api.CreateChatCompletion(ctx, c.toRequest(req))
	if err != nil {
		return "", fmt.Errorf("%w: %v", completion.ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", completion.ErrUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) Stream(ctx context.Context, req completion.Request, onDelta func(string) error) (string, error) {
	if !c.IsConfigured() {
		return "", completion.ErrNotConfigured
	}

	r := c.toRequest(req)
	r.Stream = true
	stream, err := c.api.CreateChatCompletionStream(ctx, r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", completion.ErrUnavailable, err)
	}
	defer stream.Close()

	var sb strings.Builder
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), fmt.Errorf("%w: %v", completion.ErrUnavailable, err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		sb.WriteString(delta)
		if onDelta != nil {
			if err := onDelta(delta); err != nil {
				return sb.String(), err
			}
		}
	}
}

func (c *Client) toRequest(req completion.Request) goopenai.ChatCompletionRequest {
	msgs := make([]goopenai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, goopenai.ChatCompletionMessage{
			Role:    toRole(m.Role),
			Content: m.Content,
		})
	}

	out := goopenai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSON {
		out.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
	return out
}

func toRole(r completion.Role) string {
	switch r {
	case completion.RoleSystem:
		return goopenai.ChatMessageRoleSystem
	case completion.RoleAssistant:
		return goopenai.ChatMessageRoleAssistant
	default:
		return goopenai.ChatMessageRoleUser
	}
}
