package service

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"inkwell/internal/capabilities"
	"inkwell/internal/domain"
)

// ChatMessage is one turn of a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a completion request from the editor. Model falls back to
// the configured default when empty.
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float32       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"maxTokens,omitempty"`
}

// ChatService proxies chat completions to an OpenAI-compatible upstream.
// Only models present in the registry are accepted.
type ChatService struct {
	client       *openai.Client
	registry     *capabilities.Registry
	defaultModel string
	logger       *slog.Logger
}

// NewChatService builds the proxy. baseURL overrides the upstream endpoint
// when talking to a compatible non-OpenAI provider.
func NewChatService(apiKey, baseURL, defaultModel string, registry *capabilities.Registry, logger *slog.Logger) *ChatService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &ChatService{
		client:       openai.NewClientWithConfig(cfg),
		registry:     registry,
		defaultModel: defaultModel,
		logger:       logger,
	}
}

// Models lists the accepted chat models in catalog order.
func (s *ChatService) Models() []capabilities.Model {
	return s.registry.ListModels()
}

// Complete runs one non-streaming completion and returns the assistant
// text.
func (s *ChatService) Complete(ctx context.Context, req *ChatRequest) (string, error) {
	oreq, err := s.buildRequest(req, false)
	if err != nil {
		return "", err
	}

	resp, err := s.client.CreateChatCompletion(ctx, oreq)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: upstream returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// Stream opens a streaming completion. The caller owns the returned stream
// and must Close it.
func (s *ChatService) Stream(ctx context.Context, req *ChatRequest) (*openai.ChatCompletionStream, error) {
	oreq, err := s.buildRequest(req, true)
	if err != nil {
		return nil, err
	}

	stream, err := s.client.CreateChatCompletionStream(ctx, oreq)
	if err != nil {
		return nil, fmt.Errorf("chat stream: %w", err)
	}

	s.logger.Debug("chat stream opened", "model", oreq.Model, "messages", len(oreq.Messages))
	return stream, nil
}

func (s *ChatService) buildRequest(req *ChatRequest, stream bool) (openai.ChatCompletionRequest, error) {
	if len(req.Messages) == 0 {
		return openai.ChatCompletionRequest{}, fmt.Errorf("%w: messages are required", domain.ErrValidation)
	}

	model := req.Model
	if model == "" {
		model = s.defaultModel
	}
	if _, err := s.registry.Lookup(model); err != nil {
		return openai.ChatCompletionRequest{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case openai.ChatMessageRoleSystem, openai.ChatMessageRoleUser, openai.ChatMessageRoleAssistant:
		default:
			return openai.ChatCompletionRequest{}, fmt.Errorf("%w: unknown message role %q", domain.ErrValidation, m.Role)
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	return openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Stream:      stream,
	}, nil
}
