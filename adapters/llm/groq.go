package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/prismaticcrm/teacher-assistant/domain"
)

// Generation parameters are fixed for this assistant.
const (
	temperature = 0.8
	maxTokens   = 100
)

// GroqClient talks to Groq's OpenAI-compatible chat-completions API.
type GroqClient struct {
	client *openai.Client
	model  string
}

func NewGroqClient(apiKey, baseURL, model string, timeout time.Duration) *GroqClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	config.HTTPClient = &http.Client{Timeout: timeout}

	return &GroqClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (g *GroqClient) Complete(ctx context.Context, history []domain.ChatMessage) (domain.ChatMessage, error) {
	messages := make([]openai.ChatCompletionMessage, len(history))
	for i, msg := range history {
		messages[i] = openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 {
		return domain.ChatMessage{}, fmt.Errorf("%w: completion returned no choices", domain.ErrGenerationFailed)
	}

	return domain.ChatMessage{
		Role:    domain.AssistantRole,
		Content: resp.Choices[0].Message.Content,
	}, nil
}
