package openai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ChatClient issues single-turn chat completions for the relevance-weighting
// module.
type ChatClient struct {
	client      *openai.Client
	temperature float32
}

// NewChatClient creates a chat-completion adapter sharing the given client.
func NewChatClient(client *openai.Client) *ChatClient {
	return &ChatClient{client: client, temperature: 0.2}
}

// Complete sends one user message and returns the assistant's reply text.
func (c *ChatClient) Complete(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
