package ai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// TranslationClient is a translation model client backed by an
// OpenAI-compatible chat endpoint. Language identities arrive as NLLB-style
// codes resolved by the language registry.
type TranslationClient struct {
	client *openai.Client
	model  string
}

// NewTranslationClient creates a TranslationClient for the given model name.
func NewTranslationClient(client *openai.Client, model string) (*TranslationClient, error) {
	if client == nil {
		return nil, fmt.Errorf("OpenAI client is required")
	}
	if model == "" {
		return nil, fmt.Errorf("translation model name is required")
	}
	return &TranslationClient{client: client, model: model}, nil
}

// Translate converts text from the source language to the target language.
// The source code is a hint; the target code is the forced output language.
func (t *TranslationClient) Translate(ctx context.Context, text, sourceCode, targetCode string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("text to translate is empty")
	}
	if sourceCode == "" || targetCode == "" {
		return "", fmt.Errorf("source or target language code is missing")
	}

	prompt := fmt.Sprintf(
		"Translate the following text from language %s to language %s. Reply with the translation only.\n\n%s",
		sourceCode, targetCode, text,
	)

	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("API response has no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
