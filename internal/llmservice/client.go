package llmservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fewie27/ultimate/internal/config"
	"github.com/fewie27/ultimate/internal/models"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// New creates the chat client used for essentials extraction and OCR.
// The returned value satisfies llms.Model so callers can be tested with a
// stub implementation.
func New(llmConfig *config.LLMConfig, model string) (llms.Model, error) {
	llm, err := openai.New(
		openai.WithBaseURL(llmConfig.OpenRouterBase),
		openai.WithToken(strings.TrimPrefix(llmConfig.OpenRouterKey, "Bearer ")),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}
	return llm, nil
}

// Complete sends one system instruction plus one user prompt and returns the
// raw response text. Sampling is deterministic; the call is bounded by the
// given timeout.
func Complete(ctx context.Context, model llms.Model, timeout time.Duration, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}
	res, err := model.GenerateContent(ctx, messages, llms.WithTemperature(0))
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	return res.Choices[0].Content, nil
}

// OCR sends an image to a vision-capable model and returns the recognized
// text verbatim.
func OCR(ctx context.Context, model llms.Model, timeout time.Duration, mimeType string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, models.OCRSystemPrompt),
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart(mimeType, data),
			},
		},
	}
	res, err := model.GenerateContent(ctx, messages, llms.WithTemperature(0))
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	return res.Choices[0].Content, nil
}
