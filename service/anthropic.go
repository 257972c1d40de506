package service

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicService is the Anthropic-backed text generator, selectable via
// the ai.provider config key.
type AnthropicService struct {
	client  anthropic.Client
	model   string
	enabled bool
}

func NewAnthropicService(apiKey, model string) *AnthropicService {
	if model == "" {
		model = string(anthropic.ModelClaudeSonnet4_5)
	}
	return &AnthropicService{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		enabled: apiKey != "",
	}
}

func (s *AnthropicService) Name() string { return "anthropic" }

func (s *AnthropicService) Enabled() bool { return s.enabled }

func (s *AnthropicService) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: int64(req.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	if req.TopP > 0 {
		params.TopP = anthropic.Float(req.TopP)
	}
	if req.TopK > 0 {
		params.TopK = anthropic.Int(int64(req.TopK))
	}

	msg, err := s.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
