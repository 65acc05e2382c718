package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

type GeminiOptions struct {
	APIKey      string
	Model       string
	Temperature *float32
}

// GeminiProvider opens Gemini chat sessions. One provider is shared by all
// requests; each session belongs to a single request.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
	log    *zap.Logger
}

func NewGeminiProvider(ctx context.Context, opts GeminiOptions, log *zap.Logger) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(opts.Model)
	if opts.Temperature != nil {
		model.SetTemperature(*opts.Temperature)
	}

	return &GeminiProvider{
		client: client,
		model:  model,
		log:    log.Named("gemini").With(zap.String("model", opts.Model)),
	}, nil
}

func (p *GeminiProvider) Close() {
	if err := p.client.Close(); err != nil {
		p.log.Warn("closing Gemini client", zap.Error(err))
	}
}

// StartSession starts a chat with empty history.
func (p *GeminiProvider) StartSession(ctx context.Context) (Session, error) {
	return &geminiSession{chat: p.model.StartChat(), log: p.log}, nil
}

// chatSender is the part of *genai.ChatSession used here.
type chatSender interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type geminiSession struct {
	chat chatSender
	log  *zap.Logger
}

func (s *geminiSession) Send(ctx context.Context, text string) (string, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Text(text))
	if err != nil {
		// Returned as is: the error text is what the client sees.
		return "", err
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop {
			s.log.Warn("Gemini stopped early",
				zap.Int("candidate", i),
				zap.String("finish_reason", cand.FinishReason.String()),
				zap.Int32("token_count", cand.TokenCount),
			)
		}
	}

	return extractText(resp), nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
