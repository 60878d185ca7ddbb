package assistant

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"sukaikan/internal/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

var ErrEmptyAnswer = errors.New("gemini returned no text")

type geminiClient struct {
	models *genai.Models
	model  string
}

// NewGeminiClient returns a Generator backed by the Gemini API, or nil when
// apiKey is empty or the client cannot be built.
func NewGeminiClient(ctx context.Context, apiKey string) Generator {
	return newGeminiClient(ctx, apiKey, &http.Client{Timeout: 30 * time.Second})
}

func newGeminiClient(ctx context.Context, apiKey string, httpClient *http.Client) Generator {
	if apiKey == "" {
		logger.L().Warn("Gemini API key is empty, assistant disabled")
		return nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		logger.L().Error("failed to create Gemini client, assistant disabled", zap.Error(err))
		return nil
	}

	return &geminiClient{models: client.Models, model: DefaultModel}
}

func (g *geminiClient) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	var cfg *genai.GenerateContentConfig
	if systemInstruction != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		}
	}

	res, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		logger.FromCtx(ctx).Error("Gemini request failed", zap.String("model", g.model), zap.Error(err))
		return "", err
	}

	// Only the first candidate is shown.
	var b strings.Builder
	if len(res.Candidates) > 0 && res.Candidates[0].Content != nil {
		for _, p := range res.Candidates[0].Content.Parts {
			if p != nil {
				b.WriteString(p.Text)
			}
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyAnswer
	}
	return b.String(), nil
}
