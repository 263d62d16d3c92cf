package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/yourusername/store-assistant-bot/internal/domain/constants"
	"github.com/yourusername/store-assistant-bot/internal/domain/repository"
	"github.com/yourusername/store-assistant-bot/pkg/ratelimit"
	"github.com/yourusername/store-assistant-bot/pkg/retry"
)

type geminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	spacer *ratelimit.Spacer
	policy retry.Policy
}

// NewClient creates the alternative Gemini-backed completion service,
// selected with AI_PROVIDER=gemini.
func NewClient(apiKey string) (repository.AIRepository, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(constants.GeminiModelName)
	model.SetTemperature(constants.AITemperature)
	model.SetMaxOutputTokens(constants.AIMaxTokens)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{
			genai.Text("Ты консультант магазина WAY Store который продаёт технику Apple. " +
				"Техника Apple как новая. Отвечай кратко и точно на русском."),
		},
	}

	return &geminiClient{
		client: client,
		model:  model,
		spacer: ratelimit.NewSpacer(constants.MinCallInterval),
		policy: retry.Policy{
			MaxAttempts: constants.MaxRetries,
			BaseDelay:   constants.RetryBaseDelay,
		},
	}, nil
}

// GenerateReply runs the prompt through Gemini under the shared spacing and
// retry policy.
func (g *geminiClient) GenerateReply(ctx context.Context, prompt string) (string, error) {
	var content string

	err := g.policy.Do(ctx, func() error {
		if err := g.spacer.Wait(ctx); err != nil {
			return err
		}

		resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			log.Printf("Ошибка запроса к Gemini: %v", err)
			return err
		}
		if len(resp.Candidates) == 0 {
			return fmt.Errorf("no response candidates")
		}

		text := strings.TrimSpace(extractText(resp))
		if text == "" {
			return fmt.Errorf("empty response")
		}
		content = text
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	return content, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				result.WriteString(fmt.Sprintf("%v", part))
			}
		}
	}
	return result.String()
}

// Close releases the underlying client.
func (g *geminiClient) Close() error {
	return g.client.Close()
}
