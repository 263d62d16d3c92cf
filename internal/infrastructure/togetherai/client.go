package togetherai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/yourusername/store-assistant-bot/internal/domain/constants"
	"github.com/yourusername/store-assistant-bot/internal/domain/repository"
	"github.com/yourusername/store-assistant-bot/pkg/ratelimit"
	"github.com/yourusername/store-assistant-bot/pkg/retry"
)

const apiURL = "https://api.together.xyz/v1/chat/completions"

const systemPrompt = "Ты консультант магазина WAY Store который продаёт технику Apple. " +
	"Техника Apple как новая. Отвечай кратко и точно на русском."

type client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	spacer     *ratelimit.Spacer
	policy     retry.Policy
}

// NewClient creates a Together AI chat-completions client. The client owns
// the global call spacing and the retry/backoff policy; callers see either
// a reply or a final error after all attempts.
func NewClient(apiKey string) repository.AIRepository {
	return &client{
		apiKey:  apiKey,
		model:   constants.TogetherModelName,
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: constants.AICallTimeout,
		},
		spacer: ratelimit.NewSpacer(constants.MinCallInterval),
		policy: retry.Policy{
			MaxAttempts: constants.MaxRetries,
			BaseDelay:   constants.RetryBaseDelay,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateReply runs the completion round trip with rate limiting and
// bounded retries. HTTP 429 and transient failures are retried with
// exponential backoff.
func (c *client) GenerateReply(ctx context.Context, prompt string) (string, error) {
	var content string

	err := c.policy.Do(ctx, func() error {
		if err := c.spacer.Wait(ctx); err != nil {
			return err
		}

		reply, err := c.complete(ctx, prompt)
		if err != nil {
			log.Printf("Ошибка запроса к Together AI: %v", err)
			return err
		}
		content = reply
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("together ai: %w", err)
	}
	return content, nil
}

func (c *client) complete(ctx context.Context, prompt string) (string, error) {
	request := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: constants.AITemperature,
		MaxTokens:   constants.AIMaxTokens,
	}

	requestBody, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("rate limited (status %d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var response chatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("empty choices in response")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
