package usecase

import (
	"context"
	"strings"

	"github.com/yourusername/store-assistant-bot/internal/domain/repository"
)

// IntentClassifier decides whether a message carries purchase intent.
// The AI-backed fallback makes transitions nondeterministic, so tests plug
// in their own implementation.
type IntentClassifier interface {
	IsPurchaseIntent(ctx context.Context, text string) bool
}

var purchaseKeywords = []string{
	"заказать",
	"оформить",
	"купить",
	"хочу iphone",
	"хочу айфон",
}

var declineKeywords = []string{
	"нет",
	"не надо",
	"не хочу",
}

// keywordAIClassifier checks the keyword allow-list first and asks the
// completion service only for ambiguous phrasing.
type keywordAIClassifier struct {
	aiRepo repository.AIRepository
}

// NewIntentClassifier builds the default keyword-first classifier.
func NewIntentClassifier(aiRepo repository.AIRepository) IntentClassifier {
	return &keywordAIClassifier{aiRepo: aiRepo}
}

func (c *keywordAIClassifier) IsPurchaseIntent(ctx context.Context, text string) bool {
	lower := strings.ToLower(text)

	for _, kw := range purchaseKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, kw := range declineKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}

	prompt := "Определи намерение покупателя по сообщению: \"" + text + "\"\n" +
		"Если он хочет купить или заказать товар, ответь одним словом: ПОКУПКА.\n" +
		"Если он просто спрашивает или общается, ответь одним словом: ВОПРОС."

	answer, err := c.aiRepo.GenerateReply(ctx, prompt)
	if err != nil {
		// Unclassifiable stays informational - the inquiry path recovers it.
		return false
	}
	return strings.Contains(strings.ToLower(answer), "покупка")
}
