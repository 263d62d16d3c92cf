package constants

import "time"

// Session and context constants
const (
	// SessionTimeout idle time after which a session is swept
	SessionTimeout = 45 * time.Minute

	// MaxContext history window before the oldest entry is dropped
	MaxContext = 15

	// ConfirmedContextKeep history entries kept after an order completes
	ConfirmedContextKeep = 2
)

// Catalog cache constants
const (
	// CatalogTTL freshness window for the product snapshot
	CatalogTTL = 5 * time.Minute
)

// AI model constants
const (
	// TogetherModelName default chat-completion model
	TogetherModelName = "meta-llama/Llama-3-70b-chat-hf"

	// GeminiModelName model used when AI_PROVIDER=gemini
	GeminiModelName = "gemini-2.5-flash"

	// AITemperature sampling temperature for consultant replies
	AITemperature = 0.3

	// AIMaxTokens reply length cap
	AIMaxTokens = 300

	// MaxRetries attempts against the completion API before giving up
	MaxRetries = 3

	// RetryBaseDelay first backoff step, doubled on each attempt
	RetryBaseDelay = 2 * time.Second

	// MinCallInterval process-wide spacing between completion calls
	MinCallInterval = time.Second

	// AICallTimeout per-call deadline for the completion round trip
	AICallTimeout = 30 * time.Second
)

// Matching thresholds
const (
	// MinMatchScore minimum summed score for a catalog candidate
	MinMatchScore = 50

	// ModelAcceptSimilarity similarity needed to snap free text onto a
	// catalog model name before matching
	ModelAcceptSimilarity = 0.8

	// FuzzySimilarity threshold for color lookup and model suggestions
	FuzzySimilarity = 0.85

	// CloseMatchCutoff last-resort suggestion cutoff on raw model names
	CloseMatchCutoff = 0.7

	// MaxSuggestions size of the "did you mean" list
	MaxSuggestions = 3
)

// Fallback texts
const (
	// ApologyText returned when the completion service stays unreachable
	ApologyText = "Извините, не могу обработать запрос. Попробуйте позже."
)
