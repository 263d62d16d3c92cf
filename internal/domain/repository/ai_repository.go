package repository

import "context"

// AIRepository is the remote completion service behind the consultant
// persona. Implementations retry internally; an error means every attempt
// failed and the caller falls back to the fixed apology text.
type AIRepository interface {
	// GenerateReply produces a free-form consultant reply for the prompt.
	GenerateReply(ctx context.Context, prompt string) (string, error)
}
