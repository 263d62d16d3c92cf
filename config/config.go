package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the application configuration, loaded once at startup.
type Config struct {
	// HTTP chat delivery
	HTTPAddr   string
	CORSOrigin string

	// Completion service
	AIProvider     string // "together" (default) or "gemini"
	TogetherAPIKey string
	GeminiAPIKey   string

	// Spreadsheet-backed stores
	ServiceAccountJSON string
	ProductSheetID     string
	OrderSheetID       string
	OfficeSheetID      string

	// Optional local .xlsx catalog instead of Google Sheets
	ProductXLSX string

	// Optional Postgres order archive instead of the order sheet
	DatabaseURL string

	// Optional Telegram front end
	TelegramToken string

	// Directory with greeting.txt, details.txt, delivery_options.txt,
	// office_closed_response.txt. Built-in defaults cover missing files.
	TextsDir string
}

// Load reads the environment (and .env when present) and validates it.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:           getEnvDefault("HTTP_ADDR", ":10000"),
		CORSOrigin:         strings.TrimSpace(os.Getenv("CORS_ORIGIN")),
		AIProvider:         strings.ToLower(getEnvDefault("AI_PROVIDER", "together")),
		TogetherAPIKey:     strings.TrimSpace(os.Getenv("TOGETHER_API_KEY")),
		GeminiAPIKey:       strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		ServiceAccountJSON: os.Getenv("SERVICE_ACCOUNT_JSON"),
		ProductSheetID:     strings.TrimSpace(os.Getenv("PRODUCT_SHEET_ID")),
		OrderSheetID:       strings.TrimSpace(os.Getenv("ORDER_SHEET_ID")),
		OfficeSheetID:      strings.TrimSpace(os.Getenv("OFFICE_STATUS_SHEET_ID")),
		ProductXLSX:        strings.TrimSpace(os.Getenv("PRODUCT_XLSX")),
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		TelegramToken:      strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		TextsDir:           getEnvDefault("TEXTS_DIR", "."),
	}

	switch cfg.AIProvider {
	case "together":
		if cfg.TogetherAPIKey == "" {
			return nil, fmt.Errorf("TOGETHER_API_KEY environment variable is empty")
		}
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable is empty")
		}
	default:
		return nil, fmt.Errorf("AI_PROVIDER must be \"together\" or \"gemini\", got %q", cfg.AIProvider)
	}

	if cfg.ProductXLSX == "" {
		if cfg.ServiceAccountJSON == "" {
			return nil, fmt.Errorf("SERVICE_ACCOUNT_JSON environment variable is empty")
		}
		if cfg.ProductSheetID == "" {
			return nil, fmt.Errorf("PRODUCT_SHEET_ID environment variable is empty")
		}
	}
	// Orders need a sink: Postgres or the order sheet.
	if cfg.DatabaseURL == "" {
		if cfg.OrderSheetID == "" {
			return nil, fmt.Errorf("ORDER_SHEET_ID environment variable is empty")
		}
		if cfg.ServiceAccountJSON == "" {
			return nil, fmt.Errorf("SERVICE_ACCOUNT_JSON environment variable is empty")
		}
	}

	return cfg, nil
}

func getEnvDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}
