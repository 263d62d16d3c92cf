package usecase

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/yourusername/store-assistant-bot/pkg/logger"
)

// Texts are the static replies the dialogue engine inserts verbatim.
// Each one can be overridden by a file in the texts directory.
type Texts struct {
	Greeting        string
	Details         string
	DeliveryOptions string
	OfficeClosed    string
}

// DefaultTexts returns the built-in replies.
func DefaultTexts() Texts {
	return Texts{
		Greeting:        "Добро пожаловать в JR Store AI Чат!",
		Details:         "Мы продаем iPhone с гарантией качества.",
		DeliveryOptions: "Выберите способ доставки:\n- Самовывоз\n- Курьерская доставка",
		OfficeClosed:    "Наш офис сейчас закрыт. Хотите оформить доставку?",
	}
}

// LoadTexts reads the optional override files, falling back to the defaults
// for anything missing.
func LoadTexts(dir string) Texts {
	def := DefaultTexts()
	return Texts{
		Greeting:        loadText(dir, "greeting.txt", def.Greeting),
		Details:         loadText(dir, "details.txt", def.Details),
		DeliveryOptions: loadText(dir, "delivery_options.txt", def.DeliveryOptions),
		OfficeClosed:    loadText(dir, "office_closed_response.txt", def.OfficeClosed),
	}
}

func loadText(dir, filename, fallback string) string {
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		if logger.InfoLogger != nil {
			logger.InfoLogger.Printf("Файл %s не найден, используется текст по умолчанию", filename)
		}
		return fallback
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return fallback
	}
	return text
}
