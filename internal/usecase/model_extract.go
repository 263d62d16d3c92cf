package usecase

import (
	"regexp"
	"strings"
)

// Free-text model mentions: "хочу айфон 13 про", "iphone13promax", "13 mini".
// Patterns are tried in order and all hits are collected, first-seen first.
// RE2's \b is ASCII-only, so the Cyrillic alternatives anchor on whitespace
// instead of word boundaries.
var modelMentionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:iphone|айфон(?:а|ом)?|phone)\s*(\d{1,2})\s*(pro\s*max|pro|plus|mini|max|про\s*макс|про|макс|мини|мин|мии|плюс)?`),
	regexp.MustCompile(`(?i)(\d{1,2})\s*(pro\s*max|pro|plus|mini|max|про\s*макс|про|макс|мини|мин|мии|плюс)`),
	regexp.MustCompile(`(?i)\b(\d{1,2})\b`),
}

var mentionVariantMap = map[string]string{
	"мин":      "mini",
	"мини":     "mini",
	"мии":      "mini",
	"про":      "pro",
	"плюс":     "plus",
	"макс":     "max",
	"про макс": "pro max",
}

// ExtractModelMentions pulls candidate model names out of raw user text,
// rendered in canonical "iPhone N Variant" form.
func ExtractModelMentions(userInput string) []string {
	var models []string
	seen := make(map[string]bool)

	for _, pattern := range modelMentionPatterns {
		for _, match := range pattern.FindAllStringSubmatch(userInput, -1) {
			number := match[1]
			variant := ""
			if len(match) > 2 {
				variant = strings.ToLower(strings.Join(strings.Fields(match[2]), " "))
			}
			if mapped, ok := mentionVariantMap[variant]; ok {
				variant = mapped
			}

			name := "iPhone " + number
			if variant != "" {
				name += " " + titleWords(variant)
			}
			if !seen[name] {
				models = append(models, name)
				seen[name] = true
			}
		}
	}

	return models
}

// titleWords upper-cases the first letter of each word ("pro max" -> "Pro Max").
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}
