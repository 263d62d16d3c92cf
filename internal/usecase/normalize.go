package usecase

import (
	"regexp"
	"strings"
)

// Normalization of free-text model names, storage sizes and color names
// into canonical catalog keys. Visitors write in a mix of Latin and
// Cyrillic with informal abbreviations; two raw strings are equivalent for
// matching iff their normalized keys are equal. All three functions are
// idempotent and return "" on empty input.

var (
	reModelNumber = regexp.MustCompile(`\d{1,2}`)
	reDigits      = regexp.MustCompile(`\d+`)
	reNonDigit    = regexp.MustCompile(`[^0-9]`)
)

// asciiPunct mirrors the punctuation set the catalog keys are stripped of.
const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// modelReplacements runs in order; later pairs rely on earlier ones having
// already collapsed Cyrillic spellings.
var modelReplacements = [][2]string{
	{"айфон", "iphone"},
	{"iphone", ""},
	{"apple", ""},
	{"series", ""},
	{"model", ""},
	{"gb", ""},
	{"tb", ""},
	{" ", ""},
	{"-", ""},
	{"про", "pro"},
	{"макс", "max"},
	{"плюс", "plus"},
	{"мини", "mini"},
	{"стандарт", ""},
	{"обычный", ""},
	{"базовый", ""},
	{"мии", "mini"},
	{"промакс", "promax"},
	{"промак", "promax"},
	{"плю", "plus"},
	{"min", "mini"},
	{"pro max", "promax"},
}

// variantPatterns maps a canonical variant tag to its surface spellings,
// including common misspellings with visually-confusable letters. Checked
// in this order; the base line carries no tag.
var variantPatterns = []struct {
	tag      string
	patterns []string
}{
	{"pro", []string{"pro", "про", "рго", "прo", "пpo"}},
	{"max", []string{"max", "макс", "маx", "мaкс", "мax"}},
	{"mini", []string{"mini", "мини", "минь", "миni", "мин"}},
	{"plus", []string{"plus", "плюс", "плс", "pls", "плю"}},
}

// NormalizeModel canonicalizes a model description into "<number><variant>",
// e.g. "Айфон 13 Про Макс" -> "13promax", "iPhone 12" -> "12".
func NormalizeModel(text string) string {
	if text == "" {
		return ""
	}

	model := strings.ToLower(text)
	model = strings.Map(func(r rune) rune {
		if strings.ContainsRune(asciiPunct, r) {
			return -1
		}
		return r
	}, model)

	for _, rep := range modelReplacements {
		model = strings.ReplaceAll(model, rep[0], rep[1])
	}

	number := reModelNumber.FindString(model)

	variant := ""
	for _, vp := range variantPatterns {
		for _, pattern := range vp.patterns {
			if strings.Contains(model, pattern) {
				variant = vp.tag
				break
			}
		}
		if variant != "" {
			break
		}
	}

	// "pro max" keeps a single combined tag
	switch {
	case strings.Contains(model, "promax"):
		variant = "promax"
	case strings.Contains(model, "max") && variant == "":
		variant = "max"
	case strings.Contains(model, "pro") && variant == "":
		variant = "pro"
	}

	return number + variant
}

// NormalizeStorage canonicalizes a storage size: "256gb" -> "256 ГБ",
// "1 ТБ" / "1TB" / "1024" -> "1 ТБ".
func NormalizeStorage(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	lower := strings.ToLower(text)
	digits := reNonDigit.ReplaceAllString(lower, "")
	if digits == "" {
		return ""
	}

	if digits == "1024" {
		return "1 ТБ"
	}
	if strings.Contains(lower, "tb") || strings.Contains(lower, "тб") {
		return digits + " ТБ"
	}
	return digits + " ГБ"
}

// colorSynonyms maps English marketing names and Russian spelling variants
// to the canonical Russian color. Kept as an ordered slice so the fuzzy
// fallback is deterministic.
var colorSynonyms = []struct {
	key   string
	value string
}{
	{"space gray", "серый"},
	{"spacegrey", "серый"},
	{"spacegray", "серый"},
	{"midnight", "синий"},
	{"starlight", "золотой"},
	{"gold", "золотой"},
	{"red", "красный"},
	{"blue", "синий"},
	{"black", "черный"},
	{"white", "белый"},
	{"purple", "фиолетовый"},
	{"green", "зеленый"},
	{"silver", "серебристый"},
	{"серый", "серый"},
	{"синий", "синий"},
	{"голубой", "синий"},
	{"золотой", "золотой"},
	{"красный", "красный"},
	{"черный", "черный"},
	{"белый", "белый"},
	{"фиолетовый", "фиолетовый"},
	{"зеленый", "зеленый"},
	{"серебристый", "серебристый"},
	{"розовый", "розовый"},
	{"темная ночь", "синий"},
	{"звездный свет", "золотой"},
}

// NormalizeColor canonicalizes a color name through the bilingual synonym
// table, falling back to Jaro similarity for near-misses. Unrecognized
// colors pass through lower-cased.
func NormalizeColor(text string) string {
	if text == "" {
		return ""
	}

	color := strings.ToLower(text)
	for _, syn := range colorSynonyms {
		if color == syn.key {
			return syn.value
		}
	}

	bestValue := ""
	bestScore := 0.0
	for _, syn := range colorSynonyms {
		score := jaroSimilarity(color, syn.key)
		if score > 0.85 && score > bestScore {
			bestValue = syn.value
			bestScore = score
		}
	}
	if bestValue != "" {
		return bestValue
	}
	return color
}
