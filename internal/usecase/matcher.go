package usecase

import (
	"sort"
	"strconv"
	"strings"

	"github.com/yourusername/store-assistant-bot/internal/domain/constants"
	"github.com/yourusername/store-assistant-bot/internal/domain/entity"
)

// MatchQuery is a partial, noisy product description. Empty fields are not
// scored.
type MatchQuery struct {
	Model   string
	Storage string
	Color   string
}

type matchCandidate struct {
	product entity.Product
	score   int
}

// FindMatches scores every available catalog entry against the query and
// returns them best-first. Sorting is stable, so ties keep catalog order.
// A candidate needs at least one supplied attribute and a summed score of
// MinMatchScore - a lone storage or color coincidence never wins.
func FindMatches(catalog []entity.Product, query MatchQuery) []entity.Product {
	var candidates []matchCandidate

	for _, product := range catalog {
		if !product.InStock() {
			continue
		}

		score := 0

		if inputNorm := NormalizeModel(query.Model); inputNorm != "" {
			productNorm := NormalizeModel(product.Model)

			switch {
			case inputNorm == productNorm:
				score += 100
			case strings.Contains(productNorm, inputNorm) || strings.Contains(inputNorm, productNorm):
				score += 75
			default:
				inputNums := digitSet(inputNorm)
				productNums := digitSet(productNorm)
				if len(inputNums) > 0 && isSubset(inputNums, productNums) {
					score += 50
				} else if len(inputNums) > 0 && len(productNums) > 0 && setsEqual(inputNums, productNums) {
					score += 40
				}
			}
		}

		if query.Storage != "" && NormalizeStorage(query.Storage) == NormalizeStorage(product.Storage) {
			score += 20
		}

		if query.Color != "" && NormalizeColor(query.Color) == NormalizeColor(product.Color) {
			score += 10
		}

		if (query.Model != "" || query.Storage != "" || query.Color != "") && score >= constants.MinMatchScore {
			candidates = append(candidates, matchCandidate{product: product, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	results := make([]entity.Product, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, c.product)
	}
	return results
}

// SuggestSimilar builds a "did you mean" list of up to MaxSuggestions model
// names for a query that matched nothing. The stages run strictly in order
// and the first stage with any result wins:
//  1. substring containment between normalized keys,
//  2. shared numeric token between raw query and raw model name,
//  3. variant-keyword agreement (every variant in the candidate's key must
//     have some spelling of it present in the query),
//  4. normalized-key Jaro similarity above FuzzySimilarity, best first,
//  5. close-string match against raw model names.
func SuggestSimilar(userInput string, availableModels []string) []string {
	inputNorm := NormalizeModel(userInput)
	var suggestions []string
	seen := make(map[string]bool)

	add := func(model string) {
		if !seen[model] {
			suggestions = append(suggestions, model)
			seen[model] = true
		}
	}

	// A query with no model content normalizes to "", which every key
	// contains. Such input can only be rescued by the close-string stage.
	if inputNorm != "" {
		for _, model := range availableModels {
			normModel := NormalizeModel(model)
			if strings.Contains(normModel, inputNorm) || strings.Contains(inputNorm, normModel) {
				add(model)
			}
		}
	}

	if len(suggestions) == 0 {
		numbers := reDigits.FindAllString(userInput, -1)
		if len(numbers) > 0 {
			for _, model := range availableModels {
				modelNumbers := reDigits.FindAllString(model, -1)
				for _, num := range numbers {
					if containsString(modelNumbers, num) {
						add(model)
						break
					}
				}
			}
		}
	}

	if len(suggestions) == 0 && inputNorm != "" {
		for _, model := range availableModels {
			normModel := NormalizeModel(model)
			match := true
			for _, vp := range variantPatterns {
				if !strings.Contains(normModel, vp.tag) {
					continue
				}
				found := false
				for _, pattern := range vp.patterns {
					if strings.Contains(inputNorm, pattern) {
						found = true
						break
					}
				}
				if !found {
					match = false
					break
				}
			}
			if match {
				add(model)
			}
		}
	}

	if len(suggestions) == 0 && inputNorm != "" {
		type scored struct {
			model      string
			similarity float64
		}
		var ranked []scored
		for _, model := range availableModels {
			similarity := jaroSimilarity(inputNorm, NormalizeModel(model))
			if similarity > constants.FuzzySimilarity {
				ranked = append(ranked, scored{model, similarity})
			}
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].similarity > ranked[j].similarity
		})
		for _, r := range ranked {
			add(r.model)
		}
	}

	if len(suggestions) == 0 {
		for _, model := range availableModels {
			if editSimilarity(userInput, model) >= constants.CloseMatchCutoff {
				add(model)
			}
		}
	}

	if len(suggestions) > constants.MaxSuggestions {
		suggestions = suggestions[:constants.MaxSuggestions]
	}
	return suggestions
}

// AvailableModels returns in-stock model names, deduplicated, in catalog
// order.
func AvailableModels(catalog []entity.Product) []string {
	var models []string
	seen := make(map[string]bool)
	for _, p := range catalog {
		if p.InStock() && !seen[p.Model] {
			models = append(models, p.Model)
			seen[p.Model] = true
		}
	}
	return models
}

// AvailableStorages returns the in-stock storage options for a model.
func AvailableStorages(catalog []entity.Product, model string) []string {
	modelKey := NormalizeModel(model)
	var storages []string
	seen := make(map[string]bool)
	for _, p := range catalog {
		if p.InStock() && NormalizeModel(p.Model) == modelKey && !seen[p.Storage] {
			storages = append(storages, p.Storage)
			seen[p.Storage] = true
		}
	}
	return storages
}

// AvailableColors returns the in-stock color options for a model+storage.
func AvailableColors(catalog []entity.Product, model, storage string) []string {
	modelKey := NormalizeModel(model)
	storageKey := NormalizeStorage(storage)
	var colors []string
	seen := make(map[string]bool)
	for _, p := range catalog {
		if p.InStock() && NormalizeModel(p.Model) == modelKey &&
			NormalizeStorage(p.Storage) == storageKey && !seen[p.Color] {
			colors = append(colors, p.Color)
			seen[p.Color] = true
		}
	}
	return colors
}

// ModelExists reports whether any catalog row (in stock or not) carries the
// normalized model key.
func ModelExists(catalog []entity.Product, model string) bool {
	key := NormalizeModel(model)
	for _, p := range catalog {
		if NormalizeModel(p.Model) == key {
			return true
		}
	}
	return false
}

// NearestStorage picks the available storage numerically closest to the
// user's input. ok is false when the input has no numeric reading or no
// options exist.
func NearestStorage(input string, available []string) (string, bool) {
	inputDigits := reNonDigit.ReplaceAllString(NormalizeStorage(input), "")
	inputNum, err := strconv.Atoi(inputDigits)
	if err != nil {
		return "", false
	}

	best := ""
	bestDiff := -1
	for _, storage := range available {
		digits := reNonDigit.ReplaceAllString(storage, "")
		num, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		diff := num - inputNum
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best = NormalizeStorage(storage)
			bestDiff = diff
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

func digitSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, d := range reDigits.FindAllString(s, -1) {
		set[d] = true
	}
	return set
}

func isSubset(sub, super map[string]bool) bool {
	for k := range sub {
		if !super[k] {
			return false
		}
	}
	return true
}

func setsEqual(a, b map[string]bool) bool {
	return len(a) == len(b) && isSubset(a, b)
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
