package usecase

import (
	"testing"

	"github.com/yourusername/store-assistant-bot/internal/domain/entity"
)

func matcherCatalog() []entity.Product {
	return []entity.Product{
		{Model: "iPhone 13", Storage: "128 ГБ", Color: "Синий", Availability: "Да"},
		{Model: "iPhone 13 Pro", Storage: "128 ГБ", Color: "Графитовый", Availability: "Да"},
		{Model: "iPhone 13 Pro", Storage: "256 ГБ", Color: "Серебристый", Availability: "Да"},
		{Model: "iPhone 13 Pro Max", Storage: "256 ГБ", Color: "Золотой", Availability: "Да"},
		{Model: "iPhone 14", Storage: "128 ГБ", Color: "Чёрный", Availability: "Нет"},
		{Model: "iPhone 15", Storage: "256 ГБ", Color: "Белый", Availability: "Да"},
	}
}

func TestFindMatchesExactModelFirst(t *testing.T) {
	got := FindMatches(matcherCatalog(), MatchQuery{Model: "айфон 13 про"})

	if len(got) == 0 {
		t.Fatal("no matches")
	}
	if got[0].Model != "iPhone 13 Pro" {
		t.Errorf("best match = %q, want iPhone 13 Pro", got[0].Model)
	}
	for _, p := range got {
		if !p.InStock() {
			t.Errorf("unavailable product %q in results", p.Model)
		}
	}
}

func TestFindMatchesSkipsUnavailable(t *testing.T) {
	got := FindMatches(matcherCatalog(), MatchQuery{Model: "iphone 14"})
	for _, p := range got {
		if p.Model == "iPhone 14" {
			t.Errorf("out-of-stock iPhone 14 matched: %+v", p)
		}
	}
}

func TestFindMatchesStorageBreaksTie(t *testing.T) {
	got := FindMatches(matcherCatalog(), MatchQuery{Model: "iphone 13 pro", Storage: "256"})

	if len(got) < 2 {
		t.Fatalf("matches = %d, want at least 2", len(got))
	}
	if got[0].Storage != "256 ГБ" {
		t.Errorf("best match storage = %q, want 256 ГБ", got[0].Storage)
	}
}

func TestFindMatchesStorageAloneNeverWins(t *testing.T) {
	if got := FindMatches(matcherCatalog(), MatchQuery{Storage: "128"}); len(got) != 0 {
		t.Errorf("storage-only query matched %d products, want 0", len(got))
	}
	if got := FindMatches(matcherCatalog(), MatchQuery{Color: "белый"}); len(got) != 0 {
		t.Errorf("color-only query matched %d products, want 0", len(got))
	}
}

func TestFindMatchesEmptyQuery(t *testing.T) {
	if got := FindMatches(matcherCatalog(), MatchQuery{}); len(got) != 0 {
		t.Errorf("empty query matched %d products, want 0", len(got))
	}
}

func TestSuggestSimilarSubstring(t *testing.T) {
	models := []string{"iPhone 13", "iPhone 13 Pro", "iPhone 13 Pro Max", "iPhone 15"}

	got := SuggestSimilar("айфон 13", models)

	if len(got) == 0 {
		t.Fatal("no suggestions")
	}
	if len(got) > 3 {
		t.Errorf("suggestions = %d, want at most 3", len(got))
	}
	if got[0] != "iPhone 13" {
		t.Errorf("first suggestion = %q, want iPhone 13", got[0])
	}
}

func TestSuggestSimilarSharedNumber(t *testing.T) {
	models := []string{"iPhone 15", "iPhone 13"}

	got := SuggestSimilar("galaxy 15 ultra", models)

	if len(got) != 1 || got[0] != "iPhone 15" {
		t.Errorf("suggestions = %v, want [iPhone 15]", got)
	}
}

func TestSuggestSimilarNothingClose(t *testing.T) {
	models := []string{"iPhone 13", "iPhone 15"}
	if got := SuggestSimilar("холодильник", models); len(got) != 0 {
		t.Errorf("suggestions = %v, want empty", got)
	}
}

func TestAvailableModels(t *testing.T) {
	got := AvailableModels(matcherCatalog())

	want := []string{"iPhone 13", "iPhone 13 Pro", "iPhone 13 Pro Max", "iPhone 15"}
	if len(got) != len(want) {
		t.Fatalf("models = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("models[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAvailableStoragesAndColors(t *testing.T) {
	catalog := matcherCatalog()

	storages := AvailableStorages(catalog, "iPhone 13 Pro")
	if len(storages) != 2 || storages[0] != "128 ГБ" || storages[1] != "256 ГБ" {
		t.Errorf("storages = %v, want [128 ГБ 256 ГБ]", storages)
	}

	colors := AvailableColors(catalog, "iPhone 13 Pro", "256")
	if len(colors) != 1 || colors[0] != "Серебристый" {
		t.Errorf("colors = %v, want [Серебристый]", colors)
	}
}

func TestModelExistsIgnoresAvailability(t *testing.T) {
	catalog := matcherCatalog()

	if !ModelExists(catalog, "iphone 14") {
		t.Error("out-of-stock model reported as nonexistent")
	}
	if ModelExists(catalog, "iphone 16") {
		t.Error("unknown model reported as existing")
	}
}

func TestNearestStorage(t *testing.T) {
	available := []string{"128 ГБ", "256 ГБ"}

	got, ok := NearestStorage("512", available)
	if !ok || got != "256 ГБ" {
		t.Errorf("NearestStorage(512) = %q,%v, want 256 ГБ,true", got, ok)
	}

	got, ok = NearestStorage("64", available)
	if !ok || got != "128 ГБ" {
		t.Errorf("NearestStorage(64) = %q,%v, want 128 ГБ,true", got, ok)
	}

	if _, ok := NearestStorage("много", available); ok {
		t.Error("non-numeric input produced a suggestion")
	}

	if _, ok := NearestStorage("512", nil); ok {
		t.Error("empty options produced a suggestion")
	}
}
