package usecase

import "testing"

func TestNormalizeModel(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"iPhone 13 Pro", "13pro"},
		{"айфон 13 про", "13pro"},
		{"Айфон 13 Про Макс", "13promax"},
		{"iphone13promax", "13promax"},
		{"iPhone 13 Pro Max", "13promax"},
		{"айфон 13 промакс", "13promax"},
		{"13 мии", "13mini"},
		{"iphone 13 min", "13mini"},
		{"айфон 14 плю", "14plus"},
		{"Apple iPhone 12", "12"},
		{"iphone 15 стандарт", "15"},
		{"айфон 15 обычный", "15"},
		{"iPhone-14", "14"},
		{"iPhone 14 Plus 256GB", "14plus"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeModel(tc.input); got != tc.want {
			t.Errorf("NormalizeModel(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeModelIdempotent(t *testing.T) {
	inputs := []string{"iPhone 13 Pro Max", "айфон 12 мини", "15 плюс", "iphone 11"}
	for _, input := range inputs {
		once := NormalizeModel(input)
		if twice := NormalizeModel(once); twice != once {
			t.Errorf("NormalizeModel(%q): second pass %q != first pass %q", input, twice, once)
		}
	}
}

func TestNormalizeStorage(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"128", "128 ГБ"},
		{"128gb", "128 ГБ"},
		{"128 GB", "128 ГБ"},
		{"128 ГБ", "128 ГБ"},
		{"1024", "1 ТБ"},
		{"1 ТБ", "1 ТБ"},
		{"1TB", "1 ТБ"},
		{"1tb", "1 ТБ"},
		{"", ""},
		{"много", ""},
	}
	for _, tc := range cases {
		if got := NormalizeStorage(tc.input); got != tc.want {
			t.Errorf("NormalizeStorage(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeStorageEquivalence(t *testing.T) {
	// The three spellings of a terabyte collapse to one key.
	a := NormalizeStorage("1024")
	b := NormalizeStorage("1TB")
	c := NormalizeStorage("1 ТБ")
	if a != b || b != c {
		t.Errorf("terabyte spellings diverge: %q, %q, %q", a, b, c)
	}
}

func TestNormalizeColor(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Space Gray", "серый"},
		{"gold", "золотой"},
		{"midnight", "синий"},
		{"темная ночь", "синий"},
		{"Черный", "черный"},
		{"чёрный", "черный"}, // ё close-match
		{"серы", "серый"},    // typo close-match
		{"графитовый", "графитовый"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeColor(tc.input); got != tc.want {
			t.Errorf("NormalizeColor(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestExtractModelMentions(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"хочу заказать iphone 13 pro", "iPhone 13 Pro"},
		{"хочу айфон 13 про макс", "iPhone 13 Pro Max"},
		{"iphone13", "iPhone 13"},
		{"интересует 14 плюс", "iPhone 14 Plus"},
	}
	for _, tc := range cases {
		got := ExtractModelMentions(tc.input)
		if len(got) == 0 || got[0] != tc.want {
			t.Errorf("ExtractModelMentions(%q) = %v, want first %q", tc.input, got, tc.want)
		}
	}

	if got := ExtractModelMentions("привет, как дела?"); len(got) != 0 {
		t.Errorf("ExtractModelMentions(no models) = %v, want empty", got)
	}
}
