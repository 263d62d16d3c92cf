package entity

import "strings"

// Product is one catalog row from the product sheet.
// Storage and Color are kept exactly as the sheet has them; matching code
// compares normalized keys, never the raw values.
type Product struct {
	Model        string
	Storage      string
	Color        string
	Availability string
}

// affirmative vocabulary for the availability column
var availableTokens = map[string]bool{
	"да":         true,
	"в наличии":  true,
	"yes":        true,
	"available":  true,
	"есть":       true,
}

// InStock reports whether the availability flag normalizes to "in stock".
// Unrecognized values count as unavailable.
func (p Product) InStock() bool {
	return availableTokens[strings.ToLower(strings.TrimSpace(p.Availability))]
}
