// Package model defines the records the site builder works with.
package model

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Organization is one row of the giving roster.
type Organization struct {
	Name             string // Organization name (required)
	Website          string // Homepage URL, possibly scheme-less, possibly empty
	Amount           string // Grant amount as written in the CSV
	Reason           string // Category key (e.g., "education", "health")
	Class            string // Giving scope: "Local", "National", or "Global"
	Why              string // Personal note about the grant
	EIN              string
	CharityNavigator string // Charity Navigator profile URL
	GuideStar        string // GuideStar profile URL
	Summary          string // One-line description
}

// deaccent strips combining marks after NFD decomposition, so that
// "Médecins" folds to "Medecins" before slugging.
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify converts an organization name into a filesystem-safe identifier:
// lowercase, accents folded to ASCII, every run of non-alphanumeric
// characters collapsed to a single hyphen, leading/trailing hyphens trimmed.
//
// Distinct names can normalize to the same slug ("Food & Water" and
// "Food Water" both become "food-water"); callers accept the collision.
func Slugify(name string) string {
	if folded, _, err := transform.String(deaccent, name); err == nil {
		name = folded
	}
	name = strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(name))
	pending := false
	for _, r := range name {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pending = true
			continue
		}
		if pending && b.Len() > 0 {
			b.WriteByte('-')
		}
		pending = false
		b.WriteRune(r)
	}
	return b.String()
}
