// Package favicon resolves and caches site icons for organizations.
//
// Resolution runs an ordered chain of discovery strategies — cached
// artifact, HTML link discovery, well-known paths, remote icon service —
// stopping at the first one that persists a usable artifact. Every failure
// along the way is recoverable; an exhausted chain is a legitimate "no
// icon" outcome, not an error.
package favicon

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Candidate is one icon link discovered in a page.
type Candidate struct {
	URL         string // absolute URL, resolved against the page base
	RelPriority int    // touch icons rank above generic icons
	SizeScore   int    // declared pixel width, or a nominal value
}

const (
	relPriorityIcon  = 1
	relPriorityTouch = 2

	// Icons that declare no size (or sizes="any") are scored at a moderate
	// fixed width so they outrank tiny explicit sizes but lose to large ones.
	sizeScoreUndeclared = 48
)

// scoreRel maps a link rel attribute to a priority. The second return is
// false when the rel does not describe an icon at all.
func scoreRel(rel string) (int, bool) {
	rel = strings.ToLower(rel)
	if !strings.Contains(rel, "icon") {
		return 0, false
	}
	if strings.Contains(rel, "apple-touch-icon") {
		return relPriorityTouch, true
	}
	return relPriorityIcon, true
}

// scoreSizes reads a sizes attribute ("16x16", "32x32 64x64", "any") and
// returns the largest declared width. An absent or "any" attribute gets the
// nominal score; an unparsable one scores zero.
func scoreSizes(sizes string) int {
	sizes = strings.ToLower(strings.TrimSpace(sizes))
	if sizes == "" || sizes == "any" {
		return sizeScoreUndeclared
	}
	score := 0
	for _, part := range strings.Fields(sizes) {
		w, _, ok := strings.Cut(part, "x")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(w); err == nil && n > score {
			score = n
		}
	}
	return score
}

// resolveHref resolves href against base per standard relative-URL rules.
func resolveHref(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(u).String(), true
}

// SortCandidates orders candidates best-first: higher rel priority, then
// larger size score. Ties keep their encounter order.
func SortCandidates(cs []Candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].RelPriority != cs[j].RelPriority {
			return cs[i].RelPriority > cs[j].RelPriority
		}
		return cs[i].SizeScore > cs[j].SizeScore
	})
}
