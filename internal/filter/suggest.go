package filter

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/eliterealty/internal/catalog"
)

// Candidates collects the words a query can be corrected towards: locations,
// category tags and title words of at least three letters.
func Candidates(listings []catalog.Listing) []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(s string) {
		key := strings.ToLower(strings.TrimSpace(s))
		if len(key) < 3 {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(s))
	}
	for _, l := range listings {
		add(l.Location)
		add(l.Type)
		for _, w := range strings.FieldsFunc(l.Title, func(r rune) bool {
			return r == ' ' || r == '-' || r == '—' || r == ','
		}) {
			add(w)
		}
	}
	return out
}

// Suggest returns the candidate closest to query by edit distance, if it is
// close enough to be a plausible typo. Exact matches are not suggestions.
func Suggest(query string, candidates []string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}
	limit := max(2, len([]rune(q))/3)
	best, bestDist := "", limit+1
	for _, c := range candidates {
		lc := strings.ToLower(c)
		if lc == q {
			return "", false
		}
		d := levenshtein.ComputeDistance(q, lc)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
