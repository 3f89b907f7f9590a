// Package filter holds the listing filter state and its predicate. The
// catalog is tiny, so every change rescans it in full.
package filter

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/jask/eliterealty/internal/catalog"
)

// AnyBeds is the bed option that disables the bedroom threshold.
const AnyBeds = "Any"

// MaxBedOption is the largest "+N" option offered.
const MaxBedOption = 6

// State is the page-owned filter. The zero value matches every listing.
type State struct {
	Location string // "" or catalog.AllLocations matches any location
	MinBeds  int    // 0 means any
	MinPrice *int64
	MaxPrice *int64
	Query    string
}

// Cleared reports whether no constraint is set.
func (s State) Cleared() bool {
	return s.locationAny() && s.MinBeds <= 0 && s.MinPrice == nil && s.MaxPrice == nil && strings.TrimSpace(s.Query) == ""
}

func (s State) locationAny() bool {
	return s.Location == "" || s.Location == catalog.AllLocations
}

// Match reports whether l passes every active constraint.
func (s State) Match(l catalog.Listing) bool {
	if !s.locationAny() && l.Location != s.Location {
		return false
	}
	if s.Query != "" {
		hay := strings.ToLower(l.Title + " " + l.Location + " " + l.Type)
		if !strings.Contains(hay, strings.ToLower(s.Query)) {
			return false
		}
	}
	if s.MinPrice != nil && l.Price < *s.MinPrice {
		return false
	}
	if s.MaxPrice != nil && l.Price > *s.MaxPrice {
		return false
	}
	if s.MinBeds > 0 && l.Beds < s.MinBeds {
		return false
	}
	return true
}

// Apply returns the listings that match, in input order.
func (s State) Apply(listings []catalog.Listing) []catalog.Listing {
	out := make([]catalog.Listing, 0, len(listings))
	for _, l := range listings {
		if s.Match(l) {
			out = append(out, l)
		}
	}
	return out
}

// BedOptions returns the dropdown labels: Any, +1 ... +6.
func BedOptions() []string {
	out := []string{AnyBeds}
	for i := 1; i <= MaxBedOption; i++ {
		out = append(out, BedsLabel(i))
	}
	return out
}

// BedsLabel is the inverse of ParseBeds.
func BedsLabel(n int) string {
	if n <= 0 {
		return AnyBeds
	}
	return "+" + strconv.Itoa(n)
}

// ParseBeds maps a bed option label to a threshold; anything that is not a
// "+N" label means any.
func ParseBeds(label string) int {
	if !strings.HasPrefix(label, "+") {
		return 0
	}
	n, err := strconv.Atoi(label[1:])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParsePrice reads a price bound typed by the user. Grouping commas, spaces,
// underscores and a leading currency symbol are ignored. Blank input is nil.
func ParsePrice(text string) (*int64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == ',' || r == '_' || unicode.IsSpace(r):
			return -1
		case unicode.Is(unicode.Sc, r):
			return -1
		}
		return r
	}, text)
	if cleaned == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("price %q: not a whole number", strings.TrimSpace(text))
	}
	if n < 0 {
		return nil, fmt.Errorf("price %q: must not be negative", strings.TrimSpace(text))
	}
	return &n, nil
}
