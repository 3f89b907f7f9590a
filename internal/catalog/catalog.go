package catalog

import (
	_ "embed"
	"fmt"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed catalog.toml
var embedded []byte

// AllLocations is the location option that disables location filtering.
const AllLocations = "All"

// document is the top-level TOML structure.
type document struct {
	Brand            Brand         `toml:"brand"`
	Listings         []Listing     `toml:"listings"`
	PriceTrend       []PricePoint  `toml:"price_trend"`
	Demand           []DemandPoint `toml:"demand"`
	TypeDistribution []TypeShare   `toml:"type_distribution"`
	Testimonials     []Testimonial `toml:"testimonials"`
}

// Catalog is the read-only data set behind the page. Accessors hand out
// copies so callers cannot mutate it after Load.
type Catalog struct {
	doc  document
	byID map[string]int
}

// Load decodes the compiled-in catalog.
func Load() (*Catalog, error) {
	return Parse(embedded)
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c := &Catalog{doc: doc, byID: make(map[string]int, len(doc.Listings))}
	for i, l := range doc.Listings {
		if strings.TrimSpace(l.ID) == "" {
			return nil, fmt.Errorf("listing[%d]: id is required", i)
		}
		if _, dup := c.byID[l.ID]; dup {
			return nil, fmt.Errorf("listing[%d]: duplicate id %q", i, l.ID)
		}
		if l.Price < 0 {
			return nil, fmt.Errorf("listing %s: negative price", l.ID)
		}
		if l.Beds < 0 || l.Baths < 0 || l.AreaM2 < 0 {
			return nil, fmt.Errorf("listing %s: negative room or area count", l.ID)
		}
		if l.Rating != nil && (*l.Rating < 0 || *l.Rating > 5) {
			return nil, fmt.Errorf("listing %s: rating %.1f out of range 0-5", l.ID, *l.Rating)
		}
		c.byID[l.ID] = i
	}
	return c, nil
}

func (c *Catalog) Brand() Brand { return c.doc.Brand }

// Listings returns every record in catalog order.
func (c *Catalog) Listings() []Listing {
	out := make([]Listing, len(c.doc.Listings))
	for i, l := range c.doc.Listings {
		out[i] = cloneListing(l)
	}
	return out
}

func (c *Catalog) ByID(id string) (Listing, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Listing{}, false
	}
	return cloneListing(c.doc.Listings[i]), true
}

func (c *Catalog) Featured() []Listing {
	var out []Listing
	for _, l := range c.doc.Listings {
		if l.Featured {
			out = append(out, cloneListing(l))
		}
	}
	return out
}

// Locations returns AllLocations followed by each distinct location in the
// order it first appears.
func (c *Catalog) Locations() []string {
	seen := map[string]struct{}{}
	out := []string{AllLocations}
	for _, l := range c.doc.Listings {
		if _, ok := seen[l.Location]; ok {
			continue
		}
		seen[l.Location] = struct{}{}
		out = append(out, l.Location)
	}
	return out
}

// Types returns the distinct category tags in catalog order.
func (c *Catalog) Types() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, l := range c.doc.Listings {
		if l.Type == "" {
			continue
		}
		if _, ok := seen[l.Type]; ok {
			continue
		}
		seen[l.Type] = struct{}{}
		out = append(out, l.Type)
	}
	return out
}

// Agents returns each agent once, keyed by name, in catalog order.
func (c *Catalog) Agents() []Agent {
	seen := map[string]struct{}{}
	var out []Agent
	for _, l := range c.doc.Listings {
		if l.Agent == nil {
			continue
		}
		if _, ok := seen[l.Agent.Name]; ok {
			continue
		}
		seen[l.Agent.Name] = struct{}{}
		out = append(out, *l.Agent)
	}
	return out
}

func (c *Catalog) PriceTrend() []PricePoint {
	return append([]PricePoint(nil), c.doc.PriceTrend...)
}

func (c *Catalog) Demand() []DemandPoint {
	return append([]DemandPoint(nil), c.doc.Demand...)
}

func (c *Catalog) TypeDistribution() []TypeShare {
	return append([]TypeShare(nil), c.doc.TypeDistribution...)
}

func (c *Catalog) Testimonials() []Testimonial {
	return append([]Testimonial(nil), c.doc.Testimonials...)
}

// Stats aggregates the whole catalog. Averages are rounded half away from zero.
func (c *Catalog) Stats() Stats {
	s := Stats{Count: len(c.doc.Listings)}
	if s.Count == 0 {
		return s
	}
	beds := 0
	for _, l := range c.doc.Listings {
		s.TotalValue += l.Price
		beds += l.Beds
		if l.Views != nil {
			s.TotalViews += *l.Views
		}
	}
	s.AvgPrice = int64(math.Round(float64(s.TotalValue) / float64(s.Count)))
	s.AvgBeds = int(math.Round(float64(beds) / float64(s.Count)))
	return s
}

func cloneListing(l Listing) Listing {
	out := l
	if l.Gallery != nil {
		out.Gallery = append([]string(nil), l.Gallery...)
	}
	if l.Rating != nil {
		r := *l.Rating
		out.Rating = &r
	}
	if l.Views != nil {
		v := *l.Views
		out.Views = &v
	}
	if l.Agent != nil {
		a := *l.Agent
		out.Agent = &a
	}
	return out
}
