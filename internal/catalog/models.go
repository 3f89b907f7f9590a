package catalog

// Agent is the listing agent embedded in a record.
type Agent struct {
	Name  string `toml:"name"`
	Phone string `toml:"phone"`
	Email string `toml:"email"`
	Image string `toml:"img"`
}

// Listing is one property record.
type Listing struct {
	ID       string   `toml:"id"`
	Title    string   `toml:"title"`
	Price    int64    `toml:"price"`
	Location string   `toml:"location"`
	Beds     int      `toml:"beds"`
	Baths    int      `toml:"baths"`
	AreaM2   int      `toml:"area_m2"`
	Image    string   `toml:"img"`
	Gallery  []string `toml:"gallery"`
	Featured bool     `toml:"featured"`
	Type     string   `toml:"type"`
	Rating   *float64 `toml:"rating"`
	Views    *int     `toml:"views"`
	Agent    *Agent   `toml:"agent"`
}

// Photos returns the gallery, or the primary image when there is no gallery.
func (l Listing) Photos() []string {
	if len(l.Gallery) > 0 {
		return append([]string(nil), l.Gallery...)
	}
	if l.Image == "" {
		return nil
	}
	return []string{l.Image}
}

// PricePoint is one month of the average price trend, in millions.
type PricePoint struct {
	Month string  `toml:"month"`
	Price float64 `toml:"price"`
}

// DemandPoint is the buyer demand index for an area.
type DemandPoint struct {
	Area   string  `toml:"area"`
	Demand float64 `toml:"demand"`
}

// TypeShare is one slice of the property type distribution.
type TypeShare struct {
	Name  string  `toml:"name"`
	Value float64 `toml:"value"`
}

type Testimonial struct {
	Text   string `toml:"text"`
	Author string `toml:"author"`
}

// Brand holds the copy for the header, hero and footer.
type Brand struct {
	Name        string `toml:"name"`
	Tagline     string `toml:"tagline"`
	Email       string `toml:"email"`
	Phone       string `toml:"phone"`
	Address     string `toml:"address"`
	Hours       string `toml:"hours"`
	Copyright   string `toml:"copyright"`
	Headline    string `toml:"headline"`
	Blurb       string `toml:"blurb"`
	Description string `toml:"description"`
}

// Stats is the market overview shown on the hero. It always covers the full
// catalog.
type Stats struct {
	Count      int
	AvgPrice   int64
	TotalValue int64
	AvgBeds    int
	TotalViews int
}
