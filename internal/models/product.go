package models

// Source tags for product candidates.
const (
	SourceSerpAPI = "serpapi"
	SourceRakuten = "rakuten"
)

type ProductResult struct {
	Name     string   `json:"name"`
	Brand    *string  `json:"brand"`
	Price    *float64 `json:"price"`
	URL      string   `json:"url"`
	ImageURL *string  `json:"imageUrl"`
	Source   string   `json:"source"`
	JANCode  *string  `json:"janCode,omitempty"`
}

// HasPrice reports whether the price is known. Vendors report a missing
// price as zero, so zero counts as unknown.
func (p ProductResult) HasPrice() bool {
	return p.Price != nil && *p.Price != 0
}
