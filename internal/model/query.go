package model

// SortKey selects the comparator applied after filtering. Exactly one is
// active at a time.
type SortKey string

const (
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortNewest    SortKey = "newest"
	SortFeatured  SortKey = "featured"
)

// ParseSortKey maps a user-supplied sort value to a SortKey, falling back to
// the featured default for anything unrecognised.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPriceLow, SortPriceHigh, SortNewest, SortFeatured:
		return SortKey(s)
	default:
		return SortFeatured
	}
}

// FilterCriteria is a flat record of independently-optional constraints.
// A zero value for any field means "no constraint from this field": absence
// never excludes records. String fields use "" as absent; numeric bounds use
// nil pointers so that 0 remains a usable bound.
type FilterCriteria struct {
	Action      string   `json:"action,omitempty" form:"action"`
	Category    string   `json:"category,omitempty" form:"category"`
	Type        string   `json:"type,omitempty" form:"type"`
	Area        string   `json:"area,omitempty" form:"area"`
	Developer   string   `json:"developer,omitempty" form:"developer"`
	PriceMin    *float64 `json:"price_min,omitempty" form:"price_min"`
	PriceMax    *float64 `json:"price_max,omitempty" form:"price_max"`
	Beds        string   `json:"beds,omitempty" form:"beds"`
	Baths       string   `json:"baths,omitempty" form:"baths"`
	SqftMin     *float64 `json:"sqft_min,omitempty" form:"sqft_min"`
	SqftMax     *float64 `json:"sqft_max,omitempty" form:"sqft_max"`
	Furnished   string   `json:"furnished,omitempty" form:"furnished"`
	Parking     string   `json:"parking,omitempty" form:"parking"`
	PropertyAge string   `json:"property_age,omitempty" form:"property_age"`
	Completion  string   `json:"completion,omitempty" form:"completion"`
	HasVideo    bool     `json:"has_video,omitempty" form:"has_video"`
	Search      string   `json:"search,omitempty" form:"search"`
	Features    []string `json:"features,omitempty" form:"features"`
}

// IsZero reports whether no criterion is set at all.
func (c FilterCriteria) IsZero() bool {
	return c.Action == "" && c.Category == "" && c.Type == "" && c.Area == "" &&
		c.Developer == "" && c.PriceMin == nil && c.PriceMax == nil &&
		c.Beds == "" && c.Baths == "" && c.SqftMin == nil && c.SqftMax == nil &&
		c.Furnished == "" && c.Parking == "" && c.PropertyAge == "" &&
		c.Completion == "" && !c.HasVideo && c.Search == "" && len(c.Features) == 0
}

// ListingsResponse represents one page of browse results
type ListingsResponse struct {
	Results    []NormalizedListing `json:"results"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
	HasMore    bool                `json:"has_more"`
	Took       int64               `json:"took_ms"` // Response time in milliseconds
}
