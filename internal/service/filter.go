package service

import (
	"sort"
	"strconv"
	"strings"

	"estates/internal/model"
)

// Room-count filters use "5" as an open-ended top bucket: a beds=5 criterion
// admits any listing with five or more bedrooms.
const roomSentinel = 5

type predicate func(model.NormalizedListing) bool

// Apply filters listings by the conjunction of every supplied criterion, then
// sorts the survivors by the given sort key. A criterion that is absent or
// unparseable contributes no predicate at all, so an empty FilterCriteria
// returns the full set. The input slice is never mutated.
func Apply(listings []model.NormalizedListing, criteria model.FilterCriteria, key model.SortKey) []model.NormalizedListing {
	preds := buildPredicates(criteria)

	out := make([]model.NormalizedListing, 0, len(listings))
	for _, l := range listings {
		if matchesAll(l, preds) {
			out = append(out, l)
		}
	}

	sortListings(out, key)
	return out
}

func matchesAll(l model.NormalizedListing, preds []predicate) bool {
	for _, p := range preds {
		if !p(l) {
			return false
		}
	}
	return true
}

// buildPredicates translates each supplied criterion into a predicate.
// Ordering matters only for short-circuit performance; the result is a pure
// conjunction.
func buildPredicates(c model.FilterCriteria) []predicate {
	var preds []predicate

	switch strings.ToLower(c.Action) {
	case "rent":
		preds = append(preds, func(l model.NormalizedListing) bool { return l.Status == "rent" })
	case "buy", "sale":
		preds = append(preds, func(l model.NormalizedListing) bool { return l.Status == "sale" })
	}

	if c.Category != "" {
		preds = append(preds, func(l model.NormalizedListing) bool { return l.Category == c.Category })
	}

	if c.Type != "" {
		preds = append(preds, func(l model.NormalizedListing) bool { return equalTrimFold(l.Type, c.Type) })
	}

	if c.Area != "" {
		preds = append(preds, func(l model.NormalizedListing) bool { return matchesArea(c.Area, l.LocationText) })
	}

	if c.Developer != "" {
		preds = append(preds, func(l model.NormalizedListing) bool { return containsFold(l.Developer, c.Developer) })
	}

	if c.PriceMin != nil {
		preds = append(preds, func(l model.NormalizedListing) bool { return l.Price >= *c.PriceMin })
	}
	if c.PriceMax != nil {
		preds = append(preds, func(l model.NormalizedListing) bool { return l.Price <= *c.PriceMax })
	}

	if p := roomPredicate(c.Beds, func(l model.NormalizedListing) int { return l.Beds }); p != nil {
		preds = append(preds, p)
	}
	if p := roomPredicate(c.Baths, func(l model.NormalizedListing) int { return l.Baths }); p != nil {
		preds = append(preds, p)
	}

	if c.SqftMin != nil {
		preds = append(preds, func(l model.NormalizedListing) bool { return l.Sqft >= *c.SqftMin })
	}
	if c.SqftMax != nil {
		preds = append(preds, func(l model.NormalizedListing) bool { return l.Sqft <= *c.SqftMax })
	}

	switch strings.ToLower(c.Furnished) {
	case "true":
		preds = append(preds, func(l model.NormalizedListing) bool {
			return l.Furnished != nil && *l.Furnished
		})
	case "false":
		// The unfurnished bucket absorbs "unspecified".
		preds = append(preds, func(l model.NormalizedListing) bool {
			return l.Furnished == nil || !*l.Furnished
		})
	}

	if c.Parking != "" {
		preds = append(preds, func(l model.NormalizedListing) bool { return equalTrimFold(l.Parking, c.Parking) })
	}

	if c.PropertyAge != "" {
		preds = append(preds, func(l model.NormalizedListing) bool { return l.PropertyAge == c.PropertyAge })
	}

	if c.Completion != "" {
		preds = append(preds, func(l model.NormalizedListing) bool { return l.Completion == c.Completion })
	}

	if c.HasVideo {
		preds = append(preds, func(l model.NormalizedListing) bool {
			return strings.TrimSpace(l.VideoURL) != ""
		})
	}

	if len(c.Features) > 0 {
		wanted := c.Features
		preds = append(preds, func(l model.NormalizedListing) bool {
			for _, want := range wanted {
				if !hasFeature(l.Features, want) {
					return false
				}
			}
			return true
		})
	}

	if c.Search != "" {
		preds = append(preds, func(l model.NormalizedListing) bool {
			for _, field := range []string{l.Title, l.LocationText, l.Description, l.Developer, l.AgentName} {
				if containsFold(field, c.Search) {
					return true
				}
			}
			return false
		})
	}

	return preds
}

// roomPredicate builds the beds/baths predicate. An unparseable value is
// treated as no constraint. The sentinel count matches "that many or more".
func roomPredicate(raw string, get func(model.NormalizedListing) int) predicate {
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	if n == roomSentinel {
		return func(l model.NormalizedListing) bool { return get(l) >= roomSentinel }
	}
	return func(l model.NormalizedListing) bool { return get(l) == n }
}

func hasFeature(features []string, want string) bool {
	for _, f := range features {
		if equalTrimFold(f, want) {
			return true
		}
	}
	return false
}

// sortListings orders the filtered set in place. The zero ListedAt sorts last
// under the descending newest comparator, so dateless listings never
// masquerade as recent.
func sortListings(listings []model.NormalizedListing, key model.SortKey) {
	switch key {
	case model.SortPriceLow:
		sort.Slice(listings, func(i, j int) bool {
			return listings[i].Price < listings[j].Price
		})
	case model.SortPriceHigh:
		sort.Slice(listings, func(i, j int) bool {
			return listings[i].Price > listings[j].Price
		})
	case model.SortNewest:
		sort.Slice(listings, func(i, j int) bool {
			return listings[i].ListedAt.After(listings[j].ListedAt)
		})
	default: // featured
		sort.Slice(listings, func(i, j int) bool {
			if listings[i].Featured != listings[j].Featured {
				return listings[i].Featured
			}
			return listings[i].ListedAt.After(listings[j].ListedAt)
		})
	}
}
