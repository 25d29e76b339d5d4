package service

import (
	"strconv"
	"strings"
	"time"

	"estates/internal/model"
)

// Fallback values used when a document omits a field entirely.
const (
	FallbackLocation   = "Dubai"
	FallbackImage      = "https://placehold.co/800x600?text=Property"
	FallbackStatus     = "sale"
	FallbackType       = "apartment"
	FallbackCompletion = "ready"
)

// Normalize resolves a heterogeneous listing document into the canonical
// view-model shape. It is a pure function of its input: no I/O, no side
// effects, and it never panics — every field access is defaulted.
func Normalize(doc model.ListingDocument) model.NormalizedListing {
	d := doc.Doc

	location := firstNonEmpty(
		docString(d, "area"),
		docString(d, "location"),
		docString(d, "address"),
		docString(d, "city"),
		docString(d, "neighborhood"),
		docString(d, "district"),
	)
	if location == "" {
		location = FallbackLocation
	}

	status := docString(d, "status")
	if status == "" {
		status = FallbackStatus
	}

	listingType := firstNonEmpty(docString(d, "type"), docString(d, "subtype"))
	if listingType == "" {
		listingType = FallbackType
	}

	completion := firstNonEmpty(docString(d, "completion"), docString(d, "property_status"))
	if completion == "" {
		completion = FallbackCompletion
	}

	return model.NormalizedListing{
		ID:           doc.ID,
		Title:        docString(d, "title"),
		Description:  docString(d, "description"),
		Price:        docFloat(d, "price"),
		Status:       status,
		Category:     docString(d, "category"),
		Type:         listingType,
		Location:     location,
		LocationText: locationText(d),
		Beds:         docInt(d, "beds"),
		Baths:        docInt(d, "baths"),
		Sqft:         docFloat(d, "sqft"),
		Furnished:    docTriState(d, "furnished"),
		Parking:      docString(d, "parking"),
		PropertyAge:  docString(d, "property_age"),
		Completion:   completion,
		Developer:    docString(d, "developer"),
		AgentName:    firstNonEmpty(docString(d, "agent_name"), docString(d, "agent")),
		Features:     docStringList(d, "features"),
		Image:        listingImage(d),
		VideoURL:     docString(d, "video_url"),
		Featured:     docBool(d, "featured"),
		Source:       doc.Source,
		ListedAt:     effectiveTimestamp(doc),
	}
}

// locationText concatenates every present location field into one searchable
// blob; the area filter matches against this rather than the single display
// location so that terms scattered across fields still hit.
func locationText(d model.JSONMap) string {
	parts := make([]string, 0, 6)
	for _, key := range []string{"area", "location", "address", "city", "neighborhood", "district"} {
		if v := docString(d, key); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return FallbackLocation
	}
	return strings.Join(parts, " ")
}

// listingImage resolves the cover image: first entry of the images array,
// then the single image fields, then the placeholder.
func listingImage(d model.JSONMap) string {
	if images := docStringList(d, "images"); len(images) > 0 && images[0] != "" {
		return images[0]
	}
	if img := firstNonEmpty(docString(d, "image"), docString(d, "image_url")); img != "" {
		return img
	}
	return FallbackImage
}

// effectiveTimestamp picks submitted_at, then the document's created_at, then
// the row timestamp. Listings with no usable date get the zero time, which
// sorts last under the descending "newest" comparator.
func effectiveTimestamp(doc model.ListingDocument) time.Time {
	if t, ok := docTime(doc.Doc, "submitted_at"); ok {
		return t
	}
	if t, ok := docTime(doc.Doc, "created_at"); ok {
		return t
	}
	return doc.CreatedAt
}

// Tolerant field accessors. Documents arrive from multiple writers with no
// schema enforcement, so every accessor accepts the shapes seen in the wild
// and falls back to a zero value rather than failing.

func docString(d model.JSONMap, key string) string {
	switch v := d[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// docFloat reads a numeric field that may be stored as a number or a numeric
// string ("1500000", "1,500,000"). Parse failure and absence both yield 0.
func docFloat(d model.JSONMap, key string) float64 {
	switch v := d[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func docInt(d model.JSONMap, key string) int {
	return int(docFloat(d, key))
}

func docBool(d model.JSONMap, key string) bool {
	switch v := d[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return false
	}
}

// docTriState preserves the true/false/absent distinction for furnished-style
// fields. Absent or unrecognised values map to nil, never to false.
func docTriState(d model.JSONMap, key string) *bool {
	switch v := d[key].(type) {
	case bool:
		b := v
		return &b
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes":
			b := true
			return &b
		case "false", "no":
			b := false
			return &b
		}
		return nil
	default:
		return nil
	}
}

// docStringList reads a field that may be a JSON array or a comma-separated
// string; string form is split on commas with each segment trimmed.
func docStringList(d model.JSONMap, key string) []string {
	switch v := d[key].(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(v))
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if strings.TrimSpace(v) == "" {
			return []string{}
		}
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return []string{}
	}
}

func docTime(d model.JSONMap, key string) (time.Time, bool) {
	switch v := d[key].(type) {
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	case float64:
		// Provider timestamps arrive as epoch seconds or milliseconds.
		sec := int64(v)
		if sec > 1e12 {
			sec /= 1000
		}
		if sec <= 0 {
			return time.Time{}, false
		}
		return time.Unix(sec, 0).UTC(), true
	default:
		return time.Time{}, false
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
