package result

import (
	"encoding/json"
	"slices"
)

// Restaurant is a single recommendation returned by the service.
type Restaurant struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Cuisine        string   `json:"cuisine"`
	PriceRange     string   `json:"price_range"`
	Rating         float64  `json:"rating"` // 0..5
	Location       string   `json:"location"`
	Highlights     []string `json:"highlights"`
	DietaryOptions []string `json:"dietary_options"`
}

// UnmarshalJSON decodes a restaurant. Missing or null highlights and
// dietary_options become empty slices.
func (r *Restaurant) UnmarshalJSON(data []byte) error {
	type plain Restaurant
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err //nolint:wrapcheck // decoding error is reported by the caller
	}
	if p.Highlights == nil {
		p.Highlights = []string{}
	}
	if p.DietaryOptions == nil {
		p.DietaryOptions = []string{}
	}
	*r = Restaurant(p)
	return nil
}

// Clone returns a deep copy.
func (r Restaurant) Clone() Restaurant {
	r.Highlights = slices.Clone(r.Highlights)
	r.DietaryOptions = slices.Clone(r.DietaryOptions)
	return r
}

// CloneAll deep-copies a result set, preserving order.
func CloneAll(rs []Restaurant) []Restaurant {
	if rs == nil {
		return nil
	}
	out := make([]Restaurant, len(rs))
	for i, r := range rs {
		out[i] = r.Clone()
	}
	return out
}

// Response is the success body of the recommendation service.
type Response struct {
	Restaurants []Restaurant `json:"restaurants"`
}

// ErrorResponse is the error body of the recommendation service.
type ErrorResponse struct {
	Error string `json:"error"`
}
