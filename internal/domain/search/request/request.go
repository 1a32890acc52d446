package request

import (
	"encoding/json"
	"slices"

	"github.com/kailas-cloud/zoto/internal/domain/catalog"
	"github.com/kailas-cloud/zoto/internal/domain/geo"
	"github.com/kailas-cloud/zoto/internal/domain/preference"
)

// Request is an immutable snapshot of a search taken when the search is triggered.
type Request struct {
	mood     string
	tastes   []string
	cuisines []string
	dietary  []string
	mealType string
	budget   catalog.BudgetLevel
	location geo.Coordinates
	craving  string
}

// Build snapshots the selection, coordinates and free-text preference.
// Later changes to sel do not affect the returned Request.
func Build(sel *preference.Selection, coords geo.Coordinates, freeText string) Request {
	return Request{
		mood:     sel.Mood(),
		tastes:   sel.Tastes(),
		cuisines: sel.Cuisines(),
		dietary:  sel.Dietary(),
		mealType: sel.MealType(),
		budget:   sel.Budget(),
		location: coords,
		craving:  freeText,
	}
}

// Mood returns the selected mood.
func (r Request) Mood() string { return r.mood }

// Tastes returns the selected tastes.
func (r Request) Tastes() []string { return slices.Clone(r.tastes) }

// Cuisines returns the selected cuisines.
func (r Request) Cuisines() []string { return slices.Clone(r.cuisines) }

// Dietary returns the selected dietary restrictions.
func (r Request) Dietary() []string { return slices.Clone(r.dietary) }

// MealType returns the selected meal type.
func (r Request) MealType() string { return r.mealType }

// Budget returns the budget level.
func (r Request) Budget() catalog.BudgetLevel { return r.budget }

// Location returns the acquired coordinates.
func (r Request) Location() geo.Coordinates { return r.location }

// FoodPreference returns the free-text craving.
func (r Request) FoodPreference() string { return r.craving }

// Location is the wire form of coordinates.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Wire is the JSON body sent to the recommendation service.
// Field names are the service contract.
type Wire struct {
	Mood           string   `json:"mood"`
	Tastes         []string `json:"tastes"`
	Cuisines       []string `json:"cuisines"`
	Dietary        []string `json:"dietary"`
	MealType       string   `json:"mealType"`
	Budget         string   `json:"budget"`
	Location       Location `json:"location"`
	FoodPreference string   `json:"foodPreference"`
}

// Wire returns the payload form. Empty sets are encoded as [] rather than null.
func (r Request) Wire() Wire {
	return Wire{
		Mood:     r.mood,
		Tastes:   nonNil(r.tastes),
		Cuisines: nonNil(r.cuisines),
		Dietary:  nonNil(r.dietary),
		MealType: r.mealType,
		Budget:   string(r.budget),
		Location: Location{
			Lat: r.location.Latitude,
			Lng: r.location.Longitude,
		},
		FoodPreference: r.craving,
	}
}

// MarshalJSON encodes the request in wire form.
func (r Request) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Wire())
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return slices.Clone(v)
}
