package zoto

import (
	"context"
	"time"

	"github.com/kailas-cloud/zoto/internal/domain/catalog"
	"github.com/kailas-cloud/zoto/internal/domain/search/result"
)

// Field names a selection field.
type Field string

// Set-valued fields, changed with Session.Toggle.
const (
	FieldTastes   Field = "tastes"
	FieldCuisines Field = "cuisines"
	FieldDietary  Field = "dietary"
)

// Single-valued fields, changed with Session.Select.
const (
	FieldMood     Field = "mood"
	FieldMealType Field = "mealType"
	FieldBudget   Field = "budget"
)

// Phase is the stage of a session's search.
type Phase string

// Search phases.
const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseLocating   Phase = "locating"
	PhaseRequesting Phase = "requesting"
	PhaseSuccess    Phase = "success"
	PhaseFailed     Phase = "failed"
)

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Locator supplies the user's current position.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context) (Coordinates, error)

// Locate calls f.
func (f LocatorFunc) Locate(ctx context.Context) (Coordinates, error) { return f(ctx) }

// Restaurant is one recommendation.
type Restaurant struct {
	Name           string
	Description    string
	Cuisine        string
	PriceRange     string
	Rating         float64
	Location       string
	Highlights     []string
	DietaryOptions []string
}

// State is a snapshot of a session's search.
// Err is set only when Phase is PhaseFailed; match it with errors.Is.
type State struct {
	Phase       Phase
	Attempt     uint64
	Restaurants []Restaurant
	Err         error
	UpdatedAt   time.Time
}

// Selection is a copy of a session's preferences.
type Selection struct {
	Mood     string
	Tastes   []string
	Cuisines []string
	Dietary  []string
	MealType string
	Budget   string
	Craving  string
}

// CatalogOption is a selectable catalog entry.
type CatalogOption = catalog.Option

// Catalog lists every selectable value.
type Catalog struct {
	Moods     []CatalogOption
	Tastes    []CatalogOption
	Cuisines  []CatalogOption
	Dietary   []CatalogOption
	MealTypes []CatalogOption
	Budgets   []string
}

// Catalogs returns the selectable values for every field.
func Catalogs() Catalog {
	levels := catalog.BudgetLevels()
	budgets := make([]string, len(levels))
	for i, b := range levels {
		budgets[i] = string(b)
	}
	return Catalog{
		Moods:     catalog.Moods(),
		Tastes:    catalog.Tastes(),
		Cuisines:  catalog.Cuisines(),
		Dietary:   catalog.Dietary(),
		MealTypes: catalog.MealTypes(),
		Budgets:   budgets,
	}
}

func restaurantsFromDomain(rs []result.Restaurant) []Restaurant {
	if rs == nil {
		return nil
	}
	out := make([]Restaurant, len(rs))
	for i, r := range rs {
		r = r.Clone()
		out[i] = Restaurant{
			Name:           r.Name,
			Description:    r.Description,
			Cuisine:        r.Cuisine,
			PriceRange:     r.PriceRange,
			Rating:         r.Rating,
			Location:       r.Location,
			Highlights:     r.Highlights,
			DietaryOptions: r.DietaryOptions,
		}
	}
	return out
}
