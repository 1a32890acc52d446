// Package preference holds the user's mutable preference selection for one search session.
package preference

import (
	"slices"

	"github.com/kailas-cloud/zoto/internal/domain/catalog"
)

// SetField names a multi-valued selection field.
type SetField string

// Set-valued fields.
const (
	FieldTastes   SetField = "tastes"
	FieldCuisines SetField = "cuisines"
	FieldDietary  SetField = "dietary"
)

// SingleField names a single-valued selection field.
type SingleField string

// Single-valued fields.
const (
	FieldMood     SingleField = "mood"
	FieldMealType SingleField = "mealType"
	FieldBudget   SingleField = "budget"
)

// Selection is the user's current preference choices.
// Values are trusted: callers source them from the catalogs.
// Not safe for concurrent use.
type Selection struct {
	mood     string
	tastes   []string
	cuisines []string
	dietary  []string
	mealType string
	budget   catalog.BudgetLevel
	craving  string
}

// New returns an empty selection with the default budget.
func New() *Selection {
	return &Selection{budget: catalog.DefaultBudget}
}

// Toggle adds value to the set field if absent, removes it if present.
// Unknown fields are ignored.
func (s *Selection) Toggle(field SetField, value string) {
	set := s.setFor(field)
	if set == nil {
		return
	}
	if i := slices.Index(*set, value); i >= 0 {
		*set = slices.Delete(*set, i, i+1)
		return
	}
	*set = append(*set, value)
}

// Select replaces a single-valued field. An empty value unsets mood and meal type;
// budget is never left unset.
func (s *Selection) Select(field SingleField, value string) {
	switch field {
	case FieldMood:
		s.mood = value
	case FieldMealType:
		s.mealType = value
	case FieldBudget:
		if value == "" {
			s.budget = catalog.DefaultBudget
			return
		}
		s.budget = catalog.BudgetLevel(value)
	}
}

// SetCraving sets the free-text food preference.
func (s *Selection) SetCraving(text string) { s.craving = text }

// Has reports whether value is in the set field.
func (s *Selection) Has(field SetField, value string) bool {
	set := s.setFor(field)
	return set != nil && slices.Contains(*set, value)
}

// Mood returns the selected mood ("" when unset).
func (s *Selection) Mood() string { return s.mood }

// Tastes returns the selected tastes in selection order.
func (s *Selection) Tastes() []string { return slices.Clone(s.tastes) }

// Cuisines returns the selected cuisines in selection order.
func (s *Selection) Cuisines() []string { return slices.Clone(s.cuisines) }

// Dietary returns the selected dietary restrictions in selection order.
func (s *Selection) Dietary() []string { return slices.Clone(s.dietary) }

// MealType returns the selected meal type ("" when unset).
func (s *Selection) MealType() string { return s.mealType }

// Budget returns the selected budget level.
func (s *Selection) Budget() catalog.BudgetLevel { return s.budget }

// Craving returns the free-text food preference.
func (s *Selection) Craving() string { return s.craving }

// Clone returns a deep copy.
func (s *Selection) Clone() *Selection {
	return &Selection{
		mood:     s.mood,
		tastes:   slices.Clone(s.tastes),
		cuisines: slices.Clone(s.cuisines),
		dietary:  slices.Clone(s.dietary),
		mealType: s.mealType,
		budget:   s.budget,
		craving:  s.craving,
	}
}

// View is a serializable copy of a Selection.
type View struct {
	Mood     string   `json:"mood"`
	Tastes   []string `json:"tastes"`
	Cuisines []string `json:"cuisines"`
	Dietary  []string `json:"dietary"`
	MealType string   `json:"mealType"`
	Budget   string   `json:"budget"`
	Craving  string   `json:"foodPreference"`
}

// View returns a serializable copy. Empty sets are non-nil.
func (s *Selection) View() View {
	return View{
		Mood:     s.mood,
		Tastes:   nonNil(s.tastes),
		Cuisines: nonNil(s.cuisines),
		Dietary:  nonNil(s.dietary),
		MealType: s.mealType,
		Budget:   string(s.budget),
		Craving:  s.craving,
	}
}

func (s *Selection) setFor(field SetField) *[]string {
	switch field {
	case FieldTastes:
		return &s.tastes
	case FieldCuisines:
		return &s.cuisines
	case FieldDietary:
		return &s.dietary
	default:
		return nil
	}
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return slices.Clone(v)
}

// CatalogFor maps a selection field to the catalog its values come from.
func CatalogFor(field string) (catalog.Kind, bool) {
	switch field {
	case string(FieldTastes):
		return catalog.KindTaste, true
	case string(FieldCuisines):
		return catalog.KindCuisine, true
	case string(FieldDietary):
		return catalog.KindDietary, true
	case string(FieldMood):
		return catalog.KindMood, true
	case string(FieldMealType):
		return catalog.KindMealType, true
	default:
		return "", false
	}
}
