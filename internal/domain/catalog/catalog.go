// Package catalog holds the static option lists a user picks preferences from.
package catalog

// Option is a single selectable catalog entry.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// Kind identifies a catalog.
type Kind string

// Catalog kinds.
const (
	KindMood     Kind = "mood"
	KindTaste    Kind = "taste"
	KindCuisine  Kind = "cuisine"
	KindDietary  Kind = "dietary"
	KindMealType Kind = "meal_type"
)

// BudgetLevel is the price tier of a search.
type BudgetLevel string

// Budget levels.
const (
	BudgetLow    BudgetLevel = "low"
	BudgetMedium BudgetLevel = "medium"
	BudgetHigh   BudgetLevel = "high"
)

// DefaultBudget is the budget of a fresh selection.
const DefaultBudget = BudgetMedium

// IsValid reports whether b is one of the known levels.
func (b BudgetLevel) IsValid() bool {
	return b == BudgetLow || b == BudgetMedium || b == BudgetHigh
}

// BudgetLevels returns all budget levels in display order.
func BudgetLevels() []BudgetLevel {
	return []BudgetLevel{BudgetLow, BudgetMedium, BudgetHigh}
}

var (
	moods = []Option{
		{Value: "happy", Label: "Happy", Icon: "😊"},
		{Value: "relaxed", Label: "Relaxed", Icon: "😌"},
		{Value: "celebratory", Label: "Celebratory", Icon: "🎉"},
		{Value: "hungry", Label: "Hungry", Icon: "😋"},
		{Value: "tired", Label: "Tired", Icon: "😴"},
	}

	tastes = []Option{
		{Value: "spicy", Label: "Spicy", Icon: "🌶️"},
		{Value: "sweet", Label: "Sweet", Icon: "🍯"},
		{Value: "savory", Label: "Savory", Icon: "🧂"},
		{Value: "tangy", Label: "Tangy", Icon: "🍋"},
		{Value: "rich", Label: "Rich", Icon: "🍫"},
	}

	cuisines = []Option{
		{Value: "indian", Label: "Indian", Icon: "🇮🇳"},
		{Value: "italian", Label: "Italian", Icon: "🇮🇹"},
		{Value: "chinese", Label: "Chinese", Icon: "🇨🇳"},
		{Value: "mexican", Label: "Mexican", Icon: "🇲🇽"},
		{Value: "japanese", Label: "Japanese", Icon: "🇯🇵"},
		{Value: "thai", Label: "Thai", Icon: "🇹🇭"},
		{Value: "korean", Label: "Korean", Icon: "🇰🇷"},
		{Value: "mediterranean", Label: "Mediterranean", Icon: "🌊"},
	}

	dietary = []Option{
		{Value: "vegetarian", Label: "Vegetarian", Icon: "🥗"},
		{Value: "vegan", Label: "Vegan", Icon: "🌱"},
		{Value: "gluten-free", Label: "Gluten-Free", Icon: "🌾"},
		{Value: "halal", Label: "Halal", Icon: "🕌"},
		{Value: "keto", Label: "Keto", Icon: "🥑"},
	}

	mealTypes = []Option{
		{Value: "breakfast", Label: "Breakfast", Icon: "☕"},
		{Value: "lunch", Label: "Lunch", Icon: "🍱"},
		{Value: "dinner", Label: "Dinner", Icon: "🍽️"},
		{Value: "snacks", Label: "Snacks", Icon: "🥨"},
		{Value: "dessert", Label: "Dessert", Icon: "🍰"},
	}
)

// Moods returns the mood catalog.
func Moods() []Option { return clone(moods) }

// Tastes returns the taste catalog.
func Tastes() []Option { return clone(tastes) }

// Cuisines returns the cuisine catalog.
func Cuisines() []Option { return clone(cuisines) }

// Dietary returns the dietary catalog.
func Dietary() []Option { return clone(dietary) }

// MealTypes returns the meal type catalog.
func MealTypes() []Option { return clone(mealTypes) }

// Kinds returns all catalog kinds in display order.
func Kinds() []Kind {
	return []Kind{KindMood, KindCuisine, KindTaste, KindDietary, KindMealType}
}

// Of returns the catalog for the given kind (nil for unknown kinds).
func Of(k Kind) []Option {
	if opts := lookupTable(k); opts != nil {
		return clone(opts)
	}
	return nil
}

// Lookup finds an option by value.
func Lookup(k Kind, value string) (Option, bool) {
	for _, o := range lookupTable(k) {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// Contains reports whether value belongs to the catalog of kind k.
func Contains(k Kind, value string) bool {
	_, ok := Lookup(k, value)
	return ok
}

// Values returns the option values of a catalog in display order.
func Values(k Kind) []string {
	opts := lookupTable(k)
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

func lookupTable(k Kind) []Option {
	switch k {
	case KindMood:
		return moods
	case KindTaste:
		return tastes
	case KindCuisine:
		return cuisines
	case KindDietary:
		return dietary
	case KindMealType:
		return mealTypes
	default:
		return nil
	}
}

func clone(opts []Option) []Option {
	out := make([]Option, len(opts))
	copy(out, opts)
	return out
}
