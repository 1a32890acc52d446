package request

import (
	"encoding/json"
	"reflect"
	"slices"
	"testing"

	"github.com/kailas-cloud/zoto/internal/domain/catalog"
	"github.com/kailas-cloud/zoto/internal/domain/geo"
	"github.com/kailas-cloud/zoto/internal/domain/preference"
)

func sampleSelection() *preference.Selection {
	s := preference.New()
	s.Select(preference.FieldMood, "happy")
	s.Toggle(preference.FieldCuisines, "italian")
	s.Toggle(preference.FieldCuisines, "indian")
	s.Toggle(preference.FieldTastes, "spicy")
	s.Toggle(preference.FieldDietary, "vegetarian")
	s.Select(preference.FieldMealType, "dinner")
	s.Select(preference.FieldBudget, "low")
	return s
}

var bangalore = geo.Coordinates{Latitude: 12.9, Longitude: 77.6}

func TestBuild_CopiesFields(t *testing.T) {
	r := Build(sampleSelection(), bangalore, "cheesy and spicy")

	if r.Mood() != "happy" {
		t.Errorf("Mood() = %q", r.Mood())
	}
	if !slices.Equal(r.Cuisines(), []string{"italian", "indian"}) {
		t.Errorf("Cuisines() = %v", r.Cuisines())
	}
	if !slices.Equal(r.Tastes(), []string{"spicy"}) {
		t.Errorf("Tastes() = %v", r.Tastes())
	}
	if !slices.Equal(r.Dietary(), []string{"vegetarian"}) {
		t.Errorf("Dietary() = %v", r.Dietary())
	}
	if r.MealType() != "dinner" {
		t.Errorf("MealType() = %q", r.MealType())
	}
	if r.Budget() != catalog.BudgetLow {
		t.Errorf("Budget() = %q", r.Budget())
	}
	if r.Location() != bangalore {
		t.Errorf("Location() = %v", r.Location())
	}
	if r.FoodPreference() != "cheesy and spicy" {
		t.Errorf("FoodPreference() = %q", r.FoodPreference())
	}
}

func TestBuild_IsPure(t *testing.T) {
	sel := sampleSelection()
	a := Build(sel, bangalore, "x")
	b := Build(sel, bangalore, "x")

	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected structurally equal requests:\n%+v\n%+v", a, b)
	}
}

func TestBuild_SnapshotIgnoresLaterMutation(t *testing.T) {
	sel := sampleSelection()
	r := Build(sel, bangalore, "")
	before := r.Wire()

	sel.Toggle(preference.FieldCuisines, "italian")
	sel.Toggle(preference.FieldCuisines, "thai")
	sel.Select(preference.FieldMood, "tired")
	sel.Select(preference.FieldBudget, "high")

	if !reflect.DeepEqual(before, r.Wire()) {
		t.Errorf("request changed after selection mutation:\nbefore %+v\nafter  %+v", before, r.Wire())
	}
}

func TestAccessors_ReturnCopies(t *testing.T) {
	r := Build(sampleSelection(), bangalore, "")
	c := r.Cuisines()
	c[0] = "mutated"

	if r.Cuisines()[0] != "italian" {
		t.Error("mutating accessor result must not change the request")
	}
}

func TestMarshalJSON_WireContract(t *testing.T) {
	r := Build(sampleSelection(), bangalore, "pasta")

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{
		"mood", "tastes", "cuisines", "dietary", "mealType", "budget", "location", "foodPreference",
	} {
		if _, ok := got[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
	if len(got) != 8 {
		t.Errorf("expected exactly 8 keys, got %d: %s", len(got), data)
	}

	loc, ok := got["location"].(map[string]any)
	if !ok {
		t.Fatalf("location is %T", got["location"])
	}
	if loc["lat"] != 12.9 || loc["lng"] != 77.6 {
		t.Errorf("location = %v", loc)
	}
	if got["budget"] != "low" {
		t.Errorf("budget = %v", got["budget"])
	}
}

func TestMarshalJSON_EmptySetsAreArrays(t *testing.T) {
	sel := preference.New()
	data, err := json.Marshal(Build(sel, geo.Coordinates{}, ""))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"mood":"","tastes":[],"cuisines":[],"dietary":[],"mealType":"",` +
		`"budget":"medium","location":{"lat":0,"lng":0},"foodPreference":""}`
	if string(data) != want {
		t.Errorf("got  %s\nwant %s", data, want)
	}
}
