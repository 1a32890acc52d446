package result

import (
	"encoding/json"
	"testing"
)

func TestUnmarshal_MissingOptionalSlices(t *testing.T) {
	var r Restaurant
	err := json.Unmarshal([]byte(`{"name":"Cafe X","cuisine":"italian","rating":4.2,"price_range":"$$"}`), &r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Name != "Cafe X" || r.Cuisine != "italian" || r.Rating != 4.2 || r.PriceRange != "$$" {
		t.Errorf("unexpected restaurant: %+v", r)
	}
	if r.Highlights == nil || len(r.Highlights) != 0 {
		t.Errorf("Highlights = %#v, want empty slice", r.Highlights)
	}
	if r.DietaryOptions == nil || len(r.DietaryOptions) != 0 {
		t.Errorf("DietaryOptions = %#v, want empty slice", r.DietaryOptions)
	}
}

func TestUnmarshal_NullOptionalSlices(t *testing.T) {
	var r Restaurant
	if err := json.Unmarshal([]byte(`{"name":"A","highlights":null,"dietary_options":null}`), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Highlights == nil || r.DietaryOptions == nil {
		t.Error("expected null slices to decode as empty")
	}
}

func TestUnmarshal_PreservesOrder(t *testing.T) {
	var resp Response
	body := `{"restaurants":[{"name":"B","highlights":["z","a"]},{"name":"A"},{"name":"C"}]}`
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := []string{resp.Restaurants[0].Name, resp.Restaurants[1].Name, resp.Restaurants[2].Name}
	if names[0] != "B" || names[1] != "A" || names[2] != "C" {
		t.Errorf("order = %v, want [B A C]", names)
	}
	if resp.Restaurants[0].Highlights[0] != "z" {
		t.Errorf("highlight order changed: %v", resp.Restaurants[0].Highlights)
	}
}

func TestUnmarshal_IgnoresUnknownFields(t *testing.T) {
	var r Restaurant
	if err := json.Unmarshal([]byte(`{"name":"A","distance_km":1.5,"open_now":true}`), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Name != "A" {
		t.Errorf("Name = %q", r.Name)
	}
}

func TestCloneAll_IsDeep(t *testing.T) {
	orig := []Restaurant{{Name: "A", Highlights: []string{"patio"}}}
	c := CloneAll(orig)
	c[0].Highlights[0] = "mutated"

	if orig[0].Highlights[0] != "patio" {
		t.Error("CloneAll must deep-copy highlights")
	}
	if CloneAll(nil) != nil {
		t.Error("CloneAll(nil) should be nil")
	}
}
