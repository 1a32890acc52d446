// Package output renders search results and catalogs for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kailas-cloud/zoto/internal/domain/catalog"
	"github.com/kailas-cloud/zoto/internal/domain/search/result"
)

// Format represents an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// CatalogSet is every catalog plus the budget levels.
type CatalogSet struct {
	Moods     []catalog.Option `json:"moods"`
	Tastes    []catalog.Option `json:"tastes"`
	Cuisines  []catalog.Option `json:"cuisines"`
	Dietary   []catalog.Option `json:"dietary"`
	MealTypes []catalog.Option `json:"meal_types"`
	Budgets   []string         `json:"budgets"`
}

// Catalogs returns the current catalogs.
func Catalogs() CatalogSet {
	levels := catalog.BudgetLevels()
	budgets := make([]string, len(levels))
	for i, b := range levels {
		budgets[i] = string(b)
	}
	return CatalogSet{
		Moods:     catalog.Moods(),
		Tastes:    catalog.Tastes(),
		Cuisines:  catalog.Cuisines(),
		Dietary:   catalog.Dietary(),
		MealTypes: catalog.MealTypes(),
		Budgets:   budgets,
	}
}

// WriteRestaurants renders a result set in the requested format.
func WriteRestaurants(w io.Writer, format Format, rs []result.Restaurant) error {
	if format == FormatJSON {
		if rs == nil {
			rs = []result.Restaurant{}
		}
		return writeJSON(w, result.Response{Restaurants: rs})
	}
	_, err := fmt.Fprintln(w, RestaurantTable(rs))
	return err
}

// WriteCatalogs renders all catalogs in the requested format.
func WriteCatalogs(w io.Writer, format Format) error {
	set := Catalogs()
	if format == FormatJSON {
		return writeJSON(w, set)
	}
	_, err := fmt.Fprintln(w, CatalogTable(set))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
