package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/kailas-cloud/zoto/internal/domain/catalog"
	"github.com/kailas-cloud/zoto/internal/domain/search/result"
)

const maxDescription = 60

// RestaurantTable renders restaurants in service order.
func RestaurantTable(rs []result.Restaurant) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Name", "Cuisine", "Price", "Rating", "Location", "Highlights"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
	})

	for i, r := range rs {
		t.AppendRow(table.Row{
			i + 1,
			r.Name,
			r.Cuisine,
			r.PriceRange,
			fmt.Sprintf("%.1f", r.Rating),
			r.Location,
			strings.Join(r.Highlights, ", "),
		})
		if r.Description != "" {
			t.AppendRow(table.Row{"", truncate(r.Description, maxDescription), "", "", "", "", dietaryNote(r)})
		}
	}

	t.AppendFooter(table.Row{"", fmt.Sprintf("%d restaurants", len(rs)), "", "", "", "", ""})
	return t.Render()
}

// CatalogTable renders every catalog as one table per kind.
func CatalogTable(set CatalogSet) string {
	sections := []struct {
		title string
		opts  []catalog.Option
	}{
		{"Mood", set.Moods},
		{"Cuisine", set.Cuisines},
		{"Taste", set.Tastes},
		{"Dietary", set.Dietary},
		{"Meal type", set.MealTypes},
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Kind", "Value", "Label", ""})
	for _, s := range sections {
		for _, o := range s.opts {
			t.AppendRow(table.Row{s.title, o.Value, o.Label, o.Icon})
		}
		t.AppendSeparator()
	}
	t.AppendRow(table.Row{"Budget", strings.Join(set.Budgets, " | "), "", ""})
	return t.Render()
}

func dietaryNote(r result.Restaurant) string {
	if len(r.DietaryOptions) == 0 {
		return ""
	}
	return "diet: " + strings.Join(r.DietaryOptions, ", ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
