// Package stats derives dashboard and usage views from the current
// collections. Every function is a pure recompute over the snapshot it is
// given; the collections are small enough that caching would buy nothing.
//
// Parts whose filament has been deleted never cause an error here: they are
// skipped by filament-derived groupings and contribute "unknown" costs.
package stats

import (
	"sort"

	"github.com/filatrack/filatrack/api/models"
)

// Summary is the dashboard headline view.
type Summary struct {
	TotalSpools    int     `json:"totalSpools"`
	LowStock       int     `json:"lowStock"`
	OutOfStock     int     `json:"outOfStock"`
	TotalParts     int     `json:"totalParts"`
	TotalValue     float64 `json:"totalValue"`     // sum of spool prices, missing = 0
	TotalPrintTime int     `json:"totalPrintTime"` // minutes across all parts
}

// Summarize computes the dashboard counters.
func Summarize(c models.Collections) Summary {
	s := Summary{
		TotalSpools: len(c.Filaments),
		TotalParts:  len(c.PrintedParts),
	}
	for i := range c.Filaments {
		f := &c.Filaments[i]
		if f.LowStock() {
			s.LowStock++
		}
		if f.OutOfStock() {
			s.OutOfStock++
		}
		if f.Price != nil {
			s.TotalValue += *f.Price
		}
	}
	for i := range c.PrintedParts {
		s.TotalPrintTime += c.PrintedParts[i].PrintTime
	}
	return s
}

// RecentParts returns parts sorted by print date, newest first, truncated to
// n. Dates are ISO format strings, so lexical order is date order.
func RecentParts(c models.Collections, n int) []models.PrintedPart {
	parts := make([]models.PrintedPart, len(c.PrintedParts))
	copy(parts, c.PrintedParts)
	sort.SliceStable(parts, func(i, j int) bool {
		return parts[i].PrintDate > parts[j].PrintDate
	})
	if n >= 0 && len(parts) > n {
		parts = parts[:n]
	}
	return parts
}

// UsageItem is one row of a usage ranking.
type UsageItem struct {
	Label    string  `json:"label"`
	Weight   float64 `json:"weight"` // grams
	ColorHex string  `json:"colorHex,omitempty"`
}

// usageBy groups parts by a filament-derived key, summing weight used.
// Parts whose filament no longer exists are skipped. Rows come back sorted
// by weight descending; ties keep first-encountered order.
func usageBy(c models.Collections, key func(*models.Filament) string, hex func(*models.Filament) string) []UsageItem {
	index := make(map[string]int)
	var items []UsageItem
	for i := range c.PrintedParts {
		part := &c.PrintedParts[i]
		f := c.FindFilament(part.FilamentID)
		if f == nil {
			continue
		}
		k := key(f)
		if at, ok := index[k]; ok {
			items[at].Weight += part.WeightUsed
			continue
		}
		item := UsageItem{Label: k, Weight: part.WeightUsed}
		if hex != nil {
			item.ColorHex = hex(f)
		}
		index[k] = len(items)
		items = append(items, item)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Weight > items[j].Weight
	})
	return items
}

// UsageByMaterial ranks materials by grams printed.
func UsageByMaterial(c models.Collections) []UsageItem {
	return usageBy(c, func(f *models.Filament) string { return f.Material }, nil)
}

// UsageByColor ranks color names by grams printed, carrying the swatch hex.
func UsageByColor(c models.Collections) []UsageItem {
	return usageBy(c,
		func(f *models.Filament) string { return f.Color },
		func(f *models.Filament) string { return f.ColorHex })
}

// UsageByManufacturer ranks brands by grams printed.
func UsageByManufacturer(c models.Collections) []UsageItem {
	return usageBy(c, func(f *models.Filament) string { return f.Manufacturer }, nil)
}

// FilamentUsage pairs a filament with the grams printed from it.
type FilamentUsage struct {
	Filament models.Filament `json:"filament"`
	Weight   float64         `json:"weight"`
}

// MostUsedFilaments ranks individual spools by grams printed, truncated to
// n. Usage recorded against deleted spools still counts toward the ranking
// but cannot be resolved to a record, so those rows drop out.
func MostUsedFilaments(c models.Collections, n int) []FilamentUsage {
	totals := make(map[string]float64)
	var order []string
	for i := range c.PrintedParts {
		part := &c.PrintedParts[i]
		if _, seen := totals[part.FilamentID]; !seen {
			order = append(order, part.FilamentID)
		}
		totals[part.FilamentID] += part.WeightUsed
	}
	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]] > totals[order[j]]
	})
	if n >= 0 && len(order) > n {
		order = order[:n]
	}
	var out []FilamentUsage
	for _, id := range order {
		if f := c.FindFilament(id); f != nil {
			out = append(out, FilamentUsage{Filament: *f, Weight: totals[id]})
		}
	}
	return out
}

// FavoriteFilaments returns the spools flagged as favorites, in insertion
// order.
func FavoriteFilaments(c models.Collections) []models.Filament {
	var out []models.Filament
	for _, f := range c.Filaments {
		if f.Favorite {
			out = append(out, f)
		}
	}
	return out
}

// ProjectParts returns the parts assigned to the given project.
func ProjectParts(c models.Collections, projectID string) []models.PrintedPart {
	var out []models.PrintedPart
	for _, p := range c.PrintedParts {
		if p.ProjectID == projectID {
			out = append(out, p)
		}
	}
	return out
}

// ProjectCost sums the estimated cost of the project's parts. Parts with an
// unknown cost are ignored; the boolean is false only when no part has a
// known cost at all.
func ProjectCost(c models.Collections, projectID string) (float64, bool) {
	var total float64
	known := false
	for _, p := range ProjectParts(c, projectID) {
		cost, ok := models.PartCost(&p, c.FindFilament(p.FilamentID))
		if !ok {
			continue
		}
		total += cost
		known = true
	}
	if !known {
		return 0, false
	}
	return total, true
}
