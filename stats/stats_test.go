package stats

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filatrack/filatrack/api/models"
)

func price(v float64) *float64 { return &v }

func testCollections() models.Collections {
	return models.Collections{
		Filaments: []models.Filament{
			{ID: "1", Name: "Black PLA", Material: "PLA", Color: "Black", ColorHex: "#000000",
				Manufacturer: "Hatchbox", TotalWeight: 1000, RemainingWeight: 750, Price: price(20)},
			{ID: "2", Name: "Clear PETG", Material: "PETG", Color: "Clear", ColorHex: "#E0F2FE",
				Manufacturer: "eSUN", TotalWeight: 1000, RemainingWeight: 200},
		},
		PrintedParts: []models.PrintedPart{
			{ID: "p1", FilamentID: "1", WeightUsed: 45, PrintTime: 180, PrintDate: "2026-02-01"},
			{ID: "p2", FilamentID: "1", WeightUsed: 20, PrintTime: 60, PrintDate: "2026-02-03"},
			{ID: "p3", FilamentID: "2", WeightUsed: 30, PrintTime: 90, PrintDate: "2026-02-02"},
		},
		Projects: []models.Project{},
	}
}

func TestUsageByMaterialDescendingOrder(t *testing.T) {
	items := UsageByMaterial(testCollections())
	require.Equal(t, []UsageItem{
		{Label: "PLA", Weight: 65},
		{Label: "PETG", Weight: 30},
	}, items)
}

func TestUsageTiesKeepInsertionOrder(t *testing.T) {
	c := testCollections()
	c.PrintedParts = []models.PrintedPart{
		{ID: "p1", FilamentID: "1", WeightUsed: 30},
		{ID: "p2", FilamentID: "2", WeightUsed: 30},
	}
	items := UsageByMaterial(c)
	require.Equal(t, "PLA", items[0].Label)
	require.Equal(t, "PETG", items[1].Label)
}

func TestUsageSkipsOrphanParts(t *testing.T) {
	c := testCollections()
	c.PrintedParts = append(c.PrintedParts, models.PrintedPart{ID: "p4", FilamentID: "gone", WeightUsed: 500})

	items := UsageByMaterial(c)
	require.Len(t, items, 2)
	require.Equal(t, 65.0, items[0].Weight)
}

func TestUsageByColorCarriesHex(t *testing.T) {
	items := UsageByColor(testCollections())
	require.Equal(t, "Black", items[0].Label)
	require.Equal(t, "#000000", items[0].ColorHex)
}

func TestSummarize(t *testing.T) {
	c := testCollections()
	c.Filaments = append(c.Filaments,
		models.Filament{ID: "3", TotalWeight: 1000, RemainingWeight: 0, Price: price(15)},
	)

	s := Summarize(c)
	require.Equal(t, 3, s.TotalSpools)
	require.Equal(t, 1, s.LowStock, "empty spools are not low stock")
	require.Equal(t, 1, s.OutOfStock)
	require.Equal(t, 3, s.TotalParts)
	require.Equal(t, 35.0, s.TotalValue, "missing price counts as 0")
	require.Equal(t, 330, s.TotalPrintTime)
}

func TestRecentPartsNewestFirst(t *testing.T) {
	parts := RecentParts(testCollections(), 2)
	require.Len(t, parts, 2)
	require.Equal(t, "p2", parts[0].ID)
	require.Equal(t, "p3", parts[1].ID)
}

func TestMostUsedFilamentsSkipsDeleted(t *testing.T) {
	c := testCollections()
	c.PrintedParts = append(c.PrintedParts, models.PrintedPart{ID: "p4", FilamentID: "gone", WeightUsed: 500})

	items := MostUsedFilaments(c, 3)
	require.Len(t, items, 2, "deleted spool drops out of the ranking")
	require.Equal(t, "1", items[0].Filament.ID)
	require.Equal(t, 65.0, items[0].Weight)
}

func TestFavoriteFilaments(t *testing.T) {
	c := testCollections()
	c.Filaments[1].Favorite = true

	favs := FavoriteFilaments(c)
	require.Len(t, favs, 1)
	require.Equal(t, "2", favs[0].ID)
}

func TestProjectCostSumsKnownAndIgnoresUnknown(t *testing.T) {
	c := testCollections()
	c.Projects = []models.Project{{ID: "pr1", Name: "Desk"}}
	// p1 on priced filament 1: 20/1000*45 = 0.9; p3 on unpriced filament 2
	c.PrintedParts[0].ProjectID = "pr1"
	c.PrintedParts[2].ProjectID = "pr1"

	cost, known := ProjectCost(c, "pr1")
	require.True(t, known)
	require.InDelta(t, 0.9, cost, 1e-9)
}

func TestProjectCostUnknownWhenNoPartHasPrice(t *testing.T) {
	c := testCollections()
	c.Projects = []models.Project{{ID: "pr1", Name: "Desk"}}
	c.PrintedParts[2].ProjectID = "pr1" // unpriced filament only

	_, known := ProjectCost(c, "pr1")
	require.False(t, known)
}

func TestProjectCostForOrphanParts(t *testing.T) {
	c := testCollections()
	c.Projects = []models.Project{{ID: "pr1", Name: "Desk"}}
	c.PrintedParts[0].ProjectID = "pr1"
	c.Filaments = nil // every part is now an orphan

	_, known := ProjectCost(c, "pr1")
	require.False(t, known)
}
