// api/models/printedpart.go
package models

// PrintedPart records one printed object and the filament it consumed.
// FilamentID and ProjectID are weak references: the records they point at
// may have been deleted, and consumers must treat a failed lookup as absent.
type PrintedPart struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	FilamentID string  `json:"filamentId"`
	WeightUsed float64 `json:"weightUsed"` // grams
	PrintTime  int     `json:"printTime"`  // minutes
	PrintDate  string  `json:"printDate"`  // YYYY-MM-DD
	Notes      string  `json:"notes,omitempty"`
	ImageURL   string  `json:"imageUrl,omitempty"`
	ProjectID  string  `json:"projectId,omitempty"`
}

// PartCost estimates what the part cost to print from the given filament.
// The boolean is false when the filament is missing or its cost per gram is
// unknown.
func PartCost(part *PrintedPart, filament *Filament) (float64, bool) {
	if filament == nil {
		return 0, false
	}
	perGram, ok := filament.CostPerGram()
	if !ok {
		return 0, false
	}
	return perGram * part.WeightUsed, true
}
