// api/models/filament.go
package models

// Filament represents one physical spool of printing filament.
type Filament struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Material        string   `json:"material"` // PLA, PETG, ABS, TPU, ...
	Color           string   `json:"color"`
	ColorHex        string   `json:"colorHex"`
	TotalWeight     float64  `json:"totalWeight"`     // grams, fixed at creation
	RemainingWeight float64  `json:"remainingWeight"` // grams
	Manufacturer    string   `json:"manufacturer"`
	Diameter        float64  `json:"diameter"` // millimeters
	Price           *float64 `json:"price,omitempty"`
	Favorite        bool     `json:"favorite,omitempty"`
}

// PercentRemaining reports how full the spool is, on a 0-100 scale.
// A spool with a non-positive total weight reports 0.
func (f *Filament) PercentRemaining() float64 {
	if f.TotalWeight <= 0 {
		return 0
	}
	return f.RemainingWeight / f.TotalWeight * 100
}

// CostPerGram returns the spool's price per gram. The boolean is false when
// the price is unknown or the total weight is not positive.
func (f *Filament) CostPerGram() (float64, bool) {
	if f.Price == nil || f.TotalWeight <= 0 {
		return 0, false
	}
	return *f.Price / f.TotalWeight, true
}

// LowStock reports whether the spool is below a quarter full but not empty.
func (f *Filament) LowStock() bool {
	return f.RemainingWeight > 0 && f.PercentRemaining() < 25
}

// OutOfStock reports whether the spool is empty.
func (f *Filament) OutOfStock() bool {
	return f.RemainingWeight == 0
}
