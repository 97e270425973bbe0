// scan/qr.go
package scan

import (
	"encoding/json"
	"errors"

	"github.com/filatrack/filatrack/api/models"
)

// qrPayload is the JSON carried in a spool label's QR code. Everything on
// the label is informational; only the id is re-imported on scan.
type qrPayload struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Material        string   `json:"material"`
	Color           string   `json:"color"`
	ColorHex        string   `json:"colorHex"`
	TotalWeight     float64  `json:"totalWeight"`
	RemainingWeight float64  `json:"remainingWeight"`
	Manufacturer    string   `json:"manufacturer"`
	Diameter        float64  `json:"diameter"`
	Price           *float64 `json:"price,omitempty"`
}

// QRPayload serializes a filament's shareable identity for printing on a
// spool label.
func QRPayload(f models.Filament) ([]byte, error) {
	return json.Marshal(qrPayload{
		ID:              f.ID,
		Name:            f.Name,
		Material:        f.Material,
		Color:           f.Color,
		ColorHex:        f.ColorHex,
		TotalWeight:     f.TotalWeight,
		RemainingWeight: f.RemainingWeight,
		Manufacturer:    f.Manufacturer,
		Diameter:        f.Diameter,
		Price:           f.Price,
	})
}

// DecodeQR extracts the filament id from a scanned payload.
func DecodeQR(data []byte) (string, error) {
	var p qrPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return "", errors.New("not a filament QR code")
	}
	if p.ID == "" {
		return "", errors.New("filament QR code has no id")
	}
	return p.ID, nil
}
