// Package hygiene covers sterilization traceability, regulated medical
// waste collection and laundry flows.
package hygiene

import "github.com/hospiops/facilityhub/internal/platform/backend"

// Sterilization cycle results.
const (
	CycleConforme    = "conforme"
	CycleNonConforme = "non_conforme"
	CycleEnAttente   = "en_attente"
)

// Waste categories. DASRI is the regulated infectious category.
const (
	WasteDASRI = "dasri"
	WasteDAOM  = "daom"
)

// Laundry flow directions.
const (
	LaundryDepart = "depart"
	LaundryRetour = "retour"
)

// SterilizationCycle is one run of a sterilizer with its control
// result.
type SterilizationCycle struct {
	ID          string       `json:"id"`
	CycleNumber string       `json:"cycle_number"`
	Sterilizer  string       `json:"sterilizer,omitempty"`
	Date        backend.Date `json:"date,omitempty"`
	Operator    string       `json:"operator,omitempty"`
	LoadContent string       `json:"load_content,omitempty"`
	Result      string       `json:"result"`
}

// MedicalWaste is one waste collection with its regulatory tracking
// slip.
type MedicalWaste struct {
	ID             string       `json:"id"`
	Type           string       `json:"type"`
	QuantityKg     float64      `json:"quantity_kg"`
	CollectionDate backend.Date `json:"collection_date,omitempty"`
	Destination    string       `json:"destination,omitempty"`
	TrackingSlip   string       `json:"tracking_slip,omitempty"`
	Service        string       `json:"service,omitempty"`
}

// LaundryTracking is one linen movement between the facility and the
// laundry provider.
type LaundryTracking struct {
	ID         string       `json:"id"`
	Direction  string       `json:"direction"`
	QuantityKg float64      `json:"quantity_kg"`
	Date       backend.Date `json:"date,omitempty"`
	Service    string       `json:"service,omitempty"`
}

func ValidCycleResult(result string) bool {
	switch result {
	case CycleConforme, CycleNonConforme, CycleEnAttente:
		return true
	}
	return false
}

func ValidWasteType(wasteType string) bool {
	return wasteType == WasteDASRI || wasteType == WasteDAOM
}

func ValidLaundryDirection(direction string) bool {
	return direction == LaundryDepart || direction == LaundryRetour
}
