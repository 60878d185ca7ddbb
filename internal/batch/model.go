package batch

import "time"

// Batch is a shipment window customers order against.
type Batch struct {
	ID           uint       `json:"id"`
	Name         string     `json:"nama"`
	ShipmentDate string     `json:"tanggal_pengiriman"`
	Status       string     `json:"status"`
	Countdown    string     `json:"countdown"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	IsActive     bool       `json:"is_active"`
}

// Fallback is served when no active batch can be read.
var Fallback = Batch{
	Name:         "Batch Akhir Pekan",
	ShipmentDate: "Sabtu, 14 Februari",
	Status:       "Buka",
	Countdown:    "1:03:12:45",
	IsActive:     true,
}

// UpdateInput holds the raw admin form values. Days, Hours and Minutes that
// are not plain digits count as zero.
type UpdateInput struct {
	Name         string
	ShipmentDate string
	Status       string
	Days         string
	Hours        string
	Minutes      string
}
