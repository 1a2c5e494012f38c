package dto

import "time"

// RegisterMovementRequest body para POST /api/tracking.
type RegisterMovementRequest struct {
	EquipmentID       string `json:"equipment_id"`
	Status            string `json:"status"`
	Quantity          int64  `json:"quantity"`
	LocationID        string `json:"location_id,omitempty"`
	SectorID          string `json:"sector_id,omitempty"`
	ResponsiblePerson string `json:"responsible_person,omitempty"`
	DeliveredBy       string `json:"delivered_by,omitempty"`
	ReceivedBy        string `json:"received_by,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

// EditMovementRequest body para PUT /api/tracking/:id.
type EditMovementRequest struct {
	Status            string `json:"status"`
	Quantity          int64  `json:"quantity"`
	LocationID        string `json:"location_id,omitempty"`
	SectorID          string `json:"sector_id,omitempty"`
	ResponsiblePerson string `json:"responsible_person,omitempty"`
	DeliveredBy       string `json:"delivered_by,omitempty"`
	ReceivedBy        string `json:"received_by,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

// BaixaRequest body para POST /api/tracking/:id/baixa (fluxo Dar Baixa).
type BaixaRequest struct {
	Condition   string `json:"condition"` // bom | danificado
	Responsible string `json:"responsible"`
	Notes       string `json:"notes,omitempty"`
}

// MovementResponse lançamento em respostas HTTP.
type MovementResponse struct {
	ID                string    `json:"id"`
	EquipmentID       string    `json:"equipment_id"`
	EquipmentName     string    `json:"equipment_name,omitempty"`
	SerialNumber      string    `json:"serial_number,omitempty"`
	Status            string    `json:"status"`
	Quantity          int64     `json:"quantity"`
	LocationID        string    `json:"location_id,omitempty"`
	LocationName      string    `json:"location_name,omitempty"`
	SectorID          string    `json:"sector_id,omitempty"`
	SectorName        string    `json:"sector_name,omitempty"`
	ResponsiblePerson string    `json:"responsible_person,omitempty"`
	DeliveredBy       string    `json:"delivered_by,omitempty"`
	ReceivedBy        string    `json:"received_by,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
