package dto

import "time"

// SaveEquipmentRequest body para criar ou atualizar um equipamento.
// AvailableQuantity aqui é a quantidade inicial do cadastro; depois disso o
// valor só muda via movimentações.
type SaveEquipmentRequest struct {
	Name              string `json:"name"`
	SerialNumber      string `json:"serial_number,omitempty"`
	CategoryID        string `json:"category_id,omitempty"`
	LocationID        string `json:"location_id,omitempty"`
	AvailableQuantity int64  `json:"available_quantity"`
	Description       string `json:"description,omitempty"`
	ImageURL          string `json:"image_url,omitempty"`
}

// EquipmentResponse equipamento em respostas HTTP.
type EquipmentResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	SerialNumber      string    `json:"serial_number,omitempty"`
	CategoryID        string    `json:"category_id,omitempty"`
	LocationID        string    `json:"location_id,omitempty"`
	AvailableQuantity int64     `json:"available_quantity"`
	Description       string    `json:"description,omitempty"`
	ImageURL          string    `json:"image_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// LookupPayload é o registro codificado na etiqueta QR de um equipamento.
// A leitura/decodificação é responsabilidade do cliente.
type LookupPayload struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	SerialNumber      string `json:"serial_number,omitempty"`
	CategoryID        string `json:"category_id,omitempty"`
	LocationID        string `json:"location_id,omitempty"`
	AvailableQuantity int64  `json:"available_quantity"`
}

// LookupResponse resultado da busca por serial (fluxo de leitura de QR):
// equipamento encontrado + campos descritivos do último lançamento para
// pré-preenchimento do formulário.
type LookupResponse struct {
	Equipment EquipmentResponse `json:"equipment"`
	Prefill   *MovementPrefill  `json:"prefill,omitempty"`
}

// MovementPrefill campos descritivos do lançamento mais recente.
type MovementPrefill struct {
	LocationID        string `json:"location_id,omitempty"`
	SectorID          string `json:"sector_id,omitempty"`
	ResponsiblePerson string `json:"responsible_person,omitempty"`
	DeliveredBy       string `json:"delivered_by,omitempty"`
	ReceivedBy        string `json:"received_by,omitempty"`
}
