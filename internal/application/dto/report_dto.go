package dto

import "time"

// ReportFilter filtros de relatório (período, setor, localização).
type ReportFilter struct {
	From       *time.Time
	To         *time.Time
	SectorID   string
	LocationID string
}

// StatusCountsDTO contagem de lançamentos por status.
type StatusCountsDTO struct {
	Saida      int64 `json:"saida"`
	Manutencao int64 `json:"manutencao"`
	Danificado int64 `json:"danificado"`
	Devolucao  int64 `json:"devolucao"`
}

// GroupTotalDTO soma de quantidades por chave de agrupamento.
type GroupTotalDTO struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// TopResponsibleDTO responsável que mais solicitou saídas em um setor.
type TopResponsibleDTO struct {
	Sector      string `json:"sector"`
	Responsible string `json:"responsible"`
	Quantity    int64  `json:"quantity"`
}

// MovementReportDTO relatório agregado de movimentações.
type MovementReportDTO struct {
	Total            int                 `json:"total"`
	BySector         []GroupTotalDTO     `json:"by_sector"`
	ByLocation       []GroupTotalDTO     `json:"by_location"`
	ByStatus         []GroupTotalDTO     `json:"by_status"`
	TopResponsibles  []TopResponsibleDTO `json:"top_responsibles_by_sector"`
	Movements        []MovementResponse  `json:"movements"`
}

// LowStockItemDTO equipamento com estoque no limiar ou abaixo.
type LowStockItemDTO struct {
	EquipmentID       string `json:"equipment_id"`
	Name              string `json:"name"`
	SerialNumber      string `json:"serial_number,omitempty"`
	AvailableQuantity int64  `json:"available_quantity"`
	Threshold         int64  `json:"threshold"`
}

// ActivityEntryDTO entrada do feed de atividades recentes.
type ActivityEntryDTO struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Source    string    `json:"source"` // equipment | tracking
	UserEmail string    `json:"user_email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
