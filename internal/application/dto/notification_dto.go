package dto

import "time"

// NotificationResponse alerta de estoque baixo em respostas HTTP.
type NotificationResponse struct {
	ID          string    `json:"id"`
	EquipmentID string    `json:"equipment_id,omitempty"`
	Message     string    `json:"message"`
	Quantity    int64     `json:"quantity"`
	Threshold   int64     `json:"threshold"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

// LowStockEvent payload publicado no canal de notificações em tempo real
// quando uma reconciliação leva o estoque ao limiar ou abaixo.
type LowStockEvent struct {
	EquipmentID string    `json:"equipment_id"`
	Name        string    `json:"name"`
	Quantity    int64     `json:"quantity"`
	Threshold   int64     `json:"threshold"`
	OccurredAt  time.Time `json:"occurred_at"`
}
