package entity

import "time"

// Notification é um alerta persistido de estoque baixo, gerado pelo motor
// de reconciliação quando available_quantity cruza o limiar para baixo.
type Notification struct {
	ID          string
	EquipmentID string
	Message     string
	Quantity    int64 // quantidade no momento do alerta
	Threshold   int64
	Read        bool
	CreatedAt   time.Time
}
