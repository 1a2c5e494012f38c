package entity

import "time"

// Equipment representa um equipamento ou periférico cadastrado no inventário.
// AvailableQuantity é um valor derivado: deve ser sempre igual à quantidade
// inicial mais a soma dos deltas de todos os movimentos do equipamento.
// Somente o motor de reconciliação (tracking.UseCase) pode alterá-lo.
type Equipment struct {
	ID                string
	Name              string
	SerialNumber      string // vazio se não tem; único quando presente
	CategoryID        string
	LocationID        string // posição/bin padrão no almoxarifado
	AvailableQuantity int64
	Description       string
	ImageURL          string
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
