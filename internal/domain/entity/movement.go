package entity

import "time"

// Status de movimentação (enum fechado; a tabela de deltas em QuantityDelta
// é a regra de reconciliação do estoque).
const (
	StatusSaida      = "saida"      // saída de circulação
	StatusManutencao = "manutencao" // retirada temporária para manutenção
	StatusDanificado = "danificado" // baixa definitiva, estoque já decrementado
	StatusDevolucao  = "devolucao"  // retorno ao estoque
)

// Condições aceitas no fluxo de baixa (Dar Baixa).
const (
	CondicaoBom        = "bom"
	CondicaoDanificado = "danificado"
)

// Movement é um lançamento imutável do livro de movimentações (ledger).
// Seq é atribuído pelo repositório em ordem de inserção e desempata
// ordenações por CreatedAt (inserção mais recente primeiro).
type Movement struct {
	ID                string
	Seq               int64
	EquipmentID       string
	Status            string
	Quantity          int64 // sempre > 0; o sinal vem do status
	LocationID        string
	SectorID          string
	ResponsiblePerson string
	DeliveredBy       string
	ReceivedBy        string
	Notes             string
	CreatedAt         time.Time
	CreatedBy         string
}

// ValidStatus informa se s pertence ao enum de status.
func ValidStatus(s string) bool {
	switch s {
	case StatusSaida, StatusManutencao, StatusDanificado, StatusDevolucao:
		return true
	}
	return false
}

// QuantityDelta devolve o efeito do movimento sobre available_quantity:
// saída e manutenção decrementam, devolução incrementa e danificado é
// neutro (o estoque já foi decrementado pela saída/manutenção anterior).
func QuantityDelta(status string, quantity int64) int64 {
	switch status {
	case StatusSaida, StatusManutencao:
		return -quantity
	case StatusDevolucao:
		return quantity
	default:
		return 0
	}
}
