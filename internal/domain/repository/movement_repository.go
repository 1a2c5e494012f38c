package repository

import (
	"context"
	"time"

	"github.com/gfsilva/setup-rastreio/internal/domain/entity"
)

// MovementFilter filtros do listado de movimentações.
type MovementFilter struct {
	EquipmentID string
	Status      string
	SectorID    string
	LocationID  string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// MovementPatch campos mutáveis de um lançamento no fluxo de edição.
// Status/Quantity só mudam via reconciliação (reverte delta antigo e aplica o novo).
type MovementPatch struct {
	Status            string
	Quantity          int64
	LocationID        string
	SectorID          string
	ResponsiblePerson string
	DeliveredBy       string
	ReceivedBy        string
	Notes             string
}

// MovementRepository define o porto do livro de movimentações (append-only;
// UpdateRecord e Delete existem apenas para os fluxos de edição e exclusão
// compensada do motor de reconciliação).
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// List ordena por created_at DESC com desempate por seq DESC
	// (inserção mais recente primeiro).
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	UpdateRecord(ctx context.Context, id string, patch MovementPatch) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, from, to *time.Time) (map[string]int64, error)
	// LatestByEquipment devolve o lançamento mais recente do equipamento
	// (nil se não há nenhum); usado para pré-preencher o fluxo de leitura de QR.
	LatestByEquipment(ctx context.Context, equipmentID string) (*entity.Movement, error)
}
