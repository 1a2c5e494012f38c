package repository

import (
	"context"

	"github.com/gfsilva/setup-rastreio/internal/domain/entity"
)

// EquipmentFilter filtros do listado de equipamentos.
type EquipmentFilter struct {
	Search     string // busca por nome, normalizada sem acentos
	CategoryID string
	Limit      int
	Offset     int
}

// EquipmentRepository define o porto de persistência do registro de
// equipamentos. UpdateQuantity é de uso exclusivo do motor de reconciliação.
type EquipmentRepository interface {
	Create(ctx context.Context, eq *entity.Equipment) error
	Update(ctx context.Context, eq *entity.Equipment) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Equipment, error)
	GetBySerial(ctx context.Context, serial string) (*entity.Equipment, error)
	List(ctx context.Context, filter EquipmentFilter) ([]*entity.Equipment, error)
	// ListLowStock devolve equipamentos com available_quantity <= threshold.
	ListLowStock(ctx context.Context, threshold int64) ([]*entity.Equipment, error)
	// GetForUpdate bloqueia a linha do equipamento (SELECT FOR UPDATE);
	// usar somente dentro de transação.
	GetForUpdate(ctx context.Context, id string) (*entity.Equipment, error)
	// UpdateQuantity sobrescreve available_quantity; falha com
	// domain.ErrInvalidQuantity se quantity < 0.
	UpdateQuantity(ctx context.Context, id string, quantity int64) error
}
