package tracking

import (
	"context"

	"github.com/gfsilva/setup-rastreio/internal/application/dto"
	"github.com/gfsilva/setup-rastreio/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa transação. Garante a atomicidade do par
// "atualiza registro + lança no livro" do motor de reconciliação.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		equipRepo repository.EquipmentRepository,
		movRepo repository.MovementRepository,
		notifRepo repository.NotificationRepository,
	) error) error
}

// LowStockNotifier publica eventos de estoque baixo para entrega em tempo
// real. A publicação acontece após o commit; falhas não desfazem a
// movimentação.
type LowStockNotifier interface {
	Publish(ctx context.Context, ev dto.LowStockEvent) error
}
