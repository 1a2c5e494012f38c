package tracking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gfsilva/setup-rastreio/internal/application/dto"
	"github.com/gfsilva/setup-rastreio/internal/domain"
	"github.com/gfsilva/setup-rastreio/internal/domain/entity"
	"github.com/gfsilva/setup-rastreio/internal/domain/repository"
	"github.com/gfsilva/setup-rastreio/pkg/logger"
)

// maxConflictRetries tentativas em caso de falha de serialização antes de
// devolver o erro ao chamador.
const maxConflictRetries = 3

// receivedByBaixa destino padrão das devoluções do fluxo Dar Baixa.
const receivedByBaixa = "Sala de Setup"

// UseCase é o motor de reconciliação: o único caminho pelo qual a quantidade
// disponível de um equipamento muda. Cada operação valida o estoque com a
// linha do equipamento bloqueada (SELECT FOR UPDATE) e grava registro e
// lançamento na mesma transação (commit ou rollback dos dois).
type UseCase struct {
	txRunner  TxRunner
	notifier  LowStockNotifier
	threshold int64
	log       *logger.Logger
}

// NewUseCase constrói o motor. Todo acesso a dados passa pelo txRunner;
// notifier pode ser nil (sem entrega em tempo real).
func NewUseCase(
	txRunner TxRunner,
	notifier LowStockNotifier,
	lowStockThreshold int64,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		notifier:  notifier,
		threshold: lowStockThreshold,
		log:       log,
	}
}

// lowStockCrossing guarda os dados do cruzamento do limiar detectado dentro
// da transação, para publicar o evento só depois do commit.
type lowStockCrossing struct {
	equipmentID string
	name        string
	quantity    int64
}

// RegisterMovement valida e registra uma movimentação: calcula o delta pela
// tabela de status, verifica a precondição de estoque e aplica, de forma
// atômica, a atualização do registro e o lançamento no livro.
func (uc *UseCase) RegisterMovement(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*entity.Movement, error) {
	if in.EquipmentID == "" || !entity.ValidStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	mov := &entity.Movement{
		ID:                uuid.New().String(),
		EquipmentID:       in.EquipmentID,
		Status:            in.Status,
		Quantity:          in.Quantity,
		LocationID:        in.LocationID,
		SectorID:          in.SectorID,
		ResponsiblePerson: in.ResponsiblePerson,
		DeliveredBy:       in.DeliveredBy,
		ReceivedBy:        in.ReceivedBy,
		Notes:             in.Notes,
		CreatedAt:         time.Now(),
		CreatedBy:         userID,
	}

	var crossing *lowStockCrossing
	err := uc.runWithRetry(ctx, func(
		equipRepo repository.EquipmentRepository,
		movRepo repository.MovementRepository,
		notifRepo repository.NotificationRepository,
	) error {
		crossing = nil
		c, err := uc.applyMovement(ctx, equipRepo, movRepo, notifRepo, mov)
		if err != nil {
			return err
		}
		crossing = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishAlert(ctx, crossing)
	return mov, nil
}

// applyMovement aplica um lançamento dentro da transação: bloqueia a linha do
// equipamento, valida a precondição de estoque, atualiza o registro e grava no
// livro. Devolve o cruzamento do limiar se o movimento o causou.
func (uc *UseCase) applyMovement(
	ctx context.Context,
	equipRepo repository.EquipmentRepository,
	movRepo repository.MovementRepository,
	notifRepo repository.NotificationRepository,
	mov *entity.Movement,
) (*lowStockCrossing, error) {
	eq, err := equipRepo.GetForUpdate(ctx, mov.EquipmentID)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, domain.ErrNotFound
	}

	delta := entity.QuantityDelta(mov.Status, mov.Quantity)
	newQty := eq.AvailableQuantity + delta
	if newQty < 0 {
		return nil, domain.ErrInsufficientStock
	}
	if delta != 0 {
		if err := equipRepo.UpdateQuantity(ctx, eq.ID, newQty); err != nil {
			return nil, err
		}
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}

	if delta < 0 && uc.crossedThreshold(eq.AvailableQuantity, newQty) {
		c := &lowStockCrossing{equipmentID: eq.ID, name: eq.Name, quantity: newQty}
		return c, uc.persistAlert(ctx, notifRepo, c)
	}
	return nil, nil
}

// EditMovement reaplica a reconciliação de um lançamento existente: reverte o
// delta original, aplica o novo e atualiza status/quantidade/descritivos na
// mesma transação. Edição sem mudança de status/quantidade não altera estoque.
func (uc *UseCase) EditMovement(ctx context.Context, recordID string, in dto.EditMovementRequest) (*entity.Movement, error) {
	if !entity.ValidStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var updated *entity.Movement
	var crossing *lowStockCrossing
	err := uc.runWithRetry(ctx, func(
		equipRepo repository.EquipmentRepository,
		movRepo repository.MovementRepository,
		notifRepo repository.NotificationRepository,
	) error {
		existing, err := movRepo.GetByID(ctx, recordID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}

		eq, err := equipRepo.GetForUpdate(ctx, existing.EquipmentID)
		if err != nil {
			return err
		}
		if eq == nil {
			return domain.ErrNotFound
		}

		reverse := -entity.QuantityDelta(existing.Status, existing.Quantity)
		newDelta := entity.QuantityDelta(in.Status, in.Quantity)
		newQty := eq.AvailableQuantity + reverse + newDelta
		if newQty < 0 {
			return domain.ErrInsufficientStock
		}
		if newQty != eq.AvailableQuantity {
			if err := equipRepo.UpdateQuantity(ctx, eq.ID, newQty); err != nil {
				return err
			}
		}

		patch := repository.MovementPatch{
			Status:            in.Status,
			Quantity:          in.Quantity,
			LocationID:        in.LocationID,
			SectorID:          in.SectorID,
			ResponsiblePerson: in.ResponsiblePerson,
			DeliveredBy:       in.DeliveredBy,
			ReceivedBy:        in.ReceivedBy,
			Notes:             in.Notes,
		}
		if err := movRepo.UpdateRecord(ctx, recordID, patch); err != nil {
			return err
		}

		out := *existing
		out.Status = in.Status
		out.Quantity = in.Quantity
		out.LocationID = in.LocationID
		out.SectorID = in.SectorID
		out.ResponsiblePerson = in.ResponsiblePerson
		out.DeliveredBy = in.DeliveredBy
		out.ReceivedBy = in.ReceivedBy
		out.Notes = in.Notes
		updated = &out

		crossing = nil
		if uc.crossedThreshold(eq.AvailableQuantity, newQty) {
			crossing = &lowStockCrossing{equipmentID: eq.ID, name: eq.Name, quantity: newQty}
			return uc.persistAlert(ctx, notifRepo, crossing)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishAlert(ctx, crossing)
	return updated, nil
}

// DeleteMovement exclui um lançamento compensando o registro: o delta
// original é revertido na mesma transação da exclusão, mantendo o invariante
// available_quantity == soma dos deltas. Falha com ErrInsufficientStock se a
// compensação deixaria o estoque negativo (ex.: excluir uma devolução já
// consumida por saídas posteriores).
func (uc *UseCase) DeleteMovement(ctx context.Context, recordID string) error {
	var crossing *lowStockCrossing
	err := uc.runWithRetry(ctx, func(
		equipRepo repository.EquipmentRepository,
		movRepo repository.MovementRepository,
		notifRepo repository.NotificationRepository,
	) error {
		existing, err := movRepo.GetByID(ctx, recordID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}

		eq, err := equipRepo.GetForUpdate(ctx, existing.EquipmentID)
		if err != nil {
			return err
		}
		if eq == nil {
			return domain.ErrNotFound
		}

		reverse := -entity.QuantityDelta(existing.Status, existing.Quantity)
		newQty := eq.AvailableQuantity + reverse
		if newQty < 0 {
			return domain.ErrInsufficientStock
		}
		if reverse != 0 {
			if err := equipRepo.UpdateQuantity(ctx, eq.ID, newQty); err != nil {
				return err
			}
		}
		if err := movRepo.Delete(ctx, recordID); err != nil {
			return err
		}

		// A compensação também pode derrubar o estoque pelo limiar
		// (ex.: excluir uma devolução); o alerta vale aqui igualmente.
		crossing = nil
		if uc.crossedThreshold(eq.AvailableQuantity, newQty) {
			crossing = &lowStockCrossing{equipmentID: eq.ID, name: eq.Name, quantity: newQty}
			return uc.persistAlert(ctx, notifRepo, crossing)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.publishAlert(ctx, crossing)
	return nil
}

// DarBaixa encerra um lançamento pendente de saída/manutenção:
// condição "bom" devolve a quantidade ao estoque (devolucao); "danificado"
// registra a baixa definitiva com delta zero, já que o estoque foi
// decrementado pela saída original. O lançamento pendente é relido dentro da
// transação, então edições/exclusões concorrentes nunca geram baixa com
// status ou quantidade defasados. O lançamento gerado documenta operador,
// data e condição nas observações.
func (uc *UseCase) DarBaixa(ctx context.Context, userID, recordID string, in dto.BaixaRequest) (*entity.Movement, error) {
	if in.Condition != entity.CondicaoBom && in.Condition != entity.CondicaoDanificado {
		return nil, domain.ErrInvalidInput
	}

	var created *entity.Movement
	var crossing *lowStockCrossing
	err := uc.runWithRetry(ctx, func(
		equipRepo repository.EquipmentRepository,
		movRepo repository.MovementRepository,
		notifRepo repository.NotificationRepository,
	) error {
		record, err := movRepo.GetByID(ctx, recordID)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrNotFound
		}
		if record.Status != entity.StatusSaida && record.Status != entity.StatusManutencao {
			// Baixa só encerra exatamente um decremento pendente; nunca conta duas vezes.
			return domain.ErrInvalidInput
		}

		status := entity.StatusDevolucao
		condLabel := "Bom estado"
		if in.Condition == entity.CondicaoDanificado {
			status = entity.StatusDanificado
			condLabel = "Danificado"
		}

		notes := fmt.Sprintf("Baixa realizada em %s. Condição: %s.", time.Now().Format("02/01/2006 15:04:05"), condLabel)
		if strings.TrimSpace(in.Notes) != "" {
			notes += " Observações: " + strings.TrimSpace(in.Notes)
		}

		mov := &entity.Movement{
			ID:                uuid.New().String(),
			EquipmentID:       record.EquipmentID,
			Status:            status,
			Quantity:          record.Quantity,
			ResponsiblePerson: in.Responsible,
			DeliveredBy:       in.Responsible,
			ReceivedBy:        receivedByBaixa,
			Notes:             notes,
			CreatedAt:         time.Now(),
			CreatedBy:         userID,
		}

		created = mov
		crossing = nil
		c, err := uc.applyMovement(ctx, equipRepo, movRepo, notifRepo, mov)
		if err != nil {
			return err
		}
		crossing = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishAlert(ctx, crossing)
	return created, nil
}

// runWithRetry executa fn em transação, repetindo em falhas de serialização
// (ErrConflict) até maxConflictRetries. Erros de cliente nunca são repetidos.
func (uc *UseCase) runWithRetry(ctx context.Context, fn func(
	repository.EquipmentRepository,
	repository.MovementRepository,
	repository.NotificationRepository,
) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = uc.txRunner.Run(ctx, fn)
		if !errors.Is(err, domain.ErrConflict) {
			return err
		}
		if uc.log != nil {
			uc.log.Warn().Int("attempt", attempt+1).Msg("conflito de serialização, repetindo transação")
		}
	}
	return fmt.Errorf("transação abortada após %d tentativas: %w", maxConflictRetries, err)
}

// crossedThreshold detecta o cruzamento descendente do limiar: dispara uma
// única vez por cruzamento, nunca em movimentos que já partem abaixo dele.
func (uc *UseCase) crossedThreshold(oldQty, newQty int64) bool {
	return oldQty > uc.threshold && newQty <= uc.threshold
}

func (uc *UseCase) persistAlert(ctx context.Context, notifRepo repository.NotificationRepository, c *lowStockCrossing) error {
	n := &entity.Notification{
		ID:          uuid.New().String(),
		EquipmentID: c.equipmentID,
		Message:     fmt.Sprintf("Estoque baixo: %s com %d unidade(s) disponível(is)", c.name, c.quantity),
		Quantity:    c.quantity,
		Threshold:   uc.threshold,
		CreatedAt:   time.Now(),
	}
	return notifRepo.Create(ctx, n)
}

// publishAlert publica o evento no canal em tempo real depois do commit.
// Falha de publicação não desfaz a movimentação; apenas registra o aviso.
func (uc *UseCase) publishAlert(ctx context.Context, c *lowStockCrossing) {
	if c == nil || uc.notifier == nil {
		return
	}
	ev := dto.LowStockEvent{
		EquipmentID: c.equipmentID,
		Name:        c.name,
		Quantity:    c.quantity,
		Threshold:   uc.threshold,
		OccurredAt:  time.Now(),
	}
	if err := uc.notifier.Publish(ctx, ev); err != nil && uc.log != nil {
		uc.log.Warn().Err(err).Str("equipment_id", c.equipmentID).Msg("falha ao publicar alerta de estoque baixo")
	}
}
