package usecase

import (
	"context"

	"github.com/gfsilva/setup-rastreio/internal/application/dto"
	"github.com/gfsilva/setup-rastreio/internal/domain/repository"
)

const defaultNotificationLimit = 50

// NotificationUseCase consulta e administra os alertas de estoque baixo.
// A criação acontece dentro do motor de reconciliação, nunca por aqui.
type NotificationUseCase struct {
	notifRepo repository.NotificationRepository
}

// NewNotificationUseCase constrói o caso de uso.
func NewNotificationUseCase(notifRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notifRepo: notifRepo}
}

// List devolve os alertas mais recentes primeiro.
func (uc *NotificationUseCase) List(ctx context.Context, limit int) ([]dto.NotificationResponse, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	items, err := uc.notifRepo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, dto.NotificationResponse{
			ID:          n.ID,
			EquipmentID: n.EquipmentID,
			Message:     n.Message,
			Quantity:    n.Quantity,
			Threshold:   n.Threshold,
			Read:        n.Read,
			CreatedAt:   n.CreatedAt,
		})
	}
	return out, nil
}

// MarkRead marca um alerta como lido.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id string) error {
	return uc.notifRepo.MarkRead(ctx, id)
}
