package repository

import (
	"context"

	"github.com/gfsilva/setup-rastreio/internal/domain/entity"
)

// NotificationRepository persistência dos alertas de estoque baixo.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	List(ctx context.Context, limit int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id string) error
}
