package repository

import (
	"context"

	"github.com/gfsilva/setup-rastreio/internal/domain/entity"
)

// UserRepository define o porto de persistência de usuários.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	UpdateRole(ctx context.Context, id, role string) error
}
