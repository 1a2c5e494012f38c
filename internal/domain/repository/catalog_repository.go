package repository

import (
	"context"

	"github.com/gfsilva/setup-rastreio/internal/domain/entity"
)

// CategoryRepository catálogo de categorias de equipamento.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
}

// LocationRepository catálogo de localizações físicas.
type LocationRepository interface {
	Create(ctx context.Context, l *entity.Location) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	List(ctx context.Context) ([]*entity.Location, error)
}

// SectorRepository catálogo de setores solicitantes.
type SectorRepository interface {
	Create(ctx context.Context, s *entity.Sector) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Sector, error)
	List(ctx context.Context) ([]*entity.Sector, error)
}
