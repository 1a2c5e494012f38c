package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gfsilva/setup-rastreio/internal/domain"
	"github.com/gfsilva/setup-rastreio/internal/domain/entity"
	"github.com/gfsilva/setup-rastreio/internal/domain/repository"
)

// CatalogUseCase CRUD dos catálogos de apoio (categorias, localizações, setores).
type CatalogUseCase struct {
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	sectorRepo   repository.SectorRepository
}

// NewCatalogUseCase constrói o caso de uso.
func NewCatalogUseCase(
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
	sectorRepo repository.SectorRepository,
) *CatalogUseCase {
	return &CatalogUseCase{categoryRepo: categoryRepo, locationRepo: locationRepo, sectorRepo: sectorRepo}
}

func (uc *CatalogUseCase) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: time.Now()}
	if err := uc.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return uc.categoryRepo.List(ctx)
}

func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, id string) error {
	return uc.categoryRepo.Delete(ctx, id)
}

func (uc *CatalogUseCase) CreateLocation(ctx context.Context, name string) (*entity.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	l := &entity.Location{ID: uuid.New().String(), Name: name, CreatedAt: time.Now()}
	if err := uc.locationRepo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (uc *CatalogUseCase) ListLocations(ctx context.Context) ([]*entity.Location, error) {
	return uc.locationRepo.List(ctx)
}

func (uc *CatalogUseCase) DeleteLocation(ctx context.Context, id string) error {
	return uc.locationRepo.Delete(ctx, id)
}

func (uc *CatalogUseCase) CreateSector(ctx context.Context, name string) (*entity.Sector, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	s := &entity.Sector{ID: uuid.New().String(), Name: name, CreatedAt: time.Now()}
	if err := uc.sectorRepo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *CatalogUseCase) ListSectors(ctx context.Context) ([]*entity.Sector, error) {
	return uc.sectorRepo.List(ctx)
}

func (uc *CatalogUseCase) DeleteSector(ctx context.Context, id string) error {
	return uc.sectorRepo.Delete(ctx, id)
}
