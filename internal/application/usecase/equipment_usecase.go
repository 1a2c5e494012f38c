package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gfsilva/setup-rastreio/internal/application/dto"
	"github.com/gfsilva/setup-rastreio/internal/domain"
	"github.com/gfsilva/setup-rastreio/internal/domain/entity"
	"github.com/gfsilva/setup-rastreio/internal/domain/repository"
	"github.com/gfsilva/setup-rastreio/pkg/normalize"
)

// EquipmentUseCase CRUD do cadastro de equipamentos e consultas por etiqueta.
// A quantidade disponível só é definida aqui no cadastro inicial; depois
// disso, toda mudança passa pelo motor de reconciliação.
type EquipmentUseCase struct {
	equipRepo repository.EquipmentRepository
	movRepo   repository.MovementRepository
}

// NewEquipmentUseCase constrói o caso de uso.
func NewEquipmentUseCase(equipRepo repository.EquipmentRepository, movRepo repository.MovementRepository) *EquipmentUseCase {
	return &EquipmentUseCase{equipRepo: equipRepo, movRepo: movRepo}
}

// Create cadastra um equipamento. Serial duplicado devolve ErrDuplicate.
func (uc *EquipmentUseCase) Create(ctx context.Context, userID string, in dto.SaveEquipmentRequest) (*entity.Equipment, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.AvailableQuantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	now := time.Now()
	eq := &entity.Equipment{
		ID:                uuid.New().String(),
		Name:              strings.TrimSpace(in.Name),
		SerialNumber:      strings.TrimSpace(in.SerialNumber),
		CategoryID:        in.CategoryID,
		LocationID:        in.LocationID,
		AvailableQuantity: in.AvailableQuantity,
		Description:       in.Description,
		ImageURL:          in.ImageURL,
		CreatedBy:         userID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.equipRepo.Create(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

// Update atualiza os campos cadastrais. A quantidade não é tocada aqui:
// alterações de estoque passam pelo motor de reconciliação.
func (uc *EquipmentUseCase) Update(ctx context.Context, id string, in dto.SaveEquipmentRequest) (*entity.Equipment, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	eq, err := uc.equipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, domain.ErrNotFound
	}
	eq.Name = strings.TrimSpace(in.Name)
	eq.SerialNumber = strings.TrimSpace(in.SerialNumber)
	eq.CategoryID = in.CategoryID
	eq.LocationID = in.LocationID
	eq.Description = in.Description
	eq.ImageURL = in.ImageURL
	eq.UpdatedAt = time.Now()
	if err := uc.equipRepo.Update(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

// Delete remove um equipamento do cadastro.
func (uc *EquipmentUseCase) Delete(ctx context.Context, id string) error {
	eq, err := uc.equipRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if eq == nil {
		return domain.ErrNotFound
	}
	return uc.equipRepo.Delete(ctx, id)
}

// GetByID busca um equipamento; nil, ErrNotFound se não existe.
func (uc *EquipmentUseCase) GetByID(ctx context.Context, id string) (*entity.Equipment, error) {
	eq, err := uc.equipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, domain.ErrNotFound
	}
	return eq, nil
}

// List lista equipamentos; a busca por nome é normalizada sem acentos
// ("Periférico" casa com "periferico").
func (uc *EquipmentUseCase) List(ctx context.Context, search, categoryID string, page dto.PageRequest) ([]*entity.Equipment, error) {
	page.DefaultPage()
	return uc.equipRepo.List(ctx, repository.EquipmentFilter{
		Search:     normalize.Search(search),
		CategoryID: categoryID,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
}

// exportListLimit teto de linhas para exportações e folhas de etiquetas.
const exportListLimit = 10000

// ListAll lista sem paginação (até o teto de exportação); usado pelo CSV
// de inventário e pela folha de etiquetas.
func (uc *EquipmentUseCase) ListAll(ctx context.Context, search, categoryID string) ([]*entity.Equipment, error) {
	return uc.equipRepo.List(ctx, repository.EquipmentFilter{
		Search:     normalize.Search(search),
		CategoryID: categoryID,
		Limit:      exportListLimit,
	})
}

// LookupBySerial resolve um serial lido de etiqueta (cru, "serial: X" ou JSON)
// para o equipamento correspondente, com os descritivos do último lançamento
// para pré-preenchimento do formulário de movimentação.
func (uc *EquipmentUseCase) LookupBySerial(ctx context.Context, raw string) (*dto.LookupResponse, error) {
	serial := ParseSerial(raw)
	if serial == "" {
		return nil, domain.ErrInvalidInput
	}
	eq, err := uc.equipRepo.GetBySerial(ctx, serial)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, domain.ErrNotFound
	}

	resp := &dto.LookupResponse{Equipment: ToEquipmentResponse(eq)}
	latest, err := uc.movRepo.LatestByEquipment(ctx, eq.ID)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		resp.Prefill = &dto.MovementPrefill{
			LocationID:        latest.LocationID,
			SectorID:          latest.SectorID,
			ResponsiblePerson: latest.ResponsiblePerson,
			DeliveredBy:       latest.DeliveredBy,
			ReceivedBy:        latest.ReceivedBy,
		}
	}
	return resp, nil
}

// BuildLookupPayload monta o registro codificado na etiqueta QR do
// equipamento. Função pura sobre o snapshot do cadastro.
func BuildLookupPayload(eq *entity.Equipment) dto.LookupPayload {
	return dto.LookupPayload{
		ID:                eq.ID,
		Name:              eq.Name,
		SerialNumber:      eq.SerialNumber,
		CategoryID:        eq.CategoryID,
		LocationID:        eq.LocationID,
		AvailableQuantity: eq.AvailableQuantity,
	}
}

func ToEquipmentResponse(eq *entity.Equipment) dto.EquipmentResponse {
	return dto.EquipmentResponse{
		ID:                eq.ID,
		Name:              eq.Name,
		SerialNumber:      eq.SerialNumber,
		CategoryID:        eq.CategoryID,
		LocationID:        eq.LocationID,
		AvailableQuantity: eq.AvailableQuantity,
		Description:       eq.Description,
		ImageURL:          eq.ImageURL,
		CreatedAt:         eq.CreatedAt,
		UpdatedAt:         eq.UpdatedAt,
	}
}
