package tracking

import (
	"context"

	"github.com/gfsilva/setup-rastreio/internal/application/dto"
	"github.com/gfsilva/setup-rastreio/internal/domain/repository"
)

// HistoryUseCase serve o listado do histórico de movimentações com os nomes
// de equipamento, localização e setor resolvidos (para a tela e o CSV).
type HistoryUseCase struct {
	movRepo      repository.MovementRepository
	equipRepo    repository.EquipmentRepository
	locationRepo repository.LocationRepository
	sectorRepo   repository.SectorRepository
}

// NewHistoryUseCase constrói o caso de uso do histórico.
func NewHistoryUseCase(
	movRepo repository.MovementRepository,
	equipRepo repository.EquipmentRepository,
	locationRepo repository.LocationRepository,
	sectorRepo repository.SectorRepository,
) *HistoryUseCase {
	return &HistoryUseCase{
		movRepo:      movRepo,
		equipRepo:    equipRepo,
		locationRepo: locationRepo,
		sectorRepo:   sectorRepo,
	}
}

// HistoryFilter filtros do listado do histórico.
type HistoryFilter struct {
	EquipmentID string
	Status      string
	SectorID    string
	LocationID  string
	Report      dto.ReportFilter
}

// List devolve os lançamentos na ordem do livro (mais recente primeiro),
// com os nomes resolvidos. Nomes de catálogo são carregados uma vez por
// chamada; equipamentos são resolvidos sob demanda com cache local.
func (uc *HistoryUseCase) List(ctx context.Context, filter HistoryFilter, page dto.PageRequest) ([]dto.MovementResponse, error) {
	movements, err := uc.movRepo.List(ctx, repository.MovementFilter{
		EquipmentID: filter.EquipmentID,
		Status:      filter.Status,
		SectorID:    filter.SectorID,
		LocationID:  filter.LocationID,
		From:        filter.Report.From,
		To:          filter.Report.To,
		Limit:       page.Limit,
		Offset:      page.Offset,
	})
	if err != nil {
		return nil, err
	}

	locations, err := uc.locationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sectors, err := uc.sectorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	locationNames := make(map[string]string, len(locations))
	for _, l := range locations {
		locationNames[l.ID] = l.Name
	}
	sectorNames := make(map[string]string, len(sectors))
	for _, s := range sectors {
		sectorNames[s.ID] = s.Name
	}

	type equipInfo struct {
		name   string
		serial string
	}
	equipCache := make(map[string]equipInfo)

	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		resp := toMovementResponse(m)
		resp.LocationName = locationNames[m.LocationID]
		resp.SectorName = sectorNames[m.SectorID]

		info, ok := equipCache[m.EquipmentID]
		if !ok {
			// Equipamento excluído deixa o lançamento órfão; o histórico
			// continua listável com os campos de equipamento vazios.
			if eq, err := uc.equipRepo.GetByID(ctx, m.EquipmentID); err == nil {
				info = equipInfo{name: eq.Name, serial: eq.SerialNumber}
			}
			equipCache[m.EquipmentID] = info
		}
		resp.EquipmentName = info.name
		resp.SerialNumber = info.serial

		out = append(out, resp)
	}
	return out, nil
}
