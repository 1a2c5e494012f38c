package tracking

import (
	"context"
	"sort"
	"time"

	"github.com/gfsilva/setup-rastreio/internal/application/dto"
	"github.com/gfsilva/setup-rastreio/internal/domain/entity"
	"github.com/gfsilva/setup-rastreio/internal/domain/repository"
)

// reportListLimit teto de lançamentos carregados por relatório.
const reportListLimit = 10000

// ReportUseCase é a camada de consulta/relatório: função pura sobre
// snapshots do livro e do registro, nunca muta estado.
type ReportUseCase struct {
	equipRepo repository.EquipmentRepository
	movRepo   repository.MovementRepository
	threshold int64
}

// NewReportUseCase constrói a camada de relatórios.
func NewReportUseCase(equipRepo repository.EquipmentRepository, movRepo repository.MovementRepository, lowStockThreshold int64) *ReportUseCase {
	return &ReportUseCase{equipRepo: equipRepo, movRepo: movRepo, threshold: lowStockThreshold}
}

// StatusCounts conta lançamentos do livro agrupados por status.
func (uc *ReportUseCase) StatusCounts(ctx context.Context, from, to *time.Time) (*dto.StatusCountsDTO, error) {
	counts, err := uc.movRepo.CountByStatus(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.StatusCountsDTO{
		Saida:      counts[entity.StatusSaida],
		Manutencao: counts[entity.StatusManutencao],
		Danificado: counts[entity.StatusDanificado],
		Devolucao:  counts[entity.StatusDevolucao],
	}, nil
}

// MovementReport agrega as movimentações do período: somas de quantidade por
// setor, localização e status, e o responsável que mais solicitou saídas por
// setor (empate: o primeiro encontrado na ordem do livro vence).
func (uc *ReportUseCase) MovementReport(ctx context.Context, filter dto.ReportFilter) (*dto.MovementReportDTO, error) {
	movements, err := uc.movRepo.List(ctx, repository.MovementFilter{
		SectorID:   filter.SectorID,
		LocationID: filter.LocationID,
		From:       filter.From,
		To:         filter.To,
		Limit:      reportListLimit,
	})
	if err != nil {
		return nil, err
	}

	bySector := make(map[string]int64)
	byLocation := make(map[string]int64)
	byStatus := make(map[string]int64)

	// Responsável top por setor, apenas saídas; a ordem de iteração do livro
	// (mais recente primeiro) define o vencedor em caso de empate.
	type topEntry struct {
		responsible string
		quantity    int64
	}
	perSector := make(map[string]map[string]int64)
	sectorOrder := make([]string, 0)

	rows := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		bySector[orFallback(m.SectorID, "sem-setor")] += m.Quantity
		byLocation[orFallback(m.LocationID, "sem-localizacao")] += m.Quantity
		byStatus[m.Status] += m.Quantity

		if m.Status == entity.StatusSaida {
			sector := orFallback(m.SectorID, "sem-setor")
			if _, ok := perSector[sector]; !ok {
				perSector[sector] = make(map[string]int64)
				sectorOrder = append(sectorOrder, sector)
			}
			perSector[sector][orFallback(m.ResponsiblePerson, "Não informado")] += m.Quantity
		}

		rows = append(rows, toMovementResponse(m))
	}

	tops := make([]dto.TopResponsibleDTO, 0, len(perSector))
	for _, sector := range sectorOrder {
		top := topEntry{}
		// Percorre na ordem em que cada responsável apareceu no livro para
		// que o desempate seja determinístico (primeiro encontrado vence).
		seen := make(map[string]bool)
		for _, m := range movements {
			if m.Status != entity.StatusSaida || orFallback(m.SectorID, "sem-setor") != sector {
				continue
			}
			resp := orFallback(m.ResponsiblePerson, "Não informado")
			if seen[resp] {
				continue
			}
			seen[resp] = true
			if qty := perSector[sector][resp]; qty > top.quantity {
				top = topEntry{responsible: resp, quantity: qty}
			}
		}
		tops = append(tops, dto.TopResponsibleDTO{Sector: sector, Responsible: top.responsible, Quantity: top.quantity})
	}
	sort.SliceStable(tops, func(i, j int) bool { return tops[i].Quantity > tops[j].Quantity })

	return &dto.MovementReportDTO{
		Total:           len(movements),
		BySector:        toGroupTotals(bySector),
		ByLocation:      toGroupTotals(byLocation),
		ByStatus:        toGroupTotals(byStatus),
		TopResponsibles: tops,
		Movements:       rows,
	}, nil
}

// LowStock devolve os equipamentos com estoque no limiar configurado ou abaixo.
func (uc *ReportUseCase) LowStock(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	items, err := uc.equipRepo.ListLowStock(ctx, uc.threshold)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItemDTO, 0, len(items))
	for _, eq := range items {
		out = append(out, dto.LowStockItemDTO{
			EquipmentID:       eq.ID,
			Name:              eq.Name,
			SerialNumber:      eq.SerialNumber,
			AvailableQuantity: eq.AvailableQuantity,
			Threshold:         uc.threshold,
		})
	}
	return out, nil
}

// RecentActivity feed das últimas alterações (cadastros e movimentações),
// mais recente primeiro.
func (uc *ReportUseCase) RecentActivity(ctx context.Context, limit int) ([]dto.ActivityEntryDTO, error) {
	if limit <= 0 {
		limit = 20
	}

	movements, err := uc.movRepo.List(ctx, repository.MovementFilter{Limit: limit})
	if err != nil {
		return nil, err
	}
	equipment, err := uc.equipRepo.List(ctx, repository.EquipmentFilter{Limit: limit})
	if err != nil {
		return nil, err
	}

	entries := make([]dto.ActivityEntryDTO, 0, len(movements)+len(equipment))
	for _, m := range movements {
		entries = append(entries, dto.ActivityEntryDTO{
			ID:        m.ID,
			Action:    "Movimentação registrada: " + m.EquipmentID + " - " + m.Status,
			Source:    "tracking",
			UserEmail: m.CreatedBy,
			CreatedAt: m.CreatedAt,
		})
	}
	for _, eq := range equipment {
		entries = append(entries, dto.ActivityEntryDTO{
			ID:        eq.ID,
			Action:    "Equipamento modificado: " + eq.Name,
			Source:    "equipment",
			UserEmail: eq.CreatedBy,
			CreatedAt: eq.UpdatedAt,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].CreatedAt.After(entries[j].CreatedAt) })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:                m.ID,
		EquipmentID:       m.EquipmentID,
		Status:            m.Status,
		Quantity:          m.Quantity,
		LocationID:        m.LocationID,
		SectorID:          m.SectorID,
		ResponsiblePerson: m.ResponsiblePerson,
		DeliveredBy:       m.DeliveredBy,
		ReceivedBy:        m.ReceivedBy,
		Notes:             m.Notes,
		CreatedAt:         m.CreatedAt,
	}
}

func toGroupTotals(totals map[string]int64) []dto.GroupTotalDTO {
	out := make([]dto.GroupTotalDTO, 0, len(totals))
	for name, qty := range totals {
		out = append(out, dto.GroupTotalDTO{Name: name, Quantity: qty})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func orFallback(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
