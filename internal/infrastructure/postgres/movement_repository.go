package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gfsilva/setup-rastreio/internal/domain"
	"github.com/gfsilva/setup-rastreio/internal/domain/entity"
	"github.com/gfsilva/setup-rastreio/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementação do livro de movimentações sobre PostgreSQL
// (usável com pool ou tx). seq é um BIGSERIAL que desempata ordenações por
// created_at.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, seq, equipment_id, status, quantity, location_id, sector_id,
	responsible_person, delivered_by, received_by, notes, created_at, created_by`

// Create persiste um lançamento e devolve em m.Seq o número de inserção
// atribuído pelo banco.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO movements (id, equipment_id, status, quantity, location_id, sector_id,
			responsible_person, delivered_by, received_by, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.EquipmentID, m.Status, m.Quantity,
		nullIfEmpty(m.LocationID), nullIfEmpty(m.SectorID),
		m.ResponsiblePerson, m.DeliveredBy, m.ReceivedBy, m.Notes,
		m.CreatedAt, nullIfEmpty(m.CreatedBy),
	).Scan(&m.Seq)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtém um lançamento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	return scanMovement(r.q.QueryRow(ctx, query, id))
}

// List lista lançamentos com filtros opcionais, do mais recente ao mais
// antigo (created_at DESC com desempate por seq DESC).
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.EquipmentID != "" {
		query += fmt.Sprintf(" AND equipment_id = $%d", pos)
		args = append(args, filter.EquipmentID)
		pos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.SectorID != "" {
		query += fmt.Sprintf(" AND sector_id = $%d", pos)
		args = append(args, filter.SectorID)
		pos++
	}
	if filter.LocationID != "" {
		query += fmt.Sprintf(" AND location_id = $%d", pos)
		args = append(args, filter.LocationID)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, seq DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// UpdateRecord atualiza os campos mutáveis de um lançamento (fluxo de
// edição). created_at e seq nunca mudam.
func (r *MovementRepo) UpdateRecord(ctx context.Context, id string, patch repository.MovementPatch) error {
	query := `
		UPDATE movements
		SET status = $2, quantity = $3, location_id = $4, sector_id = $5,
			responsible_person = $6, delivered_by = $7, received_by = $8, notes = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		id, patch.Status, patch.Quantity,
		nullIfEmpty(patch.LocationID), nullIfEmpty(patch.SectorID),
		patch.ResponsiblePerson, patch.DeliveredBy, patch.ReceivedBy, patch.Notes,
	)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove um lançamento (fluxo de exclusão compensada).
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByStatus conta lançamentos por status no período dado.
func (r *MovementRepo) CountByStatus(ctx context.Context, from, to *time.Time) (map[string]int64, error) {
	query := `SELECT status, count(*) FROM movements WHERE 1=1`
	args := []any{}
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += " GROUP BY status"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()
	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// LatestByEquipment devolve o lançamento mais recente do equipamento
// (nil, nil se não há nenhum).
func (r *MovementRepo) LatestByEquipment(ctx context.Context, equipmentID string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM movements WHERE equipment_id = $1
		ORDER BY created_at DESC, seq DESC LIMIT 1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, equipmentID))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return m, err
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var locationID, sectorID, createdBy *string
	err := row.Scan(
		&m.ID, &m.Seq, &m.EquipmentID, &m.Status, &m.Quantity,
		&locationID, &sectorID, &m.ResponsiblePerson, &m.DeliveredBy,
		&m.ReceivedBy, &m.Notes, &m.CreatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	m.LocationID = deref(locationID)
	m.SectorID = deref(sectorID)
	m.CreatedBy = deref(createdBy)
	return &m, nil
}

func scanMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var locationID, sectorID, createdBy *string
		if err := rows.Scan(
			&m.ID, &m.Seq, &m.EquipmentID, &m.Status, &m.Quantity,
			&locationID, &sectorID, &m.ResponsiblePerson, &m.DeliveredBy,
			&m.ReceivedBy, &m.Notes, &m.CreatedAt, &createdBy,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.LocationID = deref(locationID)
		m.SectorID = deref(sectorID)
		m.CreatedBy = deref(createdBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}
