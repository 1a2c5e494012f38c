package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gfsilva/setup-rastreio/internal/domain"
	"github.com/gfsilva/setup-rastreio/internal/domain/entity"
	"github.com/gfsilva/setup-rastreio/internal/domain/repository"
	"github.com/gfsilva/setup-rastreio/pkg/normalize"
)

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

// EquipmentRepo implementação de EquipmentRepository sobre PostgreSQL
// (usável com pool ou tx).
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

const equipmentColumns = `id, name, serial_number, category_id, location_id,
	available_quantity, description, image_url, created_by, created_at, updated_at`

// Create persiste um equipamento novo. name_normalized guarda o nome sem
// acentos e em minúsculas para a busca do listado.
func (r *EquipmentRepo) Create(ctx context.Context, eq *entity.Equipment) error {
	if eq.ID == "" {
		eq.ID = uuid.New().String()
	}
	query := `
		INSERT INTO equipments (id, name, name_normalized, serial_number, category_id, location_id,
			available_quantity, description, image_url, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())`
	_, err := r.q.Exec(ctx, query,
		eq.ID, eq.Name, normalize.Search(eq.Name), nullIfEmpty(eq.SerialNumber),
		nullIfEmpty(eq.CategoryID), nullIfEmpty(eq.LocationID),
		eq.AvailableQuantity, eq.Description, eq.ImageURL, nullIfEmpty(eq.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create equipment: %w", err)
	}
	return nil
}

// Update atualiza os campos descritivos. available_quantity NÃO é tocado
// aqui; só UpdateQuantity (motor de reconciliação) pode alterá-lo.
func (r *EquipmentRepo) Update(ctx context.Context, eq *entity.Equipment) error {
	query := `
		UPDATE equipments
		SET name = $2, name_normalized = $3, serial_number = $4, category_id = $5,
			location_id = $6, description = $7, image_url = $8, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		eq.ID, eq.Name, normalize.Search(eq.Name), nullIfEmpty(eq.SerialNumber),
		nullIfEmpty(eq.CategoryID), nullIfEmpty(eq.LocationID),
		eq.Description, eq.ImageURL,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update equipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove o equipamento. Os movimentos ficam (a FK é ON DELETE SET NULL
// no livro para preservar o histórico).
func (r *EquipmentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM equipments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete equipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtém um equipamento por ID.
func (r *EquipmentRepo) GetByID(ctx context.Context, id string) (*entity.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipments WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetBySerial obtém um equipamento pelo número de série.
func (r *EquipmentRepo) GetBySerial(ctx context.Context, serial string) (*entity.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipments WHERE serial_number = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, serial))
}

// List lista equipamentos com filtros opcionais. A busca por nome compara
// contra name_normalized (sem acentos, minúsculas).
func (r *EquipmentRepo) List(ctx context.Context, filter repository.EquipmentFilter) ([]*entity.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipments WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.Search != "" {
		query += fmt.Sprintf(" AND name_normalized LIKE $%d", pos)
		args = append(args, "%"+filter.Search+"%")
		pos++
	}
	if filter.CategoryID != "" {
		query += fmt.Sprintf(" AND category_id = $%d", pos)
		args = append(args, filter.CategoryID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list equipments: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListLowStock devolve os equipamentos com estoque no limiar ou abaixo.
func (r *EquipmentRepo) ListLowStock(ctx context.Context, threshold int64) ([]*entity.Equipment, error) {
	query := `SELECT ` + equipmentColumns + `
		FROM equipments WHERE available_quantity <= $1
		ORDER BY available_quantity ASC, name ASC`
	rows, err := r.q.Query(ctx, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// GetForUpdate obtém o equipamento bloqueando a linha (SELECT FOR UPDATE).
// Usar somente dentro de transação.
func (r *EquipmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipments WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// UpdateQuantity sobrescreve available_quantity. Quantidade negativa é
// rejeitada antes de tocar o banco.
func (r *EquipmentRepo) UpdateQuantity(ctx context.Context, id string, quantity int64) error {
	if quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE equipments SET available_quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepo) scanOne(row pgx.Row) (*entity.Equipment, error) {
	var eq entity.Equipment
	var serial, categoryID, locationID, createdBy *string
	err := row.Scan(
		&eq.ID, &eq.Name, &serial, &categoryID, &locationID,
		&eq.AvailableQuantity, &eq.Description, &eq.ImageURL, &createdBy,
		&eq.CreatedAt, &eq.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get equipment: %w", err)
	}
	eq.SerialNumber = deref(serial)
	eq.CategoryID = deref(categoryID)
	eq.LocationID = deref(locationID)
	eq.CreatedBy = deref(createdBy)
	return &eq, nil
}

func (r *EquipmentRepo) scanMany(rows pgx.Rows) ([]*entity.Equipment, error) {
	var list []*entity.Equipment
	for rows.Next() {
		var eq entity.Equipment
		var serial, categoryID, locationID, createdBy *string
		if err := rows.Scan(
			&eq.ID, &eq.Name, &serial, &categoryID, &locationID,
			&eq.AvailableQuantity, &eq.Description, &eq.ImageURL, &createdBy,
			&eq.CreatedAt, &eq.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		eq.SerialNumber = deref(serial)
		eq.CategoryID = deref(categoryID)
		eq.LocationID = deref(locationID)
		eq.CreatedBy = deref(createdBy)
		list = append(list, &eq)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
