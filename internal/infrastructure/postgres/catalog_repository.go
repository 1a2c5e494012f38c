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
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)
var _ repository.LocationRepository = (*LocationRepo)(nil)
var _ repository.SectorRepository = (*SectorRepo)(nil)

// Os três catálogos (categorias, localizações, setores) compartilham o mesmo
// formato: id, name, created_at. catalogTable encapsula o SQL comum.
type catalogTable struct {
	q     Querier
	table string
}

func (t catalogTable) create(ctx context.Context, id *string, name string) error {
	if *id == "" {
		*id = uuid.New().String()
	}
	query := fmt.Sprintf(`INSERT INTO %s (id, name, created_at) VALUES ($1, $2, now())`, t.table)
	if _, err := t.q.Exec(ctx, query, *id, name); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create %s: %w", t.table, err)
	}
	return nil
}

func (t catalogTable) delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t.table)
	tag, err := t.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", t.table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (t catalogTable) getByID(ctx context.Context, id string, name *string, createdAt any) error {
	query := fmt.Sprintf(`SELECT name, created_at FROM %s WHERE id = $1`, t.table)
	err := t.q.QueryRow(ctx, query, id).Scan(name, createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get %s: %w", t.table, err)
	}
	return nil
}

func (t catalogTable) list(ctx context.Context) (pgx.Rows, error) {
	query := fmt.Sprintf(`SELECT id, name, created_at FROM %s ORDER BY name ASC`, t.table)
	rows, err := t.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.table, err)
	}
	return rows, nil
}

// CategoryRepo implementação de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct{ t catalogTable }

// NewCategoryRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{t: catalogTable{q: q, table: "categories"}}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	return r.t.create(ctx, &c.ID, c.Name)
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	c := entity.Category{ID: id}
	if err := r.t.getByID(ctx, id, &c.Name, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.t.list(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// LocationRepo implementação de LocationRepository sobre PostgreSQL.
type LocationRepo struct{ t catalogTable }

// NewLocationRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{t: catalogTable{q: q, table: "locations"}}
}

func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	return r.t.create(ctx, &l.ID, l.Name)
}

func (r *LocationRepo) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	l := entity.Location{ID: id}
	if err := r.t.getByID(ctx, id, &l.Name, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LocationRepo) List(ctx context.Context) ([]*entity.Location, error) {
	rows, err := r.t.list(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// SectorRepo implementação de SectorRepository sobre PostgreSQL.
type SectorRepo struct{ t catalogTable }

// NewSectorRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewSectorRepository(q Querier) *SectorRepo {
	return &SectorRepo{t: catalogTable{q: q, table: "sectors"}}
}

func (r *SectorRepo) Create(ctx context.Context, s *entity.Sector) error {
	return r.t.create(ctx, &s.ID, s.Name)
}

func (r *SectorRepo) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

func (r *SectorRepo) GetByID(ctx context.Context, id string) (*entity.Sector, error) {
	s := entity.Sector{ID: id}
	if err := r.t.getByID(ctx, id, &s.Name, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SectorRepo) List(ctx context.Context) ([]*entity.Sector, error) {
	rows, err := r.t.list(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*entity.Sector
	for rows.Next() {
		var s entity.Sector
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sector: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
