package tracking_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gfsilva/setup-rastreio/internal/application/dto"
	"github.com/gfsilva/setup-rastreio/internal/domain"
	"github.com/gfsilva/setup-rastreio/internal/domain/entity"
	"github.com/gfsilva/setup-rastreio/internal/domain/repository"
)

// memEquipmentRepo implementação em memória para os testes do motor.
type memEquipmentRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Equipment
}

func newMemEquipmentRepo(items ...*entity.Equipment) *memEquipmentRepo {
	r := &memEquipmentRepo{items: make(map[string]*entity.Equipment)}
	for _, eq := range items {
		cp := *eq
		r.items[eq.ID] = &cp
	}
	return r
}

func (r *memEquipmentRepo) Create(_ context.Context, eq *entity.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *eq
	r.items[eq.ID] = &cp
	return nil
}

func (r *memEquipmentRepo) Update(_ context.Context, eq *entity.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[eq.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *eq
	r.items[eq.ID] = &cp
	return nil
}

func (r *memEquipmentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memEquipmentRepo) GetByID(_ context.Context, id string) (*entity.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	eq, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *eq
	return &cp, nil
}

func (r *memEquipmentRepo) GetBySerial(_ context.Context, serial string) (*entity.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, eq := range r.items {
		if eq.SerialNumber == serial {
			cp := *eq
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memEquipmentRepo) List(_ context.Context, _ repository.EquipmentFilter) ([]*entity.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Equipment, 0, len(r.items))
	for _, eq := range r.items {
		cp := *eq
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memEquipmentRepo) ListLowStock(_ context.Context, threshold int64) ([]*entity.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Equipment
	for _, eq := range r.items {
		if eq.AvailableQuantity <= threshold {
			cp := *eq
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memEquipmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Equipment, error) {
	return r.GetByID(ctx, id)
}

func (r *memEquipmentRepo) UpdateQuantity(_ context.Context, id string, quantity int64) error {
	if quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	eq, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	eq.AvailableQuantity = quantity
	return nil
}

func (r *memEquipmentRepo) quantity(id string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id].AvailableQuantity
}

// memMovementRepo livro de movimentações em memória; atribui Seq na inserção.
type memMovementRepo struct {
	mu      sync.Mutex
	items   []*entity.Movement
	nextSeq int64
}

func newMemMovementRepo() *memMovementRepo { return &memMovementRepo{} }

func (r *memMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextSeq++
	m.Seq = r.nextSeq
	cp := *m
	r.items = append(r.items, &cp)
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.items {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memMovementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Movement
	for i := len(r.items) - 1; i >= 0; i-- {
		m := r.items[i]
		if filter.EquipmentID != "" && m.EquipmentID != filter.EquipmentID {
			continue
		}
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memMovementRepo) UpdateRecord(_ context.Context, id string, patch repository.MovementPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.items {
		if m.ID == id {
			m.Status = patch.Status
			m.Quantity = patch.Quantity
			m.LocationID = patch.LocationID
			m.SectorID = patch.SectorID
			m.ResponsiblePerson = patch.ResponsiblePerson
			m.DeliveredBy = patch.DeliveredBy
			m.ReceivedBy = patch.ReceivedBy
			m.Notes = patch.Notes
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memMovementRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.items {
		if m.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memMovementRepo) CountByStatus(_ context.Context, _, _ *time.Time) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, m := range r.items {
		counts[m.Status]++
	}
	return counts, nil
}

func (r *memMovementRepo) LatestByEquipment(_ context.Context, equipmentID string) (*entity.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].EquipmentID == equipmentID {
			cp := *r.items[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// memNotificationRepo alertas persistidos em memória.
type memNotificationRepo struct {
	mu    sync.Mutex
	items []*entity.Notification
}

func newMemNotificationRepo() *memNotificationRepo { return &memNotificationRepo{} }

func (r *memNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *n
	r.items = append(r.items, &cp)
	return nil
}

func (r *memNotificationRepo) List(_ context.Context, limit int) ([]*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Notification
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *r.items[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memNotificationRepo) MarkRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.items {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memNotificationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// memTxRunner executa fn diretamente contra os repositórios em memória.
// failures simula falhas de serialização antes de permitir o commit;
// before, quando definido, roda antes de fn (escrita concorrente que
// comitou primeiro).
type memTxRunner struct {
	equip    *memEquipmentRepo
	mov      *memMovementRepo
	notif    *memNotificationRepo
	failures int
	before   func()
}

func (tx *memTxRunner) Run(_ context.Context, fn func(
	repository.EquipmentRepository,
	repository.MovementRepository,
	repository.NotificationRepository,
) error) error {
	if tx.failures > 0 {
		tx.failures--
		return fmt.Errorf("%w: simulated serialization failure", domain.ErrConflict)
	}
	if tx.before != nil {
		tx.before()
		tx.before = nil
	}
	return fn(tx.equip, tx.mov, tx.notif)
}

// memNotifier registra os eventos publicados após o commit.
type memNotifier struct {
	mu     sync.Mutex
	events []dto.LowStockEvent
}

func (n *memNotifier) Publish(_ context.Context, ev dto.LowStockEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	return nil
}

func (n *memNotifier) published() []dto.LowStockEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]dto.LowStockEvent(nil), n.events...)
}
