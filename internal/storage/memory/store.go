package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bcnelson/netinventory/internal/domain"
	"github.com/bcnelson/netinventory/internal/storage"
)

// Store is an in-memory implementation of the storage interface for testing.
type Store struct {
	mu sync.RWMutex

	equipment map[int64]*domain.Equipment
	lastID    int64
	now       func() time.Time
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		equipment: make(map[int64]*domain.Equipment),
		now:       time.Now,
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) BeginTx(ctx context.Context) (storage.Transaction, error) {
	return &Tx{store: s}, nil
}

// Tx is a no-op transaction for in-memory store.
type Tx struct {
	store *Store
}

func (t *Tx) Commit() error   { return nil }
func (t *Tx) Rollback() error { return nil }
func (t *Tx) Close() error    { return nil }
func (t *Tx) BeginTx(ctx context.Context) (storage.Transaction, error) {
	return nil, domain.ErrInvalidInput
}

// Forward all Tx methods to the underlying store
func (t *Tx) CreateEquipment(ctx context.Context, in *domain.EquipmentInput) (int64, error) {
	return t.store.CreateEquipment(ctx, in)
}
func (t *Tx) GetEquipment(ctx context.Context, id int64) (*domain.Equipment, error) {
	return t.store.GetEquipment(ctx, id)
}
func (t *Tx) ListEquipment(ctx context.Context, filter domain.EquipmentFilter) ([]*domain.Equipment, error) {
	return t.store.ListEquipment(ctx, filter)
}
func (t *Tx) UpdateEquipment(ctx context.Context, id int64, in *domain.EquipmentInput) error {
	return t.store.UpdateEquipment(ctx, id, in)
}
func (t *Tx) DeleteEquipment(ctx context.Context, id int64) error {
	return t.store.DeleteEquipment(ctx, id)
}
func (t *Tx) CountEquipment(ctx context.Context) (int, error) {
	return t.store.CountEquipment(ctx)
}

// copyEquipment returns a deep copy so callers never share state with the store.
func copyEquipment(eq *domain.Equipment) *domain.Equipment {
	c := *eq
	c.MAC = copyString(eq.MAC)
	c.VLAN = copyString(eq.VLAN)
	c.Location = copyString(eq.Location)
	return &c
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func matches(p *string, want *string) bool {
	if want == nil {
		return true
	}
	return p != nil && *p == *want
}

func (s *Store) CreateEquipment(ctx context.Context, in *domain.EquipmentInput) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	s.equipment[s.lastID] = &domain.Equipment{
		ID:        s.lastID,
		Name:      in.Name,
		Type:      in.Type,
		IP:        in.IP,
		MAC:       copyString(in.MAC),
		VLAN:      copyString(in.VLAN),
		Location:  copyString(in.Location),
		DateAdded: s.now().UTC(),
	}
	return s.lastID, nil
}

func (s *Store) GetEquipment(ctx context.Context, id int64) (*domain.Equipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	eq, ok := s.equipment[id]
	if !ok {
		return nil, &domain.NotFoundError{ID: id}
	}
	return copyEquipment(eq), nil
}

func (s *Store) ListEquipment(ctx context.Context, filter domain.EquipmentFilter) ([]*domain.Equipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*domain.Equipment{}
	for _, eq := range s.equipment {
		if !matches(eq.Location, filter.Location) || !matches(eq.VLAN, filter.VLAN) {
			continue
		}
		result = append(result, copyEquipment(eq))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *Store) UpdateEquipment(ctx context.Context, id int64, in *domain.EquipmentInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	eq, ok := s.equipment[id]
	if !ok {
		return &domain.NotFoundError{ID: id}
	}
	eq.Name = in.Name
	eq.Type = in.Type
	eq.IP = in.IP
	eq.MAC = copyString(in.MAC)
	eq.VLAN = copyString(in.VLAN)
	eq.Location = copyString(in.Location)
	return nil
}

func (s *Store) DeleteEquipment(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.equipment, id)
	return nil
}

func (s *Store) CountEquipment(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.equipment), nil
}

var (
	_ storage.Storage     = (*Store)(nil)
	_ storage.Transaction = (*Tx)(nil)
)
