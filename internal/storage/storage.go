package storage

import (
	"context"

	"github.com/bcnelson/netinventory/internal/domain"
)

// Storage defines the interface for the equipment store.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Close closes the storage connection.
	Close() error

	// CreateEquipment inserts a new row and returns its id. The store sets
	// date_added; validation is the caller's responsibility.
	CreateEquipment(ctx context.Context, in *domain.EquipmentInput) (int64, error)
	// GetEquipment returns *domain.NotFoundError when no row has the id.
	GetEquipment(ctx context.Context, id int64) (*domain.Equipment, error)
	// ListEquipment returns the rows matching every non-nil filter field, in id order.
	ListEquipment(ctx context.Context, filter domain.EquipmentFilter) ([]*domain.Equipment, error)
	// UpdateEquipment replaces the six mutable fields. id and date_added never change.
	UpdateEquipment(ctx context.Context, id int64, in *domain.EquipmentInput) error
	// DeleteEquipment removes the row. A missing id is not an error.
	DeleteEquipment(ctx context.Context, id int64) error
	CountEquipment(ctx context.Context) (int, error)

	// Transaction support
	BeginTx(ctx context.Context) (Transaction, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Storage
	Commit() error
	Rollback() error
}
