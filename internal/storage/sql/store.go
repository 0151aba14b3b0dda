package sql

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bcnelson/netinventory/internal/domain"
	"github.com/bcnelson/netinventory/internal/storage"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite3/*.sql migrations/postgres/*.sql
var embedMigrations embed.FS

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

const equipmentColumns = `id, name, type, ip, mac, vlan, location, date_added`

// Store implements the storage.Storage interface using SQL.
type Store struct {
	db     *sqlx.DB
	driver string
}

// New creates a new SQL store and brings the schema up to date.
func New(driver, dsn string) (*Store, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// SQLite allows a single writer; one connection keeps writes serialized
	// and makes in-memory DSNs see a single database.
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	// Run migrations
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect(driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db.DB, "migrations/"+driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db, driver: driver}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// BeginTx starts a new transaction.
func (s *Store) BeginTx(ctx context.Context) (storage.Transaction, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	return &Tx{tx: tx, driver: s.driver}, nil
}

// inTx runs fn inside its own transaction. The transaction is always
// released: committed on success, rolled back otherwise.
func (s *Store) inTx(ctx context.Context, fn func(db dbInterface) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Tx wraps a database transaction.
type Tx struct {
	tx     *sqlx.Tx
	driver string
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback rolls back the transaction. Rolling back a committed
// transaction is a no-op.
func (t *Tx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

// Close is a no-op for transactions (they should be committed or rolled back).
func (t *Tx) Close() error {
	return nil
}

// BeginTx is not supported within a transaction.
func (t *Tx) BeginTx(ctx context.Context) (storage.Transaction, error) {
	return nil, fmt.Errorf("nested transactions not supported")
}

// helper to get the correct database interface
type dbInterface interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ============================================
// Equipment
// ============================================

func createEquipment(ctx context.Context, db dbInterface, in *domain.EquipmentInput) (int64, error) {
	var id int64
	err := db.GetContext(ctx, &id, db.Rebind(
		`INSERT INTO equipements (name, type, ip, mac, vlan, location, date_added)
		 VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		in.Name, in.Type, in.IP, in.MAC, in.VLAN, in.Location, time.Now().UTC().Truncate(time.Microsecond))
	if err != nil {
		return 0, fmt.Errorf("inserting equipment: %w", err)
	}
	return id, nil
}

func (s *Store) CreateEquipment(ctx context.Context, in *domain.EquipmentInput) (int64, error) {
	var id int64
	err := s.inTx(ctx, func(db dbInterface) error {
		var err error
		id, err = createEquipment(ctx, db, in)
		return err
	})
	return id, err
}

func (t *Tx) CreateEquipment(ctx context.Context, in *domain.EquipmentInput) (int64, error) {
	return createEquipment(ctx, t.tx, in)
}

func getEquipment(ctx context.Context, db dbInterface, id int64) (*domain.Equipment, error) {
	var eq domain.Equipment
	err := db.GetContext(ctx, &eq, db.Rebind(
		`SELECT `+equipmentColumns+` FROM equipements WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("selecting equipment %d: %w", id, err)
	}
	return &eq, nil
}

func (s *Store) GetEquipment(ctx context.Context, id int64) (*domain.Equipment, error) {
	var eq *domain.Equipment
	err := s.inTx(ctx, func(db dbInterface) error {
		var err error
		eq, err = getEquipment(ctx, db, id)
		return err
	})
	return eq, err
}

func (t *Tx) GetEquipment(ctx context.Context, id int64) (*domain.Equipment, error) {
	return getEquipment(ctx, t.tx, id)
}

func listEquipment(ctx context.Context, db dbInterface, filter domain.EquipmentFilter) ([]*domain.Equipment, error) {
	var query strings.Builder
	query.WriteString(`SELECT ` + equipmentColumns + ` FROM equipements WHERE 1=1`)
	var args []any

	if filter.Location != nil {
		query.WriteString(` AND location = ?`)
		args = append(args, *filter.Location)
	}
	if filter.VLAN != nil {
		query.WriteString(` AND vlan = ?`)
		args = append(args, *filter.VLAN)
	}
	query.WriteString(` ORDER BY id`)

	items := []*domain.Equipment{}
	if err := db.SelectContext(ctx, &items, db.Rebind(query.String()), args...); err != nil {
		return nil, fmt.Errorf("listing equipment: %w", err)
	}
	return items, nil
}

func (s *Store) ListEquipment(ctx context.Context, filter domain.EquipmentFilter) ([]*domain.Equipment, error) {
	var items []*domain.Equipment
	err := s.inTx(ctx, func(db dbInterface) error {
		var err error
		items, err = listEquipment(ctx, db, filter)
		return err
	})
	return items, err
}

func (t *Tx) ListEquipment(ctx context.Context, filter domain.EquipmentFilter) ([]*domain.Equipment, error) {
	return listEquipment(ctx, t.tx, filter)
}

func updateEquipment(ctx context.Context, db dbInterface, id int64, in *domain.EquipmentInput) error {
	result, err := db.ExecContext(ctx, db.Rebind(
		`UPDATE equipements SET name = ?, type = ?, ip = ?, mac = ?, vlan = ?, location = ? WHERE id = ?`),
		in.Name, in.Type, in.IP, in.MAC, in.VLAN, in.Location, id)
	if err != nil {
		return fmt.Errorf("updating equipment %d: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating equipment %d: %w", id, err)
	}
	if rows == 0 {
		return &domain.NotFoundError{ID: id}
	}
	return nil
}

func (s *Store) UpdateEquipment(ctx context.Context, id int64, in *domain.EquipmentInput) error {
	return s.inTx(ctx, func(db dbInterface) error {
		return updateEquipment(ctx, db, id, in)
	})
}

func (t *Tx) UpdateEquipment(ctx context.Context, id int64, in *domain.EquipmentInput) error {
	return updateEquipment(ctx, t.tx, id, in)
}

// deleteEquipment ignores the affected row count: deleting an unknown id succeeds.
func deleteEquipment(ctx context.Context, db dbInterface, id int64) error {
	if _, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM equipements WHERE id = ?`), id); err != nil {
		return fmt.Errorf("deleting equipment %d: %w", id, err)
	}
	return nil
}

func (s *Store) DeleteEquipment(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(db dbInterface) error {
		return deleteEquipment(ctx, db, id)
	})
}

func (t *Tx) DeleteEquipment(ctx context.Context, id int64) error {
	return deleteEquipment(ctx, t.tx, id)
}

func countEquipment(ctx context.Context, db dbInterface) (int, error) {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM equipements`); err != nil {
		return 0, fmt.Errorf("counting equipment: %w", err)
	}
	return count, nil
}

func (s *Store) CountEquipment(ctx context.Context) (int, error) {
	var count int
	err := s.inTx(ctx, func(db dbInterface) error {
		var err error
		count, err = countEquipment(ctx, db)
		return err
	})
	return count, err
}

func (t *Tx) CountEquipment(ctx context.Context) (int, error) {
	return countEquipment(ctx, t.tx)
}

var (
	_ storage.Storage     = (*Store)(nil)
	_ storage.Transaction = (*Tx)(nil)
)
