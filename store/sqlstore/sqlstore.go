// Package sqlstore is a PageStore backed by SQLite through GORM, used for
// a named page library that other tools can query.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/phanxgames/frameshow/store"
)

// Page is one stored scene document.
type Page struct {
	Name      string `gorm:"primaryKey"`
	Data      []byte `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is a SQLite-backed store.PageStore.
type Store struct {
	db *gorm.DB
}

var _ store.PageStore = (*Store)(nil)

// Open opens or creates the SQLite database at path and migrates the page table.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlstore: path is required")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open %s: %w", path, err)
	}
	if err := setup(db); err != nil {
		closeDB(db)
		return nil, err
	}
	return &Store{db: db}, nil
}

func setup(db *gorm.DB) error {
	if err := db.Exec("PRAGMA journal_mode = WAL;").Error; err != nil {
		return fmt.Errorf("sqlstore: set journal_mode: %w", err)
	}
	if err := db.AutoMigrate(&Page{}); err != nil {
		return fmt.Errorf("sqlstore: migrate: %w", err)
	}
	return nil
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save creates or replaces the page name.
func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}
	if data == nil {
		data = []byte{}
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&Page{Name: name, Data: data}).Error
	if err != nil {
		return fmt.Errorf("sqlstore: save %s: %w", name, err)
	}
	return nil
}

// Load returns the page name.
func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	var p Page
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", store.ErrPageNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlstore: load %s: %w", name, err)
	}
	return p.Data, nil
}

// List returns page names in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	names := []string{}
	err := s.db.WithContext(ctx).Model(&Page{}).Order("name").Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("sqlstore: list: %w", err)
	}
	return names, nil
}

// Delete removes the page name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res := s.db.WithContext(ctx).Where("name = ?", name).Delete(&Page{})
	if res.Error != nil {
		return fmt.Errorf("sqlstore: delete %s: %w", name, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", store.ErrPageNotFound, name)
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return closeDB(s.db)
}
