package mirror

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-mirror/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is a Store backed by one relational table.
type GormStore struct {
	db    *gorm.DB
	table string
}

// NewGormStore creates a store over the given table.
func NewGormStore(db *gorm.DB, table string) *GormStore {
	return &GormStore{db: db, table: table}
}

// Table returns the backing table name.
func (s *GormStore) Table() string {
	return s.table
}

// Migrate creates the table or adds missing columns.
func (s *GormStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Table(s.table).AutoMigrate(&Row{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", s.table, err)
	}
	return s.binaryNames(ctx)
}

// binaryNames makes package names compare byte for byte. MySQL's default collation is
// case-insensitive, which would fold "Rails" and "rails" into one row. SQLite already
// compares with BINARY.
func (s *GormStore) binaryNames(ctx context.Context) error {
	if s.db.Dialector.Name() != "mysql" {
		return nil
	}
	err := s.db.WithContext(ctx).
		Exec("ALTER TABLE ? MODIFY ? VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL",
			clause.Table{Name: s.table}, clause.Column{Name: "name"}).Error
	if err != nil {
		return fmt.Errorf("failed to set binary collation on %s.name: %w", s.table, err)
	}
	return nil
}

// CheckSchema verifies the table carries every column the engine uses.
func (s *GormStore) CheckSchema(ctx context.Context) error {
	missing, err := database.MissingColumns(s.db.WithContext(ctx), s.table, Columns...)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns %v", s.table, missing)
	}
	return nil
}

// GetAll implements Store.
func (s *GormStore) GetAll(ctx context.Context) (map[string][]string, error) {
	var rows []Row
	if err := s.db.WithContext(ctx).Table(s.table).Select("name", "versions").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", s.table, err)
	}

	all := make(map[string][]string, len(rows))
	for _, row := range rows {
		all[row.Name] = decodeVersions(row.Versions)
	}
	return all, nil
}

// Get implements Store.
func (s *GormStore) Get(ctx context.Context, name string) ([]string, error) {
	var row Row
	err := s.db.WithContext(ctx).Table(s.table).Select("name", "versions").Where("name = ?", name).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s row %s: %w", s.table, name, err)
	}
	return decodeVersions(row.Versions), nil
}

// Set implements Store.
func (s *GormStore) Set(ctx context.Context, name string, versions []string) error {
	row := Row{
		Name:      name,
		Versions:  encodeVersions(versions),
		UpdatedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Table(s.table).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"versions", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to write %s row %s: %w", s.table, name, err)
	}
	return nil
}

// Delete implements Store.
func (s *GormStore) Delete(ctx context.Context, name string) error {
	if err := s.db.WithContext(ctx).Table(s.table).Where("name = ?", name).Delete(&Row{}).Error; err != nil {
		return fmt.Errorf("failed to delete %s row %s: %w", s.table, name, err)
	}
	return nil
}

// RunInTransaction implements Store.
func (s *GormStore) RunInTransaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, table: s.table})
	})
}
