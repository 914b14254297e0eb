package sql

import (
	"context"
	"errors"
	"fmt"
	"payroll/internal/entity/db"
	"payroll/internal/storage"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRepository stores whole collection documents in a single table.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository instance
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Read loads the document stored under key.
func (r *GormRepository) Read(ctx context.Context, key string) ([]byte, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	name := strings.TrimSpace(key)
	if name == "" {
		return nil, fmt.Errorf("document key is empty")
	}

	var doc db.Document
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotExist
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return []byte(doc.Body), nil
}

// Write inserts or replaces the document stored under key.
func (r *GormRepository) Write(ctx context.Context, key string, data []byte) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	name := strings.TrimSpace(key)
	if name == "" {
		return fmt.Errorf("document key is empty")
	}

	doc := db.Document{
		Name:      name,
		Body:      string(data),
		UpdatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
	}).Create(&doc).Error
}

var _ storage.Backend = (*GormRepository)(nil)
