package repo

import (
	"InventoryKeeper/internal/model"
	"context"

	"gorm.io/gorm"
)

// FieldRepository — доступ к схеме пользовательских полей инвентаря.
type FieldRepository interface {
	Create(ctx context.Context, f *model.CustomField) error
	ListByInventory(ctx context.Context, inventoryID int64) ([]model.CustomField, error)

	// CountByKind — сколько полей данного типа уже есть в инвентаре
	// (для правила "не более 3 одного типа").
	CountByKind(ctx context.Context, inventoryID int64, kind string) (int64, error)
}

type fieldRepo struct {
	db *gorm.DB
}

// NewFieldRepository создаёт реализацию репозитория для CustomField.
func NewFieldRepository(db *gorm.DB) FieldRepository {
	return &fieldRepo{db: db}
}

func (r *fieldRepo) Create(ctx context.Context, f *model.CustomField) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fieldRepo) ListByInventory(ctx context.Context, inventoryID int64) ([]model.CustomField, error) {
	var fields []model.CustomField
	err := r.db.WithContext(ctx).
		Where("inventory_id = ?", inventoryID).
		Order("position ASC, id ASC").
		Find(&fields).Error
	return fields, err
}

func (r *fieldRepo) CountByKind(ctx context.Context, inventoryID int64, kind string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.CustomField{}).
		Where("inventory_id = ? AND kind = ?", inventoryID, kind).
		Count(&cnt).Error
	return cnt, err
}
