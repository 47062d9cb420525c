package repo

import (
	"InventoryKeeper/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ValueRepository — хранение значений пользовательских полей предметов.
type ValueRepository interface {
	// Upsert пишет одну строку (item_id, field_id), перезаписывая ВСЕ слоты
	// значений: несоответствующие типу поля приходят как NULL и затирают
	// данные прежнего типа. Повторная запись тех же значений идемпотентна.
	Upsert(ctx context.Context, v *model.ItemValue) error

	ListByItem(ctx context.Context, itemID int64) ([]model.ItemValue, error)
}

type valueRepo struct {
	db *gorm.DB
}

// NewValueRepository создаёт реализацию репозитория для ItemValue.
func NewValueRepository(db *gorm.DB) ValueRepository {
	return &valueRepo{db: db}
}

func (r *valueRepo) Upsert(ctx context.Context, v *model.ItemValue) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "item_id"}, {Name: "field_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"string_value", "text_value", "numeric_value", "link_value", "bool_value",
		}),
	}).Create(v).Error
}

func (r *valueRepo) ListByItem(ctx context.Context, itemID int64) ([]model.ItemValue, error) {
	var values []model.ItemValue
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("field_id ASC").
		Find(&values).Error
	return values, err
}
