package repo

import (
	"InventoryKeeper/internal/model"
	"context"

	"gorm.io/gorm"
)

// ItemRepository — минимальный контракт доступа к Item для слоя сервиса.
type ItemRepository interface {
	Create(ctx context.Context, it *model.Item) error
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	ListByInventory(ctx context.Context, inventoryID int64) ([]model.Item, error)

	// UpdateWithVersion — атомарный условный UPDATE, см. InventoryRepository.
	UpdateWithVersion(ctx context.Context, id, expectedVersion int64, updates map[string]any) (int64, error)
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepository создаёт реализацию репозитория для Item.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, it *model.Item) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *itemRepo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	var it model.Item
	if err := r.db.WithContext(ctx).Preload("Values").First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) ListByInventory(ctx context.Context, inventoryID int64) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).
		Where("inventory_id = ?", inventoryID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *itemRepo) UpdateWithVersion(ctx context.Context, id, expectedVersion int64, updates map[string]any) (int64, error) {
	return updateWithVersion(ctx, r.db, &model.Item{}, id, expectedVersion, updates)
}
