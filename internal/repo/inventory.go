package repo

import (
	"InventoryKeeper/internal/guard"
	"InventoryKeeper/internal/idspec"
	"InventoryKeeper/internal/model"
	"context"

	"gorm.io/gorm"
)

// InventoryRepository — доступ к инвентарям. Условное обновление и счётчик
// последовательности — единственные места, где версии и номера меняются.
type InventoryRepository interface {
	Create(ctx context.Context, inv *model.Inventory) error
	GetByID(ctx context.Context, id int64) (*model.Inventory, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Inventory, error)

	// UpdateWithVersion выполняет атомарный условный UPDATE:
	// version = version + 1 WHERE id = ? AND version = ?.
	// Ноль затронутых строк у существующей записи — guard.ErrVersionConflict,
	// у несуществующей — gorm.ErrRecordNotFound. Возвращает новую версию.
	UpdateWithVersion(ctx context.Context, id, expectedVersion int64, updates map[string]any) (int64, error)

	// NextSeq атомарно увеличивает счётчик инвентаря и возвращает новое
	// значение. Реализует idspec.SequenceSource: одновременные создания
	// предметов не получают одинаковый номер.
	NextSeq(ctx context.Context, inventoryID int64) (int64, error)
}

type inventoryRepo struct {
	db *gorm.DB
}

// NewInventoryRepository создаёт реализацию репозитория для Inventory.
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db: db}
}

func (r *inventoryRepo) Create(ctx context.Context, inv *model.Inventory) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *inventoryRepo) GetByID(ctx context.Context, id int64) (*model.Inventory, error) {
	var inv model.Inventory
	if err := r.db.WithContext(ctx).First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventoryRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Inventory, error) {
	var invs []model.Inventory
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&invs).Error
	return invs, err
}

func (r *inventoryRepo) UpdateWithVersion(ctx context.Context, id, expectedVersion int64, updates map[string]any) (int64, error) {
	return updateWithVersion(ctx, r.db, &model.Inventory{}, id, expectedVersion, updates)
}

func (r *inventoryRepo) NextSeq(ctx context.Context, inventoryID int64) (int64, error) {
	var seq int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Inventory{}).
			Where("id = ?", inventoryID).
			UpdateColumn("seq", gorm.Expr("seq + 1")) // UpdatedAt не трогаем
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		var inv model.Inventory
		if err := tx.Select("seq").First(&inv, inventoryID).Error; err != nil {
			return err
		}
		seq = inv.Seq
		return nil
	})
	if err != nil {
		return 0, err
	}
	return seq, nil
}

// seqSource адаптирует репозиторий инвентарей к idspec.SequenceSource.
type seqSource struct {
	inventories InventoryRepository
}

// NewSequenceSource — источник счётчика для генератора customId.
func NewSequenceSource(inventories InventoryRepository) idspec.SequenceSource {
	return seqSource{inventories: inventories}
}

func (s seqSource) Next(ctx context.Context, inventoryID int64) (int64, error) {
	return s.inventories.NextSeq(ctx, inventoryID)
}

// updateWithVersion — общий условный UPDATE для версионируемых моделей.
// Проверка и инкремент схлопнуты в один оператор, так что гонка двух
// одновременных запросов с одинаковой версией решается на уровне БД:
// второй не затронет ни одной строки.
func updateWithVersion(ctx context.Context, db *gorm.DB, entity any, id, expectedVersion int64, updates map[string]any) (int64, error) {
	payload := make(map[string]any, len(updates)+1)
	for k, v := range updates {
		payload[k] = v
	}
	payload["version"] = gorm.Expr("version + 1")

	tx := db.WithContext(ctx).Model(entity).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(payload)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if tx.RowsAffected == 0 {
		// различаем "не найдено" и конфликт версий
		var cnt int64
		if err := db.WithContext(ctx).Model(entity).Where("id = ?", id).Count(&cnt).Error; err != nil {
			return 0, err
		}
		if cnt == 0 {
			return 0, gorm.ErrRecordNotFound
		}
		return 0, guard.ErrVersionConflict
	}
	return expectedVersion + 1, nil
}
