package service

import (
	"InventoryKeeper/internal/guard"
	"InventoryKeeper/internal/idspec"
	"InventoryKeeper/internal/model"
	"InventoryKeeper/internal/repo"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ItemService — создание и обновление предметов: генерация customId по
// спецификации инвентаря, допуск по версиям и запись значений полей.
type ItemService struct {
	items       repo.ItemRepository
	inventories repo.InventoryRepository
	fields      repo.FieldRepository
	values      repo.ValueRepository
	gen         *idspec.Generator
	strict      bool // строгий режим version guard
	logger      *zap.SugaredLogger
}

func NewItemService(
	items repo.ItemRepository,
	inventories repo.InventoryRepository,
	fields repo.FieldRepository,
	values repo.ValueRepository,
	gen *idspec.Generator,
	strict bool,
	logger *zap.SugaredLogger,
) *ItemService {
	return &ItemService{
		items:       items,
		inventories: inventories,
		fields:      fields,
		values:      values,
		gen:         gen,
		strict:      strict,
		logger:      logger,
	}
}

// Create генерирует customId по актуальной спецификации инвентаря,
// сохраняет предмет и записывает поданные значения полей.
func (s *ItemService) Create(ctx context.Context, ownerID, inventoryID int64, values map[int64]any) (*model.Item, error) {
	inv, err := s.ownedInventory(ctx, ownerID, inventoryID)
	if err != nil {
		return nil, err
	}

	spec := idspec.Parse(inv.IdSpec, s.logger)
	customID, err := s.gen.Generate(ctx, inv.ID, spec)
	if err != nil {
		return nil, fmt.Errorf("generating custom id: %w", err)
	}

	it := &model.Item{InventoryID: inv.ID, CustomID: customID}
	if err := s.items.Create(ctx, it); err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	if err := s.UpsertValues(ctx, inv.ID, it.ID, values); err != nil {
		return nil, err
	}
	return it, nil
}

// Update — допуск по версиям, атомарный инкремент версии и запись значений.
// Возвращает новую версию для заголовка X-Version.
func (s *ItemService) Update(ctx context.Context, ownerID, itemID int64, clientVersion *int64, values map[int64]any) (int64, error) {
	it, err := s.items.GetByID(ctx, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	if _, err := s.ownedInventory(ctx, ownerID, it.InventoryID); err != nil {
		return 0, err
	}

	if err := guard.Admit(clientVersion, &it.Version, s.strict); err != nil {
		return 0, err
	}

	expected := it.Version
	if clientVersion != nil {
		expected = *clientVersion
	}
	newVer, err := s.items.UpdateWithVersion(ctx, itemID, expected, map[string]any{})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	if err := s.UpsertValues(ctx, it.InventoryID, itemID, values); err != nil {
		return 0, err
	}
	return newVer, nil
}

// Get возвращает предмет вместе со значениями полей.
func (s *ItemService) Get(ctx context.Context, ownerID, itemID int64) (*model.Item, error) {
	it, err := s.items.GetByID(ctx, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedInventory(ctx, ownerID, it.InventoryID); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *ItemService) List(ctx context.Context, ownerID, inventoryID int64) ([]model.Item, error) {
	if _, err := s.ownedInventory(ctx, ownerID, inventoryID); err != nil {
		return nil, err
	}
	return s.items.ListByInventory(ctx, inventoryID)
}

// UpsertValues пишет значения по типам полей схемы. Поданные значения для
// неизвестных полей пропускаются без ошибки (клиент мог держать устаревшую
// схему), с записью в лог. Повторная подача той же карты идемпотентна.
func (s *ItemService) UpsertValues(ctx context.Context, inventoryID, itemID int64, values map[int64]any) error {
	if len(values) == 0 {
		return nil
	}

	fields, err := s.fields.ListByInventory(ctx, inventoryID)
	if err != nil {
		return fmt.Errorf("loading field schema: %w", err)
	}
	kinds := make(map[int64]string, len(fields))
	for _, f := range fields {
		kinds[f.ID] = f.Kind
	}

	for fieldID, raw := range values {
		kind, ok := kinds[fieldID]
		if !ok {
			s.logger.Infow("skipping value for unknown field",
				"inventory_id", inventoryID, "field_id", fieldID)
			continue
		}
		row := coerceValue(kind, raw)
		row.ItemID = itemID
		row.FieldID = fieldID
		if err := s.values.Upsert(ctx, &row); err != nil {
			return fmt.Errorf("upserting value for field %d: %w", fieldID, err)
		}
	}
	return nil
}

// ownedInventory — загрузка с проверкой владельца; чужое отвечает как отсутствующее.
func (s *ItemService) ownedInventory(ctx context.Context, ownerID, inventoryID int64) (*model.Inventory, error) {
	inv, err := s.inventories.GetByID(ctx, inventoryID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if inv.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return inv, nil
}
