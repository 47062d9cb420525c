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

// InventoryService — инвентари и схема их полей. Спецификация customId
// версионируется вместе с инвентарём: изменение спецификации — это
// изменение инвентаря и проходит через version guard.
type InventoryService struct {
	inventories repo.InventoryRepository
	fields      repo.FieldRepository
	strict      bool // строгий режим version guard
	logger      *zap.SugaredLogger
}

func NewInventoryService(inventories repo.InventoryRepository, fields repo.FieldRepository, strict bool, logger *zap.SugaredLogger) *InventoryService {
	return &InventoryService{inventories: inventories, fields: fields, strict: strict, logger: logger}
}

// InventoryUpdate — частичное обновление; nil-поля не трогаются.
type InventoryUpdate struct {
	Title       *string
	Description *string
	IdSpec      []byte // сырой JSON-документ; непустой -> нормализуется через idspec
	HasIdSpec   bool   // различает "не менять" и "заменить на пустую"
}

// Create нормализует спецификацию через idspec.Parse/Marshal (неизвестные
// элементы отбрасываются уже здесь, а не при каждой генерации).
func (s *InventoryService) Create(ctx context.Context, ownerID int64, title, description string, specDoc []byte) (*model.Inventory, error) {
	normalized, err := normalizeSpec(specDoc, s.logger)
	if err != nil {
		return nil, err
	}
	inv := &model.Inventory{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		IdSpec:      normalized,
	}
	if err := s.inventories.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("creating inventory: %w", err)
	}
	return inv, nil
}

// Get возвращает инвентарь владельца; чужие отвечают как отсутствующие.
func (s *InventoryService) Get(ctx context.Context, ownerID, id int64) (*model.Inventory, error) {
	inv, err := s.inventories.GetByID(ctx, id)
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

func (s *InventoryService) List(ctx context.Context, ownerID int64) ([]model.Inventory, error) {
	return s.inventories.ListByOwner(ctx, ownerID)
}

// Update применяет частичное обновление под защитой версий.
// clientVersion == nil в мягком режиме допускается (сравнивать нечего);
// гонку всё равно закрывает условный UPDATE. Возвращает новую версию.
func (s *InventoryService) Update(ctx context.Context, ownerID, id int64, clientVersion *int64, upd InventoryUpdate) (int64, error) {
	inv, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return 0, err
	}

	if err := guard.Admit(clientVersion, &inv.Version, s.strict); err != nil {
		return 0, err
	}

	updates := make(map[string]any)
	if upd.Title != nil {
		updates["title"] = *upd.Title
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
	}
	if upd.HasIdSpec {
		normalized, err := normalizeSpec(upd.IdSpec, s.logger)
		if err != nil {
			return 0, err
		}
		updates["id_spec"] = normalized
	}

	expected := inv.Version
	if clientVersion != nil {
		expected = *clientVersion
	}
	newVer, err := s.inventories.UpdateWithVersion(ctx, id, expected, updates)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return newVer, nil
}

// AddField добавляет поле схемы с правилом "не более 3 полей одного типа".
func (s *InventoryService) AddField(ctx context.Context, ownerID, inventoryID int64, f *model.CustomField) (*model.CustomField, error) {
	if !model.ValidFieldKind(f.Kind) {
		return nil, ErrInvalidFieldKind
	}
	if _, err := s.Get(ctx, ownerID, inventoryID); err != nil {
		return nil, err
	}

	cnt, err := s.fields.CountByKind(ctx, inventoryID, f.Kind)
	if err != nil {
		return nil, fmt.Errorf("counting fields of kind %s: %w", f.Kind, err)
	}
	if cnt >= model.MaxFieldsPerKind {
		return nil, ErrFieldLimit
	}

	f.InventoryID = inventoryID
	if err := s.fields.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("creating field: %w", err)
	}
	return f, nil
}

func (s *InventoryService) ListFields(ctx context.Context, ownerID, inventoryID int64) ([]model.CustomField, error) {
	if _, err := s.Get(ctx, ownerID, inventoryID); err != nil {
		return nil, err
	}
	return s.fields.ListByInventory(ctx, inventoryID)
}

// normalizeSpec прогоняет документ через Parse/Marshal.
// Пустая спецификация хранится как NULL, а не как "[]".
func normalizeSpec(doc []byte, logger *zap.SugaredLogger) ([]byte, error) {
	elems := idspec.Parse(doc, logger)
	if len(elems) == 0 {
		return nil, nil
	}
	normalized, err := idspec.Marshal(elems)
	if err != nil {
		return nil, fmt.Errorf("normalizing id spec: %w", err)
	}
	return normalized, nil
}
