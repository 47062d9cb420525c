package service

import (
	"InventoryKeeper/internal/model"
	"InventoryKeeper/internal/repo"
	"context"

	"github.com/stretchr/testify/mock"
)

// моки репозиториев для тестов сервисов

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockInventoryRepo struct{ mock.Mock }

func (m *mockInventoryRepo) Create(ctx context.Context, inv *model.Inventory) error {
	return m.Called(ctx, inv).Error(0)
}
func (m *mockInventoryRepo) GetByID(ctx context.Context, id int64) (*model.Inventory, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Inventory); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockInventoryRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Inventory, error) {
	args := m.Called(ctx, ownerID)
	if v, ok := args.Get(0).([]model.Inventory); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockInventoryRepo) UpdateWithVersion(ctx context.Context, id, expectedVersion int64, updates map[string]any) (int64, error) {
	args := m.Called(ctx, id, expectedVersion, updates)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockInventoryRepo) NextSeq(ctx context.Context, inventoryID int64) (int64, error) {
	args := m.Called(ctx, inventoryID)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.InventoryRepository = (*mockInventoryRepo)(nil)

type mockFieldRepo struct{ mock.Mock }

func (m *mockFieldRepo) Create(ctx context.Context, f *model.CustomField) error {
	return m.Called(ctx, f).Error(0)
}
func (m *mockFieldRepo) ListByInventory(ctx context.Context, inventoryID int64) ([]model.CustomField, error) {
	args := m.Called(ctx, inventoryID)
	if v, ok := args.Get(0).([]model.CustomField); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockFieldRepo) CountByKind(ctx context.Context, inventoryID int64, kind string) (int64, error) {
	args := m.Called(ctx, inventoryID, kind)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.FieldRepository = (*mockFieldRepo)(nil)

type mockItemRepo struct{ mock.Mock }

func (m *mockItemRepo) Create(ctx context.Context, it *model.Item) error {
	return m.Called(ctx, it).Error(0)
}
func (m *mockItemRepo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockItemRepo) ListByInventory(ctx context.Context, inventoryID int64) ([]model.Item, error) {
	args := m.Called(ctx, inventoryID)
	if v, ok := args.Get(0).([]model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockItemRepo) UpdateWithVersion(ctx context.Context, id, expectedVersion int64, updates map[string]any) (int64, error) {
	args := m.Called(ctx, id, expectedVersion, updates)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.ItemRepository = (*mockItemRepo)(nil)

type mockValueRepo struct{ mock.Mock }

func (m *mockValueRepo) Upsert(ctx context.Context, v *model.ItemValue) error {
	return m.Called(ctx, v).Error(0)
}
func (m *mockValueRepo) ListByItem(ctx context.Context, itemID int64) ([]model.ItemValue, error) {
	args := m.Called(ctx, itemID)
	if v, ok := args.Get(0).([]model.ItemValue); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.ValueRepository = (*mockValueRepo)(nil)
