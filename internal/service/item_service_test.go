package service

import (
	"InventoryKeeper/internal/guard"
	"InventoryKeeper/internal/idspec"
	"InventoryKeeper/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// счётчик, закреплённый за мокнутым инвентарным репозиторием
type seqFromMock struct{ m *mockInventoryRepo }

func (s seqFromMock) Next(ctx context.Context, inventoryID int64) (int64, error) {
	return s.m.NextSeq(ctx, inventoryID)
}

type itemSvcFixture struct {
	items  *mockItemRepo
	invs   *mockInventoryRepo
	fields *mockFieldRepo
	values *mockValueRepo
	svc    *ItemService
}

func newItemFixture(strict bool) *itemSvcFixture {
	f := &itemSvcFixture{
		items:  new(mockItemRepo),
		invs:   new(mockInventoryRepo),
		fields: new(mockFieldRepo),
		values: new(mockValueRepo),
	}
	gen := idspec.NewGenerator(seqFromMock{f.invs}, zap.NewNop().Sugar())
	gen.Now = func() time.Time { return time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC) }
	f.svc = NewItemService(f.items, f.invs, f.fields, f.values, gen, strict, zap.NewNop().Sugar())
	return f
}

func TestItemService_Create_GeneratesCustomID(t *testing.T) {
	f := newItemFixture(false)
	ctx := context.Background()

	inv := &model.Inventory{ID: 7, OwnerID: 1, IdSpec: []byte(`[{"type":"FIXED","text":"EQ-"},{"type":"SEQ"}]`)}
	f.invs.On("GetByID", mock.Anything, int64(7)).Return(inv, nil).Once()
	f.invs.On("NextSeq", mock.Anything, int64(7)).Return(int64(4), nil).Once()
	f.items.On("Create", mock.Anything, mock.MatchedBy(func(it *model.Item) bool {
		return it.InventoryID == 7 && it.CustomID == "EQ-4"
	})).Return(nil).Once()

	it, err := f.svc.Create(ctx, 1, 7, nil)
	assert.NoError(t, err)
	assert.Equal(t, "EQ-4", it.CustomID)
	f.items.AssertExpectations(t)
	f.invs.AssertExpectations(t)
}

func TestItemService_Create_FallbackWithoutSpec(t *testing.T) {
	f := newItemFixture(false)
	inv := &model.Inventory{ID: 7, OwnerID: 1} // спецификация отсутствует
	f.invs.On("GetByID", mock.Anything, int64(7)).Return(inv, nil).Once()
	f.items.On("Create", mock.Anything, mock.MatchedBy(func(it *model.Item) bool {
		return assert.Regexp(t, `^ITEM-[0-9A-F]{6}$`, it.CustomID)
	})).Return(nil).Once()

	_, err := f.svc.Create(context.Background(), 1, 7, nil)
	assert.NoError(t, err)
	// SEQ-элементов нет — счётчик не трогали
	f.invs.AssertNotCalled(t, "NextSeq", mock.Anything, mock.Anything)
}

func TestItemService_Create_WritesSubmittedValues(t *testing.T) {
	f := newItemFixture(false)
	ctx := context.Background()

	inv := &model.Inventory{ID: 7, OwnerID: 1}
	f.invs.On("GetByID", mock.Anything, int64(7)).Return(inv, nil)
	f.items.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Item).ID = 100
	}).Return(nil).Once()
	f.fields.On("ListByInventory", mock.Anything, int64(7)).Return([]model.CustomField{
		{ID: 5, InventoryID: 7, Kind: model.FieldKindText},
	}, nil).Once()
	f.values.On("Upsert", mock.Anything, mock.MatchedBy(func(v *model.ItemValue) bool {
		return v.ItemID == 100 && v.FieldID == 5 && v.StringValue != nil && *v.StringValue == "hello"
	})).Return(nil).Once()

	_, err := f.svc.Create(ctx, 1, 7, map[int64]any{5: "hello"})
	assert.NoError(t, err)
	f.values.AssertExpectations(t)
}

func TestItemService_Update_GuardAndVersionBump(t *testing.T) {
	ctx := context.Background()
	stored := &model.Item{ID: 100, InventoryID: 7, Version: 1}
	inv := &model.Inventory{ID: 7, OwnerID: 1}

	t.Run("matching version admitted", func(t *testing.T) {
		f := newItemFixture(false)
		f.items.On("GetByID", mock.Anything, int64(100)).Return(stored, nil).Once()
		f.invs.On("GetByID", mock.Anything, int64(7)).Return(inv, nil).Once()
		f.items.On("UpdateWithVersion", mock.Anything, int64(100), int64(1), mock.Anything).Return(int64(2), nil).Once()

		newVer, err := f.svc.Update(ctx, 1, 100, ptr(1), nil)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), newVer)
	})

	t.Run("stale version rejected, no mutation", func(t *testing.T) {
		f := newItemFixture(false)
		current := &model.Item{ID: 100, InventoryID: 7, Version: 2}
		f.items.On("GetByID", mock.Anything, int64(100)).Return(current, nil).Once()
		f.invs.On("GetByID", mock.Anything, int64(7)).Return(inv, nil).Once()

		_, err := f.svc.Update(ctx, 1, 100, ptr(1), nil)
		assert.ErrorIs(t, err, guard.ErrVersionConflict)
		f.items.AssertNotCalled(t, "UpdateWithVersion", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("conflict from conditional update passes through", func(t *testing.T) {
		// гонка: между чтением и UPDATE запись успел поменять другой запрос
		f := newItemFixture(false)
		f.items.On("GetByID", mock.Anything, int64(100)).Return(stored, nil).Once()
		f.invs.On("GetByID", mock.Anything, int64(7)).Return(inv, nil).Once()
		f.items.On("UpdateWithVersion", mock.Anything, int64(100), int64(1), mock.Anything).
			Return(int64(0), guard.ErrVersionConflict).Once()

		_, err := f.svc.Update(ctx, 1, 100, ptr(1), nil)
		assert.ErrorIs(t, err, guard.ErrVersionConflict)
	})

	t.Run("missing item is not found, not conflict", func(t *testing.T) {
		f := newItemFixture(false)
		f.items.On("GetByID", mock.Anything, int64(100)).Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := f.svc.Update(ctx, 1, 100, ptr(1), nil)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, guard.ErrVersionConflict)
	})
}

func TestItemService_UpsertValues_SkipsUnknownFields(t *testing.T) {
	f := newItemFixture(false)
	ctx := context.Background()

	f.fields.On("ListByInventory", mock.Anything, int64(7)).Return([]model.CustomField{
		{ID: 5, InventoryID: 7, Kind: model.FieldKindNumber},
	}, nil).Once()
	// значение для несуществующего поля 99 пропускается без ошибки
	f.values.On("Upsert", mock.Anything, mock.MatchedBy(func(v *model.ItemValue) bool {
		return v.FieldID == 5 && v.NumericValue != nil && *v.NumericValue == 42
	})).Return(nil).Once()

	err := f.svc.UpsertValues(ctx, 7, 100, map[int64]any{5: "42", 99: "stale"})
	assert.NoError(t, err)
	f.values.AssertExpectations(t)
	f.values.AssertNumberOfCalls(t, "Upsert", 1)
}

func TestItemService_UpsertValues_EmptyMapNoSchemaLoad(t *testing.T) {
	f := newItemFixture(false)
	assert.NoError(t, f.svc.UpsertValues(context.Background(), 7, 100, nil))
	f.fields.AssertNotCalled(t, "ListByInventory", mock.Anything, mock.Anything)
}
