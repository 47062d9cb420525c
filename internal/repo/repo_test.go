package repo

import (
	"InventoryKeeper/internal/model"
	"fmt"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB инициализирует in-memory SQLite (modernc.org/sqlite) для тестов
// репозитория. Имя БД включает имя теста, чтобы тесты не делили состояние.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	// Миграции для всех моделей, используемых в репозиториях
	if err := db.AutoMigrate(
		&model.User{},
		&model.Inventory{},
		&model.CustomField{},
		&model.Item{},
		&model.ItemValue{},
	); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

// mkInventory — хелпер: пользователь + инвентарь с заданной спецификацией.
func mkInventory(t *testing.T, db *gorm.DB, spec []byte) *model.Inventory {
	t.Helper()
	u := model.User{Login: "owner-" + t.Name(), Password: "x"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	inv := model.Inventory{OwnerID: u.ID, Title: "test inventory", IdSpec: spec}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("failed to create inventory: %v", err)
	}
	return &inv
}

// mkInventoryTitled — ещё один инвентарь того же владельца.
func mkInventoryTitled(t *testing.T, db *gorm.DB, ownerID int64, title string) *model.Inventory {
	t.Helper()
	inv := model.Inventory{OwnerID: ownerID, Title: title}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("failed to create inventory %q: %v", title, err)
	}
	return &inv
}
