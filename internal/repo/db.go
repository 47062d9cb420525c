package repo

import (
	"InventoryKeeper/internal/model"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// InitDB открывает соединение и прогоняет миграции моделей.
// postgres-DSN ведёт на боевой драйвер, всё остальное трактуем как путь
// к SQLite-файлу (удобно для локального запуска без БД).
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dial = postgres.Open(dsn)
	} else {
		if dsn == "" {
			dsn = "inventorykeeper.db"
		}
		// driver modernc.org/sqlite, без cgo
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Inventory{},
		&model.CustomField{},
		&model.Item{},
		&model.ItemValue{},
	); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}
