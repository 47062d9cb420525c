package main

import (
	"InventoryKeeper/internal/config"
	"InventoryKeeper/internal/handlers"
	"InventoryKeeper/internal/idspec"
	"InventoryKeeper/internal/middleware"
	"InventoryKeeper/internal/repo"
	"InventoryKeeper/internal/service"
	"net/http"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	inventoryRepo := repo.NewInventoryRepository(gormDB)
	fieldRepo := repo.NewFieldRepository(gormDB)
	itemRepo := repo.NewItemRepository(gormDB)
	valueRepo := repo.NewValueRepository(gormDB)

	generator := idspec.NewGenerator(repo.NewSequenceSource(inventoryRepo), sugar)

	userService := service.NewUserService(userRepo)
	inventoryService := service.NewInventoryService(inventoryRepo, fieldRepo, cfg.StrictVersions, sugar)
	itemService := service.NewItemService(itemRepo, inventoryRepo, fieldRepo, valueRepo, generator, cfg.StrictVersions, sugar)

	h := handlers.NewHandler(userService, inventoryService, itemService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.DatabaseDSN,
		"StrictVersions", cfg.StrictVersions,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
