package handlers

import (
	"InventoryKeeper/internal/config"
	"InventoryKeeper/internal/middleware"
	"InventoryKeeper/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	inventoryService *service.InventoryService,
	itemService *service.ItemService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	inventoryHandler := NewInventoryHandler(inventoryService, logger)
	itemHandler := NewItemHandler(itemService, logger)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Get("/api/user/me", userHandler.Me)

	// Inventory routes
	r.Post("/api/inventories", inventoryHandler.Create)
	r.Get("/api/inventories", inventoryHandler.List)
	r.Get("/api/inventories/{id}", inventoryHandler.Get)
	r.Put("/api/inventories/{id}", inventoryHandler.Update)
	r.Post("/api/inventories/{id}/fields", inventoryHandler.AddField)
	r.Get("/api/inventories/{id}/fields", inventoryHandler.ListFields)

	// Item routes
	r.Post("/api/inventories/{id}/items", itemHandler.Create)
	r.Get("/api/inventories/{id}/items", itemHandler.List)
	r.Get("/api/items/{id}", itemHandler.Get)
	r.Put("/api/items/{id}", itemHandler.Update)

	return &Handler{Router: r}
}
