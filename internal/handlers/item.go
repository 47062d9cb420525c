package handlers

import (
	"InventoryKeeper/internal/guard"
	"InventoryKeeper/internal/model"
	"InventoryKeeper/internal/service"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ItemHandler обрабатывает предметы инвентаря.
type ItemHandler struct {
	ItemService *service.ItemService
	Logger      *zap.SugaredLogger
}

// NewItemHandler создаёт хендлер items
func NewItemHandler(itemService *service.ItemService, logger *zap.SugaredLogger) *ItemHandler {
	return &ItemHandler{ItemService: itemService, Logger: logger}
}

type itemRequest struct {
	Version *int64        `json:"version,omitempty"`
	Values  map[int64]any `json:"values,omitempty"` // JSON-ключи — id полей
}

func itemView(it *model.Item) map[string]any {
	view := map[string]any{
		"id":           it.ID,
		"inventory_id": it.InventoryID,
		"custom_id":    it.CustomID,
		"version":      it.Version,
		"created_at":   it.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":   it.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if it.Values != nil {
		values := make(map[int64]any, len(it.Values))
		for _, v := range it.Values {
			values[v.FieldID] = valueView(v)
		}
		view["values"] = values
	}
	return view
}

// valueView отдаёт единственный заполненный слот значения.
func valueView(v model.ItemValue) any {
	switch {
	case v.StringValue != nil:
		return *v.StringValue
	case v.TextValue != nil:
		return *v.TextValue
	case v.NumericValue != nil:
		return *v.NumericValue
	case v.LinkValue != nil:
		return *v.LinkValue
	case v.BoolValue != nil:
		return *v.BoolValue
	}
	return nil
}

// Create создаёт предмет: customId генерируется по спецификации инвентаря.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	invID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req itemRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
	}

	it, err := h.ItemService.Create(r.Context(), userID, invID, req.Values)
	if err != nil {
		h.Logger.Errorw("Item create: service error", "user_id", userID, "inventory_id", invID, "error", err)
		writeServiceError(w, err)
		return
	}

	setVersionHeader(w, it.Version)
	writeJSON(w, http.StatusCreated, itemView(it))
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	invID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	items, err := h.ItemService.List(r.Context(), userID, invID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	views := make([]map[string]any, 0, len(items))
	for i := range items {
		views = append(views, itemView(&items[i]))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	it, err := h.ItemService.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	setVersionHeader(w, it.Version)
	writeJSON(w, http.StatusOK, itemView(it))
}

// Update — обновление значений под version guard; новая версия уходит
// клиенту в X-Version, чтобы следующий его запрос остался допустимым.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	clientVersion := guard.VersionFromRequest(r, req.Version)
	newVer, err := h.ItemService.Update(r.Context(), userID, id, clientVersion, req.Values)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	setVersionHeader(w, newVer)
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "version": newVer})
}
