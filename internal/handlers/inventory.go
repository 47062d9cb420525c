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

// InventoryHandler обрабатывает инвентари и схему их полей.
type InventoryHandler struct {
	InventoryService *service.InventoryService
	Logger           *zap.SugaredLogger
}

// NewInventoryHandler создаёт хендлер инвентарей
func NewInventoryHandler(inventoryService *service.InventoryService, logger *zap.SugaredLogger) *InventoryHandler {
	return &InventoryHandler{InventoryService: inventoryService, Logger: logger}
}

type inventoryRequest struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	IdSpec      json.RawMessage `json:"id_spec,omitempty"`
	Version     *int64          `json:"version,omitempty"`
}

type fieldRequest struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Position    int    `json:"position"`
	ShowInTable bool   `json:"show_in_table"`
}

func inventoryView(inv *model.Inventory) map[string]any {
	return map[string]any{
		"id":          inv.ID,
		"title":       inv.Title,
		"description": inv.Description,
		"id_spec":     json.RawMessage(inv.IdSpec),
		"version":     inv.Version,
		"created_at":  inv.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":  inv.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func fieldView(f *model.CustomField) map[string]any {
	return map[string]any{
		"id":            f.ID,
		"inventory_id":  f.InventoryID,
		"kind":          f.Kind,
		"name":          f.Name,
		"position":      f.Position,
		"show_in_table": f.ShowInTable,
	}
}

// Create создаёт инвентарь; спецификация customId может прийти сразу.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req inventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == nil || *req.Title == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	desc := ""
	if req.Description != nil {
		desc = *req.Description
	}

	inv, err := h.InventoryService.Create(r.Context(), userID, *req.Title, desc, req.IdSpec)
	if err != nil {
		h.Logger.Errorw("Inventory create: service error", "user_id", userID, "error", err)
		writeServiceError(w, err)
		return
	}

	setVersionHeader(w, inv.Version)
	writeJSON(w, http.StatusCreated, inventoryView(inv))
}

func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	invs, err := h.InventoryService.List(r.Context(), userID)
	if err != nil {
		h.Logger.Errorw("Inventory list: service error", "user_id", userID, "error", err)
		writeServiceError(w, err)
		return
	}

	views := make([]map[string]any, 0, len(invs))
	for i := range invs {
		views = append(views, inventoryView(&invs[i]))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	inv, err := h.InventoryService.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	setVersionHeader(w, inv.Version)
	writeJSON(w, http.StatusOK, inventoryView(inv))
}

// Update — частичное обновление под version guard. Клиентская версия
// приходит в X-Version (приоритет) или в поле тела version.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req inventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	clientVersion := guard.VersionFromRequest(r, req.Version)
	upd := service.InventoryUpdate{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.IdSpec != nil {
		upd.HasIdSpec = true
		upd.IdSpec = req.IdSpec
	}

	newVer, err := h.InventoryService.Update(r.Context(), userID, id, clientVersion, upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	setVersionHeader(w, newVer)
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "version": newVer})
}

// AddField добавляет поле схемы (не более 3 полей одного типа).
func (h *InventoryHandler) AddField(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	invID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req fieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	f := &model.CustomField{
		Kind:        req.Kind,
		Name:        req.Name,
		Position:    req.Position,
		ShowInTable: req.ShowInTable,
	}
	created, err := h.InventoryService.AddField(r.Context(), userID, invID, f)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, fieldView(created))
}

func (h *InventoryHandler) ListFields(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	invID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	fields, err := h.InventoryService.ListFields(r.Context(), userID, invID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	views := make([]map[string]any, 0, len(fields))
	for i := range fields {
		views = append(views, fieldView(&fields[i]))
	}
	writeJSON(w, http.StatusOK, views)
}
