package handlers

import (
	"InventoryKeeper/internal/guard"
	"InventoryKeeper/internal/middleware"
	"InventoryKeeper/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// requireUser достаёт user_id из контекста; без него — 401.
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

// pathID разбирает числовой параметр пути; мусор — 400.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeJSON сериализует ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// setVersionHeader сообщает клиенту версию после мутации;
// клиент обязан вернуть её в следующем изменяющем запросе.
func setVersionHeader(w http.ResponseWriter, version int64) {
	w.Header().Set(guard.VersionHeader, strconv.FormatInt(version, 10))
}

// writeServiceError — единое отображение доменных ошибок в HTTP-статусы.
// Конфликт версий отличим от "не найдено": клиент выбирает между
// перечитать-и-повторить и прекратить.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, guard.ErrVersionConflict):
		http.Error(w, "version conflict", http.StatusConflict)
	case errors.Is(err, service.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidFieldKind), errors.Is(err, service.ErrFieldLimit):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
