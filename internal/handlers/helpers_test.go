package handlers_test

import (
	"InventoryKeeper/internal/config"
	"InventoryKeeper/internal/handlers"
	"InventoryKeeper/internal/idspec"
	"InventoryKeeper/internal/middleware"
	"InventoryKeeper/internal/model"
	"InventoryKeeper/internal/repo"
	"InventoryKeeper/internal/service"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

const testSecret = "test-secret"

// testServer — полный стек над in-memory SQLite: хендлеры ходят через
// настоящие сервисы и репозитории.
type testServer struct {
	router http.Handler
	db     *gorm.DB
}

func newTestServer(t *testing.T, strict bool) *testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{}, &model.Inventory{}, &model.CustomField{}, &model.Item{}, &model.ItemValue{},
	); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}

	logger := zap.NewNop().Sugar()
	cfg := &config.Config{AuthSecret: testSecret, StrictVersions: strict}

	userRepo := repo.NewUserRepository(db)
	invRepo := repo.NewInventoryRepository(db)
	fieldRepo := repo.NewFieldRepository(db)
	itemRepo := repo.NewItemRepository(db)
	valueRepo := repo.NewValueRepository(db)

	gen := idspec.NewGenerator(repo.NewSequenceSource(invRepo), logger)

	userSvc := service.NewUserService(userRepo)
	invSvc := service.NewInventoryService(invRepo, fieldRepo, strict, logger)
	itemSvc := service.NewItemService(itemRepo, invRepo, fieldRepo, valueRepo, gen, strict, logger)

	h := handlers.NewHandler(userSvc, invSvc, itemSvc, logger, cfg)
	return &testServer{router: h.Router, db: db}
}

// mkUser создаёт пользователя напрямую в БД и возвращает его id.
func (s *testServer) mkUser(t *testing.T, login string) int64 {
	t.Helper()
	u := model.User{Login: login, Password: "hash"}
	if err := s.db.Create(&u).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return u.ID
}

func addAuthCookie(t *testing.T, req *http.Request, userID int64) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, testSecret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

// doJSON выполняет запрос с JSON-телом от имени пользователя.
func (s *testServer) doJSON(t *testing.T, method, path string, userID int64, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		addAuthCookie(t, req, userID)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m))
	return m
}
