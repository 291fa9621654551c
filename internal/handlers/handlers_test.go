package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Evaristo-Paulo/api-ecommerce/internal/events"
	"github.com/Evaristo-Paulo/api-ecommerce/internal/handlers"
	authmw "github.com/Evaristo-Paulo/api-ecommerce/internal/middleware/auth"
	"github.com/Evaristo-Paulo/api-ecommerce/internal/models"
	"github.com/Evaristo-Paulo/api-ecommerce/internal/session"
	httpserver "github.com/Evaristo-Paulo/api-ecommerce/internal/transport/http"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
}

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get db handle: %v", err)
	}
	// one connection, so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}, &models.Session{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := InitTestDB(t)

	sessions := &session.Manager{DB: db}
	producer := events.NewProducer(nil)

	deps := httpserver.Deps{
		AuthHandler:    &handlers.AuthHandler{Sessions: sessions, Producer: producer},
		ProductHandler: &handlers.ProductHandler{DB: db, Producer: producer},
		CartHandler:    &handlers.CartHandler{DB: db, Sessions: sessions, Producer: producer},
		Guard:          &authmw.SessionGuard{Sessions: sessions},
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	httpserver.Register(e, &deps)

	return &testEnv{T: t, E: e, DB: db}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, env *testEnv) *http.Cookie {
	t.Helper()

	user := models.User{
		Username: "test_user",
		Password: "password",
	}
	require.NoError(t, env.DB.Create(&user).Error)

	load := map[string]string{
		"username": "test_user",
		"password": "password",
	}
	rec := env.doJSONRequest(http.MethodPost, "/api/login", load)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == authmw.CookieName {
			return ck
		}
	}
	t.Fatal("login response carried no session cookie")
	return nil
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp["message"]
}
