package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_schema/internal/migrations"
	"github.com/Skotchmaster/shop_schema/internal/models"
	"github.com/Skotchmaster/shop_schema/internal/repo"
	"github.com/Skotchmaster/shop_schema/internal/service"
	pkgdb "github.com/Skotchmaster/shop_schema/pkg/db"
	"github.com/Skotchmaster/shop_schema/pkg/logging"
	"github.com/Skotchmaster/shop_schema/pkg/tokens"
)

var testSecret = []byte("test-secret")

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := pkgdb.Open(context.Background(), pkgdb.Options{DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })
	require.NoError(t, migrations.Migrate(db))

	svc := &service.ShopService{Repo: &repo.GormRepo{DB: db}}
	e := echo.New()
	Register(e, &Deps{ShopHandler: &ShopHTTP{Svc: svc}, DB: db, JWTSecret: testSecret})
	return e
}

func adminToken(t *testing.T, role string) string {
	t.Helper()
	tok, err := tokens.NewAccessToken("1", role, time.Now().Add(time.Hour), testSecret)
	require.NoError(t, err)
	return tok
}

func do(t *testing.T, e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	e := newTestServer(t)

	assert.Equal(t, http.StatusOK, do(t, e, http.MethodGet, "/health/live", "", "").Code)
	assert.Equal(t, http.StatusOK, do(t, e, http.MethodGet, "/health/ready", "", "").Code)
}

func TestCreateUser(t *testing.T) {
	e := newTestServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"username":"abcde","email":"a@b.c"}`, http.StatusCreated},
		{"short username", `{"username":"abcd","email":"x@b.c"}`, http.StatusBadRequest},
		{"bad email", `{"username":"fghij","email":"ab.com"}`, http.StatusBadRequest},
		{"missing fields", `{}`, http.StatusBadRequest},
		{"malformed", `{"username":`, http.StatusBadRequest},
		{"duplicate", `{"username":"abcde","email":"other@b.c"}`, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, http.MethodPost, "/api/v1/users", tt.body, "")
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestUserLifecycle(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/api/v1/users", `{"username":"walker","email":"w@shop.io"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	user := decode[models.User](t, rec)

	rec = do(t, e, http.MethodPatch, fmt.Sprintf("/api/v1/users/%d", user.ID), `{"username":"no"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodPatch, fmt.Sprintf("/api/v1/users/%d", user.ID), `{"email":"walker@shop.io"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "walker@shop.io", decode[models.User](t, rec).Email)

	rec = do(t, e, http.MethodGet, fmt.Sprintf("/api/v1/users/%d/cart", user.ID), "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/cart", user.ID), "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", user.ID), "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, e, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", user.ID), "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/v1/users/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	e := newTestServer(t)
	body := `{"name":"books"}`

	assert.Equal(t, http.StatusUnauthorized, do(t, e, http.MethodPost, "/api/v1/admin/categories", body, "").Code)
	assert.Equal(t, http.StatusForbidden, do(t, e, http.MethodPost, "/api/v1/admin/categories", body, adminToken(t, "user")).Code)
	assert.Equal(t, http.StatusCreated, do(t, e, http.MethodPost, "/api/v1/admin/categories", body, adminToken(t, tokens.RoleAdmin)).Code)
}

func TestCatalogCartAndCheckout(t *testing.T) {
	e := newTestServer(t)
	admin := adminToken(t, tokens.RoleAdmin)

	rec := do(t, e, http.MethodPost, "/api/v1/admin/categories", `{"name":"garden"}`, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	cat := decode[models.Category](t, rec)

	rec = do(t, e, http.MethodPost, "/api/v1/admin/products",
		fmt.Sprintf(`{"name":"rake","description":"metal rake","price":"19.99","quantity":5,"category_id":%d}`, cat.ID), admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	prod := decode[models.Product](t, rec)
	assert.Equal(t, "19.99", prod.Price.StringFixed(2))

	rec = do(t, e, http.MethodPost, "/api/v1/admin/products",
		fmt.Sprintf(`{"name":"rake","description":"again","price":"1","quantity":1,"category_id":%d}`, cat.ID), admin)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/v1/products?page=1&size=10", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[struct {
		Data []models.Product `json:"data"`
		Meta struct {
			Total   int64 `json:"total"`
			HasNext bool  `json:"has_next"`
		} `json:"meta"`
	}](t, rec)
	assert.EqualValues(t, 1, page.Meta.Total)
	assert.False(t, page.Meta.HasNext)
	require.Len(t, page.Data, 1)

	rec = do(t, e, http.MethodGet, "/api/v1/products/search?q=rak", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rake"`)

	rec = do(t, e, http.MethodGet, "/api/v1/products/search", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodPost, "/api/v1/carts", "", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	cart := decode[models.Cart](t, rec)
	assert.Empty(t, cart.Items)

	itemsPath := fmt.Sprintf("/api/v1/carts/%d/items", cart.ID)
	rec = do(t, e, http.MethodPost, itemsPath, fmt.Sprintf(`{"product_id":%d,"quantity":0}`, prod.ID), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodPost, itemsPath, fmt.Sprintf(`{"product_id":%d,"quantity":2}`, prod.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodPost, fmt.Sprintf("/api/v1/carts/%d/checkout", cart.ID), "", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	order := decode[models.Order](t, rec)
	assert.Equal(t, models.OrderStatusNew, order.Status)

	rec = do(t, e, http.MethodPost, fmt.Sprintf("/api/v1/carts/%d/checkout", cart.ID), "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	statusPath := fmt.Sprintf("/api/v1/orders/%d/status", order.ID)
	rec = do(t, e, http.MethodPatch, statusPath, `{"status":"SHIPPED"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodPatch, statusPath, `{"status":"DONE"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.OrderStatusDone, decode[models.Order](t, rec).Status)
}

func TestCreateOrder_DefaultsToNew(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/api/v1/orders", `{}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	order := decode[models.Order](t, rec)
	assert.Equal(t, models.OrderStatusNew, order.Status)

	rec = do(t, e, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", order.ID), "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.OrderStatusNew, decode[models.Order](t, rec).Status)
}

func TestAdminHandlersLogTokenSubject(t *testing.T) {
	e := newTestServer(t)

	var buf bytes.Buffer
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/categories", strings.NewReader(`{"name":"audit"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+adminToken(t, tokens.RoleAdmin))
	req = req.WithContext(logging.IntoContext(req.Context(), logging.NewWithWriter(&buf, "info")))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, buf.String(), `"admin":"1"`)
	assert.Contains(t, buf.String(), "category_create_success")
}
