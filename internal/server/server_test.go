package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go-inventory-shop/internal/cache"
	"go-inventory-shop/internal/config"
	"go-inventory-shop/internal/model"
	"go-inventory-shop/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Errors  []string          `json:"errors"`
	Cached  bool              `json:"cached"`
	Total   int               `json:"total"`
	Filters map[string]string `json:"filters"`
	Data    json.RawMessage   `json:"data"`
}

func testConfig() config.Config {
	return config.Config{
		AppName:     "InventoryShop Test",
		Port:        "0",
		Env:         config.EnvProduction,
		CacheTTL:    time.Minute,
		CacheMaxAge: 300,
	}
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	return New(testConfig(), Deps{
		ItemRepo:  repository.NewItemRepo(repository.SampleItems(time.Now().UTC())),
		ListCache: cache.New[[]model.Item](time.Minute),
	})
}

func doRequest(t *testing.T, app *fiber.App, method, target string, body interface{}) (*http.Response, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			encoded, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(encoded)
		}
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed apiResponse
	require.NoError(t, json.Unmarshal(raw, &parsed), string(raw))
	return resp, parsed
}

func decodeItem(t *testing.T, data json.RawMessage) model.Item {
	t.Helper()
	var item model.Item
	require.NoError(t, json.Unmarshal(data, &item))
	return item
}

func decodeItems(t *testing.T, data json.RawMessage) []model.Item {
	t.Helper()
	var items []model.Item
	require.NoError(t, json.Unmarshal(data, &items))
	return items
}

func TestListItems(t *testing.T) {
	app := newTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/api/inventory", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "public, max-age=300", resp.Header.Get("Cache-Control"))
	assert.True(t, body.Success)
	assert.False(t, body.Cached)
	assert.Equal(t, 3, body.Total)
	assert.Len(t, decodeItems(t, body.Data), 3)
}

func TestListItems_FilterByCategoryAndMinPrice(t *testing.T) {
	app := newTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/api/inventory?category=Electronics&minPrice=50", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	items := decodeItems(t, body.Data)
	require.Len(t, items, 1)
	assert.Equal(t, "Laptop Computer", items[0].Name)
	assert.Equal(t, 999.99, items[0].Price)
	assert.Equal(t, map[string]string{"category": "Electronics", "minPrice": "50"}, body.Filters)
}

func TestListItems_ServedFromCacheUntilMutation(t *testing.T) {
	app := newTestApp(t)
	target := "/api/inventory?q=o"

	_, first := doRequest(t, app, http.MethodGet, target, nil)
	assert.False(t, first.Cached)

	_, second := doRequest(t, app, http.MethodGet, target, nil)
	assert.True(t, second.Cached)
	assert.JSONEq(t, string(first.Data), string(second.Data))
	assert.Equal(t, first.Total, second.Total)

	resp, _ := doRequest(t, app, http.MethodPut, "/api/inventory/3", map[string]interface{}{"name": "Cordless Mouse"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, third := doRequest(t, app, http.MethodGet, target, nil)
	assert.False(t, third.Cached)
	assert.Equal(t, "Cordless Mouse", decodeItems(t, third.Data)[2].Name)
}

func TestListItems_ConcurrentCreatesAreAllListed(t *testing.T) {
	app := newTestApp(t)
	const creates = 8

	var wg sync.WaitGroup
	failures := make(chan error, creates*2)
	for i := 0; i < creates; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			body := strings.NewReader(`{"name":"Pen","category":"Office","price":1,"quantity":100}`)
			req := httptest.NewRequest(http.MethodPost, "/api/inventory", body)
			req.Header.Set("Content-Type", "application/json")
			if _, err := app.Test(req, -1); err != nil {
				failures <- err
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/inventory", nil), -1); err != nil {
				failures <- err
			}
		}()
	}
	wg.Wait()
	close(failures)
	for err := range failures {
		require.NoError(t, err)
	}

	_, body := doRequest(t, app, http.MethodGet, "/api/inventory", nil)
	assert.Equal(t, 3+creates, body.Total)
	assert.Len(t, decodeItems(t, body.Data), 3+creates)
}

func TestListItems_SearchQueryTooLong(t *testing.T) {
	app := newTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/api/inventory?q="+strings.Repeat("a", 101), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, body.Success)
	assert.Equal(t, "Search query too long", body.Message)
}

func TestGetItem(t *testing.T) {
	app := newTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/api/inventory/2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Success)
	assert.Equal(t, "Office Chair", decodeItem(t, body.Data).Name)
	assert.Equal(t, "public, max-age=300", resp.Header.Get("Cache-Control"))

	resp, body = doRequest(t, app, http.MethodGet, "/api/inventory/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, body.Success)
	assert.Equal(t, "Item not found", body.Message)

	resp, body = doRequest(t, app, http.MethodGet, "/api/inventory/%20", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid item ID format", body.Message)
}

func TestCreateItem(t *testing.T) {
	app := newTestApp(t)

	resp, body := doRequest(t, app, http.MethodPost, "/api/inventory", map[string]interface{}{
		"name":     "Desk Lamp",
		"category": "Furniture",
		"price":    19.99,
		"quantity": 5,
		"color":    "red",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, body.Success)
	assert.Equal(t, "Item created successfully", body.Message)

	item := decodeItem(t, body.Data)
	assert.Equal(t, "4", item.ID)
	assert.Regexp(t, `^SKU[0-9A-Z]+$`, item.SKU)
	assert.Equal(t, 19.99, item.Price)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, "", item.Description)
	assert.NotContains(t, string(body.Data), "color")

	resp, body = doRequest(t, app, http.MethodGet, "/api/inventory/4", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Desk Lamp", decodeItem(t, body.Data).Name)
}

func TestCreateItem_IDsFollowInsertionOrder(t *testing.T) {
	app := newTestApp(t)
	payload := map[string]interface{}{"name": "Pen", "category": "Office", "price": 1, "quantity": 100}

	var ids []string
	for i := 0; i < 3; i++ {
		_, body := doRequest(t, app, http.MethodPost, "/api/inventory", payload)
		ids = append(ids, decodeItem(t, body.Data).ID)
	}
	assert.Equal(t, []string{"4", "5", "6"}, ids)
}

func TestCreateItem_ValidationFailed(t *testing.T) {
	app := newTestApp(t)

	resp, body := doRequest(t, app, http.MethodPost, "/api/inventory", map[string]interface{}{
		"name":     "",
		"category": "Furniture",
		"price":    -1,
		"quantity": "many",
		"sku":      "has space",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, body.Success)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Equal(t, []string{
		"Name is required and must be a non-empty string",
		"Price must be a valid positive number",
		"Quantity must be a valid non-negative integer",
		"SKU can only contain letters, numbers, underscores, and hyphens",
	}, body.Errors)

	_, list := doRequest(t, app, http.MethodGet, "/api/inventory", nil)
	assert.Equal(t, 3, list.Total)
}

func TestCreateItem_InvalidJSON(t *testing.T) {
	app := newTestApp(t)

	resp, body := doRequest(t, app, http.MethodPost, "/api/inventory", "{not json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid JSON payload", body.Message)
}

func TestUpdateItem_PartialUpdate(t *testing.T) {
	app := newTestApp(t)

	_, before := doRequest(t, app, http.MethodGet, "/api/inventory/2", nil)
	original := decodeItem(t, before.Data)

	resp, body := doRequest(t, app, http.MethodPut, "/api/inventory/2", map[string]interface{}{
		"quantity":  3,
		"id":        "77",
		"createdAt": "2000-01-01T00:00:00Z",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Item updated successfully", body.Message)

	updated := decodeItem(t, body.Data)
	assert.Equal(t, 3, updated.Quantity)
	assert.Equal(t, original.Name, updated.Name)
	assert.Equal(t, original.Price, updated.Price)
	assert.Equal(t, original.SKU, updated.SKU)
	assert.Equal(t, "2", updated.ID)
	assert.True(t, updated.CreatedAt.Equal(original.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(original.UpdatedAt))
}

func TestUpdateItem_Errors(t *testing.T) {
	app := newTestApp(t)

	resp, body := doRequest(t, app, http.MethodPut, "/api/inventory/999", map[string]interface{}{"quantity": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Item not found", body.Message)

	resp, body = doRequest(t, app, http.MethodPut, "/api/inventory/1", map[string]interface{}{"price": 1000000})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"Price must not exceed 999,999"}, body.Errors)

	resp, body = doRequest(t, app, http.MethodPut, "/api/inventory/%20", map[string]interface{}{"quantity": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid item ID format", body.Message)
}

func TestDeleteItem(t *testing.T) {
	app := newTestApp(t)

	resp, body := doRequest(t, app, http.MethodDelete, "/api/inventory/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Success)
	assert.Equal(t, "Item deleted successfully", body.Message)

	resp, _ = doRequest(t, app, http.MethodGet, "/api/inventory/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, list := doRequest(t, app, http.MethodGet, "/api/inventory", nil)
	assert.Equal(t, 2, list.Total)
}

func TestDeleteItem_NotFound(t *testing.T) {
	app := newTestApp(t)

	resp, body := doRequest(t, app, http.MethodDelete, "/api/inventory/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, body.Success)
	assert.Equal(t, "Item not found", body.Message)
}

func TestInventoryStats(t *testing.T) {
	app := newTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/api/inventory/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats model.InventoryStats
	require.NoError(t, json.Unmarshal(body.Data, &stats))
	assert.Equal(t, 3, stats.TotalItems)
	require.Len(t, stats.Categories, 2)
	assert.Equal(t, "Electronics", stats.Categories[0].Category)
	require.Len(t, stats.LowStock, 1)
	assert.Equal(t, "2", stats.LowStock[0].ID)
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, body.Success)
	assert.Equal(t, "Route not found", body.Message)
}

func TestStaticFrontend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>InventoryShop</h1>"), 0o600))

	cfg := testConfig()
	cfg.StaticDir = dir
	app := New(cfg, Deps{
		ItemRepo:  repository.NewItemRepo(nil),
		ListCache: cache.New[[]model.Item](time.Minute),
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	page, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(page), "InventoryShop")
}
