package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/inventory/internal/inventory/application"
	"github.com/wyfcoding/inventory/internal/inventory/infrastructure/persistence/mysql"
	httpiface "github.com/wyfcoding/inventory/internal/inventory/interfaces/http"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(&mysql.ProductModel{}, &mysql.TransactionModel{}))

	products := mysql.NewProductRepository(gdb)
	transactions := mysql.NewTransactionRepository(gdb)
	svc := application.NewInventoryService(
		application.NewInventoryCommandService(products, transactions, nil, nil),
		application.NewInventoryQueryService(products, transactions),
	)

	router := gin.New()
	httpiface.NewInventoryHandler(svc).RegisterRoutes(router)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createProduct(t *testing.T, router *gin.Engine, name, sku string, initialStock int64) map[string]any {
	t.Helper()
	body, err := json.Marshal(map[string]any{"name": name, "sku": sku, "initialStock": initialStock})
	require.NoError(t, err)
	w := doRequest(router, http.MethodPost, "/products", string(body))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	return product
}

func TestCreateProductEndpoint(t *testing.T) {
	router := newTestRouter(t)

	product := createProduct(t, router, "Widget", "SKU1", 10)
	assert.NotEmpty(t, product["id"])
	assert.Equal(t, "Widget", product["name"])
	assert.Equal(t, "SKU1", product["sku"])
	assert.EqualValues(t, 10, product["stock"])
	assert.Contains(t, product, "createdAt")
	assert.Contains(t, product, "updatedAt")
}

func TestCreateProductEndpointZeroInitialStock(t *testing.T) {
	router := newTestRouter(t)

	product := createProduct(t, router, "Empty Shelf", "SKU-EMPTY", 0)
	assert.EqualValues(t, 0, product["stock"])
}

func TestCreateProductEndpointBadRequest(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"sku":"SKU1","initialStock":1}`},
		{"missing sku", `{"name":"Widget","initialStock":1}`},
		{"missing initialStock", `{"name":"Widget","sku":"SKU1"}`},
		{"negative initialStock", `{"name":"Widget","sku":"SKU1","initialStock":-1}`},
		{"malformed json", `not json`},
		{"empty body", ``},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/products", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateProductEndpointDuplicateSKU(t *testing.T) {
	router := newTestRouter(t)
	createProduct(t, router, "Widget", "SKU1", 1)

	w := doRequest(router, http.MethodPost, "/products", `{"name":"Gadget","sku":"SKU1","initialStock":1}`)
	require.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SKU must be unique", resp["message"])
}

func TestIncreaseStockEndpoint(t *testing.T) {
	router := newTestRouter(t)
	product := createProduct(t, router, "Widget", "SKU1", 10)
	id := product["id"].(string)

	w := doRequest(router, http.MethodPost, "/products/"+id+"/increase", `{"quantity":5}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.EqualValues(t, 15, updated["stock"])
}

func TestDecreaseStockEndpoint(t *testing.T) {
	router := newTestRouter(t)
	product := createProduct(t, router, "Widget", "SKU1", 10)
	id := product["id"].(string)

	w := doRequest(router, http.MethodPost, "/products/"+id+"/decrease", `{"quantity":4}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.EqualValues(t, 6, updated["stock"])
}

func TestDecreaseStockEndpointInsufficient(t *testing.T) {
	router := newTestRouter(t)
	product := createProduct(t, router, "Widget", "SKU1", 3)
	id := product["id"].(string)

	w := doRequest(router, http.MethodPost, "/products/"+id+"/decrease", `{"quantity":4}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Insufficient stock", resp["message"])
}

func TestAdjustStockEndpointUnknownProduct(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/products/PRD-missing/increase", `{"quantity":1}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Product not found", resp["message"])

	w = doRequest(router, http.MethodPost, "/products/PRD-missing/decrease", `{"quantity":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdjustStockEndpointBadQuantity(t *testing.T) {
	router := newTestRouter(t)
	product := createProduct(t, router, "Widget", "SKU1", 10)
	id := product["id"].(string)

	cases := []struct {
		name string
		body string
	}{
		{"zero", `{"quantity":0}`},
		{"negative", `{"quantity":-1}`},
		{"fractional", `{"quantity":1.5}`},
		{"non-numeric string", `{"quantity":"abc"}`},
		{"boolean", `{"quantity":true}`},
		{"missing", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/products/"+id+"/increase", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAdjustStockEndpointNumericStringQuantity(t *testing.T) {
	router := newTestRouter(t)
	product := createProduct(t, router, "Widget", "SKU1", 10)
	id := product["id"].(string)

	w := doRequest(router, http.MethodPost, "/products/"+id+"/increase", `{"quantity":"5"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.EqualValues(t, 15, updated["stock"])
}

func TestGetProductEndpoint(t *testing.T) {
	router := newTestRouter(t)
	product := createProduct(t, router, "Widget", "SKU1", 10)
	id := product["id"].(string)

	require.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, "/products/"+id+"/increase", `{"quantity":5}`).Code)
	require.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, "/products/"+id+"/decrease", `{"quantity":3}`).Code)

	w := doRequest(router, http.MethodGet, "/products/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	var summary map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, id, summary["id"])
	assert.Equal(t, "Widget", summary["name"])
	assert.Equal(t, "SKU1", summary["sku"])
	assert.EqualValues(t, 12, summary["currentStock"])
	assert.EqualValues(t, 5, summary["totalIncreased"])
	assert.EqualValues(t, 3, summary["totalDecreased"])
}

func TestGetProductEndpointUnknown(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/products/PRD-missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTransactionsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	product := createProduct(t, router, "Widget", "SKU1", 10)
	id := product["id"].(string)

	require.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, "/products/"+id+"/increase", `{"quantity":5}`).Code)
	require.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, "/products/"+id+"/decrease", `{"quantity":3}`).Code)

	w := doRequest(router, http.MethodGet, "/products/"+id+"/transactions", "")
	require.Equal(t, http.StatusOK, w.Code)

	var transactions []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &transactions))
	require.Len(t, transactions, 2)

	// 最近一条在前
	assert.Equal(t, "DECREASE", transactions[0]["type"])
	assert.EqualValues(t, 3, transactions[0]["quantity"])
	assert.Equal(t, "INCREASE", transactions[1]["type"])
	assert.EqualValues(t, 5, transactions[1]["quantity"])
	for _, tx := range transactions {
		assert.NotEmpty(t, tx["id"])
		assert.Equal(t, id, tx["productId"])
		assert.Contains(t, tx, "createdAt")
	}
}

func TestListTransactionsEndpointUnknownProduct(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/products/PRD-missing/transactions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
