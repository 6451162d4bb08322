package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/projectblurimedia/Veggie-Tracker/internal/cache"
	"github.com/projectblurimedia/Veggie-Tracker/internal/repository/memory"
	"github.com/projectblurimedia/Veggie-Tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Stats      json.RawMessage `json:"stats"`
	Pagination *struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int64 `json:"totalPages"`
	} `json:"pagination"`
	Error string `json:"error"`
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	noop := cache.NoopStatsCache{}
	router := NewRouter(RouterConfig{
		JWTSecret:      []byte(testSecret),
		AllowedOrigins: []string{"http://localhost:5173"},
	}, Services{
		Customers: service.NewCustomerService(store.Customers(), store.Orders()),
		Orders:    service.NewOrderService(store.Orders(), store.Customers(), store.TxManager(), noop, time.Minute),
		Expenses:  service.NewExpenseService(store.Expenses(), store.TxManager(), noop, time.Minute),
		Items:     service.NewItemService(store.Items()),
		Users:     service.NewUserService(store.Users(), testSecret, time.Hour),
	})

	api := &testAPI{t: t, router: router}
	res := api.do(http.MethodPost, "/api/auth/register", map[string]any{
		"firstname": "Ravi",
		"lastname":  "Kumar",
		"username":  "ravi",
		"password":  "secret1",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, res.Error)

	var auth service.AuthResponse
	require.NoError(t, json.Unmarshal(res.Data, &auth))
	api.token = auth.Token
	return api
}

func (a *testAPI) do(method, path string, body any) envelope {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	assert.Equal(a.t, w.Code, env.StatusCode)
	return env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	api := newTestAPI(t)
	api.token = ""

	res := api.do(http.MethodGet, "/api/customers", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	api.token = "garbage"
	res = api.do(http.MethodGet, "/api/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestLoginAndMe(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(http.MethodPost, "/api/auth/login", map[string]any{"username": "ravi", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "Invalid username or password", res.Error)

	res = api.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	me := decode[service.UserResponse](t, res.Data)
	assert.Equal(t, "ravi", me.Username)
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(http.MethodPost, "/api/customers", map[string]any{
		"uniqueId": "C001",
		"fullName": "Ramesh",
		"phone":    "9876543210",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, res.Error)

	res = api.do(http.MethodPost, "/api/customers", map[string]any{"uniqueId": "C001", "fullName": "Again"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = api.do(http.MethodPost, "/api/orders", map[string]any{
		"customerDetails": map[string]any{"uniqueId": "C001"},
		"date":            "2024-06-01",
		"items": []map[string]any{
			{"name": "Tomato", "quantity": 12, "price": 100},
			{"name": "Onion", "quantity": "0.5", "price": "50.25"},
		},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, res.Error)
	order := decode[service.OrderResponse](t, res.Data)
	assert.Equal(t, "150.25", order.TotalAmount.String())
	assert.Equal(t, "pending", order.PaymentStatus)
	assert.Equal(t, "Ramesh", order.CustomerDetails.FullName)

	res = api.do(http.MethodPost, "/api/orders/"+order.ID.String()+"/payment", map[string]any{"amount": 0})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Valid payment amount is required", res.Error)

	res = api.do(http.MethodPost, "/api/orders/"+order.ID.String()+"/payment", map[string]any{"amount": "0.004"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Payment amount must have at most 2 decimal places", res.Error)

	res = api.do(http.MethodPost, "/api/orders/"+order.ID.String()+"/payment", map[string]any{"amount": "100"})
	require.Equal(t, http.StatusOK, res.StatusCode, res.Error)
	order = decode[service.OrderResponse](t, res.Data)
	assert.Equal(t, "partial", order.PaymentStatus)
	assert.Equal(t, "50.25", order.BalanceAmount.String())

	res = api.do(http.MethodGet, "/api/orders?page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NotNil(t, res.Pagination)
	assert.Equal(t, int64(1), res.Pagination.Total)

	res = api.do(http.MethodGet, "/api/orders/stats", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res = api.do(http.MethodGet, "/api/orders/customer/C001/date/2024-06-01", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, decode[[]service.OrderResponse](t, res.Data), 1)

	res = api.do(http.MethodGet, "/api/orders/date-range?startDate=2024-06-01", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = api.do(http.MethodGet, "/api/customers/status/partial", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	customers := decode[[]map[string]any](t, res.Data)
	require.Len(t, customers, 1)
	assert.Equal(t, "C001", customers[0]["uniqueId"])
	assert.Equal(t, "partial", customers[0]["paymentSummary"])
	assert.NotEmpty(t, res.Stats)

	res = api.do(http.MethodGet, "/api/customers/status/bogus", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	customerID := order.CustomerDetails.ID
	res = api.do(http.MethodDelete, "/api/customers/"+customerID, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = api.do(http.MethodDelete, "/api/orders/"+order.ID.String(), nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res = api.do(http.MethodGet, "/api/orders/"+order.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = api.do(http.MethodDelete, "/api/customers/"+customerID, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestExpenseAndItemRoutes(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(http.MethodPost, "/api/expenses", map[string]any{
		"date":       "2024-06-01",
		"recordType": "purchase",
		"items":      []map[string]any{{"name": "Crates", "quantity": 2, "price": 400}},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, res.Error)
	expense := decode[service.ExpenseResponse](t, res.Data)
	assert.Equal(t, "PURCHASE", expense.RecordType)

	res = api.do(http.MethodGet, "/api/expenses/type/PURCHASE", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, decode[[]service.ExpenseResponse](t, res.Data), 1)

	res = api.do(http.MethodGet, "/api/expenses/summary?startDate=2024-06-01&endDate=2024-06-30", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	summary := decode[map[string]any](t, res.Data)
	assert.Contains(t, summary, "byType")
	assert.Contains(t, summary, "overall")

	res = api.do(http.MethodPost, "/api/items/bulk", map[string]any{"items": []string{"tomato", "onion"}})
	require.Equal(t, http.StatusCreated, res.StatusCode, res.Error)

	res = api.do(http.MethodPost, "/api/items", map[string]any{"name": "TOMATO"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = api.do(http.MethodGet, "/api/items/search?search=tom", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, decode[[]map[string]any](t, res.Data), 1)

	res = api.do(http.MethodPost, "/api/items/bulk", map[string]any{"items": []string{}})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestMalformedBodyIsBadRequest(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/customers", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+api.token)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
