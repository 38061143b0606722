package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ray-remotestate/tableside/config"
	"github.com/ray-remotestate/tableside/database"
	"github.com/ray-remotestate/tableside/models"
	"github.com/ray-remotestate/tableside/notify"
)

// testHandler covers the validation surface, which never reaches the store.
func testHandler() *Handler {
	cfg := &config.Config{Environment: "development", StorefrontURL: "http://localhost:3000", TableCount: 2}
	return New(cfg, nil, notify.NewHub(nil))
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestCreateOrderRejectsMissingTableNumber(t *testing.T) {
	h := testHandler()
	rec := postJSON(t, h.CreateOrder, "/api/orders", map[string]interface{}{
		"restaurantId":  uuid.New(),
		"paymentMethod": "cash",
		"items": []map[string]interface{}{
			{"menuItem": uuid.New(), "name": "Tsuivan", "quantity": 1, "price": 15000},
		},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "table number is required")
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	h := testHandler()
	rec := postJSON(t, h.CreateOrder, "/api/orders", map[string]interface{}{
		"restaurantId":  uuid.New(),
		"paymentMethod": "cash",
		"tableNumber":   "5",
		"items":         []map[string]interface{}{},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least one item")
}

func TestCreateOrderRejectsBadQuantityAndPaymentMethod(t *testing.T) {
	h := testHandler()
	rec := postJSON(t, h.CreateOrder, "/api/orders", map[string]interface{}{
		"restaurantId":  uuid.New(),
		"paymentMethod": "barter",
		"tableNumber":   "5",
		"items": []map[string]interface{}{
			{"menuItem": uuid.New(), "name": "Tsuivan", "quantity": 0, "price": 15000},
		},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "quantity must be at least 1")
	assert.Contains(t, rec.Body.String(), "invalid payment method")
}

func TestCreateOrderRejectsMalformedBody(t *testing.T) {
	h := testHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.CreateOrder(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	h := testHandler()
	raw, _ := json.Marshal(map[string]string{"status": "vaporized"})
	req := httptest.NewRequest(http.MethodPatch, "/api/orders/x/status", bytes.NewReader(raw))
	req = mux.SetURLVars(req, map[string]string{"id": uuid.New().String()})
	rec := httptest.NewRecorder()
	h.UpdateOrderStatus(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid order status")
}

func TestUpdateOrderStatusRejectsFinalizedOrder(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	cfg := &config.Config{Environment: "development"}
	h := New(cfg, &database.DB{DB: mockDB}, notify.NewHub(nil))

	id := uuid.New()
	cols := []string{"id", "restaurant_id", "user_id", "table_number", "total",
		"status", "payment_method", "payment_status", "notes", "customer_name",
		"customer_phone", "created_at", "updated_at"}
	mock.ExpectQuery("FROM orders").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(id.String(), uuid.New().String(), nil, "5", 15000.0,
				"completed", "cash", "completed", "", "", "", time.Now(), time.Now()))
	mock.ExpectQuery("FROM order_items").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "menu_item_id",
			"name", "quantity", "price", "special_option"}))

	raw, _ := json.Marshal(map[string]string{"status": string(models.StatusPending)})
	req := httptest.NewRequest(http.MethodPatch, "/api/orders/"+id.String()+"/status", bytes.NewReader(raw))
	req = mux.SetURLVars(req, map[string]string{"id": id.String()})
	rec := httptest.NewRecorder()
	h.UpdateOrderStatus(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already completed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatusRejectsBadID(t *testing.T) {
	h := testHandler()
	raw, _ := json.Marshal(map[string]string{"status": string(models.StatusConfirmed)})
	req := httptest.NewRequest(http.MethodPatch, "/api/orders/nope/status", bytes.NewReader(raw))
	req = mux.SetURLVars(req, map[string]string{"id": "nope"})
	rec := httptest.NewRecorder()
	h.UpdateOrderStatus(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid order ID")
}
