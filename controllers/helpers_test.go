package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"backend/config"
	"backend/models"
	"backend/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type capturedEvent struct {
	event   string
	payload interface{}
	room    string
}

// captureBroadcaster records emitted events instead of pushing them to
// websockets.
type captureBroadcaster struct {
	mu     sync.Mutex
	events []capturedEvent
}

func (b *captureBroadcaster) Emit(event string, payload interface{}, room string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, capturedEvent{event: event, payload: payload, room: room})
}

func (b *captureBroadcaster) named(event string) []capturedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []capturedEvent
	for _, e := range b.events {
		if e.event == event {
			out = append(out, e)
		}
	}
	return out
}

type testEnv struct {
	store  *store.Memory
	rt     *captureBroadcaster
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		store: store.NewMemory(),
		rt:    &captureBroadcaster{},
	}

	menu := NewMenuController(env.store)
	tables := NewTableController(env.store, env.rt)
	orders := NewOrderController(env.store, env.rt)
	kots := NewKOTController(env.store, env.rt)
	inventory := NewInventoryController(env.store)
	employees := NewEmployeeController(env.store)
	expenses := NewExpenseController(env.store)
	reports := NewReportController(env.store, time.UTC)
	settings := NewSettingsController(env.store)
	printers := NewPrinterController(env.store)
	photos := NewPhotoController(env.store, config.Config{})

	r := gin.New()
	api := r.Group("/api")

	api.GET("/menu", menu.GetAllMenuItems)
	api.POST("/menu", menu.CreateMenuItem)
	api.GET("/menu/:id", menu.GetMenuItem)
	api.PUT("/menu/:id", menu.UpdateMenuItem)
	api.DELETE("/menu/:id", menu.DeleteMenuItem)
	api.POST("/menu/:id/photo", photos.UploadMenuPhoto)
	api.POST("/employees/:id/photo", photos.UploadEmployeePhoto)

	api.GET("/tables", tables.GetAllTables)
	api.PUT("/tables/:id", tables.UpdateTable)

	api.GET("/orders", orders.GetAllOrders)
	api.POST("/orders", orders.CreateOrder)
	api.GET("/orders/:id", orders.GetOrderByID)
	api.PUT("/orders/:id", orders.UpdateOrder)
	api.DELETE("/orders/:id", orders.DeleteOrder)
	api.GET("/takeout/next-token", orders.NextToken)

	api.GET("/kot", kots.GetAllKOTs)
	api.POST("/kot", kots.CreateKOT)
	api.PUT("/kot/:id", kots.UpdateKOT)

	api.GET("/inventory", inventory.GetAllInventory)
	api.POST("/inventory", inventory.CreateInventoryItem)
	api.GET("/inventory/:id", inventory.GetInventoryItem)
	api.PUT("/inventory/:id", inventory.UpdateInventoryItem)
	api.POST("/inventory/:id/adjust", inventory.AdjustInventory)
	api.GET("/inventory/:id/transactions", inventory.GetInventoryTransactions)

	api.GET("/employees", employees.GetAllEmployees)
	api.POST("/employees", employees.CreateEmployee)
	api.POST("/auth/login", employees.Login)

	api.GET("/expenses", expenses.GetAllExpenses)
	api.POST("/expenses", expenses.CreateExpense)

	api.GET("/reports/sales", reports.GetSalesReport)
	api.GET("/reports/kitchen-performance", reports.GetKitchenPerformance)
	api.GET("/reports/inventory-status", reports.GetInventoryStatus)
	api.GET("/dashboard/live", reports.GetLiveDashboard)

	api.GET("/settings", settings.GetSettings)
	api.PUT("/settings", settings.UpdateSettings)

	api.GET("/printers", printers.GetAllPrinters)
	api.POST("/printers", printers.CreatePrinter)
	api.DELETE("/printers/:id", printers.DeletePrinter)

	env.router = r
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func (e *testEnv) seedMenuItem(t *testing.T, item models.MenuItem) string {
	t.Helper()
	id, err := e.store.InsertOne(context.Background(), store.MenuItems, item)
	if err != nil {
		t.Fatalf("failed to seed menu item: %v", err)
	}
	return id
}

func (e *testEnv) seedInventory(t *testing.T, item models.Inventory) string {
	t.Helper()
	id, err := e.store.InsertOne(context.Background(), store.Inventory, item)
	if err != nil {
		t.Fatalf("failed to seed inventory item: %v", err)
	}
	return id
}

func (e *testEnv) seedOrder(t *testing.T, order models.Order) string {
	t.Helper()
	id, err := e.store.InsertOne(context.Background(), store.Orders, order)
	if err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}
	return id
}

func (e *testEnv) getOrder(t *testing.T, id string) models.Order {
	t.Helper()
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		t.Fatalf("bad order id %q: %v", id, err)
	}
	var order models.Order
	if err := e.store.FindOne(context.Background(), store.Orders, store.Filter{"_id": objID}, &order); err != nil {
		t.Fatalf("failed to fetch order %s: %v", id, err)
	}
	return order
}

func (e *testEnv) getTable(t *testing.T, tableNumber int) models.Table {
	t.Helper()
	var table models.Table
	if err := e.store.FindOne(context.Background(), store.Tables, store.Filter{"tableNumber": tableNumber}, &table); err != nil {
		t.Fatalf("failed to fetch table %d: %v", tableNumber, err)
	}
	return table
}

func (e *testEnv) getInventory(t *testing.T, id string) models.Inventory {
	t.Helper()
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		t.Fatalf("bad inventory id %q: %v", id, err)
	}
	var item models.Inventory
	if err := e.store.FindOne(context.Background(), store.Inventory, store.Filter{"_id": objID}, &item); err != nil {
		t.Fatalf("failed to fetch inventory %s: %v", id, err)
	}
	return item
}
