package controllers

import (
	"net/http"
	"testing"

	"backend/models"
)

func TestAdjustInventoryWastage(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedInventory(t, models.Inventory{Name: "Tomatoes", Unit: "kg", Stock: 20, MinThreshold: 3})

	w := env.do(t, http.MethodPost, "/api/inventory/"+id+"/adjust", models.AdjustmentRequest{
		Type: models.TxnWastage, Quantity: 5, Reason: "spoiled crate",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var item models.Inventory
	decodeBody(t, w, &item)
	if item.Stock != 15 {
		t.Fatalf("expected stock 15, got %v", item.Stock)
	}

	w = env.do(t, http.MethodGet, "/api/inventory/"+id+"/transactions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var txns []models.InventoryTransaction
	decodeBody(t, w, &txns)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if txns[0].Type != models.TxnWastage || txns[0].Quantity != 5 {
		t.Fatalf("expected wastage of 5, got %s %v", txns[0].Type, txns[0].Quantity)
	}
}

func TestAdjustInventoryRefill(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedInventory(t, models.Inventory{Name: "Rice", Unit: "kg", Stock: 10, MinThreshold: 5})

	w := env.do(t, http.MethodPost, "/api/inventory/"+id+"/adjust", models.AdjustmentRequest{
		Type: models.TxnRefill, Quantity: 5, Reason: "weekly delivery",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if item := env.getInventory(t, id); item.Stock != 15 {
		t.Fatalf("expected stock 15, got %v", item.Stock)
	}
}

func TestAdjustInventoryBadInputs(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedInventory(t, models.Inventory{Name: "Oil", Unit: "l", Stock: 8, MinThreshold: 2})

	// deduct is reserved for order flow, not manual adjustment
	w := env.do(t, http.MethodPost, "/api/inventory/"+id+"/adjust", models.AdjustmentRequest{
		Type: models.TxnDeduct, Quantity: 1,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for type deduct, got %d", w.Code)
	}

	w = env.do(t, http.MethodPost, "/api/inventory/"+id+"/adjust", map[string]interface{}{
		"type": "refill", "quantity": -2,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative quantity, got %d", w.Code)
	}

	w = env.do(t, http.MethodPost, "/api/inventory/64b000000000000000000000/adjust", models.AdjustmentRequest{
		Type: models.TxnRefill, Quantity: 1,
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown item, got %d", w.Code)
	}
}

// Listing the inventory recomputes and persists the lowStock flag.
func TestGetAllInventoryRefreshesLowStock(t *testing.T) {
	env := newTestEnv(t)
	lowID := env.seedInventory(t, models.Inventory{Name: "Paneer", Unit: "kg", Stock: 2, MinThreshold: 3, LowStock: false})
	okID := env.seedInventory(t, models.Inventory{Name: "Flour", Unit: "kg", Stock: 30, MinThreshold: 5, LowStock: true})

	w := env.do(t, http.MethodGet, "/api/inventory", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var items []models.Inventory
	decodeBody(t, w, &items)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	if item := env.getInventory(t, lowID); !item.LowStock {
		t.Fatal("expected stale lowStock=false corrected to true in the store")
	}
	if item := env.getInventory(t, okID); item.LowStock {
		t.Fatal("expected stale lowStock=true corrected to false in the store")
	}
}

func TestCreateAndUpdateInventory(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/inventory", models.Inventory{
		Name: "Butter", Category: "dairy", Unit: "kg", Stock: 4, MinThreshold: 5,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var created models.Inventory
	decodeBody(t, w, &created)
	if !created.LowStock {
		t.Fatal("expected lowStock computed on create")
	}

	created.Stock = 12
	w = env.do(t, http.MethodPut, "/api/inventory/"+created.ID.Hex(), created)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated models.Inventory
	decodeBody(t, w, &updated)
	if updated.LowStock {
		t.Fatal("expected lowStock recomputed to false after restock")
	}
}

func TestCreateInventoryRequiresName(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/inventory", map[string]interface{}{
		"unit": "kg", "stock": 3,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
