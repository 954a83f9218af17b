package controllers

import (
	"net/http"
	"testing"

	"backend/models"
)

func TestCreateKOTMarksSourceOrder(t *testing.T) {
	env := newTestEnv(t)

	orderID := env.seedOrder(t, models.Order{
		OrderType: models.OrderDineIn, TableNumber: 2,
		Items:  []models.OrderItem{{Name: "Dosa", Quantity: 2, Price: 80}},
		Status: models.OrderPending,
	})

	w := env.do(t, http.MethodPost, "/api/kot", models.KOTBatch{
		OrderID:     orderID,
		OrderType:   models.OrderDineIn,
		TableNumber: 2,
		Items:       []models.OrderItem{{Name: "Dosa", Quantity: 2, Price: 80}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var kot models.KOTBatch
	decodeBody(t, w, &kot)
	if kot.ID.IsZero() {
		t.Fatal("expected an assigned KOT id")
	}
	if kot.Status != models.KOTPending {
		t.Fatalf("expected new KOT pending, got %s", kot.Status)
	}

	order := env.getOrder(t, orderID)
	if !order.KOTSent {
		t.Fatal("expected kotSent flipped on the source order")
	}
	if order.Status != models.OrderPreparing {
		t.Fatalf("expected source order preparing, got %s", order.Status)
	}

	events := env.rt.named("kot_updated")
	if len(events) != 1 {
		t.Fatalf("expected 1 kot_updated event, got %d", len(events))
	}
	if events[0].room != "kitchen" {
		t.Fatalf("expected kot_updated in room kitchen, got %s", events[0].room)
	}
}

// The order is forced to preparing even when it had already moved on; ticket
// re-sends behave the same as the first send.
func TestCreateKOTForcesCompletedOrderBack(t *testing.T) {
	env := newTestEnv(t)

	orderID := env.seedOrder(t, models.Order{
		OrderType: models.OrderTakeout, TokenNumber: 7,
		Items:  []models.OrderItem{{Name: "Idli", Quantity: 1, Price: 40}},
		Status: models.OrderCompleted,
	})

	w := env.do(t, http.MethodPost, "/api/kot", models.KOTBatch{
		OrderID:   orderID,
		OrderType: models.OrderTakeout,
		Items:     []models.OrderItem{{Name: "Idli", Quantity: 1, Price: 40}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	order := env.getOrder(t, orderID)
	if order.Status != models.OrderPreparing {
		t.Fatalf("expected order forced to preparing, got %s", order.Status)
	}
}

func TestUpdateKOT(t *testing.T) {
	env := newTestEnv(t)

	orderID := env.seedOrder(t, models.Order{
		OrderType: models.OrderDineIn, TableNumber: 4,
		Items:  []models.OrderItem{{Name: "Dosa", Quantity: 1, Price: 80}},
		Status: models.OrderPreparing,
	})

	w := env.do(t, http.MethodPost, "/api/kot", models.KOTBatch{
		OrderID:     orderID,
		OrderType:   models.OrderDineIn,
		TableNumber: 4,
		Items:       []models.OrderItem{{Name: "Dosa", Quantity: 1, Price: 80}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var kot models.KOTBatch
	decodeBody(t, w, &kot)

	kot.Status = models.KOTCompleted
	kot.PrinterUsed = "kitchen-1"
	w = env.do(t, http.MethodPut, "/api/kot/"+kot.ID.Hex(), kot)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.KOTBatch
	decodeBody(t, w, &updated)
	if updated.Status != models.KOTCompleted {
		t.Fatalf("expected completed, got %s", updated.Status)
	}
	if updated.PrinterUsed != "kitchen-1" {
		t.Fatalf("expected printerUsed recorded, got %q", updated.PrinterUsed)
	}

	if events := env.rt.named("kot_updated"); len(events) != 2 {
		t.Fatalf("expected 2 kot_updated events, got %d", len(events))
	}
}

func TestCreateKOTRequiresOrderID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/kot", models.KOTBatch{
		OrderType: models.OrderDineIn,
		Items:     []models.OrderItem{{Name: "Dosa", Quantity: 1, Price: 80}},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing orderId, got %d", w.Code)
	}
}
