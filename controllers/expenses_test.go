package controllers

import (
	"net/http"
	"testing"
	"time"

	"backend/models"
)

func TestCreateExpenseDefaultsDate(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/expenses", models.Expense{
		Category: "supplies", Amount: 120, Description: "gas refill",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var expense models.Expense
	decodeBody(t, w, &expense)
	if expense.Date.IsZero() {
		t.Fatal("expected date defaulted to now")
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/expenses", map[string]interface{}{
		"amount": 50,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing category, got %d", w.Code)
	}

	w = env.do(t, http.MethodPost, "/api/expenses", map[string]interface{}{
		"category": "supplies", "amount": -5,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative amount, got %d", w.Code)
	}
}

func TestExpensesDateRangeFilter(t *testing.T) {
	env := newTestEnv(t)

	post := func(category string, date time.Time) {
		t.Helper()
		w := env.do(t, http.MethodPost, "/api/expenses", models.Expense{
			Category: category, Amount: 100, Date: date,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	}
	post("february", time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC))
	post("march", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))

	w := env.do(t, http.MethodGet, "/api/expenses?start_date=2026-02-01&end_date=2026-02-28", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var expenses []models.Expense
	decodeBody(t, w, &expenses)
	if len(expenses) != 1 {
		t.Fatalf("expected 1 expense in range, got %d", len(expenses))
	}
	if expenses[0].Category != "february" {
		t.Fatalf("expected the february expense, got %s", expenses[0].Category)
	}

	// bounds are inclusive
	w = env.do(t, http.MethodGet, "/api/expenses?start_date=2026-02-15&end_date=2026-03-15", nil)
	decodeBody(t, w, &expenses)
	if len(expenses) != 2 {
		t.Fatalf("expected both boundary expenses, got %d", len(expenses))
	}

	w = env.do(t, http.MethodGet, "/api/expenses?start_date=nope&end_date=2026-03-15", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", w.Code)
	}
}
