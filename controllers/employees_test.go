package controllers

import (
	"net/http"
	"testing"

	"backend/models"
	"backend/utils"
)

func TestLoginWithPIN(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/employees", models.Employee{
		Name: "Asha", Role: "manager", Pin: "4321",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 creating employee, got %d: %s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"pin": "4321"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Employee models.Employee `json:"employee"`
		Token    string          `json:"token"`
	}
	decodeBody(t, w, &resp)
	if resp.Employee.Name != "Asha" {
		t.Fatalf("expected employee Asha, got %s", resp.Employee.Name)
	}
	if resp.Token == "" {
		t.Fatal("expected a signed token")
	}

	claims, err := utils.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token failed validation: %v", err)
	}
	if claims.Role != "manager" {
		t.Fatalf("expected role manager in claims, got %s", claims.Role)
	}
}

func TestLoginWrongPIN(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/employees", models.Employee{
		Name: "Asha", Role: "manager", Pin: "4321",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 creating employee, got %d", w.Code)
	}

	w = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"pin": "0000"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing pin, got %d", w.Code)
	}
}

func TestCreateEmployeePinValidation(t *testing.T) {
	env := newTestEnv(t)

	for _, pin := range []string{"12", "12345", "abcd", ""} {
		w := env.do(t, http.MethodPost, "/api/employees", models.Employee{
			Name: "Ravi", Role: "waiter", Pin: pin,
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for pin %q, got %d", pin, w.Code)
		}
	}
}

func TestGetAllEmployees(t *testing.T) {
	env := newTestEnv(t)

	for _, e := range []models.Employee{
		{Name: "Asha", Role: "manager", Pin: "1111"},
		{Name: "Ravi", Role: "waiter", Pin: "2222"},
	} {
		if w := env.do(t, http.MethodPost, "/api/employees", e); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	}

	w := env.do(t, http.MethodGet, "/api/employees", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var employees []models.Employee
	decodeBody(t, w, &employees)
	if len(employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(employees))
	}
}
