// Standalone mock tenant API for trying the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockserver
//
// Then in another terminal:
//
//	go run ./cmd/loggerise profile add dev --base-url http://localhost:9999
//	go run ./cmd/loggerise login --email you@example.test
//	go run ./cmd/loggerise setup watch
//	go run ./cmd/loggerise invoices list
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

// provisioning phases, two polls each, then the tenant reports active
var phases = []struct {
	message  string
	estimate string
}{
	{message: "Creating tenant account", estimate: "3 minutes"},
	{message: "Creating database schema", estimate: "2 minutes"},
	{message: "Applying tenant settings", estimate: "1 minute"},
}

func main() {
	fmt.Println("Mock Loggerise API starting on :9999")
	fmt.Println("Provisioning resolves to active after 6 status polls")
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	var (
		mu    sync.Mutex
		polls int
	)
	active := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return polls/2 >= len(phases)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email      string `json:"email"`
			DeviceName string `json:"device_name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"message": "The email field is required.",
				"errors":  map[string][]string{"email": {"The email field is required."}},
			})
			return
		}
		slog.Info("login", "email", creds.Email, "device", creds.DeviceName)
		writeJSON(w, http.StatusOK, map[string]any{
			"token":  "mock-token-1",
			"user":   mockUser(creds.Email),
			"tenant": mockTenant(active()),
		})
	})

	mux.HandleFunc("POST /api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"user":   mockUser("you@example.test"),
			"tenant": mockTenant(active()),
		})
	})

	mux.HandleFunc("GET /api/v1/tenant/setup-status", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		mu.Lock()
		polls++
		n := polls
		mu.Unlock()

		phase := (n - 1) / 2
		if phase >= len(phases) {
			writeJSON(w, http.StatusOK, map[string]any{
				"setup_status": "active",
				"message":      "Tenant is ready",
			})
			return
		}
		slog.Info("setup poll", "n", n, "phase", phases[phase].message)
		writeJSON(w, http.StatusOK, map[string]any{
			"setup_status":   "setting_up",
			"message":        phases[phase].message,
			"estimated_time": phases[phase].estimate,
		})
	})

	mux.HandleFunc("GET /api/v1/invoices", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"data": []any{invoiceOne(false), invoiceTwo()},
			"meta": map[string]any{"current_page": 1, "last_page": 1, "per_page": 25, "total": 2},
		})
	})

	mux.HandleFunc("GET /api/v1/invoices/1", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		writeJSON(w, http.StatusOK, invoiceOne(true))
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Not Found."})
	})

	if err := http.ListenAndServe(":9999", mux); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func mockUser(email string) map[string]any {
	return map[string]any{
		"id": 1, "name": "Demo Dispatcher", "email": email,
		"role": "owner", "created_at": time.Now().UTC().Format(time.RFC3339),
	}
}

func mockTenant(active bool) map[string]any {
	status := "setting_up"
	if active {
		status = "active"
	}
	return map[string]any{
		"id": 1, "name": "Acme Transport", "subdomain": "acme",
		"setup_status": status, "created_at": time.Now().UTC().Format(time.RFC3339),
	}
}

func invoiceOne(withLines bool) map[string]any {
	inv := map[string]any{
		"id": 1, "number": "INV-2026-0001", "status": "sent",
		"customer_id": 7, "customer_name": "Brenner Logistics",
		"currency": "EUR", "subtotal": "1040.00", "tax_total": "208.00", "total": "1248.00",
		"issued_on": "2026-08-01", "due_on": "2026-08-31",
	}
	if withLines {
		inv["lines"] = []any{
			map[string]any{"id": 1, "description": "Freight Hamburg - Munich", "quantity": 1, "unit_price": "890.00", "total": "890.00"},
			map[string]any{"id": 2, "description": "Waiting time", "quantity": 3, "unit_price": "50.00", "total": "150.00"},
		}
	}
	return inv
}

func invoiceTwo() map[string]any {
	return map[string]any{
		"id": 2, "number": "INV-2026-0002", "status": "paid",
		"customer_id": 9, "customer_name": "Haven Retail",
		"currency": "EUR", "subtotal": "380.00", "tax_total": "76.00", "total": "456.00",
		"issued_on": "2026-08-10", "due_on": "2026-09-09",
	}
}

func authorized(w http.ResponseWriter, r *http.Request) bool {
	if strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		return true
	}
	writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthenticated."})
	return false
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
