package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// provisionScript is the scripted walk through tenant provisioning: each
// entry covers two polls, then the tenant reports active.
var provisionScript = []struct {
	message  string
	estimate string
}{
	{message: "Creating tenant account", estimate: "3 minutes"},
	{message: "Creating database schema", estimate: "2 minutes"},
	{message: "Applying tenant settings", estimate: "1 minute"},
}

// StartMockAPI runs a minimal Loggerise tenant API for the demo: any
// credentials sign in, provisioning walks setting_up to active over a few
// polls, and the invoice listing returns fixed data.
// Call this in a goroutine before creating the client.
func StartMockAPI(addr string) {
	var (
		mu    sync.Mutex
		polls int
	)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email      string `json:"email"`
			DeviceName string `json:"device_name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": "The email field is required."})
			return
		}
		slog.Info("mock login", "email", creds.Email, "device", creds.DeviceName)
		writeJSON(w, http.StatusOK, map[string]any{
			"token": "mock-token-1",
			"user": map[string]any{
				"id": 1, "name": "Demo Dispatcher", "email": creds.Email,
				"role": "owner", "created_at": time.Now().UTC().Format(time.RFC3339),
			},
			"tenant": map[string]any{
				"id": 1, "name": "Acme Transport", "subdomain": "acme",
				"setup_status": "setting_up", "created_at": time.Now().UTC().Format(time.RFC3339),
			},
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
		if phase >= len(provisionScript) {
			slog.Info("mock provisioning finished", "polls", n)
			writeJSON(w, http.StatusOK, map[string]any{
				"setup_status": "active",
				"message":      "Tenant is ready",
			})
			return
		}
		step := provisionScript[phase]
		writeJSON(w, http.StatusOK, map[string]any{
			"setup_status":   "setting_up",
			"message":        step.message,
			"estimated_time": step.estimate,
		})
	})

	mux.HandleFunc("GET /api/v1/invoices", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"data": []map[string]any{
				{
					"id": 1, "number": "INV-2026-0001", "status": "sent",
					"customer_id": 7, "customer_name": "Brenner Logistics",
					"currency": "EUR", "subtotal": "1040.00", "tax_total": "208.00", "total": "1248.00",
					"issued_on": "2026-08-01", "due_on": "2026-08-31",
				},
				{
					"id": 2, "number": "INV-2026-0002", "status": "paid",
					"customer_id": 9, "customer_name": "Haven Retail",
					"currency": "EUR", "subtotal": "380.00", "tax_total": "76.00", "total": "456.00",
					"issued_on": "2026-08-10", "due_on": "2026-09-09",
				},
			},
			"meta": map[string]any{"current_page": 1, "last_page": 1, "per_page": 25, "total": 2},
		})
	})

	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("mock server error", "error", err)
	}
}

// authorized enforces the bearer token the login handler issued, answering
// the way the real API does so auth handling can be demonstrated.
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
