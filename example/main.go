package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Futurecode-Software/loggerise-go"
)

func main() {
	// start mock API (see mock_server.go)
	go StartMockAPI(":9999")
	time.Sleep(100 * time.Millisecond)

	client, err := loggerise.New("http://localhost:9999",
		loggerise.WithTimeout(5*time.Second),
	)
	if err != nil {
		slog.Error("failed to create client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Loggerise SDK Demo                                  ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Signs in against a mock tenant API, follows         ║")
	fmt.Println("  ║   provisioning until the tenant is ready, then        ║")
	fmt.Println("  ║   lists its invoices.                                 ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session, err := client.Auth.Login(ctx, loggerise.LoginParams{
		Email:      "dispatch@acme.test",
		Password:   "password",
		DeviceName: "sdk-demo",
	})
	if err != nil {
		slog.Error("login failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Signed in as %s, tenant %s is %s\n\n", session.User.Name, session.Tenant.Name, session.Tenant.SetupState)

	// follow provisioning; the mock walks setting_up -> active over a few
	// polls, so a short interval keeps the demo snappy
	watcher, err := client.WatchSetup(
		loggerise.WithPollInterval(300 * time.Millisecond),
	)
	if err != nil {
		slog.Error("failed to create watcher", "error", err)
		os.Exit(1)
	}
	watcher.Start(ctx)

	for u := range watcher.Updates() {
		line := fmt.Sprintf("  attempt %d: %s", u.Attempt, u.State)
		if u.Message != "" {
			line += " - " + u.Message
		}
		if u.EstimatedTime != "" {
			line += " (about " + u.EstimatedTime + ")"
		}
		fmt.Println(line)
	}

	result := watcher.Result()
	if result.Outcome != loggerise.SetupReady {
		slog.Error("provisioning did not finish", "outcome", result.Outcome, "message", result.Message)
		os.Exit(1)
	}
	fmt.Printf("\n%s\n\n", result.Message)

	page, err := client.Invoices.List(ctx, loggerise.InvoiceListParams{})
	if err != nil {
		slog.Error("failed to list invoices", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Invoices (%d):\n", page.Meta.Total)
	for _, inv := range page.Data {
		fmt.Printf("  %-14s %-8s %s %8s  due %s\n", inv.Number, inv.Status, inv.Currency, inv.Total, inv.DueOn)
	}
	fmt.Println()
}
