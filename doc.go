// Package loggerise provides a Go client for the Loggerise
// transport-management platform API.
//
// Loggerise tenants are provisioned asynchronously: after registration the
// platform builds the tenant account, database, and settings in the
// background while clients poll a status endpoint. This package exposes that
// polling flow as a first-class [SetupWatcher], alongside typed services for
// the REST resources (invoices, transport orders, loads, vehicles, trips,
// quotes, devices) and a Pusher-compatible realtime connection for trip
// messaging.
//
// # Quick Start
//
// Create a client, sign in, and work with resources:
//
//	client, _ := loggerise.New("https://api.acme.loggerise.com")
//
//	session, err := client.Auth.Login(ctx, loggerise.LoginParams{
//	    Email:      "ops@acme.example",
//	    Password:   password,
//	    DeviceName: "reporting-job",
//	})
//	if err != nil {
//	    return err
//	}
//
//	page, err := client.Invoices.List(ctx, loggerise.InvoiceListParams{
//	    ListParams: loggerise.ListParams{PerPage: 50},
//	    Status:     loggerise.InvoiceSent,
//	})
//
// # Watching tenant provisioning
//
// Immediately after [AuthService.Register] the tenant backend is still being
// built. A [SetupWatcher] polls the status endpoint until provisioning
// reaches a terminal state:
//
//	w, err := client.WatchSetup()
//	if err != nil {
//	    return err
//	}
//	w.Start(ctx)
//	defer w.Stop()
//
//	for update := range w.Updates() {
//	    render(update.Steps)
//	}
//	result := w.Result()
//
// The watcher never surfaces mid-session errors; transient failures retry
// silently and every session ends in exactly one of four outcomes
// ([SetupReady], [SetupFailed], [SetupTimedOut], [SetupAuthExpired]).
//
// # Errors
//
// API failures are returned as [*Error] values carrying the HTTP status code
// decided at the transport boundary. Use [IsUnauthorized], [IsNotFound], and
// [IsValidation] rather than inspecting message text.
//
// # Architecture
//
// The root package holds the client, transport, and typed services. Further
// packages sit around it:
//
//   - internal/setup: the provisioning poll scheduler and progress projector
//   - realtime: Pusher-protocol WebSocket connection and channel dispatch
//   - config: YAML profile files shared by the loggerise CLI
//
// The internal packages are not part of the public API and may change
// without notice.
package loggerise
