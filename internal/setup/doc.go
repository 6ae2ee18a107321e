// Package setup drives the tenant provisioning status poll for Loggerise.
//
// This package is internal to the loggerise client. After tenant
// registration the platform builds the tenant backend asynchronously; this
// package polls the setup-status endpoint until provisioning resolves,
// enforcing the retry ceiling, server-directed retry gaps, and the
// exactly-once terminal outcome.
//
// The main components are:
//
//   - [Poller]: sequential poll loop with stop/terminal bookkeeping
//   - [Status]: one decoded status response
//   - [Update]: per-cycle progress emitted to the updates channel
//   - [StepIndex], [Milestones]: projection of attempts onto the four
//     provisioning milestones
//
// Users of the loggerise library should not interact with this package
// directly; [loggerise.Client.WatchSetup] wraps it.
package setup
