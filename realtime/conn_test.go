package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// authorizerFunc adapts a function to the [Authorizer] interface.
type authorizerFunc func(ctx context.Context, socketID, channel string) (string, error)

func (f authorizerFunc) Authorize(ctx context.Context, socketID, channel string) (string, error) {
	return f(ctx, socketID, channel)
}

// newFakeServer runs a websocket endpoint that hands every accepted
// connection to handle along with its ordinal (1 for the first). It
// returns the host to dial.
func newFakeServer(t *testing.T, handle func(n int, r *http.Request, ws *websocket.Conn)) string {
	t.Helper()
	var count atomic.Int32
	var upgrader websocket.Upgrader
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		handle(int(count.Add(1)), r, ws)
	}))
	t.Cleanup(srv.Close)
	return strings.TrimPrefix(srv.URL, "http://")
}

// sendServerEvent writes an event frame with the payload double-encoded
// the way real servers send it.
func sendServerEvent(t *testing.T, ws *websocket.Conn, event, channel, innerJSON string) {
	t.Helper()
	data, err := json.Marshal(innerJSON)
	if err != nil {
		t.Errorf("marshal event data: %v", err)
		return
	}
	buf, err := json.Marshal(frame{Event: event, Channel: channel, Data: data})
	if err != nil {
		t.Errorf("marshal frame: %v", err)
		return
	}
	if err := ws.WriteMessage(websocket.TextMessage, buf); err != nil {
		t.Logf("write %s: %v", event, err)
	}
}

// sendEstablished completes the server side of the handshake.
func sendEstablished(t *testing.T, ws *websocket.Conn, socketID string) {
	t.Helper()
	sendServerEvent(t, ws, eventConnEstablished, "",
		fmt.Sprintf(`{"socket_id":%q,"activity_timeout":120}`, socketID))
}

// readClientFrame reads one frame from the client, reporting failure via
// the second return.
func readClientFrame(ws *websocket.Conn) (frame, bool) {
	var f frame
	_, msg, err := ws.ReadMessage()
	if err != nil {
		return f, false
	}
	if err := json.Unmarshal(msg, &f); err != nil {
		return f, false
	}
	return f, true
}

// expectSubscribe reads frames until a subscribe for wantChannel arrives,
// confirms it, and returns its payload.
func expectSubscribe(t *testing.T, ws *websocket.Conn, wantChannel string) subscribePayload {
	t.Helper()
	for {
		f, ok := readClientFrame(ws)
		if !ok {
			t.Errorf("connection died before subscribing to %q", wantChannel)
			return subscribePayload{}
		}
		if f.Event != eventSubscribe {
			continue
		}
		var p subscribePayload
		if err := json.Unmarshal(f.Data, &p); err != nil {
			t.Errorf("decode subscribe payload: %v", err)
			return p
		}
		if p.Channel != wantChannel {
			t.Errorf("subscribe channel = %q, want %q", p.Channel, wantChannel)
		}
		sendServerEvent(t, ws, eventSubSucceeded, p.Channel, `{}`)
		return p
	}
}

// holdOpen keeps the server side reading until the connection dies.
func holdOpen(ws *websocket.Conn) {
	for {
		if _, _, err := ws.NextReader(); err != nil {
			return
		}
	}
}

// mustDial connects to host with test defaults filled in.
func mustDial(t *testing.T, host string, cfg Config) *Conn {
	t.Helper()
	cfg.Host = host
	if cfg.Key == "" {
		cfg.Key = "test-key"
	}
	if cfg.Logger == nil {
		cfg.Logger = testLogger()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, err := Dial(ctx, cfg)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitClosed(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatalf("timeout waiting for %s", what)
	}
}

// TestDial_Handshake verifies the connect URL and the socket id taken
// from the handshake.
func TestDial_Handshake(t *testing.T) {
	type connectInfo struct {
		path  string
		query url.Values
	}
	info := make(chan connectInfo, 1)
	host := newFakeServer(t, func(n int, r *http.Request, ws *websocket.Conn) {
		info <- connectInfo{path: r.URL.Path, query: r.URL.Query()}
		sendEstablished(t, ws, "7.123")
		holdOpen(ws)
	})

	conn := mustDial(t, host, Config{Version: "1.1.0"})
	if got := conn.SocketID(); got != "7.123" {
		t.Errorf("SocketID() = %q, want 7.123", got)
	}

	ci := <-info
	if ci.path != "/app/test-key" {
		t.Errorf("path = %q, want /app/test-key", ci.path)
	}
	if got := ci.query.Get("protocol"); got != "7" {
		t.Errorf("protocol = %q, want 7", got)
	}
	if got := ci.query.Get("client"); got != "loggerise-go" {
		t.Errorf("client = %q, want loggerise-go", got)
	}
	if got := ci.query.Get("version"); got != "1.1.0" {
		t.Errorf("version = %q, want 1.1.0", got)
	}

	if err := conn.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	waitClosed(t, conn.Done(), "Done after Close")
	if err := conn.Err(); err != nil {
		t.Errorf("Err() = %v after clean close, want nil", err)
	}
}

// TestDial_Validation verifies config validation before any network use.
func TestDial_Validation(t *testing.T) {
	if _, err := Dial(context.Background(), Config{Key: "k"}); err == nil {
		t.Error("Dial() with empty host succeeded, want error")
	}
	if _, err := Dial(context.Background(), Config{Host: "h"}); err == nil {
		t.Error("Dial() with empty key succeeded, want error")
	}
}

// TestDial_RefusedWithProtocolError verifies a pre-handshake error event
// surfaces as a non-temporary [Error].
func TestDial_RefusedWithProtocolError(t *testing.T) {
	host := newFakeServer(t, func(n int, r *http.Request, ws *websocket.Conn) {
		sendServerEvent(t, ws, eventError, "",
			`{"code":4001,"message":"Application does not exist"}`)
		holdOpen(ws)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := Dial(ctx, Config{Host: host, Key: "bad-key", Logger: testLogger()})
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("Dial() error = %v, want *Error", err)
	}
	if perr.Code != 4001 {
		t.Errorf("Code = %d, want 4001", perr.Code)
	}
	if perr.Temporary() {
		t.Error("Temporary() = true for a 4001, want false")
	}
}

// TestConn_SubscribeAndReceive verifies the full public-channel flow:
// subscribe, confirmation, then an event delivered with its payload
// unwrapped.
func TestConn_SubscribeAndReceive(t *testing.T) {
	pushNow := make(chan struct{})
	host := newFakeServer(t, func(n int, r *http.Request, ws *websocket.Conn) {
		sendEstablished(t, ws, "1.1")
		p := expectSubscribe(t, ws, "orders")
		if p.Auth != "" {
			t.Errorf("public channel sent auth %q, want none", p.Auth)
		}
		<-pushNow
		sendServerEvent(t, ws, "order.updated", "orders", `{"id":12,"status":"delivered"}`)
		holdOpen(ws)
	})

	conn := mustDial(t, host, Config{})
	ch, err := conn.Subscribe(context.Background(), "orders")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	waitClosed(t, ch.Subscribed(), "subscription confirmation")

	events := ch.Bind("order.updated")
	close(pushNow)

	select {
	case ev := <-events:
		if ev.Name != "order.updated" || ev.Channel != "orders" {
			t.Errorf("event = %+v, want order.updated on orders", ev)
		}
		var payload struct {
			ID     int    `json:"id"`
			Status string `json:"status"`
		}
		if err := json.Unmarshal(ev.Data, &payload); err != nil {
			t.Fatalf("unmarshal event data %s: %v", ev.Data, err)
		}
		if payload.ID != 12 || payload.Status != "delivered" {
			t.Errorf("payload = %+v, want id 12 delivered", payload)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for event")
	}
}

// TestConn_SubscribeTwiceReturnsSameChannel verifies subscription reuse.
func TestConn_SubscribeTwiceReturnsSameChannel(t *testing.T) {
	host := newFakeServer(t, func(n int, r *http.Request, ws *websocket.Conn) {
		sendEstablished(t, ws, "1.1")
		expectSubscribe(t, ws, "orders")
		holdOpen(ws)
	})

	conn := mustDial(t, host, Config{})
	first, err := conn.Subscribe(context.Background(), "orders")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	second, err := conn.Subscribe(context.Background(), "orders")
	if err != nil {
		t.Fatalf("second Subscribe() error = %v", err)
	}
	if first != second {
		t.Error("second Subscribe() returned a different channel")
	}
}

// TestConn_PrivateChannelAuth verifies private channels are signed with
// the current socket id.
func TestConn_PrivateChannelAuth(t *testing.T) {
	gotSub := make(chan subscribePayload, 1)
	host := newFakeServer(t, func(n int, r *http.Request, ws *websocket.Conn) {
		sendEstablished(t, ws, "9.5")
		gotSub <- expectSubscribe(t, ws, "private-tenant.42")
		holdOpen(ws)
	})

	var gotSocketID atomic.Value
	auth := authorizerFunc(func(ctx context.Context, socketID, channel string) (string, error) {
		gotSocketID.Store(socketID)
		return "key:signature-for-" + channel, nil
	})

	conn := mustDial(t, host, Config{Authorizer: auth})
	if _, err := conn.Subscribe(context.Background(), "private-tenant.42"); err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	select {
	case p := <-gotSub:
		if p.Auth != "key:signature-for-private-tenant.42" {
			t.Errorf("auth = %q, want the authorizer's token", p.Auth)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for subscribe frame")
	}
	if got := gotSocketID.Load(); got != "9.5" {
		t.Errorf("authorizer socket id = %v, want 9.5", got)
	}
}

// TestConn_PrivateChannelRequiresAuthorizer verifies the subscription is
// refused locally when no authorizer is configured.
func TestConn_PrivateChannelRequiresAuthorizer(t *testing.T) {
	host := newFakeServer(t, func(n int, r *http.Request, ws *websocket.Conn) {
		sendEstablished(t, ws, "1.1")
		holdOpen(ws)
	})

	conn := mustDial(t, host, Config{})
	_, err := conn.Subscribe(context.Background(), "private-tenant.1")
	if err == nil {
		t.Fatal("Subscribe() on a private channel without an Authorizer succeeded")
	}
	if !strings.Contains(err.Error(), "Authorizer") {
		t.Errorf("error = %v, want mention of the missing Authorizer", err)
	}
}

// TestConn_RespondsToPing verifies server pings get a pong back.
func TestConn_RespondsToPing(t *testing.T) {
	gotPong := make(chan struct{})
	host := newFakeServer(t, func(n int, r *http.Request, ws *websocket.Conn) {
		sendEstablished(t, ws, "1.1")
		sendServerEvent(t, ws, eventPing, "", `{}`)
		for {
			f, ok := readClientFrame(ws)
			if !ok {
				return
			}
			if f.Event == eventPong {
				close(gotPong)
				holdOpen(ws)
				return
			}
		}
	})

	mustDial(t, host, Config{})
	waitClosed(t, gotPong, "pong reply")
}

// TestConn_ReconnectsAndResubscribes verifies an abrupt transport loss
// leads to a fresh connection with the channel resubscribed, events
// flowing again afterwards.
func TestConn_ReconnectsAndResubscribes(t *testing.T) {
	pushNow := make(chan struct{})
	resubscribed := make(chan struct{})
	host := newFakeServer(t, func(n int, r *http.Request, ws *websocket.Conn) {
		switch n {
		case 1:
			sendEstablished(t, ws, "1.1")
			expectSubscribe(t, ws, "orders")
			// drop the transport without a close frame
			ws.Close()
		case 2:
			sendEstablished(t, ws, "2.2")
			expectSubscribe(t, ws, "orders")
			close(resubscribed)
			<-pushNow
			sendServerEvent(t, ws, "order.updated", "orders", `{"id":1}`)
			holdOpen(ws)
		}
	})

	conn := mustDial(t, host, Config{})
	ch, err := conn.Subscribe(context.Background(), "orders")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	events := ch.BindAll()

	waitClosed(t, resubscribed, "resubscription after reconnect")
	if got := conn.SocketID(); got != "2.2" {
		t.Errorf("SocketID() after reconnect = %q, want 2.2", got)
	}

	close(pushNow)
	select {
	case ev := <-events:
		if ev.Name != "order.updated" {
			t.Errorf("event = %q, want order.updated", ev.Name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for event after reconnect")
	}
}

// TestConn_FatalCloseCodeStopsReconnect verifies a 4000-class close ends
// the connection for good.
func TestConn_FatalCloseCodeStopsReconnect(t *testing.T) {
	var dials atomic.Int32
	host := newFakeServer(t, func(n int, r *http.Request, ws *websocket.Conn) {
		dials.Add(1)
		sendEstablished(t, ws, "1.1")
		ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(4001, "Application does not exist"),
			time.Now().Add(time.Second))
		holdOpen(ws)
	})

	conn := mustDial(t, host, Config{})
	waitClosed(t, conn.Done(), "Done after fatal close")

	var perr *Error
	if !errors.As(conn.Err(), &perr) {
		t.Fatalf("Err() = %v, want *Error", conn.Err())
	}
	if perr.Code != 4001 {
		t.Errorf("Code = %d, want 4001", perr.Code)
	}

	// no reconnect may follow
	time.Sleep(150 * time.Millisecond)
	if got := dials.Load(); got != 1 {
		t.Errorf("dial count = %d, want 1", got)
	}
}

// TestConn_PingsWhenIdleAndReconnectsOnSilence verifies the activity
// watchdog: an idle connection is pinged, and a missing pong forces a
// reconnect.
func TestConn_PingsWhenIdleAndReconnectsOnSilence(t *testing.T) {
	reconnected := make(chan struct{})
	host := newFakeServer(t, func(n int, r *http.Request, ws *websocket.Conn) {
		switch n {
		case 1:
			sendEstablished(t, ws, "1.1")
			f, ok := readClientFrame(ws)
			if ok && f.Event != eventPing {
				t.Errorf("idle client sent %q, want %s", f.Event, eventPing)
			}
			// never pong; the client must give up
			holdOpen(ws)
		case 2:
			sendEstablished(t, ws, "2.2")
			close(reconnected)
			holdOpen(ws)
		}
	})

	mustDial(t, host, Config{
		ActivityTimeout: 75 * time.Millisecond,
		PongTimeout:     75 * time.Millisecond,
	})
	waitClosed(t, reconnected, "reconnect after pong timeout")
}

// TestConn_CloseIdempotent verifies Close is safe to repeat and closes
// every binding.
func TestConn_CloseIdempotent(t *testing.T) {
	host := newFakeServer(t, func(n int, r *http.Request, ws *websocket.Conn) {
		sendEstablished(t, ws, "1.1")
		expectSubscribe(t, ws, "orders")
		holdOpen(ws)
	})

	conn := mustDial(t, host, Config{})
	ch, err := conn.Subscribe(context.Background(), "orders")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	events := ch.Bind("order.updated")

	if err := conn.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	select {
	case _, ok := <-events:
		if ok {
			t.Error("binding delivered an event after Close")
		}
	case <-time.After(time.Second):
		t.Error("binding not closed after Close")
	}
}

// TestConnectURL verifies scheme and path construction.
func TestConnectURL(t *testing.T) {
	got := connectURL(Config{Host: "ws.example.com:6001", Key: "k1", Version: "2"})
	want := "ws://ws.example.com:6001/app/k1?client=loggerise-go&protocol=7&version=2"
	if got != want {
		t.Errorf("connectURL() = %q, want %q", got, want)
	}

	got = connectURL(Config{Host: "ws.example.com", Key: "k1", TLS: true})
	if !strings.HasPrefix(got, "wss://") {
		t.Errorf("connectURL() with TLS = %q, want wss scheme", got)
	}
}

// TestNeedsAuth covers the channel name prefixes that require signing.
func TestNeedsAuth(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"orders", false},
		{"private-tenant.1", true},
		{"presence-dispatch", true},
		{"privateers", false},
	}
	for _, tt := range tests {
		if got := needsAuth(tt.name); got != tt.want {
			t.Errorf("needsAuth(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
