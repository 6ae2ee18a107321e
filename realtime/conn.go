package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// defaultActivityTimeout is the idle interval before the client pings,
	// used when neither the caller nor the server suggests one.
	defaultActivityTimeout = 120 * time.Second

	// defaultPongTimeout is how long to wait for a pong before declaring
	// the connection dead.
	defaultPongTimeout = 30 * time.Second

	// defaultMaxBackoff caps the delay between reconnect attempts.
	defaultMaxBackoff = 30 * time.Second

	// initialBackoff is the first reconnect delay when the server asked
	// for backoff or an immediate attempt already failed.
	initialBackoff = time.Second

	// writeTimeout bounds a single websocket write.
	writeTimeout = 10 * time.Second

	// handshakeTimeout bounds the wait for connection_established.
	handshakeTimeout = 10 * time.Second
)

// Authorizer signs subscriptions to private and presence channels.
//
// Authorize returns the auth token for the given socket and channel, the
// string the server's broadcasting auth endpoint produces. It is called on
// first subscription and again on every reconnect, because the socket id
// changes each time.
type Authorizer interface {
	Authorize(ctx context.Context, socketID, channel string) (string, error)
}

// Config configures [Dial].
type Config struct {
	// Host is the websocket host, optionally with port, e.g.
	// "ws.example.com:6001". Required.
	Host string

	// Key is the application key in the connection URL. Required.
	Key string

	// TLS selects wss:// instead of ws://.
	TLS bool

	// Version is reported to the server in the connect query string.
	Version string

	// Authorizer signs private- and presence- channel subscriptions.
	// Subscribing to such a channel without one fails.
	Authorizer Authorizer

	// Logger receives connection lifecycle events. Defaults to
	// [slog.Default].
	Logger *slog.Logger

	// Dialer performs the websocket handshake. Defaults to
	// [websocket.DefaultDialer].
	Dialer *websocket.Dialer

	// ActivityTimeout overrides the idle interval before pinging. Zero
	// adopts the server's suggestion.
	ActivityTimeout time.Duration

	// PongTimeout overrides how long to wait for a pong.
	PongTimeout time.Duration

	// MaxBackoff caps the reconnect delay.
	MaxBackoff time.Duration
}

// Conn is a live realtime connection.
//
// A Conn maintains itself: it pings when idle, reconnects with exponential
// backoff when the transport drops, and resubscribes its channels after
// every reconnect. It shuts down for good only on [Conn.Close] or a fatal
// protocol error (code 4000-4099); [Conn.Done] signals that, and
// [Conn.Err] tells the two apart.
type Conn struct {
	cfg     Config
	url     string
	log     *slog.Logger
	dialer  *websocket.Dialer
	maxWait time.Duration

	activityTimeout time.Duration
	pongTimeout     time.Duration

	mu       sync.Mutex
	ws       *websocket.Conn
	socketID string
	channels map[string]*Channel
	closed   bool
	err      error

	// writeMu serializes writes; the websocket permits one writer.
	writeMu sync.Mutex

	// activity is pulsed by the read loop on every inbound frame.
	activity chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	done     chan struct{}
	doneOnce sync.Once
}

// Dial connects, waits for the server handshake, and starts the read loop.
//
// The returned Conn is ready to subscribe. ctx bounds only the initial
// handshake; the connection itself lives until [Conn.Close] or a fatal
// protocol error.
func Dial(ctx context.Context, cfg Config) (*Conn, error) {
	if cfg.Host == "" {
		return nil, errors.New("realtime: host must not be empty")
	}
	if cfg.Key == "" {
		return nil, errors.New("realtime: application key must not be empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	c := &Conn{
		cfg:      cfg,
		url:      connectURL(cfg),
		log:      cfg.Logger,
		dialer:   cfg.Dialer,
		maxWait:  cfg.MaxBackoff,
		channels: make(map[string]*Channel),
		activity: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if c.dialer == nil {
		c.dialer = websocket.DefaultDialer
	}
	if c.maxWait <= 0 {
		c.maxWait = defaultMaxBackoff
	}
	c.pongTimeout = cfg.PongTimeout
	if c.pongTimeout <= 0 {
		c.pongTimeout = defaultPongTimeout
	}

	ws, socketID, suggested, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	c.ws = ws
	c.socketID = socketID

	c.activityTimeout = cfg.ActivityTimeout
	if c.activityTimeout <= 0 {
		c.activityTimeout = suggested
	}
	if c.activityTimeout <= 0 {
		c.activityTimeout = defaultActivityTimeout
	}

	c.log.Info("realtime connected", "host", cfg.Host, "socket_id", socketID)

	runCtx, cancel := context.WithCancel(context.Background())
	c.ctx = runCtx
	c.cancel = cancel

	c.wg.Add(1)
	go c.run(ws)

	return c, nil
}

// connectURL builds the websocket URL for cfg.
func connectURL(cfg Config) string {
	scheme := "ws"
	if cfg.TLS {
		scheme = "wss"
	}
	version := cfg.Version
	if version == "" {
		version = "0"
	}
	q := url.Values{}
	q.Set("protocol", protocolVersion)
	q.Set("client", clientName)
	q.Set("version", version)

	u := url.URL{
		Scheme:   scheme,
		Host:     cfg.Host,
		Path:     "/app/" + cfg.Key,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// SocketID returns the server-assigned socket id of the current
// connection. It changes on every reconnect.
func (c *Conn) SocketID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.socketID
}

// Done returns a channel closed when the connection has shut down for
// good, either via [Conn.Close] or a fatal protocol error. Reconnects do
// not close it.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Err returns the fatal error that ended the connection, or nil after a
// plain [Conn.Close].
func (c *Conn) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Subscribe joins a channel and returns it immediately; confirmation
// arrives on [Channel.Subscribed].
//
// Private and presence channels (names prefixed "private-" or
// "presence-") are signed through the configured [Authorizer]. Subscribing
// twice to the same name returns the existing channel. Subscribe fails
// while the transport is down; already-established channels ride through
// reconnects automatically.
func (c *Conn) Subscribe(ctx context.Context, name string) (*Channel, error) {
	if name == "" {
		return nil, errors.New("realtime: channel name must not be empty")
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, errors.New("realtime: connection is closed")
	}
	if ch, ok := c.channels[name]; ok {
		c.mu.Unlock()
		return ch, nil
	}
	ch := newChannel(c, name)
	c.channels[name] = ch
	ws := c.ws
	socketID := c.socketID
	c.mu.Unlock()

	if err := c.sendSubscribe(ctx, ws, socketID, ch); err != nil {
		c.mu.Lock()
		delete(c.channels, name)
		c.mu.Unlock()
		return nil, err
	}
	return ch, nil
}

// Close shuts the connection down and closes every channel binding.
// Idempotent and safe to call concurrently.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	ws := c.ws
	c.mu.Unlock()

	c.cancel()
	if ws != nil {
		c.writeMu.Lock()
		ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.writeMu.Unlock()
		ws.Close()
	}
	c.wg.Wait()
	return nil
}

// run owns the connection after the handshake: one read loop per
// transport, reconnect between them.
func (c *Conn) run(ws *websocket.Conn) {
	defer c.wg.Done()
	defer c.teardown()

	for {
		epoch := make(chan struct{})
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.watch(ws, epoch)
		}()

		err := c.readLoop(ws)
		close(epoch)
		ws.Close()

		if c.ctx.Err() != nil {
			return
		}

		switch classifyErr(err) {
		case classFatal:
			if perr := asProtocolError(err); perr != nil {
				err = perr
			}
			c.setErr(err)
			c.log.Error("realtime connection failed permanently", "error", err)
			return
		case classBackoff:
			c.log.Warn("realtime connection lost, backing off", "error", err)
			ws = c.redial(initialBackoff)
		default:
			c.log.Warn("realtime connection lost, reconnecting", "error", err)
			ws = c.redial(0)
		}
		if ws == nil {
			return
		}
	}
}

// teardown closes every channel binding and signals Done. Runs exactly
// once, whether the connection ended by Close or by a fatal error.
func (c *Conn) teardown() {
	c.mu.Lock()
	chans := make([]*Channel, 0, len(c.channels))
	for _, ch := range c.channels {
		chans = append(chans, ch)
	}
	c.channels = make(map[string]*Channel)
	c.mu.Unlock()

	for _, ch := range chans {
		ch.shutdown()
	}
	c.doneOnce.Do(func() { close(c.done) })
}

// connect dials and completes the protocol handshake, returning the
// transport, its socket id, and the server's suggested activity timeout.
func (c *Conn) connect(ctx context.Context) (*websocket.Conn, string, time.Duration, error) {
	ws, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return nil, "", 0, fmt.Errorf("realtime: dial %s: %w", c.cfg.Host, err)
	}

	deadline := time.Now().Add(handshakeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	ws.SetReadDeadline(deadline)

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			ws.Close()
			if perr := asProtocolError(err); perr != nil {
				return nil, "", 0, perr
			}
			return nil, "", 0, fmt.Errorf("realtime: handshake: %w", err)
		}

		var f frame
		if err := json.Unmarshal(msg, &f); err != nil {
			continue
		}
		switch f.Event {
		case eventConnEstablished:
			var est connectionEstablished
			if err := decodeEventData(f.Data, &est); err != nil {
				ws.Close()
				return nil, "", 0, fmt.Errorf("realtime: handshake: %w", err)
			}
			ws.SetReadDeadline(time.Time{})
			return ws, est.SocketID, time.Duration(est.ActivityTimeout) * time.Second, nil
		case eventError:
			var pe protocolError
			decodeEventData(f.Data, &pe)
			ws.Close()
			return nil, "", 0, &Error{Code: pe.Code, Message: pe.Message}
		}
	}
}

// readLoop consumes frames until the transport fails or a fatal protocol
// error arrives, and returns the reason.
func (c *Conn) readLoop(ws *websocket.Conn) error {
	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			return err
		}
		c.touch()

		var f frame
		if err := json.Unmarshal(msg, &f); err != nil {
			c.log.Debug("realtime: dropped malformed frame", "error", err)
			continue
		}

		switch f.Event {
		case eventPing:
			c.writeFrame(ws, frame{Event: eventPong, Data: json.RawMessage(`{}`)})
		case eventPong:
			// activity already counted
		case eventError:
			var pe protocolError
			decodeEventData(f.Data, &pe)
			perr := &Error{Code: pe.Code, Message: pe.Message}
			if classify(pe.Code) == classFatal {
				return perr
			}
			// non-fatal errors are advisory; the server closes the
			// transport itself if it wants a reconnect
			c.log.Warn("realtime: server error", "code", pe.Code, "message", pe.Message)
		case eventSubSucceeded:
			if ch := c.channel(f.Channel); ch != nil {
				ch.markSubscribed()
				c.log.Debug("realtime: subscribed", "channel", f.Channel)
			}
		default:
			if f.Channel == "" || strings.HasPrefix(f.Event, "pusher_internal:") {
				continue
			}
			if ch := c.channel(f.Channel); ch != nil {
				ch.dispatch(Event{
					Name:    f.Event,
					Channel: f.Channel,
					Data:    normalizeData(f.Data),
				})
			}
		}
	}
}

// watch pings when the connection has been idle for the activity timeout
// and kills the transport when no pong follows, forcing a reconnect.
func (c *Conn) watch(ws *websocket.Conn, epoch <-chan struct{}) {
	timer := time.NewTimer(c.activityTimeout)
	defer timer.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-epoch:
			return
		case <-c.activity:
			timer.Reset(c.activityTimeout)
		case <-timer.C:
			if err := c.writeFrame(ws, frame{Event: eventPing, Data: json.RawMessage(`{}`)}); err != nil {
				ws.Close()
				return
			}
			select {
			case <-c.ctx.Done():
				return
			case <-epoch:
				return
			case <-c.activity:
				timer.Reset(c.activityTimeout)
			case <-time.After(c.pongTimeout):
				c.log.Warn("realtime: pong timeout, dropping connection")
				ws.Close()
				return
			}
		}
	}
}

// redial reconnects with exponential backoff starting at delay, then
// swaps the transport in and resubscribes every channel. It returns nil
// when the connection was closed or a fatal error ended the retry loop.
func (c *Conn) redial(delay time.Duration) *websocket.Conn {
	for {
		if delay > 0 {
			timer := time.NewTimer(jitter(delay))
			select {
			case <-c.ctx.Done():
				timer.Stop()
				return nil
			case <-timer.C:
			}
		} else if c.ctx.Err() != nil {
			return nil
		}

		ws, socketID, _, err := c.connect(c.ctx)
		if err == nil {
			c.mu.Lock()
			c.ws = ws
			c.socketID = socketID
			c.mu.Unlock()
			c.log.Info("realtime reconnected", "socket_id", socketID)
			c.resubscribe(ws, socketID)
			return ws
		}

		var perr *Error
		if errors.As(err, &perr) && classify(perr.Code) == classFatal {
			c.setErr(perr)
			c.log.Error("realtime reconnect refused", "error", perr)
			return nil
		}

		if delay == 0 {
			delay = initialBackoff
		} else {
			delay *= 2
		}
		if delay > c.maxWait {
			delay = c.maxWait
		}
		c.log.Warn("realtime reconnect failed", "error", err, "next_attempt_in", delay)
	}
}

// resubscribe re-sends the subscribe frame for every channel, with fresh
// auth for the ones that need it.
func (c *Conn) resubscribe(ws *websocket.Conn, socketID string) {
	c.mu.Lock()
	chans := make([]*Channel, 0, len(c.channels))
	for _, ch := range c.channels {
		chans = append(chans, ch)
	}
	c.mu.Unlock()

	for _, ch := range chans {
		if err := c.sendSubscribe(c.ctx, ws, socketID, ch); err != nil {
			c.log.Warn("realtime resubscribe failed", "channel", ch.name, "error", err)
		}
	}
}

// sendSubscribe signs the channel if needed and sends pusher:subscribe.
func (c *Conn) sendSubscribe(ctx context.Context, ws *websocket.Conn, socketID string, ch *Channel) error {
	payload := subscribePayload{Channel: ch.name}
	if needsAuth(ch.name) {
		if c.cfg.Authorizer == nil {
			return fmt.Errorf("realtime: channel %q requires auth but no Authorizer is configured", ch.name)
		}
		auth, err := c.cfg.Authorizer.Authorize(ctx, socketID, ch.name)
		if err != nil {
			return fmt.Errorf("realtime: authorize %q: %w", ch.name, err)
		}
		payload.Auth = auth
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.writeFrame(ws, frame{Event: eventSubscribe, Data: data})
}

// unsubscribe detaches ch from the connection and tells the server.
func (c *Conn) unsubscribe(ch *Channel) error {
	c.mu.Lock()
	if c.channels[ch.name] != ch {
		c.mu.Unlock()
		return nil
	}
	delete(c.channels, ch.name)
	ws := c.ws
	closed := c.closed
	c.mu.Unlock()

	if closed || ws == nil {
		return nil
	}
	data, err := json.Marshal(unsubscribePayload{Channel: ch.name})
	if err != nil {
		return err
	}
	return c.writeFrame(ws, frame{Event: eventUnsubscribe, Data: data})
}

// writeFrame marshals and sends one frame under the write lock.
func (c *Conn) writeFrame(ws *websocket.Conn, f frame) error {
	buf, err := json.Marshal(f)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return ws.WriteMessage(websocket.TextMessage, buf)
}

// channel returns the subscribed channel by name, or nil.
func (c *Conn) channel(name string) *Channel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channels[name]
}

// setErr records the fatal error; the first one wins.
func (c *Conn) setErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err == nil {
		c.err = err
	}
}

// touch pulses the activity signal without blocking.
func (c *Conn) touch() {
	select {
	case c.activity <- struct{}{}:
	default:
	}
}

// needsAuth reports whether the channel name requires a signed
// subscription.
func needsAuth(name string) bool {
	return strings.HasPrefix(name, "private-") || strings.HasPrefix(name, "presence-")
}

// classifyErr maps a read-loop failure to its reconnect class, honoring
// protocol error codes carried as events or close frames.
func classifyErr(err error) closeClass {
	var perr *Error
	if errors.As(err, &perr) {
		return classify(perr.Code)
	}
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		return classify(ce.Code)
	}
	return classTransient
}

// asProtocolError converts a close frame during the handshake into an
// [Error], or returns nil.
func asProtocolError(err error) *Error {
	var ce *websocket.CloseError
	if errors.As(err, &ce) && ce.Code >= 4000 {
		return &Error{Code: ce.Code, Message: ce.Text}
	}
	return nil
}

// jitter spreads a reconnect delay by up to 10% either way so recovering
// clients do not stampede the server.
func jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return d
	}
	return d - d/10 + rand.N(d/5)
}
