package loggerise

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Futurecode-Software/loggerise-go/realtime"
)

// EventMessageCreated is the realtime event announcing a new trip
// message; see [ParseMessageEvent].
const EventMessageCreated = "message.created"

// DialRealtime opens a realtime connection to the host configured with
// [WithRealtime], ready to subscribe to the tenant's channels.
//
// Private channel subscriptions are signed through the API's broadcasting
// auth endpoint using the client's token, so the client must be
// authenticated. The connection is independent of the Client afterwards;
// close it separately.
//
//	conn, err := client.DialRealtime(ctx)
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//
//	ch, err := conn.Subscribe(ctx, loggerise.TripChannel(tripID))
//	if err != nil {
//	    return err
//	}
//	for ev := range ch.Bind(loggerise.EventMessageCreated) {
//	    msg, err := loggerise.ParseMessageEvent(ev)
//	    ...
//	}
func (c *Client) DialRealtime(ctx context.Context) (*realtime.Conn, error) {
	if c.realtimeHost == "" || c.realtimeKey == "" {
		return nil, errors.New("loggerise: realtime is not configured, pass WithRealtime to New")
	}
	if c.tokens.Token() == "" {
		return nil, ErrNotAuthenticated
	}
	return realtime.Dial(ctx, realtime.Config{
		Host:       c.realtimeHost,
		Key:        c.realtimeKey,
		TLS:        c.baseURL.Scheme == "https",
		Version:    Version,
		Authorizer: &broadcastAuthorizer{c: c},
		Logger:     c.logger,
	})
}

// TenantChannel returns the private channel name carrying tenant-wide
// events such as order status changes.
func TenantChannel(tenantID int64) string {
	return fmt.Sprintf("private-tenant.%d", tenantID)
}

// TripChannel returns the private channel name of one trip's message
// thread.
func TripChannel(tripID int64) string {
	return fmt.Sprintf("private-trip.%d", tripID)
}

// broadcastAuthorizer signs channel subscriptions through the API's
// broadcasting auth endpoint, Laravel's standard private-channel flow.
type broadcastAuthorizer struct {
	c *Client
}

func (a *broadcastAuthorizer) Authorize(ctx context.Context, socketID, channel string) (string, error) {
	in := struct {
		SocketID    string `json:"socket_id"`
		ChannelName string `json:"channel_name"`
	}{SocketID: socketID, ChannelName: channel}

	var out struct {
		Auth string `json:"auth"`
	}
	if err := a.c.post(ctx, "/broadcasting/auth", in, &out); err != nil {
		return "", err
	}
	return out.Auth, nil
}

// ParseMessageEvent decodes an [EventMessageCreated] event into the
// [Message] it carries.
func ParseMessageEvent(ev realtime.Event) (*Message, error) {
	if ev.Name != EventMessageCreated {
		return nil, fmt.Errorf("loggerise: event %q is not %s", ev.Name, EventMessageCreated)
	}
	var payload struct {
		Message Message `json:"message"`
	}
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		return nil, fmt.Errorf("loggerise: decode %s event: %w", EventMessageCreated, err)
	}
	return &payload.Message, nil
}
