package realtime

import (
	"encoding/json"
	"fmt"
)

// Protocol event names. The pusher:* family is the wire protocol itself;
// everything else is an application event delivered on a channel.
const (
	eventConnEstablished = "pusher:connection_established"
	eventError           = "pusher:error"
	eventPing            = "pusher:ping"
	eventPong            = "pusher:pong"
	eventSubscribe       = "pusher:subscribe"
	eventUnsubscribe     = "pusher:unsubscribe"
	eventSubSucceeded    = "pusher_internal:subscription_succeeded"
)

// protocolVersion is the Pusher Channels protocol revision this client
// speaks, sent as a query parameter on connect.
const protocolVersion = "7"

// clientName identifies this library in the connect query string.
const clientName = "loggerise-go"

// frame is one websocket message in either direction.
type frame struct {
	Event   string          `json:"event"`
	Channel string          `json:"channel,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// connectionEstablished is the payload of pusher:connection_established.
type connectionEstablished struct {
	SocketID string `json:"socket_id"`

	// ActivityTimeout is the server's preferred idle interval in seconds
	// before the client should ping.
	ActivityTimeout int `json:"activity_timeout"`
}

// protocolError is the payload of pusher:error.
type protocolError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// subscribePayload is the outgoing data of pusher:subscribe.
type subscribePayload struct {
	Channel string `json:"channel"`
	Auth    string `json:"auth,omitempty"`
}

// unsubscribePayload is the outgoing data of pusher:unsubscribe.
type unsubscribePayload struct {
	Channel string `json:"channel"`
}

// Event is one application event delivered on a channel.
type Event struct {
	// Name is the event name, e.g. "message.created".
	Name string

	// Channel is the channel the event arrived on.
	Channel string

	// Data is the event payload with the protocol's string encoding
	// already unwrapped, ready for json.Unmarshal.
	Data json.RawMessage
}

// Error is a protocol-level error reported by the server, either as a
// pusher:error event or as a close code.
//
// Codes follow the Pusher Channels convention: 4000-4099 mean the
// connection will never succeed (bad key, application disabled), 4100-4199
// ask the client to back off before reconnecting, and 4200 and above
// permit an immediate reconnect.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("realtime: server error %d: %s", e.Code, e.Message)
}

// Temporary reports whether reconnecting may succeed.
func (e *Error) Temporary() bool {
	return classify(e.Code) != classFatal
}

// closeClass groups error codes by the reconnect behavior they demand.
type closeClass int

const (
	// classTransient permits an immediate reconnect attempt.
	classTransient closeClass = iota

	// classBackoff requires a delay before reconnecting.
	classBackoff

	// classFatal means reconnecting cannot help.
	classFatal
)

func classify(code int) closeClass {
	switch {
	case code >= 4000 && code < 4100:
		return classFatal
	case code >= 4100 && code < 4200:
		return classBackoff
	default:
		return classTransient
	}
}

// normalizeData unwraps the protocol's double encoding: servers send event
// payloads as a JSON string containing JSON. Payloads that arrive as plain
// objects pass through unchanged.
func normalizeData(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return raw
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return json.RawMessage(s)
	}
	return raw
}

// decodeEventData unmarshals an event payload into v, tolerating both the
// double-encoded and the plain form.
func decodeEventData(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("realtime: event carries no data")
	}
	return json.Unmarshal(normalizeData(raw), v)
}
