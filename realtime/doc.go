// Package realtime implements the websocket side of the Loggerise API: a
// Pusher-protocol client for live events such as trip messages and order
// status changes.
//
// A connection is established with [Dial] and consumed through channel
// subscriptions:
//
//	conn, err := realtime.Dial(ctx, realtime.Config{
//	    Host:       "ws.example.com:6001",
//	    Key:        "app-key",
//	    Authorizer: auth,
//	})
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//
//	ch, err := conn.Subscribe(ctx, "private-tenant.42")
//	if err != nil {
//	    return err
//	}
//	for ev := range ch.Bind("message.created") {
//	    handle(ev)
//	}
//
// The connection looks after itself: it pings when idle, reconnects with
// exponential backoff when the transport drops, and resubscribes every
// channel afterwards, reauthorizing private channels with the fresh socket
// id. Only [Conn.Close] or a fatal protocol error (codes 4000-4099) ends
// it, which [Conn.Done] signals.
//
// Most users get a connection from the parent package's DialRealtime,
// which wires the API client in as the [Authorizer].
package realtime
