package websocket

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (*Hub, context.CancelFunc) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func newTestClient(hub *Hub, userID int64) *Client {
	return NewClient(hub, nil, userID)
}

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("expected a message")
		return nil
	}
}

func requireNothing(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.send:
		t.Fatalf("unexpected message %q", msg)
	default:
	}
}

func TestHub_BroadcastReachesEveryone(t *testing.T) {
	hub, _ := newTestHub(t)
	alice := newTestClient(hub, 1)
	bob := newTestClient(hub, 2)
	require.True(t, hub.Attach(alice))
	require.True(t, hub.Attach(bob))
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	hub.Broadcast([]byte("tick"))

	require.Equal(t, "tick", string(receive(t, alice)))
	require.Equal(t, "tick", string(receive(t, bob)))
}

func TestHub_PublishEventTargetsOneUser(t *testing.T) {
	hub, _ := newTestHub(t)
	alice := newTestClient(hub, 1)
	bob := newTestClient(hub, 2)
	require.True(t, hub.Attach(alice))
	require.True(t, hub.Attach(bob))
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	hub.PublishEvent(1, []byte("only-alice"))

	require.Equal(t, "only-alice", string(receive(t, alice)))
	requireNothing(t, bob)
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub, _ := newTestHub(t)
	c := newTestClient(hub, 1)
	require.True(t, hub.Attach(c))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.detach(c)
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-c.send
	require.False(t, ok)
}

func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	hub, _ := newTestHub(t)
	c := newTestClient(hub, 1)
	require.True(t, hub.Attach(c))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	for i := 0; i < cap(c.send)+10; i++ {
		hub.Broadcast([]byte("x"))
	}
	require.Len(t, c.send, cap(c.send))
}

func TestHub_StopsOnContextCancel(t *testing.T) {
	hub, cancel := newTestHub(t)
	c := newTestClient(hub, 1)
	require.True(t, hub.Attach(c))

	cancel()
	<-hub.done

	require.False(t, hub.Attach(newTestClient(hub, 2)))
	_, ok := <-c.send
	require.False(t, ok, "clients are closed when the hub stops")
}
