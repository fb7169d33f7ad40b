package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 5*time.Millisecond)
}

func TestManagerRoutesToUserClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager()
	m.Start(ctx)

	a1 := NewClient("alice", nil, nil)
	a2 := NewClient("alice", nil, nil)
	b := NewClient("bob", nil, nil)
	for _, c := range []*Client{a1, a2, b} {
		require.True(t, m.Register(c))
	}
	waitFor(t, func() bool { return m.Count() == 3 })

	assert.Equal(t, 2, m.SendToUser("alice", []byte("hi")))
	assert.Equal(t, []byte("hi"), <-a1.send)
	assert.Equal(t, []byte("hi"), <-a2.send)
	assert.Len(t, b.send, 0)
}

func TestUnregisterCancelsSubscription(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager()
	m.Start(ctx)

	subCtx, subCancel := context.WithCancel(context.Background())
	c := NewClient("alice", nil, subCancel)
	require.True(t, m.Register(c))

	m.Unregister(c)

	waitFor(t, func() bool { return subCtx.Err() != nil })
	assert.True(t, c.Closed())
	assert.False(t, c.Push([]byte("late snapshot")), "push after teardown is dropped")
}

func TestManagerStopClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewManager()
	m.Start(ctx)

	subCtx, subCancel := context.WithCancel(context.Background())
	c := NewClient("alice", nil, subCancel)
	require.True(t, m.Register(c))

	cancel()
	<-m.Done()

	assert.Error(t, subCtx.Err())
	assert.False(t, m.Register(NewClient("late", nil, nil)))
	m.Unregister(c)
}

func TestSlowClientIsClosed(t *testing.T) {
	c := NewClient("alice", nil, nil)
	for i := 0; i < sendBuffer; i++ {
		require.True(t, c.Push([]byte("x")))
	}

	assert.False(t, c.Push([]byte("overflow")))
	assert.True(t, c.Closed())
}

func TestHandleIncomingPing(t *testing.T) {
	reply, ok := HandleIncoming([]byte(`{"type":"ping"}`))
	require.True(t, ok)

	var msg WSMessage
	require.NoError(t, json.Unmarshal(reply, &msg))
	assert.Equal(t, MessageTypePong, msg.Type)

	_, ok = HandleIncoming([]byte(`{"type":"subscribe"}`))
	assert.False(t, ok)
	_, ok = HandleIncoming([]byte(`not json`))
	assert.False(t, ok)
}
