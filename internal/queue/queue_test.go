package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyReceive(t *testing.T) {
	q := New[int]()
	_, ok := q.TryReceive()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())
}

func TestFIFOOrder(t *testing.T) {
	q := New[int]()
	for i := 0; i < 100; i++ {
		q.Send(i)
	}
	require.Equal(t, 100, q.Len())

	for i := 0; i < 100; i++ {
		v, ok := q.TryReceive()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok := q.TryReceive()
	assert.False(t, ok)
}

func TestInterleavedSendReceive(t *testing.T) {
	q := New[int]()
	next := 0

	// Sends landing mid-drain must queue behind the remaining backlog.
	for i := 0; i < 10; i++ {
		q.Send(i*3 + 0)
		q.Send(i*3 + 1)
		q.Send(i*3 + 2)
		for j := 0; j < 2; j++ {
			v, ok := q.TryReceive()
			require.True(t, ok)
			require.Equal(t, next, v)
			next++
		}
	}
	assert.Equal(t, 10, q.Len())

	for {
		v, ok := q.TryReceive()
		if !ok {
			break
		}
		require.Equal(t, next, v)
		next++
	}
	assert.Equal(t, 30, next)
	assert.Equal(t, 0, q.Len())
}

func TestProducerConsumerHandoff(t *testing.T) {
	const n = 10_000
	q := New[int]()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < n; i++ {
			q.Send(i)
		}
	}()

	// Drain-all polling like the update loop does; every message must come
	// through exactly once and in order.
	next := 0
	for next < n {
		v, ok := q.TryReceive()
		if !ok {
			continue
		}
		require.Equal(t, next, v)
		next++
	}
	<-done
	assert.Equal(t, 0, q.Len())
}
