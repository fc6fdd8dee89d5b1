package fanout

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestDeliversInOrder(t *testing.T) {
	f := New[int](4)
	a, b := f.Subscribe(), f.Subscribe()

	for i := 0; i < 3; i++ {
		require.True(t, f.Publish(i))
	}

	ctx := context.Background()
	for _, sub := range []*Subscription[int]{a, b} {
		for i := 0; i < 3; i++ {
			v, err := sub.Recv(ctx)
			require.NoError(t, err)
			require.Equal(t, i, v)
		}
	}
}

func TestSubscribeStartsAtNow(t *testing.T) {
	f := New[int](4)
	f.Publish(1)
	sub := f.Subscribe()
	require.Equal(t, 0, sub.Pending())
	f.Publish(2)

	v, err := sub.Recv(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestLagged(t *testing.T) {
	f := New[int](4)
	sub := f.Subscribe()

	for i := 0; i < 10; i++ {
		f.Publish(i)
	}
	require.Equal(t, 4, sub.Pending())

	_, err := sub.Recv(context.Background())
	var lagged *LaggedError
	require.True(t, errors.As(err, &lagged), "got %v", err)
	require.Equal(t, uint64(6), lagged.Skipped)

	// After the lag report the subscriber resumes at the oldest retained entry
	for i := 6; i < 10; i++ {
		v, err := sub.Recv(context.Background())
		require.NoError(t, err)
		require.Equal(t, i, v)
	}
}

func TestReset(t *testing.T) {
	f := New[int](4)
	sub := f.Subscribe()
	for i := 0; i < 10; i++ {
		f.Publish(i)
	}
	sub.Reset()
	require.Equal(t, 0, sub.Pending())

	f.Publish(99)
	v, err := sub.Recv(context.Background())
	require.NoError(t, err)
	require.Equal(t, 99, v)
}

func TestRecvWaitsForPublish(t *testing.T) {
	f := New[string](2)
	sub := f.Subscribe()

	got := make(chan string, 1)
	go func() {
		v, err := sub.Recv(context.Background())
		if err == nil {
			got <- v
		}
	}()

	time.Sleep(10 * time.Millisecond)
	f.Publish("hello")

	select {
	case v := <-got:
		require.Equal(t, "hello", v)
	case <-time.After(time.Second):
		t.Fatal("subscriber was not woken")
	}
}

func TestClose(t *testing.T) {
	f := New[int](4)
	sub := f.Subscribe()
	f.Publish(1)
	f.Close()
	f.Close()
	require.False(t, f.Publish(2))

	// Retained entries drain before the close is reported
	v, err := sub.Recv(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, v)

	_, err = sub.Recv(context.Background())
	require.ErrorIs(t, err, ErrClosed)
}

func TestRecvContext(t *testing.T) {
	f := New[int](4)
	sub := f.Subscribe()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := sub.Recv(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
