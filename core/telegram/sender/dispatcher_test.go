package sender

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDoReturnsRunResult(t *testing.T) {
	d := NewDispatcher(Options{Workers: 2})
	defer d.Close()

	require.NoError(t, d.Do(context.Background(), "send_text", "sendMessage", func() error { return nil }))

	boom := errors.New("chat not found (400)")
	err := d.Do(context.Background(), "send_text", "sendMessage", func() error { return boom })
	require.ErrorIs(t, err, boom)
	require.EqualValues(t, 1, d.ErrorCount())
	require.EqualValues(t, 1, d.SentCount())
}

func TestDoRetriesTransientErrors(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, MaxRetries: 2, RetryBackoff: time.Millisecond})
	defer d.Close()

	var calls atomic.Int32
	err := d.Do(context.Background(), "send_photo", "sendPhoto", func() error {
		if calls.Add(1) == 1 {
			return &net.OpError{Op: "dial", Err: errors.New("refused")}
		}
		return nil
	})
	require.NoError(t, err)
	require.EqualValues(t, 2, calls.Load())
}

func TestDoPreservesCallerOrder(t *testing.T) {
	d := NewDispatcher(Options{Workers: 4})
	defer d.Close()

	var (
		mu  sync.Mutex
		got []int
	)
	for i := 0; i < 10; i++ {
		i := i
		require.NoError(t, d.Do(context.Background(), "send_text", "", func() error {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			return nil
		}))
	}
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestDoRunsInlineAfterClose(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1})
	d.Close()

	ran := false
	require.NoError(t, d.Do(context.Background(), "send_text", "", func() error {
		ran = true
		return nil
	}))
	require.True(t, ran)
	require.ErrorIs(t, d.Enqueue(context.Background(), "send_text", "", func() error { return nil }), ErrQueueClosed)
}

func TestClassifyAndSanitize(t *testing.T) {
	require.Equal(t, "http_4xx", ClassifyError(errors.New("telegram: chat not found (400)")))
	require.Equal(t, "http_5xx", ClassifyError(errors.New("telegram: internal (502)")))
	require.Equal(t, "dial", ClassifyError(&net.OpError{Op: "dial", Err: errors.New("refused")}))
	require.Equal(t, "unknown", ClassifyError(errors.New("weird")))

	msg := SanitizeError(errors.New(`Post "https://api.telegram.org/bot123:AA-bb_cc/sendMessage": EOF`))
	require.NotContains(t, msg, "123:AA-bb_cc")
	require.Contains(t, msg, "bot<redacted>")
}
