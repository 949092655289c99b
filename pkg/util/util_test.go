package util

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	ts := time.Date(2023, 11, 10, 7, 30, 5, 0, time.UTC)
	assert.Equal(t, "2023.11.10", FormatDate(ts, "YYYY.MM.DD"))
	assert.Equal(t, "10/11/23", FormatDate(ts, "DD/MM/YY"))
	assert.Equal(t, "2023-11-10 07:30:05", FormatDate(ts, "YYYY-MM-DD hh:mm:ss"))
	assert.Equal(t, "", FormatDate(time.Time{}, "YYYY"))
}

func TestParallelRunsAll(t *testing.T) {
	var n atomic.Int64
	inputs := []int{1, 2, 3, 4, 5, 6, 7, 8}
	err := Parallel(context.Background(), inputs, 3, func(_ context.Context, v int) error {
		n.Add(int64(v))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(36), n.Load())
}

func TestParallelFirstErrorWins(t *testing.T) {
	boom := errors.New("boom")
	var mu sync.Mutex
	seen := 0
	err := Parallel(context.Background(), []int{1, 2, 3, 4, 5}, 1, func(_ context.Context, v int) error {
		mu.Lock()
		seen++
		mu.Unlock()
		if v == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Less(t, seen, 5, "work after the failure should be cancelled")
}

func TestParallelEmptyInput(t *testing.T) {
	called := false
	err := Parallel(context.Background(), nil, 4, func(_ context.Context, _ int) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}
