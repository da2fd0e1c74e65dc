package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeSaver struct {
	mu    sync.Mutex
	saved []RoundResult
	err   error
}

func (f *fakeSaver) SaveRound(_ context.Context, r *RoundResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, *r)
	return nil
}

func (f *fakeSaver) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

func TestWriterSavesQueuedRounds(t *testing.T) {
	saver := &fakeSaver{}
	w := NewWriter(saver, 4, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.True(t, w.Enqueue(RoundResult{MatchID: "m1", Round: 1, Winner: "attackers"}))
	require.True(t, w.Enqueue(RoundResult{MatchID: "m1", Round: 2, Winner: "defenders"}))

	require.Eventually(t, func() bool { return saver.count() == 2 }, time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, 1, saver.saved[0].Round)
	assert.Equal(t, "defenders", saver.saved[1].Winner)
}

func TestWriterDropsWhenFull(t *testing.T) {
	w := NewWriter(&fakeSaver{}, 1, zaptest.NewLogger(t))
	assert.True(t, w.Enqueue(RoundResult{Round: 1}))
	assert.False(t, w.Enqueue(RoundResult{Round: 2}))
}

func TestWriterFlushesOnShutdown(t *testing.T) {
	saver := &fakeSaver{}
	w := NewWriter(saver, 8, zaptest.NewLogger(t))
	for i := 1; i <= 3; i++ {
		w.Enqueue(RoundResult{MatchID: "m1", Round: i})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, w.Run(ctx))
	assert.Equal(t, 3, saver.count())
}

func TestWriterSurvivesSaveErrors(t *testing.T) {
	saver := &fakeSaver{err: errors.New("db down")}
	w := NewWriter(saver, 2, zaptest.NewLogger(t))
	w.Enqueue(RoundResult{Round: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, w.Run(ctx))
	assert.Zero(t, saver.count())
}
