package store

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Saver interface {
	SaveRound(ctx context.Context, r *RoundResult) error
}

const saveTimeout = 5 * time.Second

// Writer moves archive writes off the arena goroutines. Arenas call Enqueue;
// a single Run loop does the I/O.
type Writer struct {
	saver Saver
	queue chan RoundResult
	log   *zap.Logger
}

func NewWriter(s Saver, buffer int, log *zap.Logger) *Writer {
	if buffer <= 0 {
		buffer = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer{
		saver: s,
		queue: make(chan RoundResult, buffer),
		log:   log.Named("archive"),
	}
}

// Enqueue never blocks. It reports false when the queue is full and the
// result was dropped.
func (w *Writer) Enqueue(r RoundResult) bool {
	select {
	case w.queue <- r:
		return true
	default:
		w.log.Warn("archive queue full, dropping round",
			zap.String("match_id", r.MatchID), zap.Int("round", r.Round))
		return false
	}
}

// Run saves queued rounds until ctx is done, then flushes whatever is still
// buffered.
func (w *Writer) Run(ctx context.Context) error {
	for {
		select {
		case r := <-w.queue:
			w.save(ctx, r)
		case <-ctx.Done():
			w.flush()
			return nil
		}
	}
}

func (w *Writer) flush() {
	for {
		select {
		case r := <-w.queue:
			w.save(context.Background(), r)
		default:
			return
		}
	}
}

func (w *Writer) save(parent context.Context, r RoundResult) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), saveTimeout)
	defer cancel()
	if err := w.saver.SaveRound(ctx, &r); err != nil {
		w.log.Error("archive write failed", zap.Error(err))
		return
	}
	w.log.Debug("round archived",
		zap.String("match_id", r.MatchID), zap.Int("round", r.Round), zap.String("winner", r.Winner))
}
