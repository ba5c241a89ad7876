// Package worker runs the background consumers of the rentspot server.
package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/memodb-io/rentspot/internal/modules/model"
	"github.com/memodb-io/rentspot/internal/modules/service"
	"github.com/memodb-io/rentspot/internal/telemetry"
)

// Consumer is satisfied by *mq.Consumer.
type Consumer interface {
	Handle(ctx context.Context, handler func(context.Context, []byte) error) error
}

// RatingWorker recomputes a spot's rating for every review event it receives.
type RatingWorker struct {
	rating service.RatingService
	log    *zap.Logger
}

func NewRatingWorker(rating service.RatingService, log *zap.Logger) *RatingWorker {
	return &RatingWorker{rating: rating, log: log}
}

// HandleMessage processes one ReviewEvent body. Undecodable events are
// dropped; refresh failures are returned so the message gets requeued.
func (w *RatingWorker) HandleMessage(ctx context.Context, body []byte) error {
	var ev model.ReviewEvent
	if err := sonic.Unmarshal(body, &ev); err != nil {
		w.log.Error("drop malformed review event", zap.Error(err), zap.ByteString("body", body))
		return nil
	}
	if ev.SpotID <= 0 {
		w.log.Error("drop review event without spot", zap.String("kind", ev.Kind), zap.Int64("review_id", ev.ReviewID))
		return nil
	}

	err := w.rating.Refresh(ctx, ev.SpotID)
	telemetry.RecordRatingRefresh("worker", err)
	if err != nil {
		return fmt.Errorf("refresh rating of spot %d: %w", ev.SpotID, err)
	}
	w.log.Debug("rating refreshed",
		zap.String("kind", ev.Kind),
		zap.Int64("spot_id", ev.SpotID),
		zap.Int64("review_id", ev.ReviewID))
	return nil
}

// Run consumes from c until ctx is cancelled.
func (w *RatingWorker) Run(ctx context.Context, c Consumer) error {
	return c.Handle(ctx, w.HandleMessage)
}

// Job is a long running consumer loop.
type Job func(ctx context.Context) error

// RunAll starts every job and waits for them. The first failure cancels the
// others; a cancelled ctx is a clean shutdown.
func RunAll(ctx context.Context, jobs ...Job) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, j := range jobs {
		g.Go(func() error { return j(ctx) })
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
