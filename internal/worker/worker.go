// Package worker implements the event consumption loop.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shadowintel/shadowbot/internal/agent"
	"github.com/shadowintel/shadowbot/internal/clock/system"
	"github.com/shadowintel/shadowbot/internal/metrics"
)

// Runner executes one pipeline run for an inbound event.
type Runner interface {
	Run(ctx context.Context, ev agent.InboundEvent) (agent.Reply, bool)
}

// Config controls Worker behavior.
type Config struct {
	// SendTimeout bounds each delivery attempt. Zero means no bound beyond
	// the worker context.
	SendTimeout time.Duration
}

// Worker consumes queued events and executes the pipeline for each.
type Worker struct {
	queue     agent.Queue
	runner    Runner
	deliverer agent.Deliverer
	clock     agent.Clock
	cfg       Config
	logger    *zap.Logger
}

// New constructs a Worker. A nil clock falls back to the system clock.
func New(
	queue agent.Queue,
	runner Runner,
	deliverer agent.Deliverer,
	clock agent.Clock,
	cfg Config,
	logger *zap.Logger,
) *Worker {
	if clock == nil {
		clock = system.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		queue:     queue,
		runner:    runner,
		deliverer: deliverer,
		clock:     clock,
		cfg:       cfg,
		logger:    logger,
	}
}

// Run blocks, consuming queue events until the context finishes.
func (w *Worker) Run(ctx context.Context) {
	for {
		event, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Error("queue dequeue failed", zap.Error(err))
			return
		}
		w.logger.Debug("dequeued event",
			zap.String("run_id", event.RunID),
			zap.String("kind", string(event.Kind)),
		)
		w.processEvent(ctx, event)
	}
}

func (w *Worker) processEvent(ctx context.Context, event agent.InboundEvent) {
	start := w.clock.Now()
	reply, deliver := w.runner.Run(ctx, event)
	elapsed := w.clock.Now().Sub(start)
	if !deliver {
		w.logger.Debug("run dropped without reply",
			zap.String("run_id", event.RunID),
			zap.Duration("run_elapsed", elapsed),
		)
		return
	}

	sendCtx := ctx
	if w.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, w.cfg.SendTimeout)
		defer cancel()
	}

	if err := w.deliverer.Send(sendCtx, reply.ChatID, reply.Text); err != nil {
		metrics.ObserveDelivery("error")
		w.logger.Error("reply delivery failed",
			zap.String("run_id", event.RunID),
			zap.Int64("chat_id", reply.ChatID),
			zap.Error(err),
		)
		return
	}
	metrics.ObserveDelivery("ok")
	w.logger.Info("reply delivered",
		zap.String("run_id", event.RunID),
		zap.Int64("chat_id", reply.ChatID),
		zap.Int("reply_len", len(reply.Text)),
		zap.Duration("run_elapsed", elapsed),
	)
}
