package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shadowintel/shadowbot/internal/agent"
	"github.com/shadowintel/shadowbot/internal/queue/memory"
)

type fakeRunner struct {
	mu      sync.Mutex
	seen    []agent.InboundEvent
	reply   agent.Reply
	deliver bool
}

func (r *fakeRunner) Run(_ context.Context, ev agent.InboundEvent) (agent.Reply, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, ev)
	return r.reply, r.deliver
}

func (r *fakeRunner) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}

type fakeDeliverer struct {
	mu   sync.Mutex
	sent []agent.Reply
	err  error
}

func (d *fakeDeliverer) Send(_ context.Context, chatID int64, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, agent.Reply{ChatID: chatID, Text: text})
	return d.err
}

func (d *fakeDeliverer) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sent)
}

func TestWorkerDeliversReply(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := memory.NewQueue(4)
	runner := &fakeRunner{reply: agent.Reply{ChatID: 7, Text: "summary"}, deliver: true}
	deliverer := &fakeDeliverer{}

	w := New(q, runner, deliverer, nil, Config{SendTimeout: time.Second}, zap.NewNop())
	go w.Run(ctx)

	require.NoError(t, q.Enqueue(ctx, agent.InboundEvent{RunID: "run-1", ChatID: 7}))

	require.Eventually(t, func() bool {
		return deliverer.count() == 1
	}, time.Second, 10*time.Millisecond)

	deliverer.mu.Lock()
	defer deliverer.mu.Unlock()
	require.Equal(t, agent.Reply{ChatID: 7, Text: "summary"}, deliverer.sent[0])
}

func TestWorkerSkipsDeliveryWhenRunnerDeclines(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := memory.NewQueue(4)
	runner := &fakeRunner{deliver: false}
	deliverer := &fakeDeliverer{}

	w := New(q, runner, deliverer, nil, Config{}, zap.NewNop())
	go w.Run(ctx)

	require.NoError(t, q.Enqueue(ctx, agent.InboundEvent{RunID: "run-2"}))

	require.Eventually(t, func() bool {
		return runner.count() == 1
	}, time.Second, 10*time.Millisecond)
	require.Zero(t, deliverer.count())
}

func TestWorkerContinuesAfterDeliveryError(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := memory.NewQueue(4)
	runner := &fakeRunner{reply: agent.Reply{ChatID: 3, Text: "x"}, deliver: true}
	deliverer := &fakeDeliverer{err: errors.New("telegram: 502")}

	w := New(q, runner, deliverer, nil, Config{}, zap.NewNop())
	go w.Run(ctx)

	require.NoError(t, q.Enqueue(ctx, agent.InboundEvent{RunID: "run-3"}))
	require.NoError(t, q.Enqueue(ctx, agent.InboundEvent{RunID: "run-4"}))

	require.Eventually(t, func() bool {
		return deliverer.count() == 2
	}, time.Second, 10*time.Millisecond)
}

type countingClock struct {
	mu    sync.Mutex
	now   time.Time
	calls int
}

func (c *countingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func (c *countingClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestWorkerTimesRunsWithClock(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := memory.NewQueue(4)
	runner := &fakeRunner{reply: agent.Reply{ChatID: 1, Text: "t"}, deliver: true}
	deliverer := &fakeDeliverer{}
	clk := &countingClock{now: time.Unix(500, 0)}

	w := New(q, runner, deliverer, clk, Config{}, zap.NewNop())
	go w.Run(ctx)

	require.NoError(t, q.Enqueue(ctx, agent.InboundEvent{RunID: "run-5"}))

	require.Eventually(t, func() bool {
		return deliverer.count() == 1
	}, time.Second, 10*time.Millisecond)
	require.Equal(t, 2, clk.count(), "one timestamp before the run, one after")
}

func TestWorkerStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	q := memory.NewQueue(1)
	w := New(q, &fakeRunner{}, &fakeDeliverer{}, nil, Config{}, zap.NewNop())

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on cancel")
	}
}
