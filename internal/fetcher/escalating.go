package fetcher

import (
	"context"

	"go.uber.org/zap"

	"github.com/shadowintel/shadowbot/internal/agent"
)

// Detector decides whether a probe fetch warrants a headless refetch.
type Detector interface {
	ShouldPromote(page agent.Page) bool
}

// Escalating wraps a probe fetcher with an optional headless escalation path.
// The probe result is kept whenever the detector declines or the headless
// fetch fails, so escalation can only improve a page, never lose it.
type Escalating struct {
	probe    agent.Fetcher
	headless agent.Fetcher
	detector Detector
	logger   *zap.Logger
}

// NewEscalating builds an Escalating fetcher. A nil headless fetcher or
// detector disables escalation entirely.
func NewEscalating(probe, headless agent.Fetcher, detector Detector, logger *zap.Logger) *Escalating {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Escalating{
		probe:    probe,
		headless: headless,
		detector: detector,
		logger:   logger,
	}
}

// Fetch probes the URL and escalates to the headless renderer when warranted.
func (e *Escalating) Fetch(ctx context.Context, rawURL string) (agent.Page, error) {
	page, err := e.probe.Fetch(ctx, rawURL)
	if err != nil {
		return agent.Page{}, err
	}
	if e.headless == nil || e.detector == nil || !e.detector.ShouldPromote(page) {
		return page, nil
	}

	rendered, err := e.headless.Fetch(ctx, rawURL)
	if err != nil {
		e.logger.Warn("headless escalation failed, keeping probe result",
			zap.String("url", rawURL), zap.Error(err))
		return page, nil
	}
	return rendered, nil
}
