package app

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shadowintel/shadowbot/internal/config"
	"github.com/shadowintel/shadowbot/internal/fetcher"
	collyfetcher "github.com/shadowintel/shadowbot/internal/fetcher/colly"
)

func testConfig() *config.Config {
	return &config.Config{
		Crawler: config.CrawlerConfig{
			UserAgent:      "test-agent",
			TimeoutSeconds: 5,
			MaxDepth:       3,
			DefaultDepth:   2,
		},
	}
}

func TestBuildFetcherProbeOnly(t *testing.T) {
	a := &App{cfg: testConfig(), logger: zap.NewNop()}

	fetch := a.buildFetcher()
	require.IsType(t, &collyfetcher.Fetcher{}, fetch)
	require.Nil(t, a.headless)
}

func TestBuildFetcherEscalatingWhenRenderEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.Crawler.RenderEnabled = true
	cfg.Crawler.RenderParallel = 2
	a := &App{cfg: cfg, logger: zap.NewNop()}

	fetch := a.buildFetcher()
	if a.headless == nil {
		// No Chrome available in this environment; probe fallback is fine.
		require.IsType(t, &collyfetcher.Fetcher{}, fetch)
		return
	}
	require.IsType(t, &fetcher.Escalating{}, fetch)
}
