// Package pipeline coordinates one run per inbound event: authorization,
// content intake, prompt assembly, and the single completion call.
package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/shadowintel/shadowbot/internal/agent"
	"github.com/shadowintel/shadowbot/internal/completion"
	"github.com/shadowintel/shadowbot/internal/crawler"
	"github.com/shadowintel/shadowbot/internal/extract"
	"github.com/shadowintel/shadowbot/internal/metrics"
	"github.com/shadowintel/shadowbot/internal/prompt"
)

// State names one stage of a pipeline run. States advance monotonically;
// no state is revisited within a run.
type State string

// Run states.
const (
	StateIdle        State = "idle"
	StateAuthorizing State = "authorizing"
	StateExtracting  State = "extracting"
	StateSummarizing State = "summarizing"
	StateDone        State = "done"
)

// Fixed user-facing replies.
const (
	usageHint = "SHADOW is ready for commands. Use /scan_url <link> to analyze, " +
		"/crawl <url> [depth] for site reconnaissance, or upload a document."
	scanUsage      = "Please provide a URL after /scan_url"
	crawlUsage     = "Usage: /crawl <http(s)://url> [depth]"
	unknownCommand = "Unknown command. Use /scan_url <link> or /crawl <url> [depth]."
)

// Crawler is the content-intake surface for URL-based tasks.
type Crawler interface {
	Scan(ctx context.Context, rawURL string) (crawler.ScanResult, error)
	Crawl(ctx context.Context, rootURL string, maxDepth int) (string, error)
}

// Extractor is the content-intake surface for uploaded documents.
type Extractor interface {
	Extract(data []byte, filenameHint string) (extract.Result, error)
}

// Config bounds pipeline behavior.
type Config struct {
	DefaultDepth int
	MaxDepth     int
}

// Pipeline is safe for concurrent use; each Run owns all of its state.
type Pipeline struct {
	cfg       Config
	auth      agent.Authorizer
	crawler   Crawler
	extractor Extractor
	completer agent.Completer
	files     agent.FileFetcher
	logger    *zap.Logger
}

// New builds a Pipeline.
func New(
	cfg Config,
	auth agent.Authorizer,
	crawl Crawler,
	extractor Extractor,
	completer agent.Completer,
	files agent.FileFetcher,
	logger *zap.Logger,
) *Pipeline {
	if cfg.DefaultDepth < 1 {
		cfg.DefaultDepth = 2
	}
	if cfg.MaxDepth < cfg.DefaultDepth {
		cfg.MaxDepth = cfg.DefaultDepth
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		cfg:       cfg,
		auth:      auth,
		crawler:   crawl,
		extractor: extractor,
		completer: completer,
		files:     files,
		logger:    logger,
	}
}

// run carries per-run state; it is discarded when Run returns.
type run struct {
	state  State
	logger *zap.Logger
}

func (r *run) to(next State) {
	r.logger.Debug("pipeline transition",
		zap.String("from", string(r.state)),
		zap.String("to", string(next)),
	)
	r.state = next
}

// Run processes one inbound event end to end. The returned bool reports
// whether a reply should be delivered; it is false only for unauthorized
// senders, which are dropped silently.
func (p *Pipeline) Run(ctx context.Context, ev agent.InboundEvent) (agent.Reply, bool) {
	r := &run{
		state: StateIdle,
		logger: p.logger.With(
			zap.String("run_id", ev.RunID),
			zap.Int64("sender_id", ev.SenderID),
			zap.String("kind", string(ev.Kind)),
		),
	}
	r.to(StateAuthorizing)

	if !p.auth.IsAuthorized(ev.SenderID) {
		r.to(StateDone)
		r.logger.Warn("unauthorized sender dropped")
		metrics.ObserveRun(string(ev.Kind), "denied")
		return agent.Reply{}, false
	}

	text := p.dispatch(ctx, r, ev)
	r.to(StateDone)
	return agent.Reply{ChatID: ev.ChatID, Text: text}, true
}

func (p *Pipeline) dispatch(ctx context.Context, r *run, ev agent.InboundEvent) string {
	switch ev.Kind {
	case agent.EventCommand:
		switch ev.Command {
		case "scan_url":
			return p.runScan(ctx, r, ev)
		case "crawl":
			return p.runCrawl(ctx, r, ev)
		case "start", "help":
			metrics.ObserveRun(string(ev.Kind), "usage")
			return usageHint
		default:
			metrics.ObserveRun(string(ev.Kind), "usage")
			return unknownCommand
		}
	case agent.EventDocument:
		return p.runDocument(ctx, r, ev)
	default:
		metrics.ObserveRun(string(ev.Kind), "usage")
		return usageHint
	}
}

// runScan handles /scan_url: one page, no recursion, capped text.
func (p *Pipeline) runScan(ctx context.Context, r *run, ev agent.InboundEvent) string {
	if len(ev.Args) == 0 {
		metrics.ObserveRun(string(ev.Kind), "usage")
		return scanUsage
	}
	target := ev.Args[0]

	r.to(StateExtracting)
	res, err := p.crawler.Scan(ctx, target)
	if err != nil {
		r.logger.Warn("scan failed", zap.String("url", target), zap.Error(err))
		metrics.ObserveRun(string(ev.Kind), "error")
		return fmt.Sprintf("Error: %v", err)
	}

	title := res.Title
	if title == "" {
		title = "No Title"
	}
	summary, ok := p.summarize(ctx, r, prompt.ScanFraming(target, title), res.Text)
	if !ok {
		metrics.ObserveRun(string(ev.Kind), "error")
		return summary
	}
	metrics.ObserveRun(string(ev.Kind), "ok")
	return fmt.Sprintf("📰 Title: %s\n\n📄 Summary:\n%s", title, summary)
}

// runCrawl handles /crawl: depth-bounded site traversal.
func (p *Pipeline) runCrawl(ctx context.Context, r *run, ev agent.InboundEvent) string {
	if len(ev.Args) == 0 {
		metrics.ObserveRun(string(ev.Kind), "usage")
		return crawlUsage
	}
	target := ev.Args[0]
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		// Rejected before any fetch.
		metrics.ObserveRun(string(ev.Kind), "usage")
		return crawlUsage
	}
	depth := p.crawlDepth(ev.Args)

	r.to(StateExtracting)
	text, err := p.crawler.Crawl(ctx, target, depth)
	if err != nil {
		r.logger.Warn("crawl failed", zap.String("url", target), zap.Error(err))
		metrics.ObserveRun(string(ev.Kind), "error")
		return fmt.Sprintf("Error: %v", err)
	}
	if text == "" {
		metrics.ObserveRun(string(ev.Kind), "error")
		return fmt.Sprintf("Error: %v", agent.ErrNoReadableText)
	}

	summary, ok := p.summarize(ctx, r, prompt.CrawlFraming(target, depth), text)
	if !ok {
		metrics.ObserveRun(string(ev.Kind), "error")
		return summary
	}
	metrics.ObserveRun(string(ev.Kind), "ok")
	return fmt.Sprintf("🕸 Crawled: %s\n\n📄 Summary:\n%s", target, summary)
}

// runDocument handles uploads: fetch bytes, extract, summarize.
func (p *Pipeline) runDocument(ctx context.Context, r *run, ev agent.InboundEvent) string {
	r.to(StateExtracting)
	data, err := p.files.FileBytes(ctx, ev.FileID)
	if err != nil {
		r.logger.Warn("file download failed", zap.String("filename", ev.Filename), zap.Error(err))
		metrics.ObserveRun(string(ev.Kind), "error")
		return fmt.Sprintf("Error: %v", err)
	}

	res, err := p.extractor.Extract(data, ev.Filename)
	if err != nil {
		r.logger.Warn("extraction failed", zap.String("filename", ev.Filename), zap.Error(err))
		metrics.ObserveRun(string(ev.Kind), "error")
		return fmt.Sprintf("Error: %v", err)
	}
	if res.Format == extract.FormatUnsupported {
		metrics.ObserveRun(string(ev.Kind), "unsupported")
		return fmt.Sprintf("Unsupported file type: %s", ev.Filename)
	}

	framing := prompt.DocumentFraming(ev.Filename, res.Format.String())
	summary, ok := p.summarize(ctx, r, framing, res.Text)
	if !ok {
		metrics.ObserveRun(string(ev.Kind), "error")
		return summary
	}
	metrics.ObserveRun(string(ev.Kind), "ok")
	return fmt.Sprintf("📎 %s\n\n📄 Summary:\n%s", ev.Filename, summary)
}

// summarize assembles the prompt and issues the single completion call. The
// bool is false when the collaborator failed and the returned string is the
// fixed error reply.
func (p *Pipeline) summarize(ctx context.Context, r *run, framing, content string) (string, bool) {
	r.to(StateSummarizing)
	userPrompt := prompt.Assemble(prompt.Persona, framing, content)
	out, err := p.completer.Complete(ctx, prompt.Persona, userPrompt)
	if err != nil {
		r.logger.Warn("completion failed", zap.Error(err))
		return completion.FormatError(err), false
	}
	return out, true
}

func (p *Pipeline) crawlDepth(args []string) int {
	depth := p.cfg.DefaultDepth
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			depth = n
		}
	}
	if depth < 1 {
		depth = 1
	}
	if depth > p.cfg.MaxDepth {
		depth = p.cfg.MaxDepth
	}
	return depth
}
