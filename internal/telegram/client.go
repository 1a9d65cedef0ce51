// Package telegram wraps the Bot API client used for reply delivery and
// document downloads, and maps raw updates onto pipeline events.
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Telegram rejects messages longer than this many UTF-16 code units.
const maxMessageLen = 4096

// Config controls the Bot API client.
type Config struct {
	Token        string
	MaxFileBytes int64
}

// Client implements agent.Deliverer and agent.FileFetcher over the Bot API.
type Client struct {
	api    *tgbotapi.BotAPI
	http   *http.Client
	cfg    Config
	logger *zap.Logger
}

// New builds a Client. The Bot API validates the token with a getMe call.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	logger.Info("telegram bot authorized", zap.String("username", api.Self.UserName))
	return &Client{
		api:    api,
		http:   &http.Client{Timeout: 30 * time.Second},
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Send delivers text to a chat, splitting messages that exceed the Bot API
// length limit.
func (c *Client) Send(ctx context.Context, chatID int64, text string) error {
	for _, chunk := range splitMessage(text, maxMessageLen) {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("send canceled: %w", err)
		}
		if _, err := c.api.Send(tgbotapi.NewMessage(chatID, chunk)); err != nil {
			return fmt.Errorf("send message: %w", err)
		}
	}
	return nil
}

// FileBytes resolves an uploaded document's file ID to its raw bytes,
// enforcing the configured size cap.
func (c *Client) FileBytes(ctx context.Context, fileID string) ([]byte, error) {
	file, err := c.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("resolve file: %w", err)
	}
	if c.cfg.MaxFileBytes > 0 && int64(file.FileSize) > c.cfg.MaxFileBytes {
		return nil, fmt.Errorf("file too large: %d bytes", file.FileSize)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(c.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	limit := c.cfg.MaxFileBytes
	if limit <= 0 {
		limit = 20 * 1024 * 1024
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read file body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("file exceeds %d byte limit", limit)
	}
	return data, nil
}

// splitMessage cuts text into chunks of at most limit UTF-16 code units,
// never splitting inside a rune. Supplementary-plane runes count as two
// units, matching how the Bot API measures message length.
func splitMessage(text string, limit int) []string {
	var chunks []string
	var buf []rune
	units := 0
	for _, r := range text {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		if units+n > limit {
			chunks = append(chunks, string(buf))
			buf = buf[:0]
			units = 0
		}
		buf = append(buf, r)
		units += n
	}
	if len(buf) > 0 || len(chunks) == 0 {
		chunks = append(chunks, string(buf))
	}
	return chunks
}
