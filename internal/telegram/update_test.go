package telegram

import (
	"strings"
	"testing"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"github.com/shadowintel/shadowbot/internal/agent"
)

func baseMessage(text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: 42},
		Chat: &tgbotapi.Chat{ID: 4242},
		Text: text,
	}
}

func TestEventFromUpdateText(t *testing.T) {
	t.Parallel()

	ev, ok := EventFromUpdate(tgbotapi.Update{Message: baseMessage("hello")})
	require.True(t, ok)
	require.Equal(t, agent.EventText, ev.Kind)
	require.Equal(t, int64(42), ev.SenderID)
	require.Equal(t, int64(4242), ev.ChatID)
	require.Equal(t, "hello", ev.Text)
}

func TestEventFromUpdateCommand(t *testing.T) {
	t.Parallel()

	msg := baseMessage("/crawl http://site.test/ 2")
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len("/crawl")}}

	ev, ok := EventFromUpdate(tgbotapi.Update{Message: msg})
	require.True(t, ok)
	require.Equal(t, agent.EventCommand, ev.Kind)
	require.Equal(t, "crawl", ev.Command)
	require.Equal(t, []string{"http://site.test/", "2"}, ev.Args)
}

func TestEventFromUpdateDocument(t *testing.T) {
	t.Parallel()

	msg := baseMessage("")
	msg.Document = &tgbotapi.Document{FileID: "file-123", FileName: "report.csv"}

	ev, ok := EventFromUpdate(tgbotapi.Update{Message: msg})
	require.True(t, ok)
	require.Equal(t, agent.EventDocument, ev.Kind)
	require.Equal(t, "report.csv", ev.Filename)
	require.Equal(t, "file-123", ev.FileID)
}

func TestEventFromUpdateIgnoresNonMessages(t *testing.T) {
	t.Parallel()

	_, ok := EventFromUpdate(tgbotapi.Update{})
	require.False(t, ok)

	_, ok = EventFromUpdate(tgbotapi.Update{Message: &tgbotapi.Message{}})
	require.False(t, ok)
}

func TestSplitMessage(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"short"}, splitMessage("short", maxMessageLen))

	long := strings.Repeat("é", maxMessageLen+10)
	chunks := splitMessage(long, maxMessageLen)
	require.Len(t, chunks, 2)
	require.Len(t, []rune(chunks[0]), maxMessageLen)
	require.Len(t, []rune(chunks[1]), 10)
}

func TestSplitMessageCountsUTF16Units(t *testing.T) {
	t.Parallel()

	// Each emoji is one rune but two UTF-16 code units.
	long := strings.Repeat("\U0001F600", 5000)
	chunks := splitMessage(long, maxMessageLen)

	require.Len(t, chunks, 3)
	for i, chunk := range chunks {
		units := len(utf16.Encode([]rune(chunk)))
		require.LessOrEqual(t, units, maxMessageLen, "chunk %d", i)
	}
	require.Equal(t, long, strings.Join(chunks, ""))
}
