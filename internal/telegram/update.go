package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/shadowintel/shadowbot/internal/agent"
)

// EventFromUpdate maps a raw Bot API update onto the pipeline's inbound
// event union. The second return is false for updates the pipeline does not
// handle (edits, channel posts, stickers, and so on).
func EventFromUpdate(update tgbotapi.Update) (agent.InboundEvent, bool) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return agent.InboundEvent{}, false
	}

	ev := agent.InboundEvent{
		SenderID: msg.From.ID,
		ChatID:   msg.Chat.ID,
	}

	switch {
	case msg.Document != nil:
		ev.Kind = agent.EventDocument
		ev.Filename = msg.Document.FileName
		ev.FileID = msg.Document.FileID
		return ev, true
	case msg.IsCommand():
		ev.Kind = agent.EventCommand
		ev.Command = msg.Command()
		ev.Args = strings.Fields(msg.CommandArguments())
		return ev, true
	case msg.Text != "":
		ev.Kind = agent.EventText
		ev.Text = msg.Text
		return ev, true
	default:
		return agent.InboundEvent{}, false
	}
}
