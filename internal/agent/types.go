// Package agent defines the core types and interfaces shared by the intake
// pipeline and its subsystems.
package agent

import (
	"net/http"
	"time"
)

// EventKind classifies an inbound Telegram update.
type EventKind string

// Event kinds produced by the webhook decoder.
const (
	EventText     EventKind = "text"
	EventCommand  EventKind = "command"
	EventDocument EventKind = "document"
)

// InboundEvent is one decoded update ready for a pipeline run.
// Exactly one field group is populated depending on Kind.
type InboundEvent struct {
	RunID    string
	SenderID int64
	ChatID   int64
	Kind     EventKind

	// EventText
	Text string

	// EventCommand
	Command string
	Args    []string

	// EventDocument
	Filename string
	FileID   string
}

// Reply is the single outbound message a run may produce.
type Reply struct {
	ChatID int64
	Text   string
}

// Page is the result returned by a Fetcher implementation.
type Page struct {
	URL          string
	FinalURL     string
	StatusCode   int
	Headers      http.Header
	Body         []byte
	Duration     time.Duration
	UsedHeadless bool
}

// ContentType returns the response Content-Type header, if any.
func (p Page) ContentType() string {
	if p.Headers == nil {
		return ""
	}
	return p.Headers.Get("Content-Type")
}
