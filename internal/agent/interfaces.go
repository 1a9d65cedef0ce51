package agent

import (
	"context"
	"time"
)

// Fetcher fetches a single URL and returns the body plus metadata.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Page, error)
}

// Completer issues one text-completion call against an external service.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Deliverer sends a reply back to the sender. Delivery guarantees are its
// concern, not the pipeline's.
type Deliverer interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// FileFetcher resolves an uploaded document's file ID to its raw bytes.
type FileFetcher interface {
	FileBytes(ctx context.Context, fileID string) ([]byte, error)
}

// Queue provides enqueue/dequeue semantics for inbound events.
type Queue interface {
	Enqueue(ctx context.Context, event InboundEvent) error
	Dequeue(ctx context.Context) (InboundEvent, error)
}

// Authorizer gates a run on the sender's identity.
type Authorizer interface {
	IsAuthorized(senderID int64) bool
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// IDGenerator produces run IDs (UUIDs).
type IDGenerator interface {
	NewID() (string, error)
}
