// Package eventsrepo publishes borrow-activity events to a topic exchange.
// The publisher is an optional collaborator: the coordinator treats a nil
// publisher as "eventing disabled" and publish failures as log-only.
package eventsrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventBorrowCreated  = "borrow.created"
	EventBorrowReturned = "borrow.returned"
)

// Activity is one borrow lifecycle event.
type Activity struct {
	Event      string    `json:"event"`
	BorrowID   uuid.UUID `json:"borrow_id"`
	BookID     uuid.UUID `json:"book_id"`
	Quantity   int       `json:"quantity"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, a Activity) error
}
