package river

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"

	"github.com/vrcorp/videohive/internal/domain"
)

// Compile-time check: Publisher implements domain.ChangePublisher.
var _ domain.ChangePublisher = (*Publisher)(nil)

// RoleChangeArgs carries a role change through River's job queue table.
// River serializes this as JSON; the payload is a full snapshot of the
// change, so the worker never needs to read the role store.
type RoleChangeArgs struct {
	Role     string `json:"role"`
	Previous string `json:"previous"`
}

// Kind returns the unique job type identifier used by River's job routing.
// It matches the name the in-process notification channel uses, so both
// delivery channels carry the same event.
func (RoleChangeArgs) Kind() string { return domain.RoleChangeEvent }

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Publisher implements domain.ChangePublisher by enqueuing River jobs.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher backed by the given River client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish enqueues a role change as an async job in River.
func (p *Publisher) Publish(ctx context.Context, change domain.RoleChange) error {
	_, err := p.client.Insert(ctx, RoleChangeArgs{
		Role:     string(change.Role),
		Previous: string(change.Previous),
	}, nil)
	if err != nil {
		return fmt.Errorf("enqueuing role change job: %w", err)
	}
	return nil
}
