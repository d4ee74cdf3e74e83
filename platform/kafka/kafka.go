package kafka

import (
	"context"
)

// Producer publishes a single keyed record to a preconfigured topic.
type Producer interface {
	Send(ctx context.Context, key, value []byte) error
}
