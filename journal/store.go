package journal

import (
	"context"

	"github.com/xraph/launchpad/id"
)

type Store interface {
	Append(ctx context.Context, e *Entry) error
	Remove(ctx context.Context, entryID id.EntryID) error
	List(ctx context.Context, launchpadID id.LaunchpadID, opts ListOpts) ([]*Entry, error)
}

// ListOpts filters journal queries. Results are ordered oldest first.
type ListOpts struct {
	Account string
	Kind    Kind
	Limit   int
	Offset  int
}
