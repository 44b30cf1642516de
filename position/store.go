package position

import (
	"context"

	"github.com/xraph/launchpad/id"
	"github.com/xraph/launchpad/types"
)

type Store interface {
	Get(ctx context.Context, launchpadID id.LaunchpadID, account types.Account) (*Position, error)
	Save(ctx context.Context, p *Position) error
	Delete(ctx context.Context, launchpadID id.LaunchpadID, account types.Account) error
	List(ctx context.Context, launchpadID id.LaunchpadID, opts ListOpts) ([]*Position, error)
}

type ListOpts struct {
	Unlocked *bool
	Limit    int
	Offset   int
}
