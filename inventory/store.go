package inventory

import (
	"context"

	"github.com/xraph/launchpad/id"
)

type Store interface {
	Get(ctx context.Context, launchpadID id.LaunchpadID) (*Inventory, error)
	Save(ctx context.Context, inv *Inventory) error
}
