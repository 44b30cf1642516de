package launchpad

import "github.com/xraph/launchpad/types"

// Re-export common types for convenience so users don't have to import types package.

// Amount is re-exported from types package.
type Amount = types.Amount

// Account is re-exported from types package.
type Account = types.Account

// Entity is re-exported from types package.
type Entity = types.Entity

// Re-export Amount constructors
var (
	Zero            = types.Zero
	One             = types.One
	Units           = types.Units
	BaseUnits       = types.BaseUnits
	ParseAmount     = types.ParseAmount
	MustParseAmount = types.MustParseAmount
)

// Re-export Entity constructor
var NewEntity = types.NewEntity
