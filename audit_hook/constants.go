package audithook

// Action constants for audit events.
const (
	// Staking actions
	ActionStaked   = "stake.locked"
	ActionUnstaked = "stake.unlocked"

	// Sale actions
	ActionInventoryDeposited = "inventory.deposited"
	ActionPurchased          = "sale.purchased"

	// Settlement actions
	ActionProceedsWithdrawn = "settlement.proceeds_withdrawn"
	ActionUnsoldReclaimed   = "settlement.unsold_reclaimed"

	// Vesting actions
	ActionReleased = "vesting.released"

	// Failure actions
	ActionRejected = "operation.rejected"
)

// Resource constants for audit events.
const (
	ResourcePosition  = "position"
	ResourceInventory = "inventory"
	ResourceOperation = "operation"
)

// Category constants for audit events.
const (
	CategoryStaking    = "staking"
	CategorySale       = "sale"
	CategorySettlement = "settlement"
	CategoryVesting    = "vesting"
	CategoryAccess     = "access"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
