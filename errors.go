package launchpad

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrZeroAmount         = errors.New("launchpad: amount must be greater than zero")
	ErrUnauthorized       = errors.New("launchpad: caller is not the owner")
	ErrArithmeticOverflow = errors.New("launchpad: arithmetic overflow")
	ErrReentrantCall      = errors.New("launchpad: reentrant call during asset transfer")
	ErrConfiguration      = errors.New("launchpad: invalid configuration")
	ErrPhase              = errors.New("launchpad: operation outside its window")
	ErrRollbackFailed     = errors.New("launchpad: rollback incomplete, store needs repair")

	// Staking errors
	ErrVolumeOutOfRange = errors.New("launchpad: staking volume out of range")
	ErrAlreadyUnstaked  = errors.New("launchpad: already unstaked")

	// Sale errors
	ErrStillStaked        = errors.New("launchpad: stake must be withdrawn before participating")
	ErrAllocationExceeded = errors.New("launchpad: purchase exceeds tier allocation")
	ErrSoldOut            = errors.New("launchpad: sold out")
	ErrNothingToWithdraw  = errors.New("launchpad: nothing to withdraw")

	// Asset errors
	ErrAssetTransfer = errors.New("launchpad: asset transfer failed")

	// Store errors
	ErrPositionNotFound  = errors.New("launchpad: position not found")
	ErrInventoryNotFound = errors.New("launchpad: inventory not found")
	ErrStoreClosed       = errors.New("launchpad: store is closed")
)

// ConfigErrorKind names the construction invariant a Config violates.
type ConfigErrorKind string

const (
	ConfigStakingWindowOrder ConfigErrorKind = "staking-window-order"
	ConfigSaleWindowOrder    ConfigErrorKind = "sale-window-order"
	ConfigStakingBeforeSale  ConfigErrorKind = "staking-before-sale"
	ConfigSaleBeforeVesting  ConfigErrorKind = "sale-before-vesting"
	ConfigStakingVolumeOrder ConfigErrorKind = "staking-volume-order"
	ConfigNonPositivePrice   ConfigErrorKind = "non-positive-price"
	ConfigTierOrder          ConfigErrorKind = "tier-order"
	ConfigTierAlignment      ConfigErrorKind = "tier-alignment"
	ConfigVestingRatio       ConfigErrorKind = "vesting-ratio"
	ConfigVestingPeriod      ConfigErrorKind = "vesting-period"
	ConfigAccounts           ConfigErrorKind = "accounts"
	ConfigAssets             ConfigErrorKind = "assets"
	ConfigTierMode           ConfigErrorKind = "tier-mode"
)

// ConfigError reports a construction invariant violation. Construction fails
// as a whole; no launchpad is created.
type ConfigError struct {
	Kind    ConfigErrorKind
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("launchpad: invalid configuration (%s): %s", e.Kind, e.Message)
}

// Is makes every ConfigError match ErrConfiguration.
func (e *ConfigError) Is(target error) bool { return target == ErrConfiguration }

// PhaseError reports an operation invoked outside its window.
type PhaseError struct {
	Op       Operation
	Required string
	Current  Phase
	At       time.Time
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("launchpad: %s requires %s, current phase is %s", e.Op, e.Required, e.Current)
}

// Is makes every PhaseError match ErrPhase.
func (e *PhaseError) Is(target error) bool { return target == ErrPhase }

// TransferError wraps a rejection from an external asset ledger. It matches
// both ErrAssetTransfer and the underlying token error.
type TransferError struct {
	Op    Operation
	Asset string
	Err   error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("launchpad: %s: %s transfer failed: %v", e.Op, e.Asset, e.Err)
}

// Unwrap exposes the sentinel and the token error to errors.Is/As.
func (e *TransferError) Unwrap() []error { return []error{ErrAssetTransfer, e.Err} }

// IsPhaseError returns true if the operation was rejected by the time gate.
func IsPhaseError(err error) bool {
	var pe *PhaseError
	return errors.As(err, &pe)
}

// IsAdmissionError returns true if the ledger's accounting rules rejected
// the operation (as opposed to the clock, the caller or the asset ledgers).
func IsAdmissionError(err error) bool {
	return errors.Is(err, ErrVolumeOutOfRange) ||
		errors.Is(err, ErrAlreadyUnstaked) ||
		errors.Is(err, ErrStillStaked) ||
		errors.Is(err, ErrAllocationExceeded) ||
		errors.Is(err, ErrSoldOut) ||
		errors.Is(err, ErrNothingToWithdraw)
}

// IsRetryable returns true if the same call may succeed later without any
// change to the launchpad itself, e.g. after topping up a balance or allowance.
// An incomplete rollback is never retryable.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRollbackFailed) {
		return false
	}
	return errors.Is(err, ErrAssetTransfer) ||
		errors.Is(err, ErrSoldOut)
}

func overflow(what string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrArithmeticOverflow, what, err)
}
