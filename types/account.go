package types

import "strings"

// Account identifies a holder on the external asset ledgers: a participant,
// the launchpad owner, or the launchpad's own custody account.
type Account string

// IsZero returns true for the empty account.
func (a Account) IsZero() bool { return strings.TrimSpace(string(a)) == "" }

// String implements fmt.Stringer.
func (a Account) String() string { return string(a) }
