// Package token implements the authoritative ownership and authorization
// ledger for uniquely identified digital assets. Each token carries an
// owner, a set of approved operators with monotonically increasing
// approval ids, and a royalty schedule in basis points. The ledger
// enforces who may transfer a token and, as part of a transfer, returns
// the payout schedule the settling party must honor.
package token

import "math/big"

// AccountID identifies an account on the underlying value ledger.
type AccountID string

// TokenID uniquely identifies a token within one ledger instance.
type TokenID string

// Token is the authoritative record for a single asset.
type Token struct {
	TokenID TokenID
	OwnerID AccountID

	// ApprovedAccountIDs maps operator accounts to the approval id each
	// was granted. Every id stored here is strictly less than
	// NextApprovalID.
	ApprovedAccountIDs map[AccountID]uint64

	// NextApprovalID is the id the next approval will receive. It only
	// ever increases; ids are never reused, including across transfers.
	NextApprovalID uint64

	// Royalty maps beneficiary accounts to perpetual basis-point shares
	// of future sale proceeds. Shares total at most 10000.
	Royalty map[AccountID]uint32
}

// Payout maps each beneficiary to the amount it is owed from a
// settlement. Amounts are in the smallest currency unit.
type Payout map[AccountID]*big.Int

// Total returns the sum of all payout amounts.
func (p Payout) Total() *big.Int {
	total := new(big.Int)
	for _, amount := range p {
		total.Add(total, amount)
	}
	return total
}
