package token

import (
	"fmt"
	"math/big"
)

// bytesForApproval returns the storage footprint of one approval entry:
// the account string, a 4-byte length prefix and the 8-byte approval id.
func bytesForApproval(account AccountID) uint64 {
	return uint64(len(account)) + 4 + 8
}

// bytesForToken returns the storage footprint of a freshly minted token
// record, before any approvals.
func bytesForToken(t *Token) uint64 {
	n := uint64(len(t.TokenID)) + uint64(len(t.OwnerID)) + 2*4 + 8
	for account := range t.Royalty {
		n += uint64(len(account)) + 4 + 4
	}
	return n
}

// storageCost converts a byte count into currency at the ledger's
// per-byte price.
func (l *Ledger) storageCost(bytes uint64) *big.Int {
	return new(big.Int).Mul(l.byteCost, new(big.Int).SetUint64(bytes))
}

// chargeStorage validates that deposit covers the storage consumed and
// refunds the surplus to the caller. Refunds of a single unit are kept,
// matching the deposit conventions.
func (l *Ledger) chargeStorage(caller AccountID, deposit *big.Int, bytes uint64) error {
	required := l.storageCost(bytes)
	if required.Cmp(deposit) > 0 {
		return fmt.Errorf("%w: need %s, attached %s", ErrStorageDeposit, required, deposit)
	}
	refund := new(big.Int).Sub(deposit, required)
	if refund.Cmp(oneUnit) > 0 {
		l.pay(caller, refund)
	}
	return nil
}

// releaseApprovalStorage returns the storage cost of the given approval
// entries to account.
func (l *Ledger) releaseApprovalStorage(account AccountID, approvals map[AccountID]uint64) {
	if len(approvals) == 0 {
		return
	}
	var bytes uint64
	for approved := range approvals {
		bytes += bytesForApproval(approved)
	}
	l.pay(account, l.storageCost(bytes))
}

// pay submits a fire-and-forget value transfer when a payer is wired.
func (l *Ledger) pay(to AccountID, amount *big.Int) {
	if l.payer == nil || amount.Sign() < 1 {
		return
	}
	l.payer.Transfer(to, amount)
}
