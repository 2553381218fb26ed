package token

import (
	"fmt"
	"math/big"

	"github.com/tokenmart/libtokenmart-go/event"
)

// Payer submits value transfers on the underlying ledger. Transfers are
// fire-and-forget instructions: their individual success is not
// observed by the caller.
type Payer interface {
	Transfer(to AccountID, amount *big.Int)
}

// Notifier delivers the best-effort approval notification to an
// operator when an approval carries a message payload. Delivery failure
// does not roll back the approval.
type Notifier interface {
	Notify(operator AccountID, tokenID TokenID, owner AccountID, approvalID uint64, msg string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(operator AccountID, tokenID TokenID, owner AccountID, approvalID uint64, msg string)

// Notify calls f.
func (f NotifierFunc) Notify(operator AccountID, tokenID TokenID, owner AccountID, approvalID uint64, msg string) {
	f(operator, tokenID, owner, approvalID, msg)
}

// LedgerOpts holds optional collaborators for a Ledger.
type LedgerOpts struct {
	// Events receives mint and transfer log entries. Nil disables the log.
	Events event.Sink

	// Notifier receives approval notifications. Nil disables them.
	Notifier Notifier

	// Payer executes storage refunds. Nil disables them.
	Payer Payer

	// StorageByteCost is the currency price per stored byte. Nil means
	// storage is free.
	StorageByteCost *big.Int
}

// Ledger is the asset-ownership and authorization authority for one
// collection of tokens.
type Ledger struct {
	store    Store
	events   event.Sink
	notifier Notifier
	payer    Payer
	byteCost *big.Int
}

// NewLedger creates a ledger over store. opts may be nil.
func NewLedger(store Store, opts *LedgerOpts) *Ledger {
	l := &Ledger{
		store:    store,
		byteCost: new(big.Int),
	}
	if opts != nil {
		l.events = opts.Events
		l.notifier = opts.Notifier
		l.payer = opts.Payer
		if opts.StorageByteCost != nil {
			l.byteCost = new(big.Int).Set(opts.StorageByteCost)
		}
	}
	return l
}

// capability is the result of an authorization check against a token.
type capability int

const (
	capUnauthorized capability = iota
	capOwner
	capApproved
)

// checkCapability reports caller's rights over t. When caller is an
// approved operator and requiredID is non-nil, the recorded approval id
// must match.
func checkCapability(t *Token, caller AccountID, requiredID *uint64) (capability, uint64, error) {
	if caller == t.OwnerID {
		return capOwner, 0, nil
	}
	id, ok := t.ApprovedAccountIDs[caller]
	if !ok {
		return capUnauthorized, 0, ErrUnauthorized
	}
	if requiredID != nil && id != *requiredID {
		return capUnauthorized, 0, fmt.Errorf("%w: recorded %d, given %d", ErrApprovalMismatch, id, *requiredID)
	}
	return capApproved, id, nil
}

// Approve grants account the right to transfer tokenID on the owner's
// behalf and returns the assigned approval id. Only the current owner
// may call; the deposit must be at least one unit and cover the storage
// of a new approval entry. When msg is non-empty the operator is
// notified, fire-and-forget.
func (l *Ledger) Approve(caller AccountID, deposit *big.Int, tokenID TokenID, account AccountID, msg string) (uint64, error) {
	if err := assertAtLeastOneUnit(deposit); err != nil {
		return 0, err
	}
	t, err := l.store.GetToken(tokenID)
	if err != nil {
		return 0, err
	}
	if caller != t.OwnerID {
		return 0, fmt.Errorf("%w: only the owner may approve", ErrUnauthorized)
	}

	if t.ApprovedAccountIDs == nil {
		t.ApprovedAccountIDs = make(map[AccountID]uint64)
	}
	approvalID := t.NextApprovalID
	_, existed := t.ApprovedAccountIDs[account]
	t.ApprovedAccountIDs[account] = approvalID
	t.NextApprovalID++

	var storageUsed uint64
	if !existed {
		storageUsed = bytesForApproval(account)
	}
	if err := l.chargeStorage(caller, deposit, storageUsed); err != nil {
		return 0, err
	}
	if err := l.store.PutToken(t); err != nil {
		return 0, err
	}

	if msg != "" && l.notifier != nil {
		l.notifier.Notify(account, tokenID, t.OwnerID, approvalID, msg)
	}
	return approvalID, nil
}

// IsApproved reports whether account holds an approval for tokenID.
// When approvalID is non-nil the recorded id must also match.
func (l *Ledger) IsApproved(tokenID TokenID, account AccountID, approvalID *uint64) (bool, error) {
	t, err := l.store.GetToken(tokenID)
	if err != nil {
		return false, err
	}
	id, ok := t.ApprovedAccountIDs[account]
	if !ok {
		return false, nil
	}
	if approvalID != nil {
		return id == *approvalID, nil
	}
	return true, nil
}

// Revoke removes account's approval for tokenID and releases its storage
// cost back to the owner. Owner-only, exactly-one-unit deposit.
func (l *Ledger) Revoke(caller AccountID, deposit *big.Int, tokenID TokenID, account AccountID) error {
	if err := assertOneUnit(deposit); err != nil {
		return err
	}
	t, err := l.store.GetToken(tokenID)
	if err != nil {
		return err
	}
	if caller != t.OwnerID {
		return fmt.Errorf("%w: only the owner may revoke", ErrUnauthorized)
	}
	if _, ok := t.ApprovedAccountIDs[account]; !ok {
		return nil
	}
	delete(t.ApprovedAccountIDs, account)
	l.pay(caller, l.storageCost(bytesForApproval(account)))
	return l.store.PutToken(t)
}

// RevokeAll removes every approval for tokenID and releases the storage
// cost back to the owner. Owner-only, exactly-one-unit deposit. The
// approval id counter is untouched, so ids are never reused afterward.
func (l *Ledger) RevokeAll(caller AccountID, deposit *big.Int, tokenID TokenID) error {
	if err := assertOneUnit(deposit); err != nil {
		return err
	}
	t, err := l.store.GetToken(tokenID)
	if err != nil {
		return err
	}
	if caller != t.OwnerID {
		return fmt.Errorf("%w: only the owner may revoke", ErrUnauthorized)
	}
	if len(t.ApprovedAccountIDs) == 0 {
		return nil
	}
	l.releaseApprovalStorage(caller, t.ApprovedAccountIDs)
	t.ApprovedAccountIDs = make(map[AccountID]uint64)
	return l.store.PutToken(t)
}

// Payout computes the royalty split for tokenID at the given balance
// without touching ownership. Read-only quote.
func (l *Ledger) Payout(tokenID TokenID, balance *big.Int, maxLenPayout uint32) (Payout, error) {
	t, err := l.store.GetToken(tokenID)
	if err != nil {
		return nil, err
	}
	return ComputePayout(t.OwnerID, t.Royalty, balance, maxLenPayout)
}
