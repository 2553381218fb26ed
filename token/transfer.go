package token

import (
	"fmt"
	"math/big"

	"github.com/tokenmart/libtokenmart-go/event"
)

// TransferPayout transfers tokenID from its current owner to receiver
// and returns the payout schedule computed from the outgoing owner's
// royalty map at the given balance. The caller must be the owner or an
// approved operator; when approvalID is non-nil it must match the
// caller's recorded id. Requires an exactly-one-unit deposit.
//
// On success the token is re-recorded under receiver with an empty
// approval set and an unchanged NextApprovalID, the outgoing owner's
// approval storage is released, and an nft_transfer event is appended.
// No suspension point exists between the ownership mutation and the
// payout computation.
func (l *Ledger) TransferPayout(caller AccountID, deposit *big.Int, receiver AccountID, tokenID TokenID, approvalID *uint64, memo string, balance *big.Int, maxLenPayout uint32) (Payout, error) {
	if err := assertOneUnit(deposit); err != nil {
		return nil, err
	}
	// The recipient limit is checked before ownership moves: a failure
	// after the swap could not be rolled back.
	t, err := l.store.GetToken(tokenID)
	if err != nil {
		return nil, err
	}
	if uint32(len(t.Royalty)) > maxLenPayout {
		return nil, fmt.Errorf("%w: %d beneficiaries, limit %d", ErrTooManyRecipients, len(t.Royalty), maxLenPayout)
	}
	prev, err := l.transfer(caller, receiver, tokenID, approvalID, memo)
	if err != nil {
		return nil, err
	}
	l.releaseApprovalStorage(prev.OwnerID, prev.ApprovedAccountIDs)
	return ComputePayout(prev.OwnerID, prev.Royalty, balance, maxLenPayout)
}

// Transfer moves tokenID to receiver without computing a payout.
// Authorization rules match TransferPayout.
func (l *Ledger) Transfer(caller AccountID, deposit *big.Int, receiver AccountID, tokenID TokenID, approvalID *uint64, memo string) error {
	if err := assertOneUnit(deposit); err != nil {
		return err
	}
	prev, err := l.transfer(caller, receiver, tokenID, approvalID, memo)
	if err != nil {
		return err
	}
	l.releaseApprovalStorage(prev.OwnerID, prev.ApprovedAccountIDs)
	return nil
}

// transfer performs the ownership swap and returns the previous record.
func (l *Ledger) transfer(caller, receiver AccountID, tokenID TokenID, approvalID *uint64, memo string) (*Token, error) {
	t, err := l.store.GetToken(tokenID)
	if err != nil {
		return nil, err
	}

	authz, _, err := checkCapability(t, caller, approvalID)
	if err != nil {
		return nil, err
	}
	if receiver == t.OwnerID {
		return nil, fmt.Errorf("%w: %q", ErrSameOwnerTransfer, receiver)
	}

	// Approvals never carry over to the new owner; the id counter does.
	// Record and owner indexes move in a single store operation.
	next := &Token{
		TokenID:            tokenID,
		OwnerID:            receiver,
		ApprovedAccountIDs: make(map[AccountID]uint64),
		NextApprovalID:     t.NextApprovalID,
		Royalty:            t.Royalty,
	}
	if err := l.store.TransferToken(t.OwnerID, next); err != nil {
		return nil, err
	}

	l.logTransfer(t.OwnerID, receiver, tokenID, caller, authz, memo)
	return t, nil
}

// logTransfer appends the ownership-change entry to the event log.
func (l *Ledger) logTransfer(oldOwner, newOwner AccountID, tokenID TokenID, caller AccountID, authz capability, memo string) {
	if l.events == nil {
		return
	}
	data := event.TransferData{
		OldOwnerID: string(oldOwner),
		NewOwnerID: string(newOwner),
		TokenIDs:   []string{string(tokenID)},
		Memo:       memo,
	}
	if authz == capApproved {
		data.AuthorizedID = string(caller)
	}
	// Log failures do not undo a completed transfer.
	_ = l.events.Append(event.NewTransfer(data))
}
