package market

import "math/big"

// TransferRequest is one transfer-and-payout instruction issued to the
// asset authority of a collection.
type TransferRequest struct {
	// ReceiverID is the account the asset moves to.
	ReceiverID string

	// TokenID is the asset to transfer.
	TokenID string

	// ApprovalID is the approval the market was granted to act on the
	// owner's behalf.
	ApprovalID uint64

	// Memo accompanies the transfer on the authority's event log.
	Memo string

	// Balance is the settlement amount the payout must total.
	Balance *big.Int

	// MaxLenPayout caps the number of payout recipients.
	MaxLenPayout uint32

	// Deposit is the minimal-unit authorization proof attached to the
	// remote call.
	Deposit *big.Int
}

// Outcome is the terminal result of a remote call: a raw return value,
// or a failure carrying no value.
type Outcome struct {
	// Value is the returned payout in wire form. Nil when the call
	// failed or produced nothing.
	Value []byte

	// Failed reports that the remote call did not complete successfully.
	Failed bool
}

// Callback receives the outcome of a previously issued remote call,
// exactly once.
type Callback func(out Outcome)

// Authority is the remote asset-ownership authority for one collection.
// TransferPayout is asynchronous and non-atomic with respect to the
// caller: it returns once the request is submitted, and the outcome is
// delivered later through cb. The asset may change hands even when the
// outcome is a failure.
type Authority interface {
	TransferPayout(contractID string, req *TransferRequest, cb Callback)
}

// Payer submits value transfers on the underlying ledger. Transfers are
// fire-and-forget instructions: one recipient's transfer failing does
// not block or roll back the others.
type Payer interface {
	Transfer(to string, amount *big.Int)
}
