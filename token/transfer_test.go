package token

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenmart/libtokenmart-go/event"
)

func TestTransferPayoutByOwner(t *testing.T) {
	l := newTestLedger(t, nil)
	mintToken(t, l, "token-1", "alice.test", map[AccountID]uint32{"carol.test": 2000})

	payout, err := l.TransferPayout("alice.test", deposit(1), "bob.test", "token-1", nil, "", big.NewInt(1000), 10)
	require.NoError(t, err)
	assert.Equal(t, "200", payout["carol.test"].String())
	assert.Equal(t, "800", payout["alice.test"].String())

	tok, err := l.GetToken("token-1")
	require.NoError(t, err)
	assert.Equal(t, AccountID("bob.test"), tok.OwnerID)
}

func TestTransferPayoutByApprovedOperator(t *testing.T) {
	l := newTestLedger(t, nil)
	mintToken(t, l, "token-1", "alice.test", nil)

	id, err := l.Approve("alice.test", deposit(1), "token-1", "market.test", "")
	require.NoError(t, err)

	payout, err := l.TransferPayout("market.test", deposit(1), "bob.test", "token-1", uintPtr(id), "sold", big.NewInt(500), 10)
	require.NoError(t, err)
	assert.Equal(t, "500", payout["alice.test"].String())
}

func TestTransferPayoutApprovalMismatch(t *testing.T) {
	l := newTestLedger(t, nil)
	mintToken(t, l, "token-1", "alice.test", nil)

	id, err := l.Approve("alice.test", deposit(1), "token-1", "market.test", "")
	require.NoError(t, err)

	_, err = l.TransferPayout("market.test", deposit(1), "bob.test", "token-1", uintPtr(id+7), "", big.NewInt(500), 10)
	assert.ErrorIs(t, err, ErrApprovalMismatch)

	// Ownership is untouched on failure.
	tok, err := l.GetToken("token-1")
	require.NoError(t, err)
	assert.Equal(t, AccountID("alice.test"), tok.OwnerID)
}

func TestTransferPayoutUnauthorized(t *testing.T) {
	l := newTestLedger(t, nil)
	mintToken(t, l, "token-1", "alice.test", nil)

	_, err := l.TransferPayout("mallory.test", deposit(1), "bob.test", "token-1", nil, "", big.NewInt(500), 10)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestTransferPayoutSameOwner(t *testing.T) {
	l := newTestLedger(t, nil)
	mintToken(t, l, "token-1", "alice.test", nil)

	_, err := l.TransferPayout("alice.test", deposit(1), "alice.test", "token-1", nil, "", big.NewInt(500), 10)
	assert.ErrorIs(t, err, ErrSameOwnerTransfer)
}

func TestTransferPayoutRequiresOneUnit(t *testing.T) {
	l := newTestLedger(t, nil)
	mintToken(t, l, "token-1", "alice.test", nil)

	_, err := l.TransferPayout("alice.test", deposit(2), "bob.test", "token-1", nil, "", big.NewInt(500), 10)
	assert.ErrorIs(t, err, ErrOneUnitDeposit)
}

func TestTransferPayoutTooManyRecipientsLeavesOwnership(t *testing.T) {
	royalty := map[AccountID]uint32{"b.test": 100, "c.test": 100, "d.test": 100}
	l := newTestLedger(t, nil)
	mintToken(t, l, "token-1", "alice.test", royalty)

	_, err := l.TransferPayout("alice.test", deposit(1), "bob.test", "token-1", nil, "", big.NewInt(500), 2)
	assert.ErrorIs(t, err, ErrTooManyRecipients)

	tok, err := l.GetToken("token-1")
	require.NoError(t, err)
	assert.Equal(t, AccountID("alice.test"), tok.OwnerID)
}

func TestTransferResetsApprovals(t *testing.T) {
	l := newTestLedger(t, nil)
	mintToken(t, l, "token-1", "alice.test", nil)

	_, err := l.Approve("alice.test", deposit(1), "token-1", "market.test", "")
	require.NoError(t, err)
	_, err = l.Approve("alice.test", deposit(1), "token-1", "other.test", "")
	require.NoError(t, err)

	require.NoError(t, l.Transfer("alice.test", deposit(1), "bob.test", "token-1", nil, ""))

	tok, err := l.GetToken("token-1")
	require.NoError(t, err)
	assert.Empty(t, tok.ApprovedAccountIDs)
	// The counter survives the transfer, so new approvals continue it.
	assert.Equal(t, uint64(2), tok.NextApprovalID)

	id, err := l.Approve("bob.test", deposit(1), "token-1", "market.test", "")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), id)
}

func TestTransferUpdatesOwnerIndex(t *testing.T) {
	l := newTestLedger(t, nil)
	mintToken(t, l, "token-1", "alice.test", nil)

	require.NoError(t, l.Transfer("alice.test", deposit(1), "bob.test", "token-1", nil, ""))

	n, err := l.SupplyForOwner("alice.test")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	ids, err := l.TokensForOwner("bob.test", 0, 0)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, TokenID("token-1"), ids[0].TokenID)
}

func TestTransferReleasesApprovalStorage(t *testing.T) {
	payer := newTestPayer()
	l := newTestLedger(t, &LedgerOpts{Payer: payer, StorageByteCost: big.NewInt(1)})
	require.NoError(t, l.Mint("alice.test", deposit(10000), "token-1", "alice.test", nil))

	_, err := l.Approve("alice.test", deposit(100), "token-1", "market.test", "")
	require.NoError(t, err)

	before := new(big.Int).Set(payer.total("alice.test"))
	_, err = l.TransferPayout("market.test", deposit(1), "bob.test", "token-1", uintPtr(0), "", big.NewInt(500), 10)
	require.NoError(t, err)

	released := new(big.Int).Sub(payer.total("alice.test"), before)
	assert.Equal(t, int64(len("market.test")+4+8), released.Int64())
}

func TestTransferEmitsEvent(t *testing.T) {
	sink := &testSink{}
	l := newTestLedger(t, &LedgerOpts{Events: sink})
	mintToken(t, l, "token-1", "alice.test", nil)

	id, err := l.Approve("alice.test", deposit(1), "token-1", "market.test", "")
	require.NoError(t, err)

	_, err = l.TransferPayout("market.test", deposit(1), "bob.test", "token-1", uintPtr(id), "sold", big.NewInt(500), 10)
	require.NoError(t, err)

	require.Len(t, sink.logs, 2) // mint + transfer
	wire := sink.logs[1].String()
	assert.Equal(t, event.NameTransfer, sink.logs[1].Event)
	assert.Contains(t, wire, `"old_owner_id":"alice.test"`)
	assert.Contains(t, wire, `"new_owner_id":"bob.test"`)
	assert.Contains(t, wire, `"authorized_id":"market.test"`)
	assert.Contains(t, wire, `"memo":"sold"`)
}

func TestTransferByOwnerOmitsAuthorizedID(t *testing.T) {
	sink := &testSink{}
	l := newTestLedger(t, &LedgerOpts{Events: sink})
	mintToken(t, l, "token-1", "alice.test", nil)

	require.NoError(t, l.Transfer("alice.test", deposit(1), "bob.test", "token-1", nil, ""))

	require.Len(t, sink.logs, 2)
	assert.NotContains(t, sink.logs[1].String(), "authorized_id")
}
