package market

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pendingAuthority captures the request and callback so tests control
// when and how the remote call resolves.
type pendingAuthority struct {
	contractID string
	req        *TransferRequest
	cb         Callback
	calls      int
}

func (a *pendingAuthority) TransferPayout(contractID string, req *TransferRequest, cb Callback) {
	a.contractID = contractID
	a.req = req
	a.cb = cb
	a.calls++
}

func newPendingMarket(t *testing.T) (*Market, *pendingAuthority, *MockPayer) {
	t.Helper()
	authority := &pendingAuthority{}
	payer := &MockPayer{}
	m := NewMarket(NewMemSaleStore(), authority, payer, nil)
	return m, authority, payer
}

// ---------------------------------------------------------------------------
// Offer validation
// ---------------------------------------------------------------------------

func TestOfferZeroDeposit(t *testing.T) {
	m, authority, _ := newPendingMarket(t)
	listSale(t, m, "alice.test", "nft.test", "token-1", 1000)

	_, err := m.Offer("bob.test", big.NewInt(0), "nft.test", "token-1")
	assert.ErrorIs(t, err, ErrZeroDeposit)
	assert.Zero(t, authority.calls)
}

func TestOfferMissingSale(t *testing.T) {
	m, _, _ := newPendingMarket(t)
	_, err := m.Offer("bob.test", deposit(1000), "nft.test", "missing")
	assert.ErrorIs(t, err, ErrSaleNotFound)
}

func TestOfferSelfPurchase(t *testing.T) {
	m, _, _ := newPendingMarket(t)
	listSale(t, m, "alice.test", "nft.test", "token-1", 1000)

	_, err := m.Offer("alice.test", deposit(1000), "nft.test", "token-1")
	assert.ErrorIs(t, err, ErrSelfPurchase)
}

func TestOfferInsufficientDeposit(t *testing.T) {
	m, authority, _ := newPendingMarket(t)
	listSale(t, m, "alice.test", "nft.test", "token-1", 1000)

	_, err := m.Offer("bob.test", deposit(500), "nft.test", "token-1")
	assert.ErrorIs(t, err, ErrInsufficientOffer)
	assert.Zero(t, authority.calls)

	// The listing is untouched by the failed offer.
	sale, err := m.GetSale("nft.test", "token-1")
	require.NoError(t, err)
	assert.Equal(t, "1000", sale.Price.String())
}

// ---------------------------------------------------------------------------
// Initiating: listing removal and the remote request
// ---------------------------------------------------------------------------

func TestOfferRemovesSaleBeforeRemoteCall(t *testing.T) {
	m, authority, _ := newPendingMarket(t)
	require.NoError(t, m.AddSale("alice.test", deposit(1), "nft.test", "token-1", 42, big.NewInt(1000)))

	price, err := m.Offer("bob.test", deposit(1000), "nft.test", "token-1")
	require.NoError(t, err)
	assert.Equal(t, "1000", price.String())

	// Sale is gone while the remote call is still unresolved.
	require.NotNil(t, authority.cb)
	_, err = m.GetSale("nft.test", "token-1")
	assert.ErrorIs(t, err, ErrSaleNotFound)

	// A second buyer cannot purchase the same listing.
	_, err = m.Offer("carol.test", deposit(1000), "nft.test", "token-1")
	assert.ErrorIs(t, err, ErrSaleNotFound)
	assert.Equal(t, 1, authority.calls)
}

func TestOfferRequestCarriesSaleTerms(t *testing.T) {
	m, authority, _ := newPendingMarket(t)
	require.NoError(t, m.AddSale("alice.test", deposit(1), "nft.test", "token-1", 42, big.NewInt(1000)))

	// Overpaying settles at the listed price, not the deposit.
	price, err := m.Offer("bob.test", deposit(9999), "nft.test", "token-1")
	require.NoError(t, err)
	assert.Equal(t, "1000", price.String())

	require.NotNil(t, authority.req)
	assert.Equal(t, "nft.test", authority.contractID)
	assert.Equal(t, "bob.test", authority.req.ReceiverID)
	assert.Equal(t, "token-1", authority.req.TokenID)
	assert.Equal(t, uint64(42), authority.req.ApprovalID)
	assert.Equal(t, "1000", authority.req.Balance.String())
	assert.Equal(t, uint32(DefaultMaxPayoutLen), authority.req.MaxLenPayout)
	assert.Equal(t, "1", authority.req.Deposit.String())
}

// ---------------------------------------------------------------------------
// Resolving: distribution and every refund branch
// ---------------------------------------------------------------------------

func purchase(t *testing.T, m *Market, authority *pendingAuthority, price int64) {
	t.Helper()
	listSale(t, m, "alice.test", "nft.test", "token-1", price)
	_, err := m.Offer("bob.test", deposit(price), "nft.test", "token-1")
	require.NoError(t, err)
	require.NotNil(t, authority.cb)
}

func TestResolveDistributesValidPayout(t *testing.T) {
	m, authority, payer := newPendingMarket(t)
	purchase(t, m, authority, 1000)

	value, err := EncodePayout(map[string]*big.Int{
		"alice.test": big.NewInt(800),
		"carol.test": big.NewInt(200),
	})
	require.NoError(t, err)
	authority.cb(Outcome{Value: value})

	assert.Equal(t, "800", payer.Total("alice.test").String())
	assert.Equal(t, "200", payer.Total("carol.test").String())
	assert.Equal(t, "0", payer.Total("bob.test").String())
}

func TestResolveAcceptsOneUnitRoundingLoss(t *testing.T) {
	m, authority, payer := newPendingMarket(t)
	purchase(t, m, authority, 1000)

	value, err := EncodePayout(map[string]*big.Int{
		"alice.test": big.NewInt(799),
		"carol.test": big.NewInt(200),
	})
	require.NoError(t, err)
	authority.cb(Outcome{Value: value})

	assert.Equal(t, "799", payer.Total("alice.test").String())
	assert.Equal(t, "0", payer.Total("bob.test").String())
}

func TestResolveRefundsOnFailure(t *testing.T) {
	m, authority, payer := newPendingMarket(t)
	purchase(t, m, authority, 1000)

	authority.cb(Outcome{Failed: true})

	assert.Equal(t, "1000", payer.Total("bob.test").String())
	assert.Len(t, payer.Transfers, 1)
}

func TestResolveRefundBranches(t *testing.T) {
	oversized := map[string]*big.Int{}
	for _, a := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		oversized[a+".test"] = big.NewInt(90)
	}
	oversized["k.test"] = big.NewInt(100)

	tests := []struct {
		name    string
		outcome func(t *testing.T) Outcome
	}{
		{"no value", func(t *testing.T) Outcome {
			return Outcome{}
		}},
		{"undecodable", func(t *testing.T) Outcome {
			return Outcome{Value: []byte("not json")}
		}},
		{"empty payout", func(t *testing.T) Outcome {
			return Outcome{Value: []byte(`{"payout":{}}`)}
		}},
		{"non numeric amount", func(t *testing.T) Outcome {
			return Outcome{Value: []byte(`{"payout":{"alice.test":"lots"}}`)}
		}},
		{"negative amount", func(t *testing.T) Outcome {
			return Outcome{Value: []byte(`{"payout":{"alice.test":"-5","carol.test":"1005"}}`)}
		}},
		{"more than ten recipients", func(t *testing.T) Outcome {
			value, err := EncodePayout(oversized)
			require.NoError(t, err)
			return Outcome{Value: value}
		}},
		{"sum short by two", func(t *testing.T) Outcome {
			value, err := EncodePayout(map[string]*big.Int{"alice.test": big.NewInt(998)})
			require.NoError(t, err)
			return Outcome{Value: value}
		}},
		{"sum exceeds price", func(t *testing.T) Outcome {
			value, err := EncodePayout(map[string]*big.Int{"alice.test": big.NewInt(1001)})
			require.NoError(t, err)
			return Outcome{Value: value}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, authority, payer := newPendingMarket(t)
			purchase(t, m, authority, 1000)

			authority.cb(tt.outcome(t))

			// Full refund to the buyer and nothing else.
			require.Len(t, payer.Transfers, 1)
			assert.Equal(t, "bob.test", payer.Transfers[0].To)
			assert.Equal(t, "1000", payer.Transfers[0].Amount.String())
		})
	}
}

func TestResolveReturnsPriceOnEveryPath(t *testing.T) {
	m, _, _ := newPendingMarket(t)
	price := big.NewInt(1000)

	got := m.ResolvePurchase("bob.test", price, Outcome{Failed: true})
	assert.Equal(t, "1000", got.String())

	value, err := EncodePayout(map[string]*big.Int{"alice.test": big.NewInt(1000)})
	require.NoError(t, err)
	got = m.ResolvePurchase("bob.test", price, Outcome{Value: value})
	assert.Equal(t, "1000", got.String())
}
