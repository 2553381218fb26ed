package market

import (
	"fmt"
	"math/big"
)

// Offer places an offer on the listing for contractID and tokenID. The
// deposit must be non-zero and at least the listed price; the buyer
// must not be the listing owner. On success the purchase protocol is
// initiated and the settled amount — always the listed price, not the
// possibly larger deposit — is returned.
//
// The listing is removed before the remote transfer call is issued, so
// a sale can be purchased at most once: a second offer fails
// ErrSaleNotFound while the first is still in flight.
func (m *Market) Offer(buyer string, deposit *big.Int, contractID, tokenID string) (*big.Int, error) {
	if err := assertAtLeastOneUnit(deposit); err != nil {
		return nil, err
	}
	key := SaleKey(contractID, tokenID)
	sale, err := m.sales.GetSale(key)
	if err != nil {
		return nil, err
	}
	if sale.OwnerID == buyer {
		return nil, ErrSelfPurchase
	}
	if deposit.Cmp(sale.Price) < 0 {
		return nil, fmt.Errorf("%w: price is %s", ErrInsufficientOffer, sale.Price)
	}
	return m.processPurchase(contractID, tokenID, buyer)
}

// processPurchase removes the sale and issues the remote
// transfer-and-payout request, scheduling ResolvePurchase as the
// continuation. The pending-purchase context (buyer, price) rides the
// callback closure, never market state, so concurrent purchases of
// different listings cannot alias.
func (m *Market) processPurchase(contractID, tokenID, buyer string) (*big.Int, error) {
	sale, err := m.sales.DeleteSale(SaleKey(contractID, tokenID))
	if err != nil {
		return nil, err
	}
	price := new(big.Int).Set(sale.Price)

	req := &TransferRequest{
		ReceiverID:   buyer,
		TokenID:      tokenID,
		ApprovalID:   sale.ApprovalID,
		Memo:         m.memo,
		Balance:      price,
		MaxLenPayout: m.maxPayoutLen,
		Deposit:      big.NewInt(1),
	}
	m.authority.TransferPayout(contractID, req, func(out Outcome) {
		m.ResolvePurchase(buyer, price, out)
	})
	return price, nil
}

// ResolvePurchase reconciles a purchase once the remote call's outcome
// is available. A valid payout is distributed with one independent
// transfer per recipient; anything else — a failed call, an
// undecodable, empty or oversized payout, or amounts that do not total
// the price within one unit — refunds the full price to the buyer. By
// then the asset may already have changed hands on the authority; only
// the buyer's funds can be restored here.
//
// Returns the sale price on every path. Exported because the hosting
// environment delivers the callback.
func (m *Market) ResolvePurchase(buyer string, price *big.Int, out Outcome) *big.Int {
	payout, err := validatePayout(out, price, m.maxPayoutLen)
	if err != nil {
		m.payer.Transfer(buyer, price)
		return price
	}
	for account, amount := range payout {
		m.payer.Transfer(account, amount)
	}
	return price
}
