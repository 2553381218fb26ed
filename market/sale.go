// Package market implements the sale registry and the asynchronous
// settlement coordinator of the marketplace. The registry owns active
// listings keyed by collection and token id; the coordinator removes a
// purchased listing, delegates the atomic transfer-and-payout to the
// collection's asset authority over an asynchronous remote call, and
// reconciles the result by distributing funds or refunding the buyer.
package market

import (
	"fmt"
	"math/big"
)

// KeyDelimiter joins collection and token id into a single registry key.
const KeyDelimiter = "."

// Sale is one active listing.
type Sale struct {
	// OwnerID listed the sale and receives the owner share of proceeds.
	OwnerID string

	// ApprovalID is the approval the market may use to transfer the
	// token on the owner's behalf. The registry does not verify it stays
	// valid; a stale id is rejected by the authority at transfer time.
	ApprovalID uint64

	// ContractID identifies the token's collection, i.e. which authority
	// settles it.
	ContractID string

	// TokenID identifies the token within the collection.
	TokenID string

	// Price is the listed price in the smallest currency unit.
	Price *big.Int
}

// SaleKey builds the registry key for a listing.
func SaleKey(contractID, tokenID string) string {
	return contractID + KeyDelimiter + tokenID
}

// SaleStore persists active listings. Implementations return
// ErrSaleNotFound for absent keys.
type SaleStore interface {
	// GetSale returns the listing stored under key.
	GetSale(key string) (*Sale, error)

	// PutSale stores or replaces the listing under key.
	PutSale(key string, s *Sale) error

	// DeleteSale removes and returns the listing under key.
	DeleteSale(key string) (*Sale, error)

	// SaleCount returns the number of active listings.
	SaleCount() (int, error)
}

// Opts holds optional settings for a Market.
type Opts struct {
	// MaxPayoutLen caps payout recipients on remote transfers. Zero
	// means DefaultMaxPayoutLen.
	MaxPayoutLen uint32

	// Memo accompanies remote transfers. Empty means DefaultMemo.
	Memo string
}

// Default settings for remote transfer requests.
const (
	DefaultMaxPayoutLen = 10
	DefaultMemo         = "payout from market"
)

// Market is the sale registry and settlement coordinator.
type Market struct {
	sales        SaleStore
	authority    Authority
	payer        Payer
	maxPayoutLen uint32
	memo         string
}

// NewMarket creates a market over sales, settling through authority and
// paying through payer. opts may be nil.
func NewMarket(sales SaleStore, authority Authority, payer Payer, opts *Opts) *Market {
	m := &Market{
		sales:        sales,
		authority:    authority,
		payer:        payer,
		maxPayoutLen: DefaultMaxPayoutLen,
		memo:         DefaultMemo,
	}
	if opts != nil {
		if opts.MaxPayoutLen > 0 {
			m.maxPayoutLen = opts.MaxPayoutLen
		}
		if opts.Memo != "" {
			m.memo = opts.Memo
		}
	}
	return m
}

// AddSale stores a new listing. The caller becomes the listing owner.
func (m *Market) AddSale(caller string, deposit *big.Int, contractID, tokenID string, approvalID uint64, price *big.Int) error {
	if err := assertAtLeastOneUnit(deposit); err != nil {
		return err
	}
	if price == nil || price.Sign() < 1 {
		return ErrInvalidPrice
	}
	key := SaleKey(contractID, tokenID)
	if _, err := m.sales.GetSale(key); err == nil {
		return fmt.Errorf("%w: %s", ErrSaleExists, key)
	}
	return m.sales.PutSale(key, &Sale{
		OwnerID:    caller,
		ApprovalID: approvalID,
		ContractID: contractID,
		TokenID:    tokenID,
		Price:      new(big.Int).Set(price),
	})
}

// RemoveSale removes the caller's listing and returns it. Requires an
// exactly-one-unit deposit; fails ErrUnauthorized, leaving the listing
// in place, when the caller is not the stored owner.
func (m *Market) RemoveSale(caller string, deposit *big.Int, contractID, tokenID string) (*Sale, error) {
	if err := assertOneUnit(deposit); err != nil {
		return nil, err
	}
	key := SaleKey(contractID, tokenID)
	sale, err := m.sales.GetSale(key)
	if err != nil {
		return nil, err
	}
	if sale.OwnerID != caller {
		return nil, fmt.Errorf("%w: owner is %q", ErrUnauthorized, sale.OwnerID)
	}
	return m.sales.DeleteSale(key)
}

// UpdatePrice sets a new price on the caller's listing. Requires an
// exactly-one-unit deposit.
func (m *Market) UpdatePrice(caller string, deposit *big.Int, contractID, tokenID string, price *big.Int) error {
	if err := assertOneUnit(deposit); err != nil {
		return err
	}
	if price == nil || price.Sign() < 1 {
		return ErrInvalidPrice
	}
	key := SaleKey(contractID, tokenID)
	sale, err := m.sales.GetSale(key)
	if err != nil {
		return err
	}
	if sale.OwnerID != caller {
		return fmt.Errorf("%w: owner is %q", ErrUnauthorized, sale.OwnerID)
	}
	sale.Price = new(big.Int).Set(price)
	return m.sales.PutSale(key, sale)
}

// GetSale returns the listing for contractID and tokenID.
func (m *Market) GetSale(contractID, tokenID string) (*Sale, error) {
	return m.sales.GetSale(SaleKey(contractID, tokenID))
}
