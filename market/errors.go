package market

import "errors"

var (
	// ErrSaleNotFound indicates no active listing exists for the key.
	ErrSaleNotFound = errors.New("market: sale not found")

	// ErrSaleExists indicates a listing already exists for the key.
	ErrSaleExists = errors.New("market: sale already exists")

	// ErrUnauthorized indicates the caller is not the listing's owner.
	ErrUnauthorized = errors.New("market: caller is not the sale owner")

	// ErrZeroDeposit indicates an offer carried no attached deposit.
	ErrZeroDeposit = errors.New("market: attached deposit must be greater than 0")

	// ErrSelfPurchase indicates a buyer bid on their own listing.
	ErrSelfPurchase = errors.New("market: cannot bid on your own sale")

	// ErrInsufficientOffer indicates the attached deposit is below the
	// listed price.
	ErrInsufficientOffer = errors.New("market: deposit below sale price")

	// ErrOneUnitDeposit indicates the call requires an attached deposit of
	// exactly one currency unit.
	ErrOneUnitDeposit = errors.New("market: requires attached deposit of exactly 1 unit")

	// ErrInvalidPrice indicates a nil or negative price.
	ErrInvalidPrice = errors.New("market: invalid price")

	// ErrMalformedPayout indicates the remote payout response is absent,
	// undecodable, oversized, empty, or does not total the sale price.
	// Never surfaced to callers: the settlement path recovers by
	// refunding the buyer in full.
	ErrMalformedPayout = errors.New("market: malformed remote payout")
)
