package token

import "errors"

var (
	// ErrTokenNotFound indicates no token exists with the given id.
	ErrTokenNotFound = errors.New("token: token not found")

	// ErrTokenExists indicates a mint collided with an existing token id.
	ErrTokenExists = errors.New("token: token id already exists")

	// ErrUnauthorized indicates the caller is neither the owner nor an
	// approved operator for the operation.
	ErrUnauthorized = errors.New("token: unauthorized")

	// ErrApprovalMismatch indicates the supplied approval id differs from
	// the id recorded for the caller.
	ErrApprovalMismatch = errors.New("token: approval id mismatch")

	// ErrSameOwnerTransfer indicates the receiver already owns the token.
	ErrSameOwnerTransfer = errors.New("token: receiver is already the owner")

	// ErrTooManyRecipients indicates the royalty map exceeds the caller's
	// payout recipient limit.
	ErrTooManyRecipients = errors.New("token: too many payout recipients")

	// ErrRoyaltyTooHigh indicates royalty shares total more than 10000
	// basis points.
	ErrRoyaltyTooHigh = errors.New("token: royalty exceeds 10000 basis points")

	// ErrOneUnitDeposit indicates the call requires an attached deposit of
	// exactly one currency unit.
	ErrOneUnitDeposit = errors.New("token: requires attached deposit of exactly 1 unit")

	// ErrDepositRequired indicates the call requires an attached deposit of
	// at least one currency unit.
	ErrDepositRequired = errors.New("token: requires attached deposit of at least 1 unit")

	// ErrStorageDeposit indicates the attached deposit does not cover the
	// storage the call would consume.
	ErrStorageDeposit = errors.New("token: deposit does not cover storage cost")

	// ErrNilParam indicates a required parameter was nil.
	ErrNilParam = errors.New("token: nil parameter")
)
