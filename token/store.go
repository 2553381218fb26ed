package token

// Store persists authoritative token records and the per-owner index.
// Implementations must return ErrTokenNotFound when a token id is
// absent and ErrTokenExists when CreateToken collides.
type Store interface {
	// GetToken returns the record for id.
	GetToken(id TokenID) (*Token, error)

	// PutToken replaces the record for t.TokenID.
	PutToken(t *Token) error

	// CreateToken stores a new record and indexes it under its owner.
	CreateToken(t *Token) error

	// TransferToken replaces the record for t.TokenID with t and moves
	// the owner-index entry from `from` to t.OwnerID, atomically: a
	// failure leaves record and indexes as they were.
	TransferToken(from AccountID, t *Token) error

	// TokenCount returns the total number of tokens.
	TokenCount() (int, error)

	// ListTokens returns up to limit token ids starting at offset from,
	// in stable lexicographic order.
	ListTokens(from, limit int) ([]TokenID, error)

	// OwnerTokenCount returns how many tokens account owns.
	OwnerTokenCount(account AccountID) (int, error)

	// ListOwnerTokens returns up to limit of account's token ids starting
	// at offset from, in stable lexicographic order.
	ListOwnerTokens(account AccountID, from, limit int) ([]TokenID, error)
}
