package token

// DefaultPageLimit is the page size used when a listing call passes
// limit <= 0.
const DefaultPageLimit = 50

// TotalSupply returns the number of tokens on the ledger.
func (l *Ledger) TotalSupply() (int, error) {
	return l.store.TokenCount()
}

// Tokens returns a page of token records across all owners, ordered by
// token id.
func (l *Ledger) Tokens(from, limit int) ([]*Token, error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	ids, err := l.store.ListTokens(from, limit)
	if err != nil {
		return nil, err
	}
	return l.resolve(ids)
}

// SupplyForOwner returns how many tokens account owns.
func (l *Ledger) SupplyForOwner(account AccountID) (int, error) {
	return l.store.OwnerTokenCount(account)
}

// TokensForOwner returns a page of account's token records, ordered by
// token id.
func (l *Ledger) TokensForOwner(account AccountID, from, limit int) ([]*Token, error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	ids, err := l.store.ListOwnerTokens(account, from, limit)
	if err != nil {
		return nil, err
	}
	return l.resolve(ids)
}

// GetToken returns the record for id.
func (l *Ledger) GetToken(id TokenID) (*Token, error) {
	return l.store.GetToken(id)
}

func (l *Ledger) resolve(ids []TokenID) ([]*Token, error) {
	tokens := make([]*Token, 0, len(ids))
	for _, id := range ids {
		t, err := l.store.GetToken(id)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}
