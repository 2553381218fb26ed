package market

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// payoutEnvelope mirrors the authority's wire format: a "payout" object
// mapping accounts to amounts as decimal strings.
type payoutEnvelope struct {
	Payout map[string]string `json:"payout"`
}

// validatePayout decodes and sanity-checks a remote payout before any
// funds move. It fails when the outcome is a failure or empty, the JSON
// does not decode, the map is empty or has more than maxLen entries, an
// amount is not a non-negative integer, or the amounts do not total
// price within one unit of rounding slack. An error here sends the
// settlement down the refund path.
func validatePayout(out Outcome, price *big.Int, maxLen uint32) (map[string]*big.Int, error) {
	if out.Failed || len(out.Value) == 0 {
		return nil, fmt.Errorf("%w: no result", ErrMalformedPayout)
	}

	var env payoutEnvelope
	if err := json.Unmarshal(out.Value, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayout, err)
	}
	if len(env.Payout) == 0 {
		return nil, fmt.Errorf("%w: empty payout", ErrMalformedPayout)
	}
	if uint32(len(env.Payout)) > maxLen {
		return nil, fmt.Errorf("%w: %d recipients, limit %d", ErrMalformedPayout, len(env.Payout), maxLen)
	}

	payout := make(map[string]*big.Int, len(env.Payout))
	remainder := new(big.Int).Set(price)
	for account, raw := range env.Payout {
		amount, ok := new(big.Int).SetString(raw, 10)
		if !ok || amount.Sign() < 0 {
			return nil, fmt.Errorf("%w: amount %q", ErrMalformedPayout, raw)
		}
		remainder.Sub(remainder, amount)
		if remainder.Sign() < 0 {
			return nil, fmt.Errorf("%w: amounts exceed price %s", ErrMalformedPayout, price)
		}
		payout[account] = amount
	}
	// At most one unit of integer-division rounding loss is tolerated.
	if remainder.Cmp(oneUnit) > 0 {
		return nil, fmt.Errorf("%w: %s of price %s unaccounted", ErrMalformedPayout, remainder, price)
	}
	return payout, nil
}

// EncodePayout renders a payout map in the wire format an authority
// returns from a transfer-and-payout call.
func EncodePayout(payout map[string]*big.Int) ([]byte, error) {
	env := payoutEnvelope{Payout: make(map[string]string, len(payout))}
	for account, amount := range payout {
		env.Payout[account] = amount.String()
	}
	return json.Marshal(env)
}
