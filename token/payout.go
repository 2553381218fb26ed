package token

import (
	"fmt"
	"math/big"
)

// BasisPoints is the denominator of royalty shares: 10000 = 100%.
const BasisPoints = 10000

// royaltyShare returns floor(bps * amount / 10000).
func royaltyShare(bps uint32, amount *big.Int) *big.Int {
	share := new(big.Int).Mul(big.NewInt(int64(bps)), amount)
	return share.Quo(share, big.NewInt(BasisPoints))
}

// ComputePayout splits amount between the owner and the royalty
// beneficiaries. Each beneficiary other than the owner receives
// floor(bps*amount/10000); the owner receives the share left after
// subtracting all beneficiary basis points, so the owner absorbs the
// aggregate rounding remainder and the total never exceeds amount.
//
// The only failure is ErrTooManyRecipients, when the royalty map has
// more entries than maxRecipients.
func ComputePayout(owner AccountID, royalty map[AccountID]uint32, amount *big.Int, maxRecipients uint32) (Payout, error) {
	if uint32(len(royalty)) > maxRecipients {
		return nil, fmt.Errorf("%w: %d beneficiaries, limit %d", ErrTooManyRecipients, len(royalty), maxRecipients)
	}

	// The total is carried in uint64 so an invalid schedule cannot wrap
	// past the denominator and mint the owner a phantom share.
	payout := make(Payout, len(royalty)+1)
	var totalBps uint64
	for account, bps := range royalty {
		if account == owner {
			continue
		}
		payout[account] = royaltyShare(bps, amount)
		totalBps += uint64(bps)
	}
	var ownerBps uint32
	if totalBps < BasisPoints {
		ownerBps = BasisPoints - uint32(totalBps)
	}
	payout[owner] = royaltyShare(ownerBps, amount)
	return payout, nil
}

// validateRoyalty checks a royalty schedule at mint time. No single
// share may exceed the denominator and the shares must sum to at most
// the denominator; the sum is carried in uint64 so it cannot wrap.
func validateRoyalty(royalty map[AccountID]uint32, maxRecipients uint32) error {
	if uint32(len(royalty)) > maxRecipients {
		return fmt.Errorf("%w: %d beneficiaries, limit %d", ErrTooManyRecipients, len(royalty), maxRecipients)
	}
	var total uint64
	for account, bps := range royalty {
		if bps > BasisPoints {
			return fmt.Errorf("%w: %d bps for %q", ErrRoyaltyTooHigh, bps, account)
		}
		total += uint64(bps)
	}
	if total > BasisPoints {
		return fmt.Errorf("%w: total %d bps", ErrRoyaltyTooHigh, total)
	}
	return nil
}
