package token

import (
	"fmt"
	"math/big"

	"github.com/tokenmart/libtokenmart-go/event"
)

// maxMintRoyalties bounds the royalty schedule at mint so every later
// payout with the recommended recipient limit can succeed.
const maxMintRoyalties = 10

// Mint creates tokenID owned by owner with the given royalty schedule.
// The deposit must cover the storage of the new record; the surplus is
// refunded to the caller. Royalty shares must total at most 10000 basis
// points. Appends an nft_mint event.
func (l *Ledger) Mint(caller AccountID, deposit *big.Int, tokenID TokenID, owner AccountID, royalty map[AccountID]uint32) error {
	if err := assertAtLeastOneUnit(deposit); err != nil {
		return err
	}
	if tokenID == "" || owner == "" {
		return fmt.Errorf("%w: token id and owner required", ErrNilParam)
	}
	if err := validateRoyalty(royalty, maxMintRoyalties); err != nil {
		return err
	}

	t := &Token{
		TokenID:            tokenID,
		OwnerID:            owner,
		ApprovedAccountIDs: make(map[AccountID]uint64),
		NextApprovalID:     0,
		Royalty:            royalty,
	}
	if err := l.chargeStorage(caller, deposit, bytesForToken(t)); err != nil {
		return err
	}
	if err := l.store.CreateToken(t); err != nil {
		return err
	}

	if l.events != nil {
		_ = l.events.Append(event.NewMint(event.MintData{
			OwnerID:  string(owner),
			TokenIDs: []string{string(tokenID)},
		}))
	}
	return nil
}
