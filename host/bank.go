package host

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/tokenmart/libtokenmart-go/token"
)

// Bank tracks account balances on the underlying value ledger and
// executes transfer instructions.
type Bank struct {
	mu       sync.Mutex
	balances map[string]*big.Int
}

// NewBank creates a bank with no balances.
func NewBank() *Bank {
	return &Bank{balances: make(map[string]*big.Int)}
}

// Credit adds amount to account's balance.
func (b *Bank) Credit(account string, amount *big.Int) {
	if amount == nil || amount.Sign() < 1 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	bal := b.balances[account]
	if bal == nil {
		bal = new(big.Int)
		b.balances[account] = bal
	}
	bal.Add(bal, amount)
}

// Debit removes amount from account's balance.
func (b *Bank) Debit(account string, amount *big.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	bal := b.balances[account]
	if bal == nil || bal.Cmp(amount) < 0 {
		return fmt.Errorf("%w: account %q", ErrInsufficientFunds, account)
	}
	bal.Sub(bal, amount)
	return nil
}

// Balance returns account's balance. Accounts start at zero.
func (b *Bank) Balance(account string) *big.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	bal := b.balances[account]
	if bal == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(bal)
}

// Transfer implements the market's fire-and-forget payer interface by
// crediting the recipient.
func (b *Bank) Transfer(to string, amount *big.Int) {
	b.Credit(to, amount)
}

// LedgerPayer adapts a Bank to the token ledger's payer interface.
type LedgerPayer struct {
	Bank *Bank
}

// Transfer credits the recipient on the bank.
func (p LedgerPayer) Transfer(to token.AccountID, amount *big.Int) {
	p.Bank.Credit(string(to), amount)
}
