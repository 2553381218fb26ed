package market

import "math/big"

// MockAuthority is a test double for Authority. TransferPayoutFn must
// be set before TransferPayout is called.
type MockAuthority struct {
	TransferPayoutFn func(contractID string, req *TransferRequest, cb Callback)
}

func (m *MockAuthority) TransferPayout(contractID string, req *TransferRequest, cb Callback) {
	m.TransferPayoutFn(contractID, req, cb)
}

// MockPayer is a test double for Payer recording every transfer it is
// handed, in order.
type MockPayer struct {
	Transfers []MockTransfer
}

// MockTransfer is one recorded transfer instruction.
type MockTransfer struct {
	To     string
	Amount *big.Int
}

func (m *MockPayer) Transfer(to string, amount *big.Int) {
	m.Transfers = append(m.Transfers, MockTransfer{To: to, Amount: new(big.Int).Set(amount)})
}

// Total returns the sum of all amounts transferred to account.
func (m *MockPayer) Total(account string) *big.Int {
	total := new(big.Int)
	for _, tr := range m.Transfers {
		if tr.To == account {
			total.Add(total, tr.Amount)
		}
	}
	return total
}
