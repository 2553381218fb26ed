package host

import "errors"

// ErrInsufficientFunds indicates a debit exceeds the account balance.
var ErrInsufficientFunds = errors.New("host: insufficient funds")
