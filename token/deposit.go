package token

import "math/big"

var oneUnit = big.NewInt(1)

// assertOneUnit enforces the exactly-one-unit deposit convention on
// state-mutating economic calls.
func assertOneUnit(deposit *big.Int) error {
	if deposit == nil || deposit.Cmp(oneUnit) != 0 {
		return ErrOneUnitDeposit
	}
	return nil
}

// assertAtLeastOneUnit enforces the non-zero-intent deposit convention.
func assertAtLeastOneUnit(deposit *big.Int) error {
	if deposit == nil || deposit.Sign() < 1 {
		return ErrDepositRequired
	}
	return nil
}
