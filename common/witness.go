package common

import (
	"github.com/nspcc-dev/bindings-contract/contracts/bindings/bindingsconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

// CheckOwnerWitness checks witness of the contract owner. It panics with
// bindingsconst.NotOwnerError message on fail.
func CheckOwnerWitness(owner interop.Hash160) {
	checkWitnessWithPanic(owner, bindingsconst.NotOwnerError)
}

// CheckWitness checks witness of the passed account. It panics with
// bindingsconst.WitnessError message on fail.
func CheckWitness(account interop.Hash160) {
	checkWitnessWithPanic(account, bindingsconst.WitnessError)
}

func checkWitnessWithPanic(caller interop.Hash160, panicMsg string) {
	if !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}

// IsValidAccount checks that the account is a script hash of the correct length.
func IsValidAccount(account interop.Hash160) bool {
	return len(account) == interop.Hash160Len
}

// CheckAccount panics with bindingsconst.InvalidAccountError if the account
// is not a valid script hash.
func CheckAccount(account interop.Hash160) {
	if !IsValidAccount(account) {
		panic(bindingsconst.InvalidAccountError)
	}
}
