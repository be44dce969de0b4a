package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

// TransferGAS transfers GAS owned by the executing contract and panics if
// the transfer has failed.
func TransferGAS(to interop.Hash160, amount int, data any) {
	if !gas.Transfer(runtime.GetExecutingScriptHash(), to, amount, data) {
		panic("failed to transfer funds, aborting")
	}
}
