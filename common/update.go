package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
)

// UpdateContract updates the executing contract via native management with
// the current version appended to data, so _deploy can check it with
// CheckVersion.
func UpdateContract(script []byte, manifest []byte, data any) {
	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, AppendVersion(data))
}
