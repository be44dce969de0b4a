package bindings

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/nspcc-dev/bindings-contract/contracts/bindings/bindingsconst"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/gas"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Platform is an external platform supported by the contract.
type Platform string

// Supported platforms.
const (
	Twitter   Platform = bindingsconst.Twitter
	Facebook  Platform = bindingsconst.Facebook
	Reddit    Platform = bindingsconst.Reddit
	GitHub    Platform = bindingsconst.GitHub
	Telegram  Platform = bindingsconst.Telegram
	Discord   Platform = bindingsconst.Discord
	Instagram Platform = bindingsconst.Instagram
	Ethereum  Platform = bindingsconst.Ethereum
	Hive      Platform = bindingsconst.Hive
	Steem     Platform = bindingsconst.Steem
)

// Platforms lists all supported platforms in the order of their storage codes.
var Platforms = []Platform{
	Twitter, Facebook, Reddit, GitHub, Telegram,
	Discord, Instagram, Ethereum, Hive, Steem,
}

// ErrUnknownPlatform is returned by ParsePlatform for values outside the
// supported set.
var ErrUnknownPlatform = errors.New(bindingsconst.UnknownPlatformError)

// ParsePlatform converts case-insensitive platform name into Platform.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	for i := range Platforms {
		if Platforms[i] == p {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
}

// String implements fmt.Stringer.
func (p Platform) String() string {
	return string(p)
}

// ProposalFee returns minimal amount of GAS required by the contract for
// every binding proposal.
func ProposalFee() *big.Int {
	return big.NewInt(bindingsconst.ProposalFee)
}

func (c *Contract) scriptForProposeBinding(platform Platform, handle string, fee *big.Int) ([]byte, error) {
	if fee == nil {
		fee = ProposalFee()
	}
	if handle == "" {
		return nil, errors.New(bindingsconst.InvalidHandleError)
	}
	return smartcontract.CreateCallWithAssertScript(gas.Hash, "transfer",
		c.actor.Sender(), c.hash, fee, []any{string(platform), handle})
}

// ProposeBinding creates a transaction transferring the proposal fee from the
// actor's account to the contract along with the [platform, handle] data,
// which makes a new binding proposal (or replaces the current one). Nil fee
// means ProposalFee. This transaction is signed and immediately sent to the
// network. The values returned are its hash, ValidUntilBlock value and error
// if any.
func (c *Contract) ProposeBinding(platform Platform, handle string, fee *big.Int) (util.Uint256, uint32, error) {
	script, err := c.scriptForProposeBinding(platform, handle, fee)
	if err != nil {
		return util.Uint256{}, 0, err
	}
	return c.actor.SendRun(script)
}

// ProposeBindingTransaction is similar to ProposeBinding, but the signed
// transaction is returned to the caller instead of being sent.
func (c *Contract) ProposeBindingTransaction(platform Platform, handle string, fee *big.Int) (*transaction.Transaction, error) {
	script, err := c.scriptForProposeBinding(platform, handle, fee)
	if err != nil {
		return nil, err
	}
	return c.actor.MakeRun(script)
}

// ProposeBindingUnsigned is similar to ProposeBinding, but the transaction is
// neither signed nor sent.
func (c *Contract) ProposeBindingUnsigned(platform Platform, handle string, fee *big.Int) (*transaction.Transaction, error) {
	script, err := c.scriptForProposeBinding(platform, handle, fee)
	if err != nil {
		return nil, err
	}
	return c.actor.MakeUnsignedRun(script, nil)
}
