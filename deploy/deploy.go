// Package deploy provides deployment of the Account Bindings contract to a
// Neo blockchain.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/bindings-contract/contracts"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for contract deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by
	// its address. GetContractStateByHash returns error with 'Unknown
	// contract' substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// Prm groups all parameters of the contract deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	// The contract address depends on it.
	LocalAccount *wallet.Account

	// Compiled contract.
	Contract contracts.Contract

	// Initial contract owner. Zero value means the contract is deployed
	// without an owner which must be set by `init` method later.
	Owner util.Uint160
}

var errMissingPrm = errors.New("missing deployment parameter")

func (p Prm) validate() error {
	switch {
	case p.Logger == nil:
		return fmt.Errorf("%w: logger", errMissingPrm)
	case p.Blockchain == nil:
		return fmt.Errorf("%w: blockchain", errMissingPrm)
	case p.LocalAccount == nil:
		return fmt.Errorf("%w: local account", errMissingPrm)
	case p.LocalAccount.PrivateKey() == nil:
		return errors.New("local account is locked")
	case len(p.Contract.NEF.Script) == 0:
		return fmt.Errorf("%w: contract NEF", errMissingPrm)
	case p.Contract.Manifest.Name == "":
		return fmt.Errorf("%w: contract manifest", errMissingPrm)
	}
	return nil
}

// ContractAddress returns the address of the contract deployed by the given
// sender.
func ContractAddress(sender util.Uint160, c contracts.Contract) util.Uint160 {
	return state.CreateContractHash(sender, c.NEF.Checksum, c.Manifest.Name)
}

// Deploy deploys the contract with the initial owner unless it is already
// deployed by the local account and returns the contract address. Deploy
// waits for the deployment transaction to be persisted.
func Deploy(ctx context.Context, prm Prm) (util.Uint160, error) {
	if err := prm.validate(); err != nil {
		return util.Uint160{}, err
	}

	addr := ContractAddress(prm.LocalAccount.ScriptHash(), prm.Contract)
	log := prm.Logger.With(zap.Stringer("address", addr), zap.String("contract", prm.Contract.Manifest.Name))

	_, err := prm.Blockchain.GetContractStateByHash(addr)
	if err == nil {
		log.Info("contract is already deployed, skip")
		return addr, nil
	}
	if !isErrContractNotFound(err) {
		return util.Uint160{}, fmt.Errorf("get contract state: %w", err)
	}

	if err = ctx.Err(); err != nil {
		return util.Uint160{}, err
	}

	act, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	var data any
	if !prm.Owner.Equals(util.Uint160{}) {
		data = []any{prm.Owner}
	}

	log.Info("sending contract deployment transaction...", zap.Bool("with owner", data != nil))

	res, err := act.Wait(management.New(act).Deploy(&prm.Contract.NEF, &prm.Contract.Manifest, data))
	if err != nil {
		return util.Uint160{}, fmt.Errorf("deploy contract: %w", err)
	}

	if res.VMState != vmstate.Halt {
		return util.Uint160{}, fmt.Errorf("deployment transaction %s failed: %s", res.Container.StringLE(), res.FaultException)
	}

	log.Info("contract successfully deployed", zap.Stringer("tx", res.Container))

	return addr, nil
}

func isErrContractNotFound(err error) bool {
	return strings.Contains(err.Error(), "Unknown contract")
}
