package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/nspcc-dev/bindings-contract/internal/config"
	"github.com/nspcc-dev/bindings-contract/rpc/bindings"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

// wrapper over Neo RPC client providing contract services needed for commands.
type remoteBlockchain struct {
	log  *zap.Logger
	cfg  config.Config
	rpc  *rpcclient.Client
	hash util.Uint160

	acc   *wallet.Account
	actor *actor.Actor
}

// newRemoteBlockchain loads configuration, dials Neo RPC server and, if
// needWallet is set, opens the wallet account for signing.
func newRemoteBlockchain(c *cli.Context, needWallet bool, needContract bool) (*remoteBlockchain, error) {
	cfg, err := config.Load(c.GlobalString("config"))
	if err != nil {
		return nil, err
	}

	if err = cfg.Validate(needWallet); err != nil {
		return nil, err
	}

	x := &remoteBlockchain{cfg: cfg}

	if needContract {
		x.hash, err = cfg.ContractHash()
		if err != nil {
			return nil, err
		}
	}

	x.rpc, err = rpcclient.New(context.Background(), cfg.RPC.Endpoint, rpcclient.Options{
		DialTimeout:    cfg.RPC.DialTimeout,
		RequestTimeout: cfg.RPC.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	if err = x.rpc.Init(); err != nil {
		x.rpc.Close()
		return nil, fmt.Errorf("RPC client init: %w", err)
	}

	if needWallet {
		x.acc, err = openAccount(cfg.Wallet)
		if err != nil {
			x.rpc.Close()
			return nil, err
		}

		x.actor, err = actor.NewSimple(x.rpc, x.acc)
		if err != nil {
			x.rpc.Close()
			return nil, fmt.Errorf("init actor: %w", err)
		}
	}

	// built last, failures above have nothing to sync
	x.log, err = newLogger(cfg.Logger.Level)
	if err != nil {
		x.rpc.Close()
		return nil, err
	}

	return x, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid logger level: %w", err)
	}

	c := zap.NewProductionConfig()
	c.Level = lvl
	c.Encoding = "console"
	c.DisableStacktrace = true

	return c.Build()
}

func openAccount(cfg config.Wallet) (*wallet.Account, error) {
	w, err := wallet.NewWalletFromFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}
	defer w.Close()

	var acc *wallet.Account
	if cfg.Address != "" {
		h, err := config.ParseAccount(cfg.Address)
		if err != nil {
			return nil, err
		}
		acc = w.GetAccount(h)
		if acc == nil {
			return nil, fmt.Errorf("account %s is missing in the wallet", cfg.Address)
		}
	} else {
		if len(w.Accounts) == 0 {
			return nil, errors.New("wallet has no accounts")
		}
		acc = w.Accounts[0]
		for i := range w.Accounts {
			if w.Accounts[i].Default {
				acc = w.Accounts[i]
				break
			}
		}
	}

	if err = acc.Decrypt(cfg.Password, w.Scrypt); err != nil {
		return nil, fmt.Errorf("decrypt account %s: %w", acc.Address, err)
	}

	return acc, nil
}

func (x *remoteBlockchain) close() {
	_ = x.log.Sync()
	x.rpc.Close()
}

func (x *remoteBlockchain) reader() *bindings.ContractReader {
	return bindings.NewReader(invoker.New(x.rpc, nil), x.hash)
}

func (x *remoteBlockchain) contract() *bindings.Contract {
	return bindings.New(x.actor, x.hash)
}

// wait waits for the transaction to be persisted and checks its result.
func (x *remoteBlockchain) wait(h util.Uint256, vub uint32, err error) (*state.AppExecResult, error) {
	if err != nil {
		return nil, err
	}

	x.log.Info("transaction sent, waiting...", zap.Stringer("tx", h), zap.Uint32("vub", vub))

	res, err := x.actor.Wait(h, vub, nil)
	if err != nil {
		return nil, fmt.Errorf("wait for transaction %s: %w", h.StringLE(), err)
	}

	if res.VMState != vmstate.Halt {
		return nil, fmt.Errorf("transaction %s failed: %s", h.StringLE(), res.FaultException)
	}

	x.log.Info("transaction persisted", zap.Stringer("tx", h))

	return res, nil
}
