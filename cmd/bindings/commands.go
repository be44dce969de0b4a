package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strconv"

	"github.com/nspcc-dev/bindings-contract/contracts"
	"github.com/nspcc-dev/bindings-contract/deploy"
	"github.com/nspcc-dev/bindings-contract/internal/config"
	"github.com/nspcc-dev/bindings-contract/rpc/bindings"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/encoding/fixedn"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

var errArgs = errors.New("wrong number of arguments")

func checkArgs(c *cli.Context, n int) error {
	if c.NArg() != n {
		return fmt.Errorf("%w: expected %d, got %d (usage: %s)", errArgs, n, c.NArg(), c.Command.ArgsUsage)
	}
	return nil
}

func parsePlatformAccount(c *cli.Context) (util.Uint160, bindings.Platform, error) {
	acc, err := config.ParseAccount(c.Args().Get(0))
	if err != nil {
		return util.Uint160{}, "", err
	}

	p, err := bindings.ParsePlatform(c.Args().Get(1))
	if err != nil {
		return util.Uint160{}, "", err
	}

	return acc, p, nil
}

func parseTimestamp(s string) (*big.Int, error) {
	ts, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return new(big.Int).SetUint64(ts), nil
}

// parseGAS parses decimal GAS amount, e.g. "0.01".
func parseGAS(s string) (*big.Int, error) {
	v, err := fixedn.FromString(s, 8)
	if err != nil {
		return nil, fmt.Errorf("invalid GAS amount %q: %w", s, err)
	}
	if v.Sign() <= 0 {
		return nil, fmt.Errorf("invalid GAS amount %q: must be positive", s)
	}
	return v, nil
}

func deployContract(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}

	ctr, err := contracts.ReadDir(c.Args().First())
	if err != nil {
		return err
	}

	x, err := newRemoteBlockchain(c, true, false)
	if err != nil {
		return err
	}
	defer x.close()

	owner := x.acc.ScriptHash()
	if s := c.String("owner"); s != "" {
		owner, err = config.ParseAccount(s)
		if err != nil {
			return err
		}
	}

	addr, err := deploy.Deploy(context.Background(), deploy.Prm{
		Logger:       x.log,
		Blockchain:   x.rpc,
		LocalAccount: x.acc,
		Contract:     ctr,
		Owner:        owner,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, addr.StringLE())
	return nil
}

func getOwner(c *cli.Context) error {
	x, err := newRemoteBlockchain(c, false, true)
	if err != nil {
		return err
	}
	defer x.close()

	owner, err := x.reader().GetOwnerID()
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, address.Uint160ToString(owner))
	return nil
}

func setOwner(c *cli.Context) error {
	return sendAccountCall(c, func(b *bindings.Contract, acc util.Uint160) (util.Uint256, uint32, error) {
		return b.SetOwner(acc)
	})
}

func initOwner(c *cli.Context) error {
	return sendAccountCall(c, func(b *bindings.Contract, acc util.Uint160) (util.Uint256, uint32, error) {
		return b.Init(acc)
	})
}

func addManager(c *cli.Context) error {
	return sendAccountCall(c, func(b *bindings.Contract, acc util.Uint160) (util.Uint256, uint32, error) {
		return b.AddManager(acc)
	})
}

func removeManager(c *cli.Context) error {
	return sendAccountCall(c, func(b *bindings.Contract, acc util.Uint160) (util.Uint256, uint32, error) {
		return b.RemoveManager(acc)
	})
}

func sendAccountCall(c *cli.Context, f func(*bindings.Contract, util.Uint160) (util.Uint256, uint32, error)) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}

	acc, err := config.ParseAccount(c.Args().First())
	if err != nil {
		return err
	}

	x, err := newRemoteBlockchain(c, true, true)
	if err != nil {
		return err
	}
	defer x.close()

	_, err = x.wait(f(x.contract(), acc))
	return err
}

func checkManager(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}

	acc, err := config.ParseAccount(c.Args().First())
	if err != nil {
		return err
	}

	x, err := newRemoteBlockchain(c, false, true)
	if err != nil {
		return err
	}
	defer x.close()

	ok, err := x.reader().IsManager(acc)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, ok)
	return nil
}

func listManagers(c *cli.Context) error {
	x, err := newRemoteBlockchain(c, false, true)
	if err != nil {
		return err
	}
	defer x.close()

	managers, err := x.reader().ManagersList()
	if err != nil {
		return err
	}

	for i := range managers {
		fmt.Fprintln(c.App.Writer, address.Uint160ToString(managers[i]))
	}
	return nil
}

func listAccounts(c *cli.Context) error {
	x, err := newRemoteBlockchain(c, false, true)
	if err != nil {
		return err
	}
	defer x.close()

	r := x.reader()

	accounts, err := r.AccountsList()
	if err != nil {
		return err
	}

	for i := range accounts {
		handles, err := r.GetAccount(accounts[i])
		if err != nil {
			return fmt.Errorf("account %s: %w", address.Uint160ToString(accounts[i]), err)
		}

		fmt.Fprintln(c.App.Writer, address.Uint160ToString(accounts[i]))
		for _, p := range bindings.Platforms {
			if h, ok := handles[p]; ok {
				fmt.Fprintf(c.App.Writer, "\t%s: %s\n", p, h)
			}
		}
	}
	return nil
}

func proposeBinding(c *cli.Context) error {
	if err := checkArgs(c, 2); err != nil {
		return err
	}

	p, err := bindings.ParsePlatform(c.Args().Get(0))
	if err != nil {
		return err
	}

	x, err := newRemoteBlockchain(c, true, true)
	if err != nil {
		return err
	}
	defer x.close()

	res, err := x.wait(x.contract().ProposeBinding(p, c.Args().Get(1), nil))
	if err != nil {
		if bindings.IsError(err, bindings.AlreadyBound) {
			x.log.Warn("account is already bound on the platform", zap.Stringer("platform", p))
		}
		return err
	}

	events, err := bindings.ProposeBindingEventsFromApplicationLog(&result.ApplicationLog{
		Container:  res.Container,
		Executions: []state.Execution{res.Execution},
	})
	if err != nil {
		return err
	}

	for _, e := range events {
		// creation time is required by managers to accept the proposal
		fmt.Fprintln(c.App.Writer, e.CreatedAt)
	}
	return nil
}

func cancelProposal(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}

	p, err := bindings.ParsePlatform(c.Args().First())
	if err != nil {
		return err
	}

	x, err := newRemoteBlockchain(c, true, true)
	if err != nil {
		return err
	}
	defer x.close()

	_, err = x.wait(x.contract().CancelBindingProposal(x.acc.ScriptHash(), p))
	return err
}

func acceptBinding(c *cli.Context) error {
	if err := checkArgs(c, 3); err != nil {
		return err
	}

	acc, p, err := parsePlatformAccount(c)
	if err != nil {
		return err
	}

	ts, err := parseTimestamp(c.Args().Get(2))
	if err != nil {
		return err
	}

	x, err := newRemoteBlockchain(c, true, true)
	if err != nil {
		return err
	}
	defer x.close()

	_, err = x.wait(x.contract().AcceptBinding(acc, p, ts))
	if bindings.IsError(err, bindings.WrongProposal) {
		x.log.Warn("proposal was replaced or cancelled after verification, verify it again")
	}
	return err
}

func getProposal(c *cli.Context) error {
	if err := checkArgs(c, 2); err != nil {
		return err
	}

	acc, p, err := parsePlatformAccount(c)
	if err != nil {
		return err
	}

	x, err := newRemoteBlockchain(c, false, true)
	if err != nil {
		return err
	}
	defer x.close()

	res, err := x.reader().GetProposal(acc, p)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "handle: %s\ncreated at: %s\n", res.Handle, res.CreatedAt)
	return nil
}

func getHandle(c *cli.Context) error {
	if err := checkArgs(c, 2); err != nil {
		return err
	}

	acc, p, err := parsePlatformAccount(c)
	if err != nil {
		return err
	}

	x, err := newRemoteBlockchain(c, false, true)
	if err != nil {
		return err
	}
	defer x.close()

	h, err := x.reader().GetHandle(acc, p)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, h)
	return nil
}

func lookupAccount(c *cli.Context) error {
	if err := checkArgs(c, 2); err != nil {
		return err
	}

	p, err := bindings.ParsePlatform(c.Args().Get(0))
	if err != nil {
		return err
	}

	x, err := newRemoteBlockchain(c, false, true)
	if err != nil {
		return err
	}
	defer x.close()

	acc, ok, err := x.reader().LookupAccount(p, c.Args().Get(1))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("handle %s is not bound on %s", c.Args().Get(1), p)
	}

	fmt.Fprintln(c.App.Writer, address.Uint160ToString(acc))
	return nil
}

func getAccount(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}

	acc, err := config.ParseAccount(c.Args().First())
	if err != nil {
		return err
	}

	x, err := newRemoteBlockchain(c, false, true)
	if err != nil {
		return err
	}
	defer x.close()

	handles, err := x.reader().GetAccount(acc)
	if err != nil {
		return err
	}

	platforms := make([]string, 0, len(handles))
	for p := range handles {
		platforms = append(platforms, string(p))
	}
	sort.Strings(platforms)

	for _, p := range platforms {
		fmt.Fprintf(c.App.Writer, "%s: %s\n", p, handles[bindings.Platform(p)])
	}
	return nil
}

func withdraw(c *cli.Context) error {
	if err := checkArgs(c, 2); err != nil {
		return err
	}

	to, err := config.ParseAccount(c.Args().Get(0))
	if err != nil {
		return err
	}

	amount, err := parseGAS(c.Args().Get(1))
	if err != nil {
		return err
	}

	x, err := newRemoteBlockchain(c, true, true)
	if err != nil {
		return err
	}
	defer x.close()

	_, err = x.wait(x.contract().Withdraw(to, amount))
	return err
}
