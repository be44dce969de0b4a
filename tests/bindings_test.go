package tests

import (
	"encoding/json"
	"path"
	"testing"

	"github.com/nspcc-dev/bindings-contract/common"
	"github.com/nspcc-dev/bindings-contract/contracts/bindings/bindingsconst"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/callflag"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/emit"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const bindingsPath = "../contracts/bindings"

const (
	twitter = bindingsconst.Twitter
	discord = bindingsconst.Discord
)

func deployBindingsContract(t *testing.T, e *neotest.Executor, data any) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, bindingsPath, path.Join(bindingsPath, "config.yml"))
	e.DeployContract(t, c, data)
	return c.Hash
}

// newBindingsInvoker deploys the contract owned by the committee and
// registers a single manager.
func newBindingsInvoker(t *testing.T) (*neotest.ContractInvoker, neotest.Signer) {
	e := newExecutor(t)
	h := deployBindingsContract(t, e, []any{e.CommitteeHash})

	c := e.CommitteeInvoker(h)
	manager := c.NewAccount(t)
	c.Invoke(t, stackitem.Null{}, "addManager", manager.ScriptHash())

	return c, manager
}

// propose transfers the proposal fee with binding data from acc and returns
// creation time of the proposal.
func propose(t *testing.T, c *neotest.ContractInvoker, acc neotest.Signer, platform, handle string) int64 {
	gasInv := c.NewInvoker(c.NativeHash(t, nativenames.Gas), acc)
	h := gasInv.Invoke(t, true, "transfer",
		acc.ScriptHash(), c.Hash, int64(bindingsconst.ProposalFee), []any{platform, handle})

	handleGot, createdAt := getProposal(t, c, acc.ScriptHash(), platform)
	require.Equal(t, handle, handleGot)
	require.EqualValues(t, c.TopBlock(t).Timestamp, createdAt)

	// GAS Transfer goes first
	c.CheckTxNotificationEvent(t, h, -1,
		bindingsEvent(c.Hash, "ProposeBinding", acc.ScriptHash(), platform, handle, createdAt))

	return createdAt
}

func bindingsEvent(contract util.Uint160, name string, args ...any) state.NotificationEvent {
	items := make([]stackitem.Item, len(args))
	for i := range args {
		items[i] = stackitem.Make(args[i])
	}

	return state.NotificationEvent{
		ScriptHash: contract,
		Name:       name,
		Item:       stackitem.NewArray(items),
	}
}

func checkEvent(t *testing.T, actual state.NotificationEvent, contract util.Uint160, name string, args ...any) {
	require.Equal(t, bindingsEvent(contract, name, args...), actual)
}

func proposeFail(t *testing.T, c *neotest.ContractInvoker, acc neotest.Signer, amount int64, msg string, data any) {
	gasInv := c.NewInvoker(c.NativeHash(t, nativenames.Gas), acc)
	gasInv.InvokeFail(t, msg, "transfer", acc.ScriptHash(), c.Hash, amount, data)
}

func getProposal(t *testing.T, c *neotest.ContractInvoker, acc util.Uint160, platform string) (string, int64) {
	s, err := c.TestInvoke(t, "getProposal", acc, platform)
	require.NoError(t, err)

	fields := s.Pop().Array()
	require.Len(t, fields, 4)

	rawAcc, err := fields[0].TryBytes()
	require.NoError(t, err)
	require.Equal(t, acc.BytesBE(), rawAcc)

	rawPlatform, err := fields[1].TryBytes()
	require.NoError(t, err)
	require.Equal(t, platform, string(rawPlatform))

	handle, err := fields[2].TryBytes()
	require.NoError(t, err)

	createdAt, err := fields[3].TryInteger()
	require.NoError(t, err)

	return string(handle), createdAt.Int64()
}

func getHandle(t *testing.T, c *neotest.ContractInvoker, acc util.Uint160, platform string) string {
	s, err := c.TestInvoke(t, "getHandle", acc, platform)
	require.NoError(t, err)

	handle, err := s.Pop().Item().TryBytes()
	require.NoError(t, err)

	return string(handle)
}

func checkLookup(t *testing.T, c *neotest.ContractInvoker, platform, handle string, expected util.Uint160) {
	s, err := c.TestInvoke(t, "lookupAccount", platform, handle)
	require.NoError(t, err)

	rawAcc, err := s.Pop().Item().TryBytes()
	require.NoError(t, err)
	require.Equal(t, expected.BytesBE(), rawAcc)
}

func alreadyBoundMsg(acc util.Uint160, handle, platform string) string {
	return bindingsconst.AlreadyBoundErrorPrefix + address.Uint160ToString(acc) +
		bindingsconst.AlreadyBoundErrorInfix + "handle " + handle + " on " + platform
}

func handleAlreadyBoundMsg(acc util.Uint160, handle, platform string) string {
	return bindingsconst.HandleAlreadyBoundErrorPrefix + handle + " on " + platform +
		bindingsconst.AlreadyBoundErrorInfix + "account " + address.Uint160ToString(acc)
}

func TestBindings_Init(t *testing.T) {
	t.Run("on deploy", func(t *testing.T) {
		e := newExecutor(t)
		h := deployBindingsContract(t, e, []any{e.CommitteeHash})
		c := e.CommitteeInvoker(h)

		c.Invoke(t, stackitem.NewByteArray(e.CommitteeHash.BytesBE()), "getOwnerID")
		c.InvokeFail(t, bindingsconst.AlreadyInitializedError, "init", c.NewAccount(t).ScriptHash())
	})

	t.Run("by init method", func(t *testing.T) {
		e := newExecutor(t)
		h := deployBindingsContract(t, e, nil)
		c := e.CommitteeInvoker(h)

		c.InvokeFail(t, bindingsconst.NotInitializedError, "getOwnerID")
		c.InvokeFail(t, bindingsconst.NotInitializedError, "addManager", c.NewAccount(t).ScriptHash())
		c.InvokeFail(t, bindingsconst.InvalidAccountError, "init", []byte{1, 2, 3})

		owner := c.NewAccount(t)
		// ownership can not be assigned without the witness of the new owner
		c.InvokeFail(t, bindingsconst.WitnessError, "init", owner.ScriptHash())
		c.InvokeFail(t, bindingsconst.NotInitializedError, "getOwnerID")

		c.WithSigners(owner).Invoke(t, stackitem.Null{}, "init", owner.ScriptHash())
		c.Invoke(t, stackitem.NewByteArray(owner.ScriptHash().BytesBE()), "getOwnerID")

		c.InvokeFail(t, bindingsconst.AlreadyInitializedError, "init", c.CommitteeHash)
	})
}

func TestBindings_Owner(t *testing.T) {
	c, _ := newBindingsInvoker(t)

	alice := c.NewAccount(t)
	bob := c.NewAccount(t)

	c.WithSigners(alice).InvokeFail(t, bindingsconst.NotOwnerError, "setOwner", alice.ScriptHash())

	h := c.Invoke(t, stackitem.Null{}, "setOwner", alice.ScriptHash())
	c.CheckTxNotificationEvent(t, h, 0,
		bindingsEvent(c.Hash, "ChangeOwner", c.CommitteeHash, alice.ScriptHash()))
	c.Invoke(t, stackitem.NewByteArray(alice.ScriptHash().BytesBE()), "getOwnerID")

	// previous owner has no rights anymore
	c.InvokeFail(t, bindingsconst.NotOwnerError, "setOwner", c.CommitteeHash)
	c.InvokeFail(t, bindingsconst.NotOwnerError, "addManager", bob.ScriptHash())

	cAlice := c.WithSigners(alice)
	cAlice.Invoke(t, stackitem.Null{}, "addManager", bob.ScriptHash())
	c.Invoke(t, true, "isManager", bob.ScriptHash())
}

func TestBindings_Managers(t *testing.T) {
	c, manager := newBindingsInvoker(t)

	acc := c.NewAccount(t)
	c.Invoke(t, true, "isManager", manager.ScriptHash())
	c.Invoke(t, false, "isManager", acc.ScriptHash())

	c.WithSigners(acc).InvokeFail(t, bindingsconst.NotOwnerError, "addManager", acc.ScriptHash())
	c.WithSigners(manager).InvokeFail(t, bindingsconst.NotOwnerError, "removeManager", manager.ScriptHash())
	c.InvokeFail(t, bindingsconst.InvalidAccountError, "addManager", []byte{1, 2, 3})

	t.Run("idempotent", func(t *testing.T) {
		h := c.InvokeScript(t, addManagerScript(t, c.Hash, manager.ScriptHash()), c.Signers)
		aer := c.CheckHalt(t, h)
		require.Empty(t, aer.Events)

		c.Invoke(t, false, "removeManager", acc.ScriptHash())
	})

	h := c.Invoke(t, stackitem.Null{}, "addManager", acc.ScriptHash())
	c.CheckTxNotificationEvent(t, h, 0, bindingsEvent(c.Hash, "AddManager", acc.ScriptHash()))

	s, err := c.TestInvoke(t, "managers")
	require.NoError(t, err)
	iter := s.Pop().Value().(*storage.Iterator)
	managers := iteratorToArray(iter)
	require.Len(t, managers, 2)

	var listed []util.Uint160
	for i := range managers {
		b, err := managers[i].TryBytes()
		require.NoError(t, err)
		u, err := util.Uint160DecodeBytesBE(b)
		require.NoError(t, err)
		listed = append(listed, u)
	}
	require.ElementsMatch(t, []util.Uint160{manager.ScriptHash(), acc.ScriptHash()}, listed)

	h = c.Invoke(t, true, "removeManager", acc.ScriptHash())
	c.CheckTxNotificationEvent(t, h, 0, bindingsEvent(c.Hash, "RemoveManager", acc.ScriptHash()))
	c.Invoke(t, false, "isManager", acc.ScriptHash())
}

func addManagerScript(t *testing.T, h util.Uint160, manager util.Uint160) []byte {
	w := io.NewBufBinWriter()
	emit.AppCall(w.BinWriter, h, "addManager", callflag.All, manager)
	require.NoError(t, w.Err)
	return w.Bytes()
}

func TestBindings_DefaultHandle(t *testing.T) {
	c, _ := newBindingsInvoker(t)
	acc := c.NewAccount(t)

	require.Empty(t, getHandle(t, c, acc.ScriptHash(), twitter))
	c.Invoke(t, stackitem.Null{}, "lookupAccount", twitter, "alice001")
	c.InvokeFail(t, bindingsconst.UnknownPlatformError, "getHandle", acc.ScriptHash(), "myspace")
}

func TestBindings_ProposeAndAccept(t *testing.T) {
	c, manager := newBindingsInvoker(t)
	cManager := c.WithSigners(manager)

	alice := c.NewAccount(t)
	const handle = "alice001"

	createdAt := propose(t, c, alice, twitter, handle)

	h := cManager.Invoke(t, stackitem.Null{}, "acceptBinding", alice.ScriptHash(), twitter, createdAt)
	c.CheckTxNotificationEvent(t, h, 0, bindingsEvent(c.Hash, "BindAccount", alice.ScriptHash(), twitter, handle))

	require.Equal(t, handle, getHandle(t, c, alice.ScriptHash(), twitter))
	checkLookup(t, c, twitter, handle, alice.ScriptHash())

	// proposal is consumed by acceptance
	c.InvokeFail(t, bindingsconst.NoProposalsError, "getProposal", alice.ScriptHash(), twitter)

	t.Run("bound account can not propose again", func(t *testing.T) {
		proposeFail(t, c, alice, bindingsconst.ProposalFee,
			alreadyBoundMsg(alice.ScriptHash(), handle, twitter), []any{twitter, "alice002"})
	})

	t.Run("other platforms are independent", func(t *testing.T) {
		propose(t, c, alice, discord, "alice#0123")
	})
}

func TestBindings_AcceptAccess(t *testing.T) {
	c, manager := newBindingsInvoker(t)

	alice := c.NewAccount(t)
	createdAt := propose(t, c, alice, twitter, "alice001")

	c.WithSigners(alice).InvokeFail(t, bindingsconst.NotManagerError,
		"acceptBinding", alice.ScriptHash(), twitter, createdAt)
	// the owner is not a manager
	c.InvokeFail(t, bindingsconst.NotManagerError,
		"acceptBinding", alice.ScriptHash(), twitter, createdAt)

	c.Invoke(t, true, "removeManager", manager.ScriptHash())
	c.WithSigners(manager).InvokeFail(t, bindingsconst.NotManagerError,
		"acceptBinding", alice.ScriptHash(), twitter, createdAt)

	require.Empty(t, getHandle(t, c, alice.ScriptHash(), twitter))
}

func TestBindings_Uniqueness(t *testing.T) {
	c, manager := newBindingsInvoker(t)
	cManager := c.WithSigners(manager)

	alice := c.NewAccount(t)
	bob := c.NewAccount(t)
	const handle = "h1"

	aliceCreatedAt := propose(t, c, alice, twitter, handle)
	bobCreatedAt := propose(t, c, bob, twitter, handle)

	cManager.Invoke(t, stackitem.Null{}, "acceptBinding", alice.ScriptHash(), twitter, aliceCreatedAt)

	cManager.InvokeFail(t, handleAlreadyBoundMsg(alice.ScriptHash(), handle, twitter),
		"acceptBinding", bob.ScriptHash(), twitter, bobCreatedAt)

	checkLookup(t, c, twitter, handle, alice.ScriptHash())
	require.Empty(t, getHandle(t, c, bob.ScriptHash(), twitter))

	// failed acceptance keeps the proposal
	h, createdAt := getProposal(t, c, bob.ScriptHash(), twitter)
	require.Equal(t, handle, h)
	require.Equal(t, bobCreatedAt, createdAt)

	t.Run("same handle on another platform", func(t *testing.T) {
		createdAt := propose(t, c, bob, discord, handle)
		cManager.Invoke(t, stackitem.Null{}, "acceptBinding", bob.ScriptHash(), discord, createdAt)
		checkLookup(t, c, discord, handle, bob.ScriptHash())
	})
}

func TestBindings_Cancel(t *testing.T) {
	c, manager := newBindingsInvoker(t)

	alice := c.NewAccount(t)
	cAlice := c.WithSigners(alice)

	cAlice.InvokeFail(t, bindingsconst.NoProposalsError, "cancelBindingProposal", alice.ScriptHash(), twitter)

	createdAt := propose(t, c, alice, twitter, "h1")

	cAlice.InvokeFail(t, bindingsconst.NoProposalsForPlatformError+discord,
		"cancelBindingProposal", alice.ScriptHash(), discord)
	c.WithSigners(manager).InvokeFail(t, bindingsconst.WitnessError,
		"cancelBindingProposal", alice.ScriptHash(), twitter)

	h := cAlice.Invoke(t, stackitem.Null{}, "cancelBindingProposal", alice.ScriptHash(), twitter)
	c.CheckTxNotificationEvent(t, h, 0,
		bindingsEvent(c.Hash, "CancelBindingProposal", alice.ScriptHash(), twitter, "h1", createdAt))

	c.InvokeFail(t, bindingsconst.NoProposalsError, "getProposal", alice.ScriptHash(), twitter)
	c.WithSigners(manager).InvokeFail(t, bindingsconst.NoProposalsError,
		"acceptBinding", alice.ScriptHash(), twitter, createdAt)

	t.Run("no proposals for platform", func(t *testing.T) {
		propose(t, c, alice, discord, "alice#0123")
		c.InvokeFail(t, bindingsconst.NoProposalsForPlatformError+twitter,
			"getProposal", alice.ScriptHash(), twitter)
		c.WithSigners(manager).InvokeFail(t, bindingsconst.NoProposalsForPlatformError+twitter,
			"acceptBinding", alice.ScriptHash(), twitter, createdAt)
	})
}

func TestBindings_ReplaceProposal(t *testing.T) {
	c, manager := newBindingsInvoker(t)
	cManager := c.WithSigners(manager)

	alice := c.NewAccount(t)

	first := propose(t, c, alice, twitter, "h1")
	second := propose(t, c, alice, twitter, "h2")
	require.Greater(t, second, first)

	h, _ := getProposal(t, c, alice.ScriptHash(), twitter)
	require.Equal(t, "h2", h)

	cManager.InvokeFail(t, bindingsconst.WrongProposalError,
		"acceptBinding", alice.ScriptHash(), twitter, first)

	cManager.Invoke(t, stackitem.Null{}, "acceptBinding", alice.ScriptHash(), twitter, second)
	require.Equal(t, "h2", getHandle(t, c, alice.ScriptHash(), twitter))
	c.Invoke(t, stackitem.Null{}, "lookupAccount", twitter, "h1")

	t.Run("cancelled and re-proposed", func(t *testing.T) {
		bob := c.NewAccount(t)
		old := propose(t, c, bob, discord, "bob")
		c.WithSigners(bob).Invoke(t, stackitem.Null{}, "cancelBindingProposal", bob.ScriptHash(), discord)
		propose(t, c, bob, discord, "bob")

		cManager.InvokeFail(t, bindingsconst.WrongProposalError,
			"acceptBinding", bob.ScriptHash(), discord, old)
	})

	t.Run("cancelled and re-proposed within a block", func(t *testing.T) {
		carol := c.NewAccount(t)
		gasHash := c.NativeHash(t, nativenames.Gas)

		w := io.NewBufBinWriter()
		emit.AppCall(w.BinWriter, gasHash, "transfer", callflag.All,
			carol.ScriptHash(), c.Hash, int64(bindingsconst.ProposalFee), []any{twitter, "verified_handle"})
		emit.AppCall(w.BinWriter, c.Hash, "cancelBindingProposal", callflag.All, carol.ScriptHash(), twitter)
		emit.AppCall(w.BinWriter, gasHash, "transfer", callflag.All,
			carol.ScriptHash(), c.Hash, int64(bindingsconst.ProposalFee), []any{twitter, "other_handle"})
		require.NoError(t, w.Err)

		h := c.InvokeScript(t, w.Bytes(), []neotest.Signer{carol})
		aer := c.CheckHalt(t, h)

		blockTime := int64(c.TopBlock(t).Timestamp)

		require.Len(t, aer.Events, 5)
		checkEvent(t, aer.Events[1], c.Hash, "ProposeBinding", carol.ScriptHash(), twitter, "verified_handle", blockTime)
		checkEvent(t, aer.Events[2], c.Hash, "CancelBindingProposal", carol.ScriptHash(), twitter, "verified_handle", blockTime)
		checkEvent(t, aer.Events[4], c.Hash, "ProposeBinding", carol.ScriptHash(), twitter, "other_handle", blockTime+1)

		// verification of the cancelled proposal does not match the new one
		cManager.InvokeFail(t, bindingsconst.WrongProposalError,
			"acceptBinding", carol.ScriptHash(), twitter, blockTime)
		require.Empty(t, getHandle(t, c, carol.ScriptHash(), twitter))

		handle, createdAt := getProposal(t, c, carol.ScriptHash(), twitter)
		require.Equal(t, "other_handle", handle)
		require.Equal(t, blockTime+1, createdAt)
	})
}

func TestBindings_VerificationTime(t *testing.T) {
	c, manager := newBindingsInvoker(t)
	cManager := c.WithSigners(manager)

	alice := c.NewAccount(t)
	createdAt := propose(t, c, alice, twitter, "alice001")

	cManager.InvokeFail(t, bindingsconst.WrongProposalError,
		"acceptBinding", alice.ScriptHash(), twitter, createdAt-10_000)
	cManager.InvokeFail(t, bindingsconst.InvalidProposalCreationTimeError,
		"acceptBinding", alice.ScriptHash(), twitter, createdAt+10_000)

	t.Run("replacement within a block", func(t *testing.T) {
		bob := c.NewAccount(t)
		gasHash := c.NativeHash(t, nativenames.Gas)

		w := io.NewBufBinWriter()
		emit.AppCall(w.BinWriter, gasHash, "transfer", callflag.All,
			bob.ScriptHash(), c.Hash, int64(bindingsconst.ProposalFee), []any{twitter, "b1"})
		emit.AppCall(w.BinWriter, gasHash, "transfer", callflag.All,
			bob.ScriptHash(), c.Hash, int64(bindingsconst.ProposalFee), []any{twitter, "b2"})
		require.NoError(t, w.Err)
		proposals := w.Bytes()

		// the second proposal gets creation time ahead of the block time, so
		// it can not be accepted within the same block even with exact match
		next := int64(c.TopBlock(t).Timestamp) + 1
		emit.AppCall(w.BinWriter, c.Hash, "acceptBinding", callflag.All, bob.ScriptHash(), twitter, next+1)
		require.NoError(t, w.Err)

		h := c.InvokeScript(t, w.Bytes(), []neotest.Signer{bob, manager})
		c.CheckFault(t, h, bindingsconst.InvalidProposalCreationTimeError)
		c.InvokeFail(t, bindingsconst.NoProposalsError, "getProposal", bob.ScriptHash(), twitter)

		h = c.InvokeScript(t, proposals, []neotest.Signer{bob})
		c.CheckHalt(t, h)

		blockTime := int64(c.TopBlock(t).Timestamp)
		handle, createdAt := getProposal(t, c, bob.ScriptHash(), twitter)
		require.Equal(t, "b2", handle)
		require.Equal(t, blockTime+1, createdAt)

		cManager.InvokeFail(t, bindingsconst.WrongProposalError,
			"acceptBinding", bob.ScriptHash(), twitter, blockTime)
		cManager.Invoke(t, stackitem.Null{}, "acceptBinding", bob.ScriptHash(), twitter, createdAt)
		require.Equal(t, "b2", getHandle(t, c, bob.ScriptHash(), twitter))
	})
}

func TestBindings_ProposalPayment(t *testing.T) {
	c, _ := newBindingsInvoker(t)
	alice := c.NewAccount(t)

	proposeFail(t, c, alice, bindingsconst.ProposalFee-1, bindingsconst.InsufficientFeeError, []any{twitter, "h1"})
	c.InvokeFail(t, bindingsconst.NoProposalsError, "getProposal", alice.ScriptHash(), twitter)

	proposeFail(t, c, alice, bindingsconst.ProposalFee, bindingsconst.InvalidProposalDataError, nil)
	proposeFail(t, c, alice, bindingsconst.ProposalFee, bindingsconst.InvalidProposalDataError, []any{twitter})
	proposeFail(t, c, alice, bindingsconst.ProposalFee, bindingsconst.UnknownPlatformError, []any{"myspace", "h1"})
	proposeFail(t, c, alice, bindingsconst.ProposalFee, bindingsconst.InvalidHandleError, []any{twitter, ""})

	t.Run("only GAS", func(t *testing.T) {
		neoInv := c.CommitteeInvoker(c.NativeHash(t, nativenames.Neo))
		neoInv.InvokeFail(t, bindingsconst.OnlyGASError, "transfer",
			c.CommitteeHash, c.Hash, int64(1), []any{twitter, "h1"})
	})

	// overpayment is accepted
	gasInv := c.NewInvoker(c.NativeHash(t, nativenames.Gas), alice)
	gasInv.Invoke(t, true, "transfer",
		alice.ScriptHash(), c.Hash, int64(2*bindingsconst.ProposalFee), []any{twitter, "h1"})
	gasInv.Invoke(t, 2*bindingsconst.ProposalFee, "balanceOf", c.Hash)
}

func TestBindings_GetAccount(t *testing.T) {
	c, manager := newBindingsInvoker(t)
	cManager := c.WithSigners(manager)

	alice := c.NewAccount(t)
	require.Empty(t, getAccount(t, c, alice.ScriptHash()))

	for _, b := range []struct{ platform, handle string }{
		{twitter, "alice001"},
		{bindingsconst.GitHub, "alice-gh"},
		{bindingsconst.Ethereum, "0xA11CE"},
	} {
		createdAt := propose(t, c, alice, b.platform, b.handle)
		cManager.Invoke(t, stackitem.Null{}, "acceptBinding", alice.ScriptHash(), b.platform, createdAt)
	}
	// not accepted yet
	propose(t, c, alice, discord, "alice#0123")

	require.Equal(t, map[string]string{
		twitter:                "alice001",
		bindingsconst.GitHub:   "alice-gh",
		bindingsconst.Ethereum: "0xA11CE",
	}, getAccount(t, c, alice.ScriptHash()))
}

func getAccount(t *testing.T, c *neotest.ContractInvoker, acc util.Uint160) map[string]string {
	s, err := c.TestInvoke(t, "getAccount", acc)
	require.NoError(t, err)

	m, ok := s.Pop().Item().(*stackitem.Map)
	require.True(t, ok)

	res := make(map[string]string)
	for _, kv := range m.Value().([]stackitem.MapElement) {
		k, err := kv.Key.TryBytes()
		require.NoError(t, err)
		v, err := kv.Value.TryBytes()
		require.NoError(t, err)
		res[string(k)] = string(v)
	}
	return res
}

func TestBindings_Accounts(t *testing.T) {
	c, manager := newBindingsInvoker(t)
	cManager := c.WithSigners(manager)

	c.Invoke(t, 0, "numberOfAccounts")
	require.Empty(t, listAccounts(t, c))

	alice := c.NewAccount(t)
	bob := c.NewAccount(t)
	carol := c.NewAccount(t)

	for _, b := range []struct {
		acc              neotest.Signer
		platform, handle string
	}{
		{alice, twitter, "alice001"},
		{alice, bindingsconst.GitHub, "alice-gh"},
		{bob, twitter, "bob"},
	} {
		createdAt := propose(t, c, b.acc, b.platform, b.handle)
		cManager.Invoke(t, stackitem.Null{}, "acceptBinding", b.acc.ScriptHash(), b.platform, createdAt)
	}
	// proposals do not make an account listed
	propose(t, c, carol, twitter, "carol")

	c.Invoke(t, 2, "numberOfAccounts")
	require.ElementsMatch(t, []util.Uint160{alice.ScriptHash(), bob.ScriptHash()}, listAccounts(t, c))
}

func listAccounts(t *testing.T, c *neotest.ContractInvoker) []util.Uint160 {
	s, err := c.TestInvoke(t, "accounts")
	require.NoError(t, err)

	items := iteratorToArray(s.Pop().Value().(*storage.Iterator))

	res := make([]util.Uint160, 0, len(items))
	for i := range items {
		b, err := items[i].TryBytes()
		require.NoError(t, err)
		u, err := util.Uint160DecodeBytesBE(b)
		require.NoError(t, err)
		res = append(res, u)
	}
	return res
}

func TestBindings_InvalidAccount(t *testing.T) {
	c, _ := newBindingsInvoker(t)
	alice := c.NewAccount(t)

	propose(t, c, alice, twitter, "alice001")

	short := alice.ScriptHash().BytesBE()[:util.Uint160Size-1]
	c.InvokeFail(t, bindingsconst.InvalidAccountError, "getProposal", short, discord)
	c.InvokeFail(t, bindingsconst.InvalidAccountError, "getHandle", short, twitter)
	c.InvokeFail(t, bindingsconst.InvalidAccountError, "getAccount", short)
}

func TestBindings_Withdraw(t *testing.T) {
	c, _ := newBindingsInvoker(t)
	alice := c.NewAccount(t)
	receiver := c.NewAccount(t, 0)

	propose(t, c, alice, twitter, "h1")
	propose(t, c, alice, discord, "h2")

	gasInv := c.CommitteeInvoker(c.NativeHash(t, nativenames.Gas))
	gasInv.Invoke(t, 2*bindingsconst.ProposalFee, "balanceOf", c.Hash)

	c.WithSigners(alice).InvokeFail(t, bindingsconst.NotOwnerError, "withdraw", alice.ScriptHash(), int64(1))
	c.InvokeFail(t, bindingsconst.InvalidAmountError, "withdraw", receiver.ScriptHash(), int64(0))

	c.Invoke(t, stackitem.Null{}, "withdraw", receiver.ScriptHash(), int64(bindingsconst.ProposalFee))
	gasInv.Invoke(t, bindingsconst.ProposalFee, "balanceOf", c.Hash)
	gasInv.Invoke(t, bindingsconst.ProposalFee, "balanceOf", receiver.ScriptHash())
}

func TestBindings_Update(t *testing.T) {
	c, _ := newBindingsInvoker(t)

	ctr := neotest.CompileFile(t, c.CommitteeHash, bindingsPath, path.Join(bindingsPath, "config.yml"))
	rawNEF, err := ctr.NEF.Bytes()
	require.NoError(t, err)
	rawManifest, err := json.Marshal(ctr.Manifest)
	require.NoError(t, err)

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, bindingsconst.NotOwnerError, "update", rawNEF, rawManifest, nil)
	c.InvokeFail(t, common.ErrAlreadyUpdated, "update", rawNEF, rawManifest, nil)

	c.Invoke(t, common.Version, "version")
}
