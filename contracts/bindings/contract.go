package bindings

import (
	"github.com/nspcc-dev/bindings-contract/common"
	"github.com/nspcc-dev/bindings-contract/contracts/bindings/bindingsconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/lib/address"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// BindingProposal is an unconfirmed claim of the account to own the handle
// on the external platform. CreatedAt is a block timestamp in milliseconds
// assigned by the contract.
type BindingProposal struct {
	Account   interop.Hash160
	Platform  string
	Handle    string
	CreatedAt int
}

// Prefixes used for contract data storage.
const (
	// ownerKey contains the owner account.
	ownerKey = "o"
	// managerPrefix contains the set of managers (map from the manager to 1).
	managerPrefix byte = 'm'
	// proposalPrefix contains map from (account + platform code) to
	// serialized BindingProposal.
	proposalPrefix byte = 'p'
	// bindingPrefix contains map from (account + platform code) to handle.
	bindingPrefix byte = 'b'
	// reversePrefix contains map from (platform code + handle) to account.
	reversePrefix byte = 'r'
	// lastProposalPrefix contains map from (account + platform code) to the
	// last creation time ever assigned to a proposal under that key.
	lastProposalPrefix byte = 't'
	// accountPrefix contains the set of accounts with at least one binding
	// (map from the account to 1).
	accountPrefix byte = 'a'
	// accountsNumberKey contains the number of accounts in the set.
	accountsNumberKey = "n"
)

// _deploy sets the initial owner if it is provided in data.
// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	if data == nil {
		runtime.Log("bindings contract deployed without owner")
		return
	}

	args := data.(struct {
		owner interop.Hash160
	})

	initOwner(storage.GetContext(), args.owner)
	runtime.Log("bindings contract initialized")
}

// Init sets the owner of the contract deployed without one. It can be called
// only once, any further call fails. The transaction must be signed by the
// new owner, so nobody can take ownership over an owner-less deployment on
// behalf of another account.
func Init(owner interop.Hash160) {
	initOwner(storage.GetContext(), owner)
	common.CheckWitness(owner)
	runtime.Log("bindings contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	common.CheckOwnerWitness(getOwner(ctx))

	common.UpdateContract(script, manifest, data)
	runtime.Log("bindings contract updated")
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// SetOwner transfers contract ownership. It can be invoked only by the
// current owner.
func SetOwner(newOwner interop.Hash160) {
	ctx := storage.GetContext()
	owner := getOwner(ctx)

	common.CheckOwnerWitness(owner)
	common.CheckAccount(newOwner)

	storage.Put(ctx, ownerKey, newOwner)
	runtime.Notify("ChangeOwner", owner, newOwner)
}

// GetOwnerID returns the current owner of the contract.
func GetOwnerID() interop.Hash160 {
	return getOwner(storage.GetReadOnlyContext())
}

// AddManager adds the account to the set of managers allowed to accept
// binding proposals. It can be invoked only by the owner. Adding an existing
// manager does nothing.
func AddManager(manager interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(getOwner(ctx))
	common.CheckAccount(manager)

	key := append([]byte{managerPrefix}, manager...)
	if storage.Get(ctx, key) != nil {
		return
	}

	storage.Put(ctx, key, []byte{1})
	runtime.Notify("AddManager", manager)
}

// RemoveManager removes the account from the set of managers. It can be
// invoked only by the owner. Returns false if the account was not a manager.
func RemoveManager(manager interop.Hash160) bool {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(getOwner(ctx))
	common.CheckAccount(manager)

	key := append([]byte{managerPrefix}, manager...)
	if storage.Get(ctx, key) == nil {
		return false
	}

	storage.Delete(ctx, key)
	runtime.Notify("RemoveManager", manager)
	return true
}

// IsManager checks whether the account is in the set of managers.
func IsManager(account interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, append([]byte{managerPrefix}, account...)) != nil
}

// Managers returns iterator over the set of managers.
func Managers() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{managerPrefix}, storage.KeysOnly|storage.RemovePrefix)
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract. It
// creates or replaces the binding proposal of the sender. Data must be an
// array of two strings: platform name and the handle on that platform. The
// transferred amount must be at least bindingsconst.ProposalFee, the fee is
// kept by the contract.
//
// Creation time of a replaced or cancelled proposal is never assigned again
// under the same account and platform, so it is unusable for acceptance.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		panic(bindingsconst.OnlyGASError)
	}

	if amount < bindingsconst.ProposalFee {
		panic(bindingsconst.InsufficientFeeError)
	}

	common.CheckAccount(from)

	if data == nil {
		panic(bindingsconst.InvalidProposalDataError)
	}

	args := data.([]any)
	if len(args) != 2 {
		panic(bindingsconst.InvalidProposalDataError)
	}

	proposeBinding(storage.GetContext(), from, args[0].(string), args[1].(string))
}

// CancelBindingProposal removes the proposal of the account on the platform.
// It can be invoked only by the account itself.
func CancelBindingProposal(account interop.Hash160, platform string) {
	common.CheckAccount(account)
	common.CheckWitness(account)

	ctx := storage.GetContext()
	code := platformCode(platform)
	p := getProposal(ctx, account, platform, code)

	storage.Delete(ctx, accountKey(proposalPrefix, account, code))
	runtime.Notify("CancelBindingProposal", account, p.Platform, p.Handle, p.CreatedAt)
}

// AcceptBinding confirms the binding proposed by the account on the platform.
// It can be invoked only with a witness of any manager. The verification
// timestamp must exactly match creation time of the current proposal, so the
// result of the off-chain verification of a cancelled or replaced proposal
// can not be used to accept another one.
func AcceptBinding(account interop.Hash160, platform string, verificationTimestamp int) {
	ctx := storage.GetContext()
	checkManagerWitness(ctx)
	common.CheckAccount(account)

	code := platformCode(platform)
	p := getProposal(ctx, account, platform, code)

	if verificationTimestamp > runtime.GetTime() {
		panic(bindingsconst.InvalidProposalCreationTimeError)
	}

	if p.CreatedAt != verificationTimestamp {
		panic(bindingsconst.WrongProposalError)
	}

	rKey := handleKey(code, p.Handle)
	holder := storage.Get(ctx, rKey)
	if holder != nil && !holder.(interop.Hash160).Equals(account) {
		panic(bindingsconst.HandleAlreadyBoundErrorPrefix + p.Handle + " on " + platform +
			bindingsconst.AlreadyBoundErrorInfix + "account " + address.FromHash160(holder.(interop.Hash160)))
	}

	storage.Delete(ctx, accountKey(proposalPrefix, account, code))
	storage.Put(ctx, accountKey(bindingPrefix, account, code), p.Handle)
	storage.Put(ctx, rKey, account)

	aKey := append([]byte{accountPrefix}, account...)
	if storage.Get(ctx, aKey) == nil {
		storage.Put(ctx, aKey, []byte{1})
		storage.Put(ctx, accountsNumberKey, getAccountsNumber(ctx)+1)
	}

	runtime.Notify("BindAccount", account, platform, p.Handle)
}

// GetProposal returns the current proposal of the account on the platform.
func GetProposal(account interop.Hash160, platform string) BindingProposal {
	common.CheckAccount(account)

	ctx := storage.GetReadOnlyContext()
	return getProposal(ctx, account, platform, platformCode(platform))
}

// GetHandle returns the handle bound to the account on the platform or an
// empty string.
func GetHandle(account interop.Hash160, platform string) string {
	common.CheckAccount(account)

	ctx := storage.GetReadOnlyContext()

	handle := storage.Get(ctx, accountKey(bindingPrefix, account, platformCode(platform)))
	if handle == nil {
		return ""
	}

	return handle.(string)
}

// LookupAccount returns the account bound to the handle on the platform or
// nothing.
func LookupAccount(platform string, handle string) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()

	account := storage.Get(ctx, handleKey(platformCode(platform), handle))
	if account == nil {
		return nil
	}

	return account.(interop.Hash160)
}

// GetAccount returns all handles bound to the account as a map from platform
// name to the handle.
func GetAccount(account interop.Hash160) map[string]string {
	common.CheckAccount(account)

	ctx := storage.GetReadOnlyContext()
	res := map[string]string{}

	it := storage.Find(ctx, append([]byte{bindingPrefix}, account...), storage.RemovePrefix)
	for iterator.Next(it) {
		kv := iterator.Value(it).(struct {
			key   []byte
			value []byte
		})
		res[platformName(kv.key[0])] = string(kv.value)
	}

	return res
}

// Accounts returns iterator over accounts having at least one confirmed
// binding.
func Accounts() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{accountPrefix}, storage.KeysOnly|storage.RemovePrefix)
}

// NumberOfAccounts returns the number of accounts having at least one
// confirmed binding.
func NumberOfAccounts() int {
	return getAccountsNumber(storage.GetReadOnlyContext())
}

// Withdraw transfers collected proposal fees to the specified account. It can
// be invoked only by the owner.
func Withdraw(to interop.Hash160, amount int) {
	ctx := storage.GetReadOnlyContext()
	common.CheckOwnerWitness(getOwner(ctx))
	common.CheckAccount(to)

	if amount <= 0 {
		panic(bindingsconst.InvalidAmountError)
	}

	common.TransferGAS(to, amount, nil)

	runtime.Log("proposal fees withdrawn")
}

func proposeBinding(ctx storage.Context, account interop.Hash160, platform string, handle string) {
	code := platformCode(platform)

	if len(handle) == 0 || len(handle) > bindingsconst.MaxHandleLength {
		panic(bindingsconst.InvalidHandleError)
	}

	bound := storage.Get(ctx, accountKey(bindingPrefix, account, code))
	if bound != nil {
		panic(bindingsconst.AlreadyBoundErrorPrefix + address.FromHash160(account) +
			bindingsconst.AlreadyBoundErrorInfix + "handle " + bound.(string) + " on " + platform)
	}

	createdAt := runtime.GetTime()

	// creation time is never reused for the key, even after cancellation
	// within the same block
	tKey := accountKey(lastProposalPrefix, account, code)
	last := storage.Get(ctx, tKey)
	if last != nil && last.(int) >= createdAt {
		createdAt = last.(int) + 1
	}
	storage.Put(ctx, tKey, createdAt)

	common.SetSerialized(ctx, accountKey(proposalPrefix, account, code), BindingProposal{
		Account:   account,
		Platform:  platform,
		Handle:    handle,
		CreatedAt: createdAt,
	})

	runtime.Notify("ProposeBinding", account, platform, handle, createdAt)
}

func getProposal(ctx storage.Context, account interop.Hash160, platform string, code byte) BindingProposal {
	data := storage.Get(ctx, accountKey(proposalPrefix, account, code))
	if data == nil {
		if !common.HasPrefix(ctx, append([]byte{proposalPrefix}, account...)) {
			panic(bindingsconst.NoProposalsError)
		}
		panic(bindingsconst.NoProposalsForPlatformError + platform)
	}

	return std.Deserialize(data.([]byte)).(BindingProposal)
}

func getAccountsNumber(ctx storage.Context) int {
	n := storage.Get(ctx, accountsNumberKey)
	if n == nil {
		return 0
	}

	return n.(int)
}

func initOwner(ctx storage.Context, owner interop.Hash160) {
	if storage.Get(ctx, ownerKey) != nil {
		panic(bindingsconst.AlreadyInitializedError)
	}

	common.CheckAccount(owner)
	storage.Put(ctx, ownerKey, owner)
}

func getOwner(ctx storage.Context) interop.Hash160 {
	owner := storage.Get(ctx, ownerKey)
	if owner == nil {
		panic(bindingsconst.NotInitializedError)
	}

	return owner.(interop.Hash160)
}

// checkManagerWitness panics if none of the managers witnessed the transaction.
func checkManagerWitness(ctx storage.Context) {
	it := storage.Find(ctx, []byte{managerPrefix}, storage.KeysOnly|storage.RemovePrefix)
	for iterator.Next(it) {
		manager := iterator.Value(it).(interop.Hash160)
		if runtime.CheckWitness(manager) {
			return
		}
	}

	panic(bindingsconst.NotManagerError)
}

func accountKey(prefix byte, account interop.Hash160, code byte) []byte {
	key := append([]byte{prefix}, account...)
	return append(key, code)
}

func handleKey(code byte, handle string) []byte {
	return append([]byte{reversePrefix, code}, []byte(handle)...)
}

// platformCode returns storage code of the platform. Codes must never be
// reassigned.
func platformCode(platform string) byte {
	switch platform {
	case bindingsconst.Twitter:
		return 0
	case bindingsconst.Facebook:
		return 1
	case bindingsconst.Reddit:
		return 2
	case bindingsconst.GitHub:
		return 3
	case bindingsconst.Telegram:
		return 4
	case bindingsconst.Discord:
		return 5
	case bindingsconst.Instagram:
		return 6
	case bindingsconst.Ethereum:
		return 7
	case bindingsconst.Hive:
		return 8
	case bindingsconst.Steem:
		return 9
	}

	panic(bindingsconst.UnknownPlatformError)
}

func platformName(code byte) string {
	switch code {
	case 0:
		return bindingsconst.Twitter
	case 1:
		return bindingsconst.Facebook
	case 2:
		return bindingsconst.Reddit
	case 3:
		return bindingsconst.GitHub
	case 4:
		return bindingsconst.Telegram
	case 5:
		return bindingsconst.Discord
	case 6:
		return bindingsconst.Instagram
	case 7:
		return bindingsconst.Ethereum
	case 8:
		return bindingsconst.Hive
	case 9:
		return bindingsconst.Steem
	}

	panic(bindingsconst.UnknownPlatformError)
}
