// Package bindings contains RPC wrappers for Account Bindings contract.
package bindings

import (
	"errors"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// BindingProposal is a contract-specific bindings.BindingProposal type used by its methods.
type BindingProposal struct {
	Account   util.Uint160
	Platform  string
	Handle    string
	CreatedAt *big.Int
}

// ProposeBindingEvent represents "ProposeBinding" event emitted by the contract.
type ProposeBindingEvent struct {
	Account   util.Uint160
	Platform  string
	Handle    string
	CreatedAt *big.Int
}

// CancelBindingProposalEvent represents "CancelBindingProposal" event emitted by the contract.
type CancelBindingProposalEvent struct {
	Account   util.Uint160
	Platform  string
	Handle    string
	CreatedAt *big.Int
}

// BindAccountEvent represents "BindAccount" event emitted by the contract.
type BindAccountEvent struct {
	Account  util.Uint160
	Platform string
	Handle   string
}

// ChangeOwnerEvent represents "ChangeOwner" event emitted by the contract.
type ChangeOwnerEvent struct {
	OldOwner util.Uint160
	NewOwner util.Uint160
}

// AddManagerEvent represents "AddManager" event emitted by the contract.
type AddManagerEvent struct {
	Manager util.Uint160
}

// RemoveManagerEvent represents "RemoveManager" event emitted by the contract.
type RemoveManagerEvent struct {
	Manager util.Uint160
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
	Sender() util.Uint160
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// GetOwnerID invokes `getOwnerID` method of contract.
func (c *ContractReader) GetOwnerID() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "getOwnerID"))
}

// IsManager invokes `isManager` method of contract.
func (c *ContractReader) IsManager(account util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isManager", account))
}

// Managers invokes `managers` method of contract.
func (c *ContractReader) Managers() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "managers"))
}

// ManagersExpanded is similar to Managers (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) ManagersExpanded(_numOfIteratorItems int) ([]util.Uint160, error) {
	items, err := unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "managers", _numOfIteratorItems))
	if err != nil {
		return nil, err
	}

	return itemsToUint160s(items)
}

// ManagersList reads the whole manager set through the session iterator and
// terminates the session afterwards.
func (c *ContractReader) ManagersList() ([]util.Uint160, error) {
	sess, iter, err := c.Managers()
	if err != nil {
		return nil, err
	}

	return c.traverseUint160s(sess, iter)
}

func (c *ContractReader) traverseUint160s(sess uuid.UUID, iter result.Iterator) ([]util.Uint160, error) {
	defer func() { _ = c.invoker.TerminateSession(sess) }()

	var res []util.Uint160
	for {
		items, err := c.invoker.TraverseIterator(sess, &iter, iteratorBatch)
		if err != nil {
			return nil, fmt.Errorf("traverse iterator: %w", err)
		}
		if len(items) == 0 {
			return res, nil
		}

		hashes, err := itemsToUint160s(items)
		if err != nil {
			return nil, err
		}
		res = append(res, hashes...)
	}
}

const iteratorBatch = 100

// GetProposal invokes `getProposal` method of contract.
func (c *ContractReader) GetProposal(account util.Uint160, platform Platform) (*BindingProposal, error) {
	return itemToBindingProposal(unwrap.Item(c.invoker.Call(c.hash, "getProposal", account, string(platform))))
}

// GetHandle invokes `getHandle` method of contract. Empty string means the
// account has no handle bound on the platform.
func (c *ContractReader) GetHandle(account util.Uint160, platform Platform) (string, error) {
	return unwrap.UTF8String(c.invoker.Call(c.hash, "getHandle", account, string(platform)))
}

// LookupAccount invokes `lookupAccount` method of contract. The second result
// is false if the handle is not bound to any account.
func (c *ContractReader) LookupAccount(platform Platform, handle string) (util.Uint160, bool, error) {
	item, err := unwrap.Item(c.invoker.Call(c.hash, "lookupAccount", string(platform), handle))
	if err != nil {
		return util.Uint160{}, false, err
	}

	if _, ok := item.(stackitem.Null); ok {
		return util.Uint160{}, false, nil
	}

	u, err := itemToUint160(item)
	if err != nil {
		return util.Uint160{}, false, err
	}

	return u, true, nil
}

// GetAccount invokes `getAccount` method of contract.
func (c *ContractReader) GetAccount(account util.Uint160) (map[Platform]string, error) {
	m, err := unwrap.Map(c.invoker.Call(c.hash, "getAccount", account))
	if err != nil {
		return nil, err
	}

	res := make(map[Platform]string, m.Len())
	for _, kv := range m.Value().([]stackitem.MapElement) {
		k, err := itemToString(kv.Key)
		if err != nil {
			return nil, fmt.Errorf("key: %w", err)
		}

		p, err := ParsePlatform(k)
		if err != nil {
			return nil, err
		}

		res[p], err = itemToString(kv.Value)
		if err != nil {
			return nil, fmt.Errorf("handle on %s: %w", k, err)
		}
	}

	return res, nil
}

// Accounts invokes `accounts` method of contract.
func (c *ContractReader) Accounts() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "accounts"))
}

// AccountsExpanded is similar to Accounts (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) AccountsExpanded(_numOfIteratorItems int) ([]util.Uint160, error) {
	items, err := unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "accounts", _numOfIteratorItems))
	if err != nil {
		return nil, err
	}

	return itemsToUint160s(items)
}

// AccountsList reads all accounts having confirmed bindings through the
// session iterator and terminates the session afterwards.
func (c *ContractReader) AccountsList() ([]util.Uint160, error) {
	sess, iter, err := c.Accounts()
	if err != nil {
		return nil, err
	}

	return c.traverseUint160s(sess, iter)
}

// NumberOfAccounts invokes `numberOfAccounts` method of contract.
func (c *ContractReader) NumberOfAccounts() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "numberOfAccounts"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Init creates a transaction invoking `init` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Init(owner util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "init", owner)
}

// InitTransaction creates a transaction invoking `init` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) InitTransaction(owner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "init", owner)
}

// InitUnsigned creates a transaction invoking `init` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) InitUnsigned(owner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "init", nil, owner)
}

// SetOwner creates a transaction invoking `setOwner` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetOwner(newOwner util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setOwner", newOwner)
}

// SetOwnerTransaction creates a transaction invoking `setOwner` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetOwnerTransaction(newOwner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setOwner", newOwner)
}

// SetOwnerUnsigned creates a transaction invoking `setOwner` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetOwnerUnsigned(newOwner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setOwner", nil, newOwner)
}

// AddManager creates a transaction invoking `addManager` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AddManager(manager util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "addManager", manager)
}

// AddManagerTransaction creates a transaction invoking `addManager` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AddManagerTransaction(manager util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "addManager", manager)
}

// AddManagerUnsigned creates a transaction invoking `addManager` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AddManagerUnsigned(manager util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "addManager", nil, manager)
}

// RemoveManager creates a transaction invoking `removeManager` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RemoveManager(manager util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "removeManager", manager)
}

// RemoveManagerTransaction creates a transaction invoking `removeManager` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RemoveManagerTransaction(manager util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "removeManager", manager)
}

// RemoveManagerUnsigned creates a transaction invoking `removeManager` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RemoveManagerUnsigned(manager util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "removeManager", nil, manager)
}

// CancelBindingProposal creates a transaction invoking `cancelBindingProposal` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CancelBindingProposal(account util.Uint160, platform Platform) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "cancelBindingProposal", account, string(platform))
}

// CancelBindingProposalTransaction creates a transaction invoking `cancelBindingProposal` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CancelBindingProposalTransaction(account util.Uint160, platform Platform) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "cancelBindingProposal", account, string(platform))
}

// CancelBindingProposalUnsigned creates a transaction invoking `cancelBindingProposal` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CancelBindingProposalUnsigned(account util.Uint160, platform Platform) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "cancelBindingProposal", nil, account, string(platform))
}

// AcceptBinding creates a transaction invoking `acceptBinding` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AcceptBinding(account util.Uint160, platform Platform, verificationTimestamp *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "acceptBinding", account, string(platform), verificationTimestamp)
}

// AcceptBindingTransaction creates a transaction invoking `acceptBinding` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AcceptBindingTransaction(account util.Uint160, platform Platform, verificationTimestamp *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "acceptBinding", account, string(platform), verificationTimestamp)
}

// AcceptBindingUnsigned creates a transaction invoking `acceptBinding` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AcceptBindingUnsigned(account util.Uint160, platform Platform, verificationTimestamp *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "acceptBinding", nil, account, string(platform), verificationTimestamp)
}

// Withdraw creates a transaction invoking `withdraw` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Withdraw(to util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdraw", to, amount)
}

// WithdrawTransaction creates a transaction invoking `withdraw` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) WithdrawTransaction(to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "withdraw", to, amount)
}

// WithdrawUnsigned creates a transaction invoking `withdraw` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) WithdrawUnsigned(to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "withdraw", nil, to, amount)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// itemToBindingProposal converts stack item into *BindingProposal.
func itemToBindingProposal(item stackitem.Item, err error) (*BindingProposal, error) {
	if err != nil {
		return nil, err
	}
	var res = new(BindingProposal)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of BindingProposal from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *BindingProposal) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.Account, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Account: %w", err)
	}

	index++
	res.Platform, err = itemToString(arr[index])
	if err != nil {
		return fmt.Errorf("field Platform: %w", err)
	}

	index++
	res.Handle, err = itemToString(arr[index])
	if err != nil {
		return fmt.Errorf("field Handle: %w", err)
	}

	index++
	res.CreatedAt, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CreatedAt: %w", err)
	}

	return nil
}

// ProposeBindingEventsFromApplicationLog retrieves a set of all emitted events
// with "ProposeBinding" name from the provided [result.ApplicationLog].
func ProposeBindingEventsFromApplicationLog(log *result.ApplicationLog) ([]*ProposeBindingEvent, error) {
	var res []*ProposeBindingEvent
	err := eventsFromApplicationLog(log, "ProposeBinding", func(item *stackitem.Array) error {
		event := new(ProposeBindingEvent)
		if err := event.FromStackItem(item); err != nil {
			return err
		}
		res = append(res, event)
		return nil
	})
	return res, err
}

// FromStackItem converts provided [stackitem.Array] to ProposeBindingEvent or
// returns an error if it's not possible to do to so.
func (e *ProposeBindingEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 4)
	if err != nil {
		return err
	}

	var index = -1
	index++
	e.Account, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Account: %w", err)
	}

	index++
	e.Platform, err = itemToString(arr[index])
	if err != nil {
		return fmt.Errorf("field Platform: %w", err)
	}

	index++
	e.Handle, err = itemToString(arr[index])
	if err != nil {
		return fmt.Errorf("field Handle: %w", err)
	}

	index++
	e.CreatedAt, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CreatedAt: %w", err)
	}

	return nil
}

// CancelBindingProposalEventsFromApplicationLog retrieves a set of all emitted events
// with "CancelBindingProposal" name from the provided [result.ApplicationLog].
func CancelBindingProposalEventsFromApplicationLog(log *result.ApplicationLog) ([]*CancelBindingProposalEvent, error) {
	var res []*CancelBindingProposalEvent
	err := eventsFromApplicationLog(log, "CancelBindingProposal", func(item *stackitem.Array) error {
		event := new(CancelBindingProposalEvent)
		if err := event.FromStackItem(item); err != nil {
			return err
		}
		res = append(res, event)
		return nil
	})
	return res, err
}

// FromStackItem converts provided [stackitem.Array] to CancelBindingProposalEvent or
// returns an error if it's not possible to do to so.
func (e *CancelBindingProposalEvent) FromStackItem(item *stackitem.Array) error {
	var p ProposeBindingEvent
	if err := p.FromStackItem(item); err != nil {
		return err
	}

	*e = CancelBindingProposalEvent(p)
	return nil
}

// BindAccountEventsFromApplicationLog retrieves a set of all emitted events
// with "BindAccount" name from the provided [result.ApplicationLog].
func BindAccountEventsFromApplicationLog(log *result.ApplicationLog) ([]*BindAccountEvent, error) {
	var res []*BindAccountEvent
	err := eventsFromApplicationLog(log, "BindAccount", func(item *stackitem.Array) error {
		event := new(BindAccountEvent)
		if err := event.FromStackItem(item); err != nil {
			return err
		}
		res = append(res, event)
		return nil
	})
	return res, err
}

// FromStackItem converts provided [stackitem.Array] to BindAccountEvent or
// returns an error if it's not possible to do to so.
func (e *BindAccountEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 3)
	if err != nil {
		return err
	}

	var index = -1
	index++
	e.Account, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Account: %w", err)
	}

	index++
	e.Platform, err = itemToString(arr[index])
	if err != nil {
		return fmt.Errorf("field Platform: %w", err)
	}

	index++
	e.Handle, err = itemToString(arr[index])
	if err != nil {
		return fmt.Errorf("field Handle: %w", err)
	}

	return nil
}

// ChangeOwnerEventsFromApplicationLog retrieves a set of all emitted events
// with "ChangeOwner" name from the provided [result.ApplicationLog].
func ChangeOwnerEventsFromApplicationLog(log *result.ApplicationLog) ([]*ChangeOwnerEvent, error) {
	var res []*ChangeOwnerEvent
	err := eventsFromApplicationLog(log, "ChangeOwner", func(item *stackitem.Array) error {
		event := new(ChangeOwnerEvent)
		if err := event.FromStackItem(item); err != nil {
			return err
		}
		res = append(res, event)
		return nil
	})
	return res, err
}

// FromStackItem converts provided [stackitem.Array] to ChangeOwnerEvent or
// returns an error if it's not possible to do to so.
func (e *ChangeOwnerEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 2)
	if err != nil {
		return err
	}

	e.OldOwner, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field OldOwner: %w", err)
	}

	e.NewOwner, err = itemToUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field NewOwner: %w", err)
	}

	return nil
}

// AddManagerEventsFromApplicationLog retrieves a set of all emitted events
// with "AddManager" name from the provided [result.ApplicationLog].
func AddManagerEventsFromApplicationLog(log *result.ApplicationLog) ([]*AddManagerEvent, error) {
	var res []*AddManagerEvent
	err := eventsFromApplicationLog(log, "AddManager", func(item *stackitem.Array) error {
		event := new(AddManagerEvent)
		if err := event.FromStackItem(item); err != nil {
			return err
		}
		res = append(res, event)
		return nil
	})
	return res, err
}

// FromStackItem converts provided [stackitem.Array] to AddManagerEvent or
// returns an error if it's not possible to do to so.
func (e *AddManagerEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 1)
	if err != nil {
		return err
	}

	e.Manager, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Manager: %w", err)
	}

	return nil
}

// RemoveManagerEventsFromApplicationLog retrieves a set of all emitted events
// with "RemoveManager" name from the provided [result.ApplicationLog].
func RemoveManagerEventsFromApplicationLog(log *result.ApplicationLog) ([]*RemoveManagerEvent, error) {
	var res []*RemoveManagerEvent
	err := eventsFromApplicationLog(log, "RemoveManager", func(item *stackitem.Array) error {
		event := new(RemoveManagerEvent)
		if err := event.FromStackItem(item); err != nil {
			return err
		}
		res = append(res, event)
		return nil
	})
	return res, err
}

// FromStackItem converts provided [stackitem.Array] to RemoveManagerEvent or
// returns an error if it's not possible to do to so.
func (e *RemoveManagerEvent) FromStackItem(item *stackitem.Array) error {
	var a AddManagerEvent
	if err := a.FromStackItem(item); err != nil {
		return err
	}

	e.Manager = a.Manager
	return nil
}

func eventsFromApplicationLog(log *result.ApplicationLog, name string, f func(*stackitem.Array) error) error {
	if log == nil {
		return errors.New("nil application log")
	}

	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != name {
				continue
			}
			err := f(e.Item)
			if err != nil {
				return fmt.Errorf("failed to deserialize %sEvent from stackitem (execution #%d, event #%d): %w", name, i, j, err)
			}
		}
	}

	return nil
}

func eventFields(item *stackitem.Array, n int) ([]stackitem.Item, error) {
	if item == nil {
		return nil, errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, errors.New("not an array")
	}
	if len(arr) != n {
		return nil, errors.New("wrong number of structure elements")
	}
	return arr, nil
}

func itemToUint160(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	u, err := util.Uint160DecodeBytesBE(b)
	if err != nil {
		return util.Uint160{}, err
	}
	return u, nil
}

func itemsToUint160s(items []stackitem.Item) ([]util.Uint160, error) {
	res := make([]util.Uint160, len(items))
	for i := range items {
		var err error
		res[i], err = itemToUint160(items[i])
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return res, nil
}

func itemToString(item stackitem.Item) (string, error) {
	b, err := item.TryBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.New("not a UTF-8 string")
	}
	return string(b), nil
}
