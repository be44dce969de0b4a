/*
Package bindings implements Account Bindings contract which binds Neo accounts
to handles on external platforms (social networks, other blockchains).

Binding is a three-step process. The account proposes a binding by transferring
at least 0.01 GAS to the contract with [platform, handle] as transfer data.
Managers verify ownership of the handle off-chain and accept the proposal
providing its creation time. Accepted binding is stored in both directions:
account to handle and handle to account. Handle on a platform can be bound to
a single account only. Confirmed bindings can not be changed or removed.

Contract has a single owner which manages the set of managers, owns collected
fees and updates the contract.

# Contract notifications

ProposeBinding notification. This notification is produced when an account
creates or replaces a binding proposal. Managers catch the notification and
start off-chain verification of the handle.

	ProposeBinding:
	  - name: account
	    type: Hash160
	  - name: platform
	    type: String
	  - name: handle
	    type: String
	  - name: createdAt
	    type: Integer

CancelBindingProposal notification. This notification is produced when an
account cancels its proposal.

	CancelBindingProposal:
	  - name: account
	    type: Hash160
	  - name: platform
	    type: String
	  - name: handle
	    type: String
	  - name: createdAt
	    type: Integer

BindAccount notification. This notification is produced when a manager accepts
the proposal.

	BindAccount:
	  - name: account
	    type: Hash160
	  - name: platform
	    type: String
	  - name: handle
	    type: String

ChangeOwner notification. This notification is produced when contract
ownership is transferred.

	ChangeOwner:
	  - name: oldOwner
	    type: Hash160
	  - name: newOwner
	    type: Hash160

AddManager and RemoveManager notifications. These notifications are produced
when the set of managers changes.

	AddManager:
	  - name: manager
	    type: Hash160
	RemoveManager:
	  - name: manager
	    type: Hash160
*/
package bindings

/*
Contract storage model.

Current conventions:
 <account>: 20-byte script hash of the Neo account
 <platform>: 1-byte platform code, see platformCode
 <handle>: handle bytes as provided by the account

# Summary
Key-value storage format:
 - 'o' -> interop.Hash160
   contract owner
 - 'm<account>' -> []byte{1}
   set of managers
 - 'p<account><platform>' -> std.Serialize(BindingProposal)
   current binding proposal
 - 'b<account><platform>' -> string
   handle bound to the account
 - 'r<platform><handle>' -> interop.Hash160
   account bound to the handle
 - 't<account><platform>' -> int
   last creation time assigned to a proposal, kept after cancellation
 - 'a<account>' -> []byte{1}
   set of accounts with at least one binding
 - 'n' -> int
   number of accounts in the 'a' set

# Invariants
For each account and platform there is either no record, a proposal or a
binding. 'b' and 'r' records are always written together and never removed.
Proposal creation time under the same account and platform is strictly
increasing, so a verified creation time matches a single proposal only.
*/
