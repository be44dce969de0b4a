/*
Package bindingsconst contains constants shared by the Account Bindings
contract and its off-chain clients.
*/
package bindingsconst

const (
	// ProposalFee is the minimal amount of GAS (in fractions, GAS has 8
	// decimals) which must accompany every binding proposal. The fee covers
	// storage of the proposal and is kept by the contract.
	ProposalFee = 1_000_000 // 0.01 GAS

	// MaxHandleLength limits the length of the external handle in bytes.
	MaxHandleLength = 255
)

// Platform names accepted by the contract. The set is closed: any other value
// is rejected with UnknownPlatformError.
const (
	Twitter   = "twitter"
	Facebook  = "facebook"
	Reddit    = "reddit"
	GitHub    = "github"
	Telegram  = "telegram"
	Discord   = "discord"
	Instagram = "instagram"
	Ethereum  = "ethereum"
	Hive      = "hive"
	Steem     = "steem"
)

// Exception messages thrown by the contract. Messages with a trailing space
// are followed by dynamic details (account address, handle or platform).
const (
	// NotOwnerError is thrown when an owner-only method is invoked without
	// the owner witness.
	NotOwnerError = "Only owner can perform this action"
	// NotManagerError is thrown when acceptBinding is invoked without a
	// witness of any manager.
	NotManagerError = "Only manager can perform this action"
	// WitnessError is thrown when the subject account did not sign the
	// transaction.
	WitnessError = "account witness check failed"

	// AlreadyInitializedError is thrown on repeated initialization.
	AlreadyInitializedError = "contract is already initialized"
	// NotInitializedError is thrown by owner-only methods until the owner is set.
	NotInitializedError = "contract is not initialized"

	// InsufficientFeeError is thrown when the GAS payment accompanying a
	// proposal is less than ProposalFee.
	InsufficientFeeError = "0.01 GAS fee is required for each binding proposal"
	// OnlyGASError is thrown when the contract receives tokens other than GAS.
	OnlyGASError = "only GAS can be accepted for binding proposals"
	// InvalidProposalDataError is thrown when payment data is not a
	// [platform, handle] pair.
	InvalidProposalDataError = "invalid proposal data, expected [platform, handle]"

	// AlreadyBoundErrorPrefix starts the message thrown when a proposal is
	// made for an account already bound on the platform. Full message:
	// "You account <address> has already bound to handle <handle> on <platform>".
	AlreadyBoundErrorPrefix = "You account "
	// HandleAlreadyBoundErrorPrefix starts the message thrown when the handle
	// is bound to another account. Full message:
	// "You handle <handle> on <platform> has already bound to account <address>".
	HandleAlreadyBoundErrorPrefix = "You handle "
	// AlreadyBoundErrorInfix is the common part of both "already bound" messages.
	AlreadyBoundErrorInfix = " has already bound to "

	// NoProposalsError is thrown when the account has no proposals at all.
	NoProposalsError = "Account has no proposals"
	// NoProposalsForPlatformError is thrown when the account has proposals,
	// but not on the requested platform. Followed by the platform name.
	NoProposalsForPlatformError = "Account has no proposals for "

	// InvalidProposalCreationTimeError is thrown when the verification
	// timestamp is in the future.
	InvalidProposalCreationTimeError = "Proposal creation time must be in the past"
	// WrongProposalError is thrown when the verification timestamp does not
	// match creation time of the current proposal.
	WrongProposalError = "Proposal is not the verified one"

	// InvalidHandleError is thrown for empty or too long handles.
	InvalidHandleError = "Invalid handle"
	// UnknownPlatformError is thrown for platforms outside the closed set.
	UnknownPlatformError = "unknown platform"
	// InvalidAccountError is thrown when an account is not a 20-byte script hash.
	InvalidAccountError = "invalid account"
	// InvalidAmountError is thrown by withdraw for non-positive amounts.
	InvalidAmountError = "amount must be positive"
)
