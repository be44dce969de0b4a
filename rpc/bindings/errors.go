package bindings

import (
	"strings"

	"github.com/nspcc-dev/bindings-contract/contracts/bindings/bindingsconst"
)

// ErrorKind is a class of contract exceptions.
type ErrorKind uint8

// Contract exception classes.
const (
	_ ErrorKind = iota
	Unauthorized
	AlreadyInitialized
	NotInitialized
	InsufficientFee
	AlreadyBound
	NoProposals
	NoProposalsForPlatform
	InvalidProposalCreationTime
	WrongProposal
	HandleAlreadyBound
	InvalidHandle
	UnknownPlatform
)

// IsError checks whether err is caused by the contract exception of the
// given kind. Exception text is transmitted by RPC nodes as part of the
// invocation fault message, so the check is made by the beginning of the
// exception text. Exception messages may carry user-provided handles, which
// makes matching anywhere in the text ambiguous.
func IsError(err error, kind ErrorKind) bool {
	if err == nil {
		return false
	}

	msg := exceptionText(err.Error())
	switch kind {
	case Unauthorized:
		return strings.HasPrefix(msg, bindingsconst.NotOwnerError) ||
			strings.HasPrefix(msg, bindingsconst.NotManagerError) ||
			strings.HasPrefix(msg, bindingsconst.WitnessError)
	case AlreadyInitialized:
		return strings.HasPrefix(msg, bindingsconst.AlreadyInitializedError)
	case NotInitialized:
		return strings.HasPrefix(msg, bindingsconst.NotInitializedError)
	case InsufficientFee:
		return strings.HasPrefix(msg, bindingsconst.InsufficientFeeError)
	case AlreadyBound:
		return strings.HasPrefix(msg, bindingsconst.AlreadyBoundErrorPrefix)
	case NoProposals:
		return strings.HasPrefix(msg, bindingsconst.NoProposalsError) &&
			!strings.HasPrefix(msg, bindingsconst.NoProposalsForPlatformError)
	case NoProposalsForPlatform:
		return strings.HasPrefix(msg, bindingsconst.NoProposalsForPlatformError)
	case InvalidProposalCreationTime:
		return strings.HasPrefix(msg, bindingsconst.InvalidProposalCreationTimeError)
	case WrongProposal:
		return strings.HasPrefix(msg, bindingsconst.WrongProposalError)
	case HandleAlreadyBound:
		return strings.HasPrefix(msg, bindingsconst.HandleAlreadyBoundErrorPrefix)
	case InvalidHandle:
		return strings.HasPrefix(msg, bindingsconst.InvalidHandleError)
	case UnknownPlatform:
		return strings.HasPrefix(msg, bindingsconst.UnknownPlatformError)
	}

	return false
}

// exceptionMarker precedes the quoted exception text in VM fault messages.
const exceptionMarker = `unhandled exception: "`

// exceptionText cuts the exception text out of the fault message. Messages
// without the marker are returned as is.
func exceptionText(msg string) string {
	if i := strings.Index(msg, exceptionMarker); i >= 0 {
		return msg[i+len(exceptionMarker):]
	}
	return msg
}
