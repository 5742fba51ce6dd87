// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific ErrorKind.
const (
	// ErrNotSynced indicates a message received before the blockchain is
	// synced.
	ErrNotSynced = ErrorKind("ErrNotSynced")

	// ErrLiteMode indicates a masternode message received by a node running
	// without masternode support.
	ErrLiteMode = ErrorKind("ErrLiteMode")

	// ErrChainBusy indicates the chain tip could not be read without
	// waiting for the chain manager.
	ErrChainBusy = ErrorKind("ErrChainBusy")

	// ErrObsoletePeer indicates a message from a peer running a protocol
	// version older than the active one.
	ErrObsoletePeer = ErrorKind("ErrObsoletePeer")

	// ErrDuplicateRequest indicates a peer asked for the winners more than
	// once.
	ErrDuplicateRequest = ErrorKind("ErrDuplicateRequest")

	// ErrUnknownPayee indicates a winner paying a script that belongs to
	// no known masternode.
	ErrUnknownPayee = ErrorKind("ErrUnknownPayee")

	// ErrWinnerSeen indicates a winner that was already accepted.
	ErrWinnerSeen = ErrorKind("ErrWinnerSeen")

	// ErrWinnerOutOfRange indicates a winner for a block too far from the
	// best chain tip.
	ErrWinnerOutOfRange = ErrorKind("ErrWinnerOutOfRange")

	// ErrUnknownVoter indicates a winner cast by an unknown masternode.
	ErrUnknownVoter = ErrorKind("ErrUnknownVoter")

	// ErrObsoleteVoter indicates a winner cast by a masternode running a
	// protocol version older than the active one.
	ErrObsoleteVoter = ErrorKind("ErrObsoleteVoter")

	// ErrVoterNotRanked indicates a winner cast by a masternode outside of
	// the voting ranks of the block.
	ErrVoterNotRanked = ErrorKind("ErrVoterNotRanked")

	// ErrBadWinnerSignature indicates a winner not signed by its voter.
	ErrBadWinnerSignature = ErrorKind("ErrBadWinnerSignature")

	// ErrDoubleVote indicates a masternode voting twice for the same block
	// and tier or for an older block.
	ErrDoubleVote = ErrorKind("ErrDoubleVote")

	// ErrMissingScoringBlock indicates a winner for a block whose scoring
	// block is not known.
	ErrMissingScoringBlock = ErrorKind("ErrMissingScoringBlock")

	// ErrFileError indicates the payments file could not be opened.
	ErrFileError = ErrorKind("ErrFileError")

	// ErrHashRead indicates the checksum of the payments file could not be
	// read.
	ErrHashRead = ErrorKind("ErrHashRead")

	// ErrIncorrectHash indicates the payments file does not match its
	// checksum.
	ErrIncorrectHash = ErrorKind("ErrIncorrectHash")

	// ErrIncorrectMagicMessage indicates the payments file does not start
	// with the payments magic message.
	ErrIncorrectMagicMessage = ErrorKind("ErrIncorrectMagicMessage")

	// ErrIncorrectMagicNumber indicates the payments file was written for
	// another network.
	ErrIncorrectMagicNumber = ErrorKind("ErrIncorrectMagicNumber")

	// ErrIncorrectFormat indicates the payments file has valid headers but
	// its payload can not be decoded.
	ErrIncorrectFormat = ErrorKind("ErrIncorrectFormat")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies a masternode payment related error.  It has full support
// for errors.Is and errors.As, so the caller can ascertain the specific reason
// for the error by checking the underlying error.
type Error struct {
	Description string
	Err         error
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// paymentError creates an Error given a set of arguments.
func paymentError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
