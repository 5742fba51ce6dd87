// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package spork

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific ErrorKind.
const (
	// ErrUnknownSpork indicates a message for a spork that does not exist.
	ErrUnknownSpork = ErrorKind("ErrUnknownSpork")

	// ErrSporkSeen indicates a message that is not newer than the one
	// already known for the spork.
	ErrSporkSeen = ErrorKind("ErrSporkSeen")

	// ErrBadSporkSignature indicates a message not signed by the spork key.
	ErrBadSporkSignature = ErrorKind("ErrBadSporkSignature")

	// ErrNoSporkKey indicates an attempt to sign a spork without the spork
	// private key.
	ErrNoSporkKey = ErrorKind("ErrNoSporkKey")

	// ErrSporkDatabase indicates a failure of the underlying database.
	ErrSporkDatabase = ErrorKind("ErrSporkDatabase")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies a spork related error.  It has full support for errors.Is
// and errors.As, so the caller can ascertain the specific reason for the
// error by checking the underlying error.
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

// sporkError creates an Error given a set of arguments.
func sporkError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
