// Package taulerr holds the error types shared across the compiler, cache,
// and CLI layers: a wrapped-cause Error type plus the sentinel errors code
// elsewhere checks for with errors.Is.
package taulerr

import "errors"

var (
	// ErrNotFound marks something that cannot be located. No function in
	// this module returns it: a missing grammar file surfaces as the os
	// error, and a cache miss as ok == false from taulcache.Cache.Get.
	ErrNotFound = errors.New("not found")
	// ErrCacheCorrupt is returned when a cache entry cannot be decoded, or
	// decodes without consuming all of its bytes.
	ErrCacheCorrupt = errors.New("cache entry is corrupt")
	// ErrConfig is returned for malformed or unreadable configuration.
	ErrConfig = errors.New("invalid configuration")
	// ErrCompile marks a grammar that fails to compile. No function in this
	// module returns it: compile.Compile reports failures as
	// compile.Diagnostics.
	ErrCompile = errors.New("grammar failed to compile")
	// ErrParse is returned by bootstrap.ParseSource when grammar source text
	// cannot be lexed, parsed, or turned into an llspec.Spec.
	ErrParse = errors.New("parse failed")
)

// Error is a message with zero or more causes, compatible with errors.Is via
// Unwrap() []error: checking errors.Is(err, SomeSentinel) succeeds if
// SomeSentinel is among the causes of any Error in err's chain.
type Error struct {
	msg   string
	cause []error
}

// New creates an Error with msg and the given causes. Causes are optional.
func New(msg string, causes ...error) Error {
	e := Error{msg: msg}
	if len(causes) > 0 {
		e.cause = append([]error(nil), causes...)
	}
	return e
}

// Wrap creates an Error with no message of its own beyond err's, recording
// err and sentinel as its causes so callers can check both with errors.Is.
func Wrap(err error, sentinel error) Error {
	return Error{cause: []error{err, sentinel}}
}

func (e Error) Error() string {
	if e.msg == "" && len(e.cause) > 0 {
		return e.cause[0].Error()
	}
	if len(e.cause) > 0 {
		return e.msg + ": " + e.cause[0].Error()
	}
	return e.msg
}

// Unwrap returns the causes of e, or nil if it has none.
func (e Error) Unwrap() []error {
	if len(e.cause) == 0 {
		return nil
	}
	return e.cause
}
