// Package bcjerr defines the sentinel error values the façade and
// transducer wrap with fmt.Errorf, following the taxonomy in spec.md §7.
package bcjerr

import "errors"

var (
	// ErrInvalidArgument is wrapped when a decoder is constructed with a
	// negative or out-of-range total length, or when a caller hands a nil
	// buffer somewhere the API forbids it.
	ErrInvalidArgument = errors.New("bcj: invalid argument")

	// ErrStateMisuse is wrapped when encode is called on a decoder, or
	// decode on an encoder, via the dynamic Codec dispatcher.
	ErrStateMisuse = errors.New("bcj: state misuse")

	// ErrInternal is wrapped when a kernel violates its post-condition
	// (consumed > len(buf), or residual carry >= window). Unreachable in a
	// correct kernel; if it fires the codec must be discarded.
	ErrInternal = errors.New("bcj: internal error")
)
