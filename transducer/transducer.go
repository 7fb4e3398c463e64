// Package transducer implements the streaming carry/ip wrapper described in
// spec.md §4.1: it turns a stateless (or x86-stateful) kernel.Kernel into a
// chunk-oriented transform that can be fed input of any size and always
// produces the same output as a single call over the concatenated input.
package transducer

import (
	"fmt"

	"github.com/Urethramancer/bcj/bcjerr"
	"github.com/Urethramancer/bcj/kernel"
)

// Transducer owns the carry buffer, the virtual program counter, and a
// reference to one kernel (spec.md §3). It is not safe for concurrent use.
type Transducer struct {
	k         kernel.Kernel
	dir       kernel.Direction
	ip        uint64
	carry     []byte
	remaining uint64
	hasLimit  bool
}

// New creates an encoder-side transducer: no output cap.
func New(k kernel.Kernel, dir kernel.Direction) *Transducer {
	return &Transducer{k: k, dir: dir}
}

// NewWithLimit creates a decoder-side transducer whose total output is
// capped at totalLen bytes (spec.md §4.1, decoder-only remaining).
func NewWithLimit(k kernel.Kernel, dir kernel.Direction, totalLen uint64) *Transducer {
	return &Transducer{k: k, dir: dir, remaining: totalLen, hasLimit: true}
}

// Process runs one chunk through the algorithm in spec.md §4.1: prepend
// carry, invoke the kernel repeatedly isn't needed since each kernel call
// already walks the whole window-aligned buffer, emit the consumed prefix,
// and stash the unconsumed suffix as the new carry.
func (t *Transducer) Process(input []byte) ([]byte, error) {
	if len(input) == 0 {
		return nil, nil
	}
	if t.hasLimit && t.remaining == 0 {
		return nil, nil
	}

	buf := make([]byte, 0, len(t.carry)+len(input))
	buf = append(buf, t.carry...)
	buf = append(buf, input...)

	// When a decode total-length cap is in effect, the kernel must never be
	// asked to transform bytes beyond what is actually left in the logical
	// stream: anything past remaining is padding the caller over-supplied,
	// not live stream content, and is dropped rather than stashed as carry
	// or handed to the kernel's look-ahead.
	work := buf
	if t.hasLimit && uint64(len(work)) > t.remaining {
		work = work[:t.remaining]
	}

	consumed := t.k.Transform(work, t.ip, t.dir)

	if consumed > len(work) {
		return nil, fmt.Errorf("%w: kernel consumed %d of %d bytes", bcjerr.ErrInternal, consumed, len(work))
	}
	if window := t.k.Window(); len(work) >= window && len(work)-consumed >= window {
		return nil, fmt.Errorf("%w: residual carry %d >= window %d", bcjerr.ErrInternal, len(work)-consumed, window)
	}

	output := work[:consumed]
	t.carry = append(t.carry[:0], work[consumed:]...)
	t.ip += uint64(consumed)

	if t.hasLimit {
		t.remaining -= uint64(consumed)
	}

	return output, nil
}

// Flush returns the currently buffered carry unchanged and clears it
// (spec.md §4.1). ip is not reset.
func (t *Transducer) Flush() []byte {
	if len(t.carry) == 0 {
		return nil
	}
	out := t.carry
	t.carry = nil
	return out
}

// IP reports the current virtual program counter, the number of bytes
// emitted since construction (spec.md §3 invariant 2).
func (t *Transducer) IP() uint64 { return t.ip }

// CarryLen reports the current carry length, always < the kernel's window
// (spec.md §3 invariant 1, §8 property 6).
func (t *Transducer) CarryLen() int { return len(t.carry) }
