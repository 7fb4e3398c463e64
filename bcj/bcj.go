// Package bcj is the thin codec façade described in spec.md §4.7 and §6: a
// constructor per architecture-direction pair, each returning a value whose
// entire public surface is encode/decode/flush.
package bcj

import (
	"fmt"

	"github.com/Urethramancer/bcj/bcjerr"
	"github.com/Urethramancer/bcj/kernel"
	"github.com/Urethramancer/bcj/transducer"
)

// Encoder is the public surface of every ⟨Arch⟩Encoder() constructor.
type Encoder interface {
	Encode(input []byte) ([]byte, error)
	Flush() []byte
}

// Decoder is the public surface of every ⟨Arch⟩Decoder(n) constructor.
type Decoder interface {
	Decode(input []byte) ([]byte, error)
	Flush() []byte
}

type encoder struct{ t *transducer.Transducer }

func (e *encoder) Encode(input []byte) ([]byte, error) { return e.t.Process(input) }
func (e *encoder) Flush() []byte                       { return e.t.Flush() }

type decoder struct{ t *transducer.Transducer }

func (d *decoder) Decode(input []byte) ([]byte, error) { return d.t.Process(input) }
func (d *decoder) Flush() []byte                       { return d.t.Flush() }

func newEncoder(k kernel.Kernel) Encoder {
	return &encoder{t: transducer.New(k, kernel.Encode)}
}

func newDecoder(k kernel.Kernel, totalLen int64) (Decoder, error) {
	if totalLen < 0 {
		return nil, fmt.Errorf("%w: total length %d is negative", bcjerr.ErrInvalidArgument, totalLen)
	}
	return &decoder{t: transducer.NewWithLimit(k, kernel.Decode, uint64(totalLen))}, nil
}

// BCJEncoder constructs an x86 (near CALL/JMP rel32) encoder (spec.md §4.2).
func BCJEncoder() Encoder { return newEncoder(kernel.NewX86Kernel()) }

// BCJDecoder constructs an x86 decoder capped at totalLen output bytes.
func BCJDecoder(totalLen int64) (Decoder, error) { return newDecoder(kernel.NewX86Kernel(), totalLen) }

// ARMEncoder constructs the AArch64 (ARM64) encoder. The name is preserved
// from the reference binding's naming, which calls this kernel "ARM" despite
// it targeting AArch64 (spec.md §6).
func ARMEncoder() Encoder { return newEncoder(kernel.NewARM64Kernel()) }

// ARMDecoder constructs the AArch64 decoder.
func ARMDecoder(totalLen int64) (Decoder, error) {
	return newDecoder(kernel.NewARM64Kernel(), totalLen)
}

// ARMTEncoder constructs the ARM-Thumb (T32) encoder.
func ARMTEncoder() Encoder { return newEncoder(kernel.NewARMTKernel()) }

// ARMTDecoder constructs the ARM-Thumb decoder.
func ARMTDecoder(totalLen int64) (Decoder, error) {
	return newDecoder(kernel.NewARMTKernel(), totalLen)
}

// PPCEncoder constructs the PowerPC encoder.
func PPCEncoder() Encoder { return newEncoder(kernel.NewPPCKernel()) }

// PPCDecoder constructs the PowerPC decoder.
func PPCDecoder(totalLen int64) (Decoder, error) { return newDecoder(kernel.NewPPCKernel(), totalLen) }

// SparcEncoder constructs the SPARC encoder.
func SparcEncoder() Encoder { return newEncoder(kernel.NewSparcKernel()) }

// SparcDecoder constructs the SPARC decoder.
func SparcDecoder(totalLen int64) (Decoder, error) {
	return newDecoder(kernel.NewSparcKernel(), totalLen)
}

// IA64Encoder constructs the IA-64 encoder.
func IA64Encoder() Encoder { return newEncoder(kernel.NewIA64Kernel()) }

// IA64Decoder constructs the IA-64 decoder.
func IA64Decoder(totalLen int64) (Decoder, error) {
	return newDecoder(kernel.NewIA64Kernel(), totalLen)
}

// Codec is a dynamic dispatcher wrapping either an encoder or a decoder of
// one architecture, for callers that pick direction at runtime and must
// reject calling Encode on a decoder (or vice versa) as a StateMisuse error
// (spec.md §7) rather than a compile error.
type Codec struct {
	enc Encoder
	dec Decoder
}

// NewEncoderCodec wraps an already-constructed Encoder.
func NewEncoderCodec(e Encoder) *Codec { return &Codec{enc: e} }

// NewDecoderCodec wraps an already-constructed Decoder.
func NewDecoderCodec(d Decoder) *Codec { return &Codec{dec: d} }

func (c *Codec) Encode(input []byte) ([]byte, error) {
	if c.enc == nil {
		return nil, fmt.Errorf("%w: Encode called on a decoder codec", bcjerr.ErrStateMisuse)
	}
	return c.enc.Encode(input)
}

func (c *Codec) Decode(input []byte) ([]byte, error) {
	if c.dec == nil {
		return nil, fmt.Errorf("%w: Decode called on an encoder codec", bcjerr.ErrStateMisuse)
	}
	return c.dec.Decode(input)
}

func (c *Codec) Flush() []byte {
	if c.enc != nil {
		return c.enc.Flush()
	}
	return c.dec.Flush()
}
